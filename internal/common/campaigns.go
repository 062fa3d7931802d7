package common

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/boltdb/bolt"

	"github.com/trendlink/trendlink/config"
	"github.com/trendlink/trendlink/misc"
)

// Campaigns is the in-memory campaign repository, keyed by campaign id.
// Single logical writer; the RWMutex only guards against the notification
// worker reading concurrently.
type Campaigns struct {
	mux   sync.RWMutex
	store map[string]*Campaign
}

func NewCampaigns() *Campaigns {
	return &Campaigns{
		store: make(map[string]*Campaign),
	}
}

func (p *Campaigns) Add(cmp *Campaign) bool {
	if cmp == nil {
		return false
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, ok := p.store[cmp.Id]; ok {
		return false
	}
	p.store[cmp.Id] = cmp
	return true
}

func (p *Campaigns) Get(id string) (*Campaign, bool) {
	p.mux.RLock()
	val, ok := p.store[id]
	p.mux.RUnlock()
	return val, ok
}

func (p *Campaigns) Delete(id string) bool {
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, ok := p.store[id]; !ok {
		return false
	}
	delete(p.store, id)
	return true
}

func (p *Campaigns) Len() int {
	p.mux.RLock()
	defer p.mux.RUnlock()
	return len(p.store)
}

func (p *Campaigns) All() []*Campaign {
	p.mux.RLock()
	defer p.mux.RUnlock()
	out := make([]*Campaign, 0, len(p.store))
	for _, cmp := range p.store {
		out = append(out, cmp)
	}
	return out
}

// SetAll replaces the whole store, e.g. after a load from disk. A campaign
// with an empty id means the persisted collection is malformed.
func (p *Campaigns) SetAll(cmps []*Campaign) error {
	store := make(map[string]*Campaign, len(cmps))
	for _, cmp := range cmps {
		if cmp == nil || cmp.Id == "" {
			return fmt.Errorf("%w: campaign with empty id", misc.ErrDataProcessing)
		}
		store[cmp.Id] = cmp
	}
	p.mux.Lock()
	p.store = store
	p.mux.Unlock()
	return nil
}

func (p *Campaigns) Clear() {
	p.mux.Lock()
	p.store = make(map[string]*Campaign)
	p.mux.Unlock()
}

func (p *Campaigns) filter(keep func(*Campaign) bool) []*Campaign {
	p.mux.RLock()
	defer p.mux.RUnlock()
	var out []*Campaign
	for _, cmp := range p.store {
		if keep(cmp) {
			out = append(out, cmp)
		}
	}
	return out
}

func (p *Campaigns) ForBrand(username string) []*Campaign {
	return p.filter(func(cmp *Campaign) bool {
		return cmp.Brand == username
	})
}

func (p *Campaigns) ForInfluencer(username string) []*Campaign {
	return p.filter(func(cmp *Campaign) bool {
		return cmp.IsAccepted(username)
	})
}

// OffersFor returns campaigns where the influencer is invited but has not
// accepted yet.
func (p *Campaigns) OffersFor(username string) []*Campaign {
	return p.filter(func(cmp *Campaign) bool {
		return cmp.IsInvited(username) && !cmp.IsAccepted(username)
	})
}

func (p *Campaigns) ByStatus(status Status) []*Campaign {
	return p.filter(func(cmp *Campaign) bool {
		return cmp.Status == status
	})
}

func (p *Campaigns) ByName(name string) []*Campaign {
	if name == "" {
		return nil
	}
	return p.filter(func(cmp *Campaign) bool {
		return ContainsFold(cmp.Name, name)
	})
}

func (p *Campaigns) ByBudgetRange(min, max float64) []*Campaign {
	return p.filter(func(cmp *Campaign) bool {
		return cmp.Budget >= min && cmp.Budget <= max
	})
}

// InDateRange matches campaigns fully contained in [startDate, endDate].
// Dates are YYYY-MM-DD strings so plain comparison works.
func (p *Campaigns) InDateRange(startDate, endDate string) []*Campaign {
	if startDate == "" || endDate == "" {
		return nil
	}
	return p.filter(func(cmp *Campaign) bool {
		if cmp.StartDate == "" || cmp.EndDate == "" {
			return false
		}
		return cmp.StartDate >= startDate && cmp.EndDate <= endDate
	})
}

func (p *Campaigns) HighEngagement(threshold int) []*Campaign {
	return p.filter(func(cmp *Campaign) bool {
		return cmp.TotalEngagement() >= threshold
	})
}

func (p *Campaigns) TopPerforming(limit int) []*Campaign {
	out := p.All()
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalEngagement() > out[j].TotalEngagement()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Persistence is caller-driven: the server loads the store at boot and writes
// campaigns back after each mutation. The campaign logic itself never touches
// the db.

func LoadCampaigns(db *bolt.DB, cfg *config.Config) []*Campaign {
	var cmps []*Campaign
	if err := db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cfg.Bucket.Campaign)).ForEach(func(k, v []byte) error {
			cmp := &Campaign{}
			if err := json.Unmarshal(v, cmp); err != nil {
				log.Println("error when unmarshalling campaign", string(v))
				return nil
			}
			cmps = append(cmps, cmp)
			return nil
		})
	}); err != nil {
		log.Println("Err loading campaigns", err)
	}
	return cmps
}

func SaveCampaign(tx *bolt.Tx, cfg *config.Config, cmp *Campaign) error {
	if cmp == nil || cmp.Id == "" {
		return misc.ErrMissingId
	}
	return misc.PutTxJson(tx, cfg.Bucket.Campaign, cmp.Id, cmp)
}
