package auth

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/trendlink/trendlink/internal/common"
	"github.com/trendlink/trendlink/misc"
)

// Users is an in-memory registry of every account, keyed by username.
type Users struct {
	mux   sync.RWMutex
	store map[string]Profile
}

func NewUsers() *Users {
	return &Users{store: map[string]Profile{}}
}

// Add registers a new account, rejecting duplicate usernames and emails.
func (u *Users) Add(p Profile) error {
	base := p.Base()
	if err := base.Check(); err != nil {
		return err
	}
	u.mux.Lock()
	defer u.mux.Unlock()
	if _, ok := u.store[base.Username]; ok {
		return ErrUserExists
	}
	for _, other := range u.store {
		if strings.EqualFold(other.Base().Email, base.Email) {
			return ErrEmailExists
		}
	}
	u.store[base.Username] = p
	return nil
}

func (u *Users) Get(username string) Profile {
	u.mux.RLock()
	p := u.store[username]
	u.mux.RUnlock()
	return p
}

func (u *Users) GetInfluencer(username string) *Influencer {
	inf, _ := u.Get(username).(*Influencer)
	return inf
}

func (u *Users) GetBrand(username string) *Brand {
	b, _ := u.Get(username).(*Brand)
	return b
}

func (u *Users) GetAdvertiser(username string) *Advertiser {
	adv, _ := u.Get(username).(*Advertiser)
	return adv
}

func (u *Users) Delete(username string) bool {
	u.mux.Lock()
	defer u.mux.Unlock()
	if _, ok := u.store[username]; !ok {
		return false
	}
	delete(u.store, username)
	return true
}

// Update changes an account's email and/or password, leaving blank fields
// untouched.
func (u *Users) Update(username, email, hashedPass string) error {
	u.mux.Lock()
	defer u.mux.Unlock()
	p, ok := u.store[username]
	if !ok {
		return ErrUserNotFound
	}
	p.Base().UpdateInfo(email, hashedPass)
	return nil
}

func (u *Users) Count() int {
	u.mux.RLock()
	n := len(u.store)
	u.mux.RUnlock()
	return n
}

func (u *Users) UsernameExists(username string) bool {
	return u.Get(username) != nil
}

func (u *Users) EmailInUse(email string) bool {
	u.mux.RLock()
	defer u.mux.RUnlock()
	for _, p := range u.store {
		if strings.EqualFold(p.Base().Email, email) {
			return true
		}
	}
	return false
}

func (u *Users) All() []Profile {
	u.mux.RLock()
	out := make([]Profile, 0, len(u.store))
	for _, p := range u.store {
		out = append(out, p)
	}
	u.mux.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func (u *Users) AllInfluencers() []*Influencer {
	u.mux.RLock()
	var out []*Influencer
	for _, p := range u.store {
		if inf, ok := p.(*Influencer); ok {
			out = append(out, inf)
		}
	}
	u.mux.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (u *Users) AllBrands() []*Brand {
	u.mux.RLock()
	var out []*Brand
	for _, p := range u.store {
		if b, ok := p.(*Brand); ok {
			out = append(out, b)
		}
	}
	u.mux.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (u *Users) AllAdvertisers() []*Advertiser {
	u.mux.RLock()
	var out []*Advertiser
	for _, p := range u.store {
		if adv, ok := p.(*Advertiser); ok {
			out = append(out, adv)
		}
	}
	u.mux.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (u *Users) AllAdmins() []*Admin {
	u.mux.RLock()
	var out []*Admin
	for _, p := range u.store {
		if a, ok := p.(*Admin); ok {
			out = append(out, a)
		}
	}
	u.mux.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// SearchInfluencers filters by niche substring, minimum total followers and
// maximum rate. Zero values disable the corresponding filter.
func (u *Users) SearchInfluencers(niche string, minFollowers int64, maxRate float64) []*Influencer {
	var out []*Influencer
	for _, inf := range u.AllInfluencers() {
		if niche != "" && !common.ContainsFold(inf.Niche, niche) {
			continue
		}
		if minFollowers > 0 && inf.TotalFollowers() < minFollowers {
			continue
		}
		if maxRate > 0 && inf.Rate > maxRate {
			continue
		}
		out = append(out, inf)
	}
	return out
}

func (u *Users) InfluencersByNiche(niche string) []*Influencer {
	var out []*Influencer
	for _, inf := range u.AllInfluencers() {
		if strings.EqualFold(inf.Niche, niche) {
			out = append(out, inf)
		}
	}
	return out
}

func (u *Users) BrandsByIndustry(industry string) []*Brand {
	var out []*Brand
	for _, b := range u.AllBrands() {
		if strings.EqualFold(b.Industry, industry) {
			out = append(out, b)
		}
	}
	return out
}

// TopInfluencers returns the n influencers with the most total followers.
func (u *Users) TopInfluencers(n int) []*Influencer {
	out := u.AllInfluencers()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalFollowers() > out[j].TotalFollowers()
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopBrands returns the n brands with the highest budget.
func (u *Users) TopBrands(n int) []*Brand {
	out := u.AllBrands()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Budget > out[j].Budget
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// SetAll replaces the registry contents, typically on load from disk.
func (u *Users) SetAll(profiles []Profile) error {
	store := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		if p.Key() == "" {
			return fmt.Errorf("user with no username: %w", misc.ErrDataProcessing)
		}
		store[p.Key()] = p
	}
	u.mux.Lock()
	u.store = store
	u.mux.Unlock()
	return nil
}
