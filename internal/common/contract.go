package common

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trendlink/trendlink/misc"
)

type ContractStatus string

const (
	ContractDraft      ContractStatus = "Draft"
	ContractActive     ContractStatus = "Active"
	ContractCompleted  ContractStatus = "Completed"
	ContractTerminated ContractStatus = "Terminated"
)

const (
	defaultPaymentTerms = "Payment will be processed within 30 days of campaign completion"
	defaultDeliverables = "Content creation and posting as per campaign requirements"
)

// Contract binds an accepted campaign+influencer pair to its brand. Display
// fields and the date range are copied from the campaign at creation time, the
// same way the amount freezes the influencer's rate.
type Contract struct {
	Id string `json:"id"`

	CampaignId   string `json:"campaignId"`
	CampaignName string `json:"campaignName,omitempty"`
	CampaignDesc string `json:"campaignDesc,omitempty"`

	Influencer string `json:"influencer"` // username
	Brand      string `json:"brand"`      // username
	BrandName  string `json:"brandName,omitempty"`

	Amount       float64 `json:"amount,omitempty"`
	PaymentTerms string  `json:"paymentTerms,omitempty"`
	Deliverables string  `json:"deliverables,omitempty"`
	StartDate    string  `json:"startDate,omitempty"`
	EndDate      string  `json:"endDate,omitempty"`

	Status ContractStatus `json:"status"`
	Signed bool           `json:"signed"`

	CreatedAt int64 `json:"createdAt,omitempty"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

// NewContract drafts a contract for the given pair. rate is the influencer's
// per-post rate at creation time and becomes the default amount; brandName is
// the brand's display name for documents.
func NewContract(cmp *Campaign, influencer string, rate float64, brandName string) *Contract {
	now := time.Now().UnixNano()
	return &Contract{
		Id:           uuid.NewString(),
		CampaignId:   cmp.Id,
		CampaignName: cmp.Name,
		CampaignDesc: cmp.Description,
		Influencer:   influencer,
		Brand:        cmp.Brand,
		BrandName:    brandName,
		Amount:       rate,
		PaymentTerms: defaultPaymentTerms,
		Deliverables: defaultDeliverables,
		StartDate:    cmp.StartDate,
		EndDate:      cmp.EndDate,
		Status:       ContractDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (ct *Contract) touch() {
	ct.UpdatedAt = time.Now().UnixNano()
}

// Sign is the only Draft→Active transition and is one-way: re-signing an
// already signed contract reports false.
func (ct *Contract) Sign() bool {
	if ct.Signed {
		return false
	}
	ct.Signed = true
	ct.Status = ContractActive
	ct.touch()
	return true
}

func (ct *Contract) Complete() bool {
	if ct.Status != ContractActive {
		return false
	}
	ct.Status = ContractCompleted
	ct.touch()
	return true
}

func (ct *Contract) Terminate(reason string) bool {
	if ct.Status != ContractActive {
		return false
	}
	ct.Status = ContractTerminated
	ct.touch()
	return true
}

// Contracts is an id-keyed contract store, same shape as Campaigns.
type Contracts struct {
	mux   sync.RWMutex
	store map[string]*Contract
}

func NewContracts() *Contracts {
	return &Contracts{store: make(map[string]*Contract)}
}

func (p *Contracts) Add(ct *Contract) bool {
	if ct == nil {
		return false
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, ok := p.store[ct.Id]; ok {
		return false
	}
	p.store[ct.Id] = ct
	return true
}

func (p *Contracts) Get(id string) (*Contract, bool) {
	p.mux.RLock()
	val, ok := p.store[id]
	p.mux.RUnlock()
	return val, ok
}

func (p *Contracts) SetAll(cts []*Contract) error {
	store := make(map[string]*Contract, len(cts))
	for _, ct := range cts {
		if ct.Id == "" {
			return fmt.Errorf("contract with no id: %w", misc.ErrDataProcessing)
		}
		store[ct.Id] = ct
	}
	p.mux.Lock()
	p.store = store
	p.mux.Unlock()
	return nil
}

func (p *Contracts) ForCampaign(campaignId string) []*Contract {
	p.mux.RLock()
	defer p.mux.RUnlock()
	var out []*Contract
	for _, ct := range p.store {
		if ct.CampaignId == campaignId {
			out = append(out, ct)
		}
	}
	return out
}

func (p *Contracts) ForInfluencer(username string) []*Contract {
	p.mux.RLock()
	defer p.mux.RUnlock()
	var out []*Contract
	for _, ct := range p.store {
		if ct.Influencer == username {
			out = append(out, ct)
		}
	}
	return out
}
