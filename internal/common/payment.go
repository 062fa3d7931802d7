package common

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trendlink/trendlink/misc"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentProcessing PaymentStatus = "Processing"
	PaymentCompleted  PaymentStatus = "Completed"
	PaymentFailed     PaymentStatus = "Failed"
	PaymentCancelled  PaymentStatus = "Cancelled"
)

// gatewayOK simulates the payment gateway: 95% success. Swapped out in tests.
var gatewayOK = func() bool {
	return rand.Float64() < 0.95
}

// Beneficiary receives the monetary side effects of a completed payment:
// earnings for the influencer, spend for the brand. Both also move the
// campaign from their active to their past list.
type Beneficiary interface {
	CompleteCampaign(campaignId string, amount float64)
}

// Payment is the only entity with real monetary side effects. A failed
// gateway roll is a result state, not an error; the caller retries manually.
type Payment struct {
	Id string `json:"id"`

	ContractId   string `json:"contractId"`
	CampaignId   string `json:"campaignId"`
	CampaignName string `json:"campaignName,omitempty"`
	Influencer   string `json:"influencer"`
	Brand        string `json:"brand"`
	BrandName    string `json:"brandName,omitempty"`

	Amount   float64       `json:"amount,omitempty"`
	Currency string        `json:"currency,omitempty"`
	Status   PaymentStatus `json:"status"`
	Method   string        `json:"method,omitempty"`

	// Set only on successful completion.
	TransactionId string `json:"transactionId,omitempty"`
	PaymentDate   int64  `json:"paymentDate,omitempty"`

	CreatedAt int64 `json:"createdAt,omitempty"`
}

func NewPayment(ct *Contract, amount float64) *Payment {
	return &Payment{
		Id:           uuid.NewString(),
		ContractId:   ct.Id,
		CampaignId:   ct.CampaignId,
		CampaignName: ct.CampaignName,
		Influencer:   ct.Influencer,
		Brand:        ct.Brand,
		BrandName:    ct.BrandName,
		Amount:       amount,
		Currency:     "USD",
		Status:       PaymentPending,
		CreatedAt:    time.Now().UnixNano(),
	}
}

// Process runs the simulated gateway. On success the payment completes, gets
// a transaction id and timestamp, and propagates earnings/spend into the two
// beneficiaries. On failure the status becomes Failed with no side effects.
func (p *Payment) Process(method string, influencer, brand Beneficiary) bool {
	p.Method = method
	p.Status = PaymentProcessing

	if !gatewayOK() {
		p.Status = PaymentFailed
		return false
	}

	p.Status = PaymentCompleted
	p.PaymentDate = time.Now().UnixNano()
	p.TransactionId = "TX-" + strings.ToUpper(uuid.NewString()[:8])

	if influencer != nil {
		influencer.CompleteCampaign(p.CampaignId, p.Amount)
	}
	if brand != nil {
		brand.CompleteCampaign(p.CampaignId, p.Amount)
	}
	return true
}

// Cancel is blocked once the payment completed.
func (p *Payment) Cancel(reason string) bool {
	if p.Status == PaymentCompleted {
		return false
	}
	p.Status = PaymentCancelled
	return true
}

// Payments is an id-keyed payment store.
type Payments struct {
	mux   sync.RWMutex
	store map[string]*Payment
}

func NewPayments() *Payments {
	return &Payments{store: make(map[string]*Payment)}
}

func (p *Payments) Add(pay *Payment) bool {
	if pay == nil {
		return false
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, ok := p.store[pay.Id]; ok {
		return false
	}
	p.store[pay.Id] = pay
	return true
}

func (p *Payments) Get(id string) (*Payment, bool) {
	p.mux.RLock()
	val, ok := p.store[id]
	p.mux.RUnlock()
	return val, ok
}

func (p *Payments) SetAll(pays []*Payment) error {
	store := make(map[string]*Payment, len(pays))
	for _, pay := range pays {
		if pay.Id == "" {
			return fmt.Errorf("payment with no id: %w", misc.ErrDataProcessing)
		}
		store[pay.Id] = pay
	}
	p.mux.Lock()
	p.store = store
	p.mux.Unlock()
	return nil
}

func (p *Payments) ForContract(contractId string) []*Payment {
	p.mux.RLock()
	defer p.mux.RUnlock()
	var out []*Payment
	for _, pay := range p.store {
		if pay.ContractId == contractId {
			out = append(out, pay)
		}
	}
	return out
}
