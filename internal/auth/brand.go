package auth

import (
	"fmt"
	"strings"

	"github.com/trendlink/trendlink/internal/common"
)

// Brand is a company account running campaigns.
type Brand struct {
	User

	CompanyName string  `json:"companyName"`
	Industry    string  `json:"industry,omitempty"`
	Website     string  `json:"website,omitempty"`
	Description string  `json:"description,omitempty"`
	Budget      float64 `json:"budget,omitempty"`

	ActiveCampaigns []string `json:"activeCampaigns,omitempty"`
	PastCampaigns   []string `json:"pastCampaigns,omitempty"`

	TotalSpent float64 `json:"totalSpent,omitempty"`
}

var _ common.Beneficiary = (*Brand)(nil)

func NewBrand(username, email, hashedPass, companyName, industry string, budget float64) *Brand {
	return &Brand{
		User:        newUser(username, email, hashedPass),
		CompanyName: companyName,
		Industry:    industry,
		Budget:      budget,
	}
}

func (b *Brand) Scope() Scope { return BrandScope }

// CreateCampaign builds a campaign owned by this brand and tracks it as
// active. The budget is not deducted until payments complete.
func (b *Brand) CreateCampaign(name, description string, budget float64, startDate, endDate string) *common.Campaign {
	cmp := common.NewCampaign(name, b.Username, description, budget, startDate, endDate)
	b.ActiveCampaigns = append(b.ActiveCampaigns, cmp.Id)
	return cmp
}

// AddCampaign tracks an externally created campaign as active. Idempotent.
func (b *Brand) AddCampaign(campaignId string) {
	if common.IsInList(b.ActiveCampaigns, campaignId) {
		return
	}
	b.ActiveCampaigns = append(b.ActiveCampaigns, campaignId)
}

// CompleteCampaign moves a campaign to history and records the spend.
func (b *Brand) CompleteCampaign(campaignId string, amount float64) {
	b.ActiveCampaigns = common.StringsRemove(b.ActiveCampaigns, campaignId)
	if !common.IsInList(b.PastCampaigns, campaignId) {
		b.PastCampaigns = append(b.PastCampaigns, campaignId)
	}
	b.TotalSpent += amount
}

func (b *Brand) ProfileSummary() string {
	var sb strings.Builder
	sb.WriteString(b.identitySummary(BrandScope))
	fmt.Fprintf(&sb, "\nCompany: %s\nIndustry: %s", b.CompanyName, b.Industry)
	if b.Website != "" {
		fmt.Fprintf(&sb, "\nWebsite: %s", b.Website)
	}
	fmt.Fprintf(&sb, "\nBudget: $%.2f\nActive Campaigns: %d\nCompleted Campaigns: %d\nTotal Spent: $%.2f",
		b.Budget, len(b.ActiveCampaigns), len(b.PastCampaigns), b.TotalSpent)
	return sb.String()
}
