package auth

import (
	"fmt"
	"strings"

	"github.com/trendlink/trendlink/internal/common"
)

const defaultCommission = 10.0 // percent

// Advertiser is an agency account managing brands on their behalf.
type Advertiser struct {
	User

	AgencyName    string `json:"agencyName"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Phone         string `json:"phone,omitempty"`

	// usernames of managed brands and ids of campaigns created through
	// this agency
	Brands    []string `json:"brands,omitempty"`
	Campaigns []string `json:"campaigns,omitempty"`

	TotalClients int     `json:"totalClients,omitempty"`
	Commission   float64 `json:"commission,omitempty"` // percent of campaign budgets
}

func NewAdvertiser(username, email, hashedPass, agencyName string) *Advertiser {
	return &Advertiser{
		User:       newUser(username, email, hashedPass),
		AgencyName: agencyName,
		Commission: defaultCommission,
	}
}

func (adv *Advertiser) Scope() Scope { return AdvertiserScope }

// AddBrand takes a brand under management. Idempotent.
func (adv *Advertiser) AddBrand(brandUsername string) {
	if common.IsInList(adv.Brands, brandUsername) {
		return
	}
	adv.Brands = append(adv.Brands, brandUsername)
	adv.TotalClients++
}

func (adv *Advertiser) RemoveBrand(brandUsername string) bool {
	if !common.IsInList(adv.Brands, brandUsername) {
		return false
	}
	adv.Brands = common.StringsRemove(adv.Brands, brandUsername)
	return true
}

func (adv *Advertiser) Manages(brandUsername string) bool {
	return common.IsInList(adv.Brands, brandUsername)
}

// CreateCampaignForBrand creates a campaign on a managed brand's behalf.
// Returns nil if the brand is not under management.
func (adv *Advertiser) CreateCampaignForBrand(b *Brand, name, description string, budget float64, startDate, endDate string) *common.Campaign {
	if b == nil || !adv.Manages(b.Username) {
		return nil
	}
	cmp := b.CreateCampaign(name, description, budget, startDate, endDate)
	adv.Campaigns = append(adv.Campaigns, cmp.Id)
	return cmp
}

// Revenue returns the agency commission over the budgets of every campaign
// created through it. budgetOf resolves a campaign id to its budget.
func (adv *Advertiser) Revenue(budgetOf func(campaignId string) float64) float64 {
	var total float64
	for _, id := range adv.Campaigns {
		total += budgetOf(id)
	}
	return total * adv.Commission / 100
}

func (adv *Advertiser) ProfileSummary() string {
	var b strings.Builder
	b.WriteString(adv.identitySummary(AdvertiserScope))
	fmt.Fprintf(&b, "\nAgency: %s", adv.AgencyName)
	if adv.ContactPerson != "" {
		fmt.Fprintf(&b, "\nContact: %s", adv.ContactPerson)
	}
	fmt.Fprintf(&b, "\nManaged Brands: %d\nCampaigns Created: %d\nCommission: %.1f%%",
		len(adv.Brands), len(adv.Campaigns), adv.Commission)
	return b.String()
}
