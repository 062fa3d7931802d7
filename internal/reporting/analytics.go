package reporting

import (
	"fmt"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
)

// Service computes read-only analytics over the user and campaign stores.
type Service struct {
	users     *auth.Users
	campaigns *common.Campaigns
}

func New(users *auth.Users, campaigns *common.Campaigns) *Service {
	return &Service{users: users, campaigns: campaigns}
}

type CampaignSummary struct {
	Id         string        `json:"id"`
	Name       string        `json:"name"`
	Status     common.Status `json:"status"`
	Budget     float64       `json:"budget"`
	Accepted   int           `json:"accepted"`
	Engagement int           `json:"engagement"`
	CPE        float64       `json:"cpe"`
}

func summarize(cmp *common.Campaign) CampaignSummary {
	return CampaignSummary{
		Id:         cmp.Id,
		Name:       cmp.Name,
		Status:     cmp.Status,
		Budget:     cmp.Budget,
		Accepted:   len(cmp.Accepted),
		Engagement: cmp.TotalEngagement(),
		CPE:        cmp.CostPerEngagement(),
	}
}

type InfluencerAnalytics struct {
	Username       string  `json:"username"`
	TotalFollowers int64   `json:"totalFollowers"`
	TotalCampaigns int     `json:"totalCampaigns"`
	TotalEarnings  float64 `json:"totalEarnings"`

	Active  []CampaignSummary `json:"active,omitempty"`
	History []CampaignSummary `json:"history,omitempty"`
}

func (s *Service) InfluencerAnalytics(username string) *InfluencerAnalytics {
	inf := s.users.GetInfluencer(username)
	if inf == nil {
		return nil
	}
	out := &InfluencerAnalytics{
		Username:       inf.Username,
		TotalFollowers: inf.TotalFollowers(),
		TotalCampaigns: inf.TotalCampaigns,
		TotalEarnings:  inf.TotalEarnings,
	}
	for _, id := range inf.ActiveCampaigns {
		if cmp, ok := s.campaigns.Get(id); ok {
			out.Active = append(out.Active, summarize(cmp))
		}
	}
	for _, id := range inf.PastCampaigns {
		if cmp, ok := s.campaigns.Get(id); ok {
			out.History = append(out.History, summarize(cmp))
		}
	}
	return out
}

type BrandAnalytics struct {
	Username        string  `json:"username"`
	CompanyName     string  `json:"companyName"`
	TotalBudget     float64 `json:"totalBudget"`
	RemainingBudget float64 `json:"remainingBudget"`
	TotalSpent      float64 `json:"totalSpent"`
	TotalCampaigns  int     `json:"totalCampaigns"`

	Active  []CampaignSummary `json:"active,omitempty"`
	History []CampaignSummary `json:"history,omitempty"`

	// ROI across every campaign the brand has run
	TotalInvestment float64 `json:"totalInvestment"`
	TotalEngagement int     `json:"totalEngagement"`
	AvgCPE          float64 `json:"avgCpe"`
}

func (s *Service) BrandAnalytics(username string) *BrandAnalytics {
	b := s.users.GetBrand(username)
	if b == nil {
		return nil
	}
	out := &BrandAnalytics{
		Username:       b.Username,
		CompanyName:    b.CompanyName,
		TotalBudget:    b.Budget,
		TotalSpent:     b.TotalSpent,
		TotalCampaigns: len(b.ActiveCampaigns) + len(b.PastCampaigns),
	}

	var committed float64
	for _, id := range b.ActiveCampaigns {
		if cmp, ok := s.campaigns.Get(id); ok {
			out.Active = append(out.Active, summarize(cmp))
			committed += cmp.Budget
		}
	}
	for _, id := range b.PastCampaigns {
		if cmp, ok := s.campaigns.Get(id); ok {
			out.History = append(out.History, summarize(cmp))
		}
	}
	out.RemainingBudget = b.Budget - committed

	for _, cmp := range s.campaigns.ForBrand(b.Username) {
		out.TotalInvestment += cmp.Budget
		out.TotalEngagement += cmp.TotalEngagement()
	}
	if out.TotalEngagement > 0 {
		out.AvgCPE = out.TotalInvestment / float64(out.TotalEngagement)
	}
	return out
}

type AdvertiserAnalytics struct {
	Username   string  `json:"username"`
	AgencyName string  `json:"agencyName"`
	Clients    int     `json:"clients"`
	Campaigns  int     `json:"campaigns"`
	Commission float64 `json:"commission"`
	Revenue    float64 `json:"revenue"`

	Brands  []string          `json:"brands,omitempty"`
	Managed []CampaignSummary `json:"managed,omitempty"`
}

func (s *Service) AdvertiserAnalytics(username string) *AdvertiserAnalytics {
	adv := s.users.GetAdvertiser(username)
	if adv == nil {
		return nil
	}
	out := &AdvertiserAnalytics{
		Username:   adv.Username,
		AgencyName: adv.AgencyName,
		Clients:    adv.TotalClients,
		Campaigns:  len(adv.Campaigns),
		Commission: adv.Commission,
		Brands:     adv.Brands,
	}
	out.Revenue = adv.Revenue(func(id string) float64 {
		if cmp, ok := s.campaigns.Get(id); ok {
			return cmp.Budget
		}
		return 0
	})
	for _, id := range adv.Campaigns {
		if cmp, ok := s.campaigns.Get(id); ok {
			out.Managed = append(out.Managed, summarize(cmp))
		}
	}
	return out
}

type PlatformStats struct {
	Users       int     `json:"users"`
	Influencers int     `json:"influencers"`
	Brands      int     `json:"brands"`
	Advertisers int     `json:"advertisers"`
	Campaigns   int     `json:"campaigns"`
	Value       float64 `json:"value"`
}

// PlatformStats gives the marketplace-wide headline numbers. The valuation
// is the demo heuristic: 20% of committed brand budgets plus a cent per
// influencer follower.
func (s *Service) PlatformStats() *PlatformStats {
	out := &PlatformStats{
		Users:     s.users.Count(),
		Campaigns: s.campaigns.Len(),
	}
	var budgets float64
	var followers int64
	for _, b := range s.users.AllBrands() {
		budgets += b.Budget
		out.Brands++
	}
	for _, inf := range s.users.AllInfluencers() {
		followers += inf.TotalFollowers()
		out.Influencers++
	}
	out.Advertisers = len(s.users.AllAdvertisers())
	out.Value = budgets*0.2 + float64(followers)*0.01
	return out
}

type GrowthMetrics struct {
	FollowerGrowth string `json:"follower_growth"`
	EngagementRate string `json:"engagement_rate"`
	EarningsTrend  string `json:"earnings_trend"`
}

// InfluencerGrowth returns trend estimates. Without historical snapshots
// these are fixed demo values.
func (s *Service) InfluencerGrowth(username string) *GrowthMetrics {
	if s.users.GetInfluencer(username) == nil {
		return nil
	}
	return &GrowthMetrics{
		FollowerGrowth: "10% per month",
		EngagementRate: "3.2%",
		EarningsTrend:  "Growing",
	}
}

// BrandRecommendations returns generic strategy suggestions for a brand.
func (s *Service) BrandRecommendations(username string) []string {
	b := s.users.GetBrand(username)
	if b == nil {
		return nil
	}
	industry := b.Industry
	if industry == "" {
		industry = "your industry"
	}
	return []string{
		"Consider increasing budget for higher engagement",
		fmt.Sprintf("Target influencers in %s", industry),
		"Focus on platforms with highest ROI for your industry",
	}
}
