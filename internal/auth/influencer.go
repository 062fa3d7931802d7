package auth

import (
	"fmt"
	"strings"

	"github.com/trendlink/trendlink/internal/common"
)

// SocialProfile is one linked platform account.
type SocialProfile struct {
	Platform       string             `json:"platform"`
	Handle         string             `json:"handle"`
	Followers      int64              `json:"followers"`
	EngagementRate float64            `json:"engagementRate,omitempty"`
	Metrics        map[string]float64 `json:"metrics,omitempty"`
}

// Influencer is a content creator account. Campaign membership is stored as
// campaign ids only; the campaign side keeps the mirror list of usernames.
type Influencer struct {
	User

	Niche string  `json:"niche,omitempty"`
	Bio   string  `json:"bio,omitempty"`
	Rate  float64 `json:"rate,omitempty"` // per sponsored post

	// keyed by lowercased platform name
	Social map[string]*SocialProfile `json:"social,omitempty"`

	Categories      []string `json:"categories,omitempty"`
	ActiveCampaigns []string `json:"activeCampaigns,omitempty"`
	PastCampaigns   []string `json:"pastCampaigns,omitempty"`

	TotalCampaigns int     `json:"totalCampaigns,omitempty"`
	TotalEarnings  float64 `json:"totalEarnings,omitempty"`
}

var (
	_ common.Member      = (*Influencer)(nil)
	_ common.Beneficiary = (*Influencer)(nil)
)

func NewInfluencer(username, email, hashedPass, niche string, rate float64) *Influencer {
	return &Influencer{
		User:   newUser(username, email, hashedPass),
		Niche:  niche,
		Rate:   rate,
		Social: map[string]*SocialProfile{},
	}
}

func (inf *Influencer) Scope() Scope { return InfluencerScope }

// AddSocialMedia links a platform account. Re-adding an existing platform
// overwrites the previous link.
func (inf *Influencer) AddSocialMedia(platform, handle string, followers int64) {
	if inf.Social == nil {
		inf.Social = map[string]*SocialProfile{}
	}
	inf.Social[strings.ToLower(platform)] = &SocialProfile{
		Platform:  platform,
		Handle:    handle,
		Followers: followers,
	}
}

// UpdateSocialMedia adjusts the follower count of a linked platform and
// reports whether the platform was linked at all.
func (inf *Influencer) UpdateSocialMedia(platform string, followers int64) bool {
	sp, ok := inf.Social[strings.ToLower(platform)]
	if !ok {
		return false
	}
	sp.Followers = followers
	return true
}

func (inf *Influencer) RemoveSocialMedia(platform string) bool {
	key := strings.ToLower(platform)
	if _, ok := inf.Social[key]; !ok {
		return false
	}
	delete(inf.Social, key)
	return true
}

func (inf *Influencer) Handle(platform string) string {
	if sp, ok := inf.Social[strings.ToLower(platform)]; ok {
		return sp.Handle
	}
	return ""
}

func (inf *Influencer) FollowerCount(platform string) int64 {
	if sp, ok := inf.Social[strings.ToLower(platform)]; ok {
		return sp.Followers
	}
	return 0
}

// TotalFollowers sums followers across every linked platform.
func (inf *Influencer) TotalFollowers() (n int64) {
	for _, sp := range inf.Social {
		n += sp.Followers
	}
	return
}

// UpdateEngagementRate recomputes a platform's engagement rate from raw
// interaction counts, weighting comments double and shares triple.
func (inf *Influencer) UpdateEngagementRate(platform string, likes, comments, shares int64) bool {
	sp, ok := inf.Social[strings.ToLower(platform)]
	if !ok || sp.Followers <= 0 {
		return false
	}
	weighted := float64(likes + 2*comments + 3*shares)
	sp.EngagementRate = weighted / float64(sp.Followers) * 100
	if sp.Metrics == nil {
		sp.Metrics = map[string]float64{}
	}
	sp.Metrics["likes"] = float64(likes)
	sp.Metrics["comments"] = float64(comments)
	sp.Metrics["shares"] = float64(shares)
	return true
}

// AvgEngagementRate averages the engagement rate across linked platforms.
func (inf *Influencer) AvgEngagementRate() float64 {
	if len(inf.Social) == 0 {
		return 0
	}
	var sum float64
	for _, sp := range inf.Social {
		sum += sp.EngagementRate
	}
	return sum / float64(len(inf.Social))
}

// JoinCampaign records an accepted invitation. Idempotent.
func (inf *Influencer) JoinCampaign(campaignId string) {
	if common.IsInList(inf.ActiveCampaigns, campaignId) {
		return
	}
	inf.ActiveCampaigns = append(inf.ActiveCampaigns, campaignId)
}

// CompleteCampaign moves a campaign to history and credits the payout.
func (inf *Influencer) CompleteCampaign(campaignId string, amount float64) {
	inf.ActiveCampaigns = common.StringsRemove(inf.ActiveCampaigns, campaignId)
	if !common.IsInList(inf.PastCampaigns, campaignId) {
		inf.PastCampaigns = append(inf.PastCampaigns, campaignId)
	}
	inf.TotalCampaigns++
	inf.TotalEarnings += amount
}

func (inf *Influencer) ProfileSummary() string {
	var b strings.Builder
	b.WriteString(inf.identitySummary(InfluencerScope))
	fmt.Fprintf(&b, "\nNiche: %s\nRate: $%.2f per post\nTotal Followers: %d", inf.Niche, inf.Rate, inf.TotalFollowers())
	for _, sp := range inf.Social {
		fmt.Fprintf(&b, "\n  %s: @%s (%d followers, %.2f%% engagement)", sp.Platform, sp.Handle, sp.Followers, sp.EngagementRate)
	}
	fmt.Fprintf(&b, "\nActive Campaigns: %d\nCompleted Campaigns: %d\nTotal Earnings: $%.2f",
		len(inf.ActiveCampaigns), inf.TotalCampaigns, inf.TotalEarnings)
	return b.String()
}
