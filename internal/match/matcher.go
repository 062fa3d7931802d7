package match

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
)

const (
	scoreThreshold = 50
	maxResults     = 10
)

// UserDirectory is the slice of the user registry the matcher needs.
type UserDirectory interface {
	AllInfluencers() []*auth.Influencer
	InfluencersByNiche(niche string) []*auth.Influencer
	GetBrand(username string) *auth.Brand
}

// CampaignDirectory is the slice of the campaign store the matcher needs.
type CampaignDirectory interface {
	All() []*common.Campaign
	ForBrand(username string) []*common.Campaign
}

// Matcher ranks influencer-campaign compatibility with a weighted heuristic
// score plus bounded random jitter.
type Matcher struct {
	users     UserDirectory
	campaigns CampaignDirectory
	rng       *rand.Rand
}

func New(users UserDirectory, campaigns CampaignDirectory, rng *rand.Rand) *Matcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Matcher{users: users, campaigns: campaigns, rng: rng}
}

// Score computes the compatibility score for one influencer-campaign pair.
// The score is additive and uncalibrated, used only for ranking.
func (m *Matcher) Score(inf *auth.Influencer, cmp *common.Campaign) int {
	if m.users == nil || inf == nil || cmp == nil {
		return 0
	}
	brand := m.users.GetBrand(cmp.Brand)
	if brand == nil {
		return 0
	}

	var score int

	if brand.Industry != "" && inf.Niche != "" {
		if strings.EqualFold(brand.Industry, inf.Niche) {
			score += 100
		} else if RelatedNiche(brand.Industry, inf.Niche) {
			score += 50
		}
	}

	switch rate := inf.Rate; {
	case rate <= cmp.Budget*0.2:
		score += 50
	case rate <= cmp.Budget*0.4:
		score += 25
	}

	switch followers := inf.TotalFollowers(); {
	case followers > 1000000:
		score += 40
	case followers > 100000:
		score += 30
	case followers > 10000:
		score += 20
	default:
		score += 10
	}

	if m.hasPriorCollaboration(brand.Username, inf.Username) {
		score += 30
	}

	score += m.rng.Intn(20)
	return score
}

// hasPriorCollaboration reports whether the influencer completed any earlier
// campaign for the brand.
func (m *Matcher) hasPriorCollaboration(brandUsername, infUsername string) bool {
	if m.campaigns == nil {
		return false
	}
	for _, cmp := range m.campaigns.ForBrand(brandUsername) {
		if cmp.Status == common.StatusCompleted && cmp.IsAccepted(infUsername) {
			return true
		}
	}
	return false
}

type scoredInfluencer struct {
	inf   *auth.Influencer
	score int
}

type scoredCampaign struct {
	cmp   *common.Campaign
	score int
}

// RecommendedInfluencers ranks candidate influencers for a campaign:
// already-invited candidates are excluded, only scores at or above the
// threshold are kept, and the top ten are returned in descending order.
func (m *Matcher) RecommendedInfluencers(cmp *common.Campaign) []*auth.Influencer {
	if m.users == nil || cmp == nil {
		return nil
	}
	var ranked []scoredInfluencer
	for _, inf := range m.users.AllInfluencers() {
		if cmp.IsInvited(inf.Username) {
			continue
		}
		s := m.Score(inf, cmp)
		if s >= scoreThreshold {
			ranked = append(ranked, scoredInfluencer{inf, s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	out := make([]*auth.Influencer, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.inf)
		if len(out) == maxResults {
			break
		}
	}
	return out
}

// RecommendedCampaigns is the symmetric direction: open campaigns ranked for
// an influencer with the same scoring function.
func (m *Matcher) RecommendedCampaigns(inf *auth.Influencer) []*common.Campaign {
	if m.users == nil || m.campaigns == nil || inf == nil {
		return nil
	}
	var ranked []scoredCampaign
	for _, cmp := range m.campaigns.All() {
		if cmp.IsInvited(inf.Username) {
			continue
		}
		if cmp.Status.Terminal() {
			continue
		}
		if m.users.GetBrand(cmp.Brand) == nil {
			continue
		}
		s := m.Score(inf, cmp)
		if s >= scoreThreshold {
			ranked = append(ranked, scoredCampaign{cmp, s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	out := make([]*common.Campaign, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.cmp)
		if len(out) == maxResults {
			break
		}
	}
	return out
}
