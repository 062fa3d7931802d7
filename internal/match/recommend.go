package match

import (
	"strings"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
)

const defaultAvgRate = 500.0

// RecommendBudget estimates a campaign budget from the average rate of
// influencers in the brand's industry, scaled by target head count, a
// campaign-type multiplier and a 20% expense buffer.
func (m *Matcher) RecommendBudget(brand *auth.Brand, campaignType string, targetInfluencers int) float64 {
	if m.users == nil || brand == nil {
		return 0
	}

	pool := m.users.InfluencersByNiche(brand.Industry)
	if len(pool) == 0 {
		pool = m.users.AllInfluencers()
	}

	avgRate := defaultAvgRate
	if len(pool) > 0 {
		var sum float64
		for _, inf := range pool {
			sum += inf.Rate
		}
		avgRate = sum / float64(len(pool))
	}

	multiplier := 1.0
	switch strings.ToLower(campaignType) {
	case "product launch":
		multiplier = 2.0
	case "awareness":
		multiplier = 1.5
	case "engagement":
		multiplier = 1.2
	}

	return avgRate * float64(targetInfluencers) * multiplier * 1.2
}

// RecommendPlatforms applies fixed keyword rules over the brand's industry
// and the audience description, returning an ordered list without
// duplicates.
func (m *Matcher) RecommendPlatforms(brand *auth.Brand, targetAudience string) []string {
	var industry string
	if brand != nil {
		industry = strings.ToLower(brand.Industry)
	}
	audience := strings.ToLower(targetAudience)

	out := []string{"Instagram"}
	add := func(platforms ...string) {
		for _, p := range platforms {
			if !common.IsInList(out, p) {
				out = append(out, p)
			}
		}
	}

	if containsAny(industry, "fashion", "beauty", "lifestyle", "food") {
		add("TikTok", "Pinterest")
	}
	if containsAny(industry, "tech", "gaming", "software", "business") {
		add("Twitter", "LinkedIn", "YouTube")
	}
	if containsAny(industry, "entertainment", "music") {
		add("TikTok", "YouTube", "Twitch")
	}

	if containsAny(audience, "young", "teen", "gen z") {
		add("TikTok", "Snapchat")
		out = common.StringsRemove(out, "LinkedIn")
	}
	if containsAny(audience, "professional", "business", "corporate") {
		add("LinkedIn", "Twitter")
		out = common.StringsRemove(out, "Snapchat")
	}

	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
