package match

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
)

func testMatcher(t *testing.T) (*Matcher, *auth.Users, *common.Campaigns) {
	t.Helper()
	users := auth.NewUsers()
	campaigns := common.NewCampaigns()
	return New(users, campaigns, rand.New(rand.NewSource(1))), users, campaigns
}

func addInfluencer(t *testing.T, users *auth.Users, username, niche string, rate float64, followers int64) *auth.Influencer {
	t.Helper()
	inf := auth.NewInfluencer(username, username+"@test.io", "", niche, rate)
	inf.AddSocialMedia("Instagram", username, followers)
	require.NoError(t, users.Add(inf))
	return inf
}

func addBrand(t *testing.T, users *auth.Users, username, industry string, budget float64) *auth.Brand {
	t.Helper()
	b := auth.NewBrand(username, username+"@test.io", "", username+" Inc", industry, budget)
	require.NoError(t, users.Add(b))
	return b
}

func TestScoreBounds(t *testing.T) {
	m, users, campaigns := testMatcher(t)
	addBrand(t, users, "techco", "Technology", 0)
	inf := addInfluencer(t, users, "gadgetgirl", "Technology", 1500, 250000)

	cmp := common.NewCampaign("Gadget Push", "techco", "", 10000, "", "")
	campaigns.Add(cmp)

	// exact niche 100 + rate within 20% of budget 50 + 100K tier 30 = 180,
	// jitter adds [0,20)
	for i := 0; i < 50; i++ {
		s := m.Score(inf, cmp)
		assert.GreaterOrEqual(t, s, 180)
		assert.Less(t, s, 200)
	}
}

func TestScoreBaseline(t *testing.T) {
	m, users, campaigns := testMatcher(t)
	addBrand(t, users, "chic", "Fashion", 0)
	inf := addInfluencer(t, users, "jane", "Fashion", 500, 50000)

	cmp := common.NewCampaign("Summer Drop", "chic", "", 5000, "", "")
	campaigns.Add(cmp)

	// 100 niche + 50 budget (10% of budget) + 20 follower tier = 170
	s := m.Score(inf, cmp)
	assert.GreaterOrEqual(t, s, 170)
	assert.Less(t, s, 190)

	got := m.RecommendedInfluencers(cmp)
	require.Len(t, got, 1)
	assert.Equal(t, "jane", got[0].Username)
}

func TestScorePriorCollaboration(t *testing.T) {
	m, users, campaigns := testMatcher(t)
	addBrand(t, users, "chic", "Gardening", 0) // no niche affinity
	inf := addInfluencer(t, users, "jane", "Fashion", 50000, 500)

	past := common.NewCampaign("Old Collab", "chic", "", 100, "", "")
	past.InviteInfluencer("jane")
	past.AcceptInfluencer(inf)
	past.End()
	campaigns.Add(past)

	cmp := common.NewCampaign("New Push", "chic", "", 100, "", "")
	campaigns.Add(cmp)

	// only the bottom follower tier 10 + collaboration 30 + jitter
	for i := 0; i < 20; i++ {
		s := m.Score(inf, cmp)
		assert.GreaterOrEqual(t, s, 40)
		assert.Less(t, s, 60)
	}
}

func TestRecommendedInfluencersFiltering(t *testing.T) {
	m, users, campaigns := testMatcher(t)
	addBrand(t, users, "chic", "Fashion", 0)

	cmp := common.NewCampaign("Summer Drop", "chic", "", 5000, "", "")
	campaigns.Add(cmp)

	// 12 strong candidates, one of them already invited
	for i := 0; i < 12; i++ {
		addInfluencer(t, users, fmt.Sprintf("inf%02d", i), "Fashion", 500, 50000)
	}
	cmp.InviteInfluencer("inf00")

	// and one hopeless candidate under the threshold
	addInfluencer(t, users, "offniche", "Gardening", 4500, 100)

	got := m.RecommendedInfluencers(cmp)
	require.Len(t, got, 10, "results must cap at ten")
	for _, inf := range got {
		assert.NotEqual(t, "inf00", inf.Username, "invited influencers are excluded")
		assert.NotEqual(t, "offniche", inf.Username, "sub-threshold influencers are excluded")
	}
}

func TestRecommendedCampaignsSkipsClosed(t *testing.T) {
	m, users, campaigns := testMatcher(t)
	addBrand(t, users, "chic", "Fashion", 0)
	inf := addInfluencer(t, users, "jane", "Fashion", 500, 50000)

	open := common.NewCampaign("Open", "chic", "", 5000, "", "")
	done := common.NewCampaign("Done", "chic", "", 5000, "", "")
	done.End()
	cancelled := common.NewCampaign("Cancelled", "chic", "", 5000, "", "")
	cancelled.Cancel()
	invited := common.NewCampaign("Invited", "chic", "", 5000, "", "")
	invited.InviteInfluencer("jane")
	orphan := common.NewCampaign("Orphan", "nobody", "", 5000, "", "")
	for _, cmp := range []*common.Campaign{open, done, cancelled, invited, orphan} {
		campaigns.Add(cmp)
	}

	got := m.RecommendedCampaigns(inf)
	require.Len(t, got, 1)
	assert.Equal(t, "Open", got[0].Name)
}

func TestMatcherWithoutDirectories(t *testing.T) {
	campaigns := common.NewCampaigns()
	cmp := common.NewCampaign("Open", "chic", "", 5000, "", "")
	campaigns.Add(cmp)
	inf := auth.NewInfluencer("jane", "jane@test.io", "", "Fashion", 500)

	m := New(nil, campaigns, rand.New(rand.NewSource(1)))
	assert.Zero(t, m.Score(inf, cmp))
	assert.Empty(t, m.RecommendedInfluencers(cmp))
	assert.Empty(t, m.RecommendedCampaigns(inf))

	m = New(auth.NewUsers(), nil, rand.New(rand.NewSource(1)))
	assert.Empty(t, m.RecommendedCampaigns(inf))
}

func TestRelatedNiche(t *testing.T) {
	tests := []struct {
		a, b    string
		related bool
	}{
		{"Fashion", "Beauty", true},
		{"Beauty", "Fashion", true},
		{"Technology", "Gaming", true},
		{"Food", "Restaurant", true},
		{"Fitness", "Wellness", true},
		{"Travel", "Tourism", true},
		{"High Fashion", "Beauty Products", true},
		{"Fitness", "Nutrition Coaching", true},
		// both in the same family's value list
		{"Lifestyle Blogging", "Lifestyle Vlogs", true},
		{"Fashion", "Gaming", false},
		{"Gardening", "Fishing", false},
		{"", "", false},
	}
	for _, ts := range tests {
		assert.Equal(t, ts.related, RelatedNiche(ts.a, ts.b), "%q vs %q", ts.a, ts.b)
	}
}

func TestRecommendBudget(t *testing.T) {
	m, users, _ := testMatcher(t)
	brand := addBrand(t, users, "chic", "Fashion", 0)
	addInfluencer(t, users, "jane", "Fashion", 400, 1000)
	addInfluencer(t, users, "mike", "Fashion", 600, 1000)
	addInfluencer(t, users, "techguy", "Technology", 9000, 1000) // different niche, ignored

	// avg 500 * 3 influencers * 2.0 launch multiplier * 1.2 buffer
	assert.InDelta(t, 3600, m.RecommendBudget(brand, "Product Launch", 3), 0.001)
	// default multiplier
	assert.InDelta(t, 1800, m.RecommendBudget(brand, "giveaway", 3), 0.001)
}

func TestRecommendBudgetFallsBackToAllInfluencers(t *testing.T) {
	m, users, _ := testMatcher(t)
	brand := addBrand(t, users, "chic", "Fashion", 0)
	addInfluencer(t, users, "techguy", "Technology", 1000, 1000)

	// no fashion influencers, so the overall average applies
	assert.InDelta(t, 1200, m.RecommendBudget(brand, "", 1), 0.001)
}

func TestRecommendPlatforms(t *testing.T) {
	m, users, _ := testMatcher(t)
	tech := addBrand(t, users, "techco", "Technology", 0)
	chic := addBrand(t, users, "chic", "Fashion", 0)

	got := m.RecommendPlatforms(tech, "young gen z gamers")
	assert.Equal(t, []string{"Instagram", "Twitter", "YouTube", "TikTok", "Snapchat"}, got,
		"LinkedIn must be dropped for young audiences, order preserved")

	got = m.RecommendPlatforms(chic, "corporate professionals")
	assert.Equal(t, []string{"Instagram", "TikTok", "Pinterest", "LinkedIn", "Twitter"}, got)

	got = m.RecommendPlatforms(nil, "")
	assert.Equal(t, []string{"Instagram"}, got)
}
