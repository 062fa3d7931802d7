package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/trendlink/trendlink/misc"
)

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusScheduled Status = "Scheduled"
	StatusActive    Status = "Active"
	StatusPaused    Status = "Paused"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Influencer-level statuses within a campaign. These are distinct from the
// campaign's own Status.
const (
	MemberInvited    = "Invited"
	MemberAccepted   = "Accepted"
	MemberNotInvited = "Not Invited"
)

// Engagement is the per-influencer metric triple tracked by a campaign.
// Updates replace the whole triple, they never accumulate.
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

func (e Engagement) Total() int {
	return e.Likes + e.Comments + e.Shares
}

// Member is the influencer-side view the campaign workflow needs: a stable
// username key plus the active-list back-reference updated on accept.
type Member interface {
	Key() string
	JoinCampaign(campaignId string)
}

type Campaign struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"` // owning brand's username
	Description string  `json:"description,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	StartDate   string  `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate     string  `json:"endDate,omitempty"`

	Status Status `json:"status"`

	// Invited is the superset, Accepted the subset who joined. The per-username
	// maps below are purged together when an influencer is removed.
	Invited  []string `json:"invited,omitempty"`
	Accepted []string `json:"accepted,omitempty"`

	MemberStatus map[string]string     `json:"memberStatus,omitempty"`
	ContentURLs  map[string][]string   `json:"contentUrls,omitempty"`
	Engagement   map[string]Engagement `json:"engagement,omitempty"`

	CreatedAt int64 `json:"createdAt,omitempty"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

func NewCampaign(name, brand, description string, budget float64, startDate, endDate string) *Campaign {
	now := time.Now().UnixNano()
	return &Campaign{
		Id:           misc.PseudoUUID(),
		Name:         name,
		Brand:        brand,
		Description:  description,
		Budget:       budget,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       StatusDraft,
		MemberStatus: make(map[string]string),
		ContentURLs:  make(map[string][]string),
		Engagement:   make(map[string]Engagement),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (cmp *Campaign) touch() {
	cmp.UpdatedAt = time.Now().UnixNano()
}

// Lifecycle transitions. Invalid transitions are silent no-ops: callers that
// care must check Status afterwards. End and Cancel are unconditional, even
// from one terminal state to the other.

func (cmp *Campaign) Start() {
	if cmp.Status == StatusDraft || cmp.Status == StatusScheduled {
		cmp.Status = StatusActive
		cmp.touch()
	}
}

func (cmp *Campaign) Pause() {
	if cmp.Status == StatusActive {
		cmp.Status = StatusPaused
		cmp.touch()
	}
}

func (cmp *Campaign) Resume() {
	if cmp.Status == StatusPaused {
		cmp.Status = StatusActive
		cmp.touch()
	}
}

func (cmp *Campaign) End() {
	cmp.Status = StatusCompleted
	cmp.touch()
}

func (cmp *Campaign) Cancel() {
	cmp.Status = StatusCancelled
	cmp.touch()
}

func (cmp *Campaign) IsInvited(username string) bool {
	return IsInList(cmp.Invited, username)
}

func (cmp *Campaign) IsAccepted(username string) bool {
	return IsInList(cmp.Accepted, username)
}

// InviteInfluencer adds the influencer to the invited list. Inviting twice is
// a no-op and leaves a single entry.
func (cmp *Campaign) InviteInfluencer(username string) {
	if cmp.IsInvited(username) {
		return
	}
	cmp.Invited = append(cmp.Invited, username)
	cmp.memberStatus()[username] = MemberInvited
	cmp.touch()
}

// AcceptInfluencer confirms a previously invited influencer and back-propagates
// the campaign into their active list. Accepting without an invite is a no-op.
func (cmp *Campaign) AcceptInfluencer(inf Member) {
	username := inf.Key()
	if !cmp.IsInvited(username) || cmp.IsAccepted(username) {
		return
	}
	cmp.Accepted = append(cmp.Accepted, username)
	cmp.memberStatus()[username] = MemberAccepted
	inf.JoinCampaign(cmp.Id)
	cmp.touch()
}

// AddInfluencer is direct placement: invite and accept in one step, no prior
// invitation required.
func (cmp *Campaign) AddInfluencer(inf Member) {
	username := inf.Key()
	cmp.Invited = append(cmp.Invited, username)
	cmp.Accepted = append(cmp.Accepted, username)
	cmp.memberStatus()[username] = MemberAccepted
	inf.JoinCampaign(cmp.Id)
	cmp.touch()
}

// RemoveInfluencer purges the influencer from the invited and accepted lists
// and all three per-influencer maps in one operation. Reports whether they
// were present in the invited list.
func (cmp *Campaign) RemoveInfluencer(username string) bool {
	removed := cmp.IsInvited(username)
	cmp.Invited = StringsRemove(cmp.Invited, username)
	cmp.Accepted = StringsRemove(cmp.Accepted, username)
	delete(cmp.MemberStatus, username)
	delete(cmp.ContentURLs, username)
	delete(cmp.Engagement, username)

	if removed {
		cmp.touch()
	}
	return removed
}

func (cmp *Campaign) InfluencerStatus(username string) string {
	if st, ok := cmp.MemberStatus[username]; ok {
		return st
	}
	return MemberNotInvited
}

// UpdateInfluencerStatus only applies to influencers already invited.
func (cmp *Campaign) UpdateInfluencerStatus(username, status string) {
	if !cmp.IsInvited(username) {
		return
	}
	cmp.memberStatus()[username] = status
	cmp.touch()
}

// AddContentURL appends to the influencer's ordered content list. Only
// accepted influencers can post content.
func (cmp *Campaign) AddContentURL(username, url string) {
	if !cmp.IsAccepted(username) {
		return
	}
	if cmp.ContentURLs == nil {
		cmp.ContentURLs = make(map[string][]string)
	}
	cmp.ContentURLs[username] = append(cmp.ContentURLs[username], url)
	cmp.touch()
}

func (cmp *Campaign) ContentFor(username string) []string {
	return cmp.ContentURLs[username]
}

// UpdateEngagementMetrics replaces the influencer's metric triple. Only
// accepted influencers are tracked.
func (cmp *Campaign) UpdateEngagementMetrics(username string, likes, comments, shares int) {
	if !cmp.IsAccepted(username) {
		return
	}
	if cmp.Engagement == nil {
		cmp.Engagement = make(map[string]Engagement)
	}
	cmp.Engagement[username] = Engagement{Likes: likes, Comments: comments, Shares: shares}
	cmp.touch()
}

func (cmp *Campaign) EngagementFor(username string) Engagement {
	return cmp.Engagement[username]
}

func (cmp *Campaign) memberStatus() map[string]string {
	if cmp.MemberStatus == nil {
		cmp.MemberStatus = make(map[string]string)
	}
	return cmp.MemberStatus
}

func (cmp *Campaign) TotalEngagement() int {
	var total int
	for _, eng := range cmp.Engagement {
		total += eng.Total()
	}
	return total
}

func (cmp *Campaign) TotalPosts() int {
	var total int
	for _, urls := range cmp.ContentURLs {
		total += len(urls)
	}
	return total
}

// CostPerEngagement is budget over total engagement, 0 when there is no
// engagement yet.
func (cmp *Campaign) CostPerEngagement() float64 {
	total := cmp.TotalEngagement()
	if total > 0 {
		return cmp.Budget / float64(total)
	}
	return 0
}

type CampaignMetrics struct {
	TotalInfluencers  int     `json:"total_influencers"`
	TotalPosts        int     `json:"total_posts"`
	TotalEngagement   int     `json:"total_engagement"`
	CostPerEngagement float64 `json:"cost_per_engagement"`
	TotalLikes        int     `json:"total_likes"`
	TotalComments     int     `json:"total_comments"`
	TotalShares       int     `json:"total_shares"`
}

// Metrics is computed on demand from the tracking maps, nothing is cached.
func (cmp *Campaign) Metrics() *CampaignMetrics {
	m := &CampaignMetrics{
		TotalInfluencers:  len(cmp.Accepted),
		TotalPosts:        cmp.TotalPosts(),
		TotalEngagement:   cmp.TotalEngagement(),
		CostPerEngagement: cmp.CostPerEngagement(),
	}
	for _, eng := range cmp.Engagement {
		m.TotalLikes += eng.Likes
		m.TotalComments += eng.Comments
		m.TotalShares += eng.Shares
	}
	return m
}

// GenerateReport renders the campaign's sole audit artifact: overall metrics
// followed by a per-influencer breakdown in accept order.
func (cmp *Campaign) GenerateReport() string {
	var (
		b = &strings.Builder{}
		m = cmp.Metrics()
	)

	fmt.Fprintf(b, "Performance Report for Campaign: %s\n", cmp.Name)
	fmt.Fprintf(b, "Status: %s\n", cmp.Status)
	fmt.Fprintf(b, "Duration: %s to %s\n", cmp.StartDate, cmp.EndDate)
	fmt.Fprintf(b, "Budget: $%.2f\n\n", cmp.Budget)

	b.WriteString("Overall Metrics:\n")
	fmt.Fprintf(b, "- Total Influencers: %d\n", m.TotalInfluencers)
	fmt.Fprintf(b, "- Total Posts: %d\n", m.TotalPosts)
	fmt.Fprintf(b, "- Total Engagement: %d\n", m.TotalEngagement)
	fmt.Fprintf(b, "- Cost Per Engagement: $%.2f\n", m.CostPerEngagement)
	fmt.Fprintf(b, "- Total Likes: %d\n", m.TotalLikes)
	fmt.Fprintf(b, "- Total Comments: %d\n", m.TotalComments)
	fmt.Fprintf(b, "- Total Shares: %d\n\n", m.TotalShares)

	b.WriteString("Influencer Performance:\n")
	for _, username := range cmp.Accepted {
		eng := cmp.Engagement[username]
		fmt.Fprintf(b, "- %s:\n", username)
		fmt.Fprintf(b, "  * Posts: %d\n", len(cmp.ContentURLs[username]))
		fmt.Fprintf(b, "  * Likes: %d\n", eng.Likes)
		fmt.Fprintf(b, "  * Comments: %d\n", eng.Comments)
		fmt.Fprintf(b, "  * Shares: %d\n", eng.Shares)
		fmt.Fprintf(b, "  * Total Engagement: %d\n", eng.Total())
	}

	return b.String()
}
