package server

import (
	"fmt"
	"strconv"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
	"github.com/trendlink/trendlink/internal/templates"
	"github.com/trendlink/trendlink/misc"
)

type campaignReq struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Description string  `json:"description,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`

	// set when an advertiser creates the campaign on a managed brand's
	// behalf
	Advertiser string `json:"advertiser,omitempty"`
}

func postCampaign(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req campaignReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}
		if req.Name == "" || req.Brand == "" {
			c.JSON(400, misc.StatusErr("missing campaign name or brand"))
			return
		}

		brand := s.Users.GetBrand(req.Brand)
		if brand == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}

		var (
			cmp *common.Campaign
			adv *auth.Advertiser
		)
		if req.Advertiser != "" {
			if adv = s.Users.GetAdvertiser(req.Advertiser); adv == nil {
				c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
				return
			}
			cmp = adv.CreateCampaignForBrand(brand, req.Name, req.Description, req.Budget, req.StartDate, req.EndDate)
			if cmp == nil {
				c.JSON(403, misc.StatusErr(auth.ErrUnauthorized.Error()))
				return
			}
		} else {
			cmp = brand.CreateCampaign(req.Name, req.Description, req.Budget, req.StartDate, req.EndDate)
		}

		s.Campaigns.Add(cmp)
		profiles := []auth.Profile{brand}
		if adv != nil {
			profiles = append(profiles, adv)
		}
		if err := s.saveCampaign(cmp, profiles...); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(cmp.Id))
	}
}

func getCampaign(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		c.JSON(200, cmp)
	}
}

func delCampaign(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Params.ByName("id")
		if !s.Campaigns.Delete(id) {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		if err := s.db.Update(func(tx *bolt.Tx) error {
			return misc.DelBucketBytes(tx, s.Cfg.Bucket.Campaign, id)
		}); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(id))
	}
}

func getCampaignsByBrand(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Campaigns.ForBrand(c.Params.ByName("username")))
	}
}

func getCampaignsByInfluencer(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Campaigns.ForInfluencer(c.Params.ByName("username")))
	}
}

func getCampaignOffers(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Campaigns.OffersFor(c.Params.ByName("username")))
	}
}

func getCampaignsByStatus(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Campaigns.ByStatus(common.Status(c.Params.ByName("status"))))
	}
}

// searchCampaigns dispatches on whichever criterion the query carries:
// a name substring, a date range, or a budget range.
func searchCampaigns(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case c.Query("name") != "":
			c.JSON(200, s.Campaigns.ByName(c.Query("name")))
		case c.Query("startDate") != "" && c.Query("endDate") != "":
			c.JSON(200, s.Campaigns.InDateRange(c.Query("startDate"), c.Query("endDate")))
		case c.Query("maxBudget") != "":
			minBudget, _ := strconv.ParseFloat(c.Query("minBudget"), 64)
			maxBudget, _ := strconv.ParseFloat(c.Query("maxBudget"), 64)
			c.JSON(200, s.Campaigns.ByBudgetRange(minBudget, maxBudget))
		default:
			c.JSON(400, misc.StatusErr("missing search criteria"))
		}
	}
}

func getHighEngagementCampaigns(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold, _ := strconv.Atoi(c.Query("min"))
		c.JSON(200, s.Campaigns.HighEngagement(threshold))
	}
}

func getTopCampaigns(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Campaigns.TopPerforming(queryLimit(c)))
	}
}

// campaignTransition handles the five lifecycle verbs. Transitions that are
// invalid for the current state are silent no-ops, so the handler reports
// the resulting status instead of an error.
func campaignTransition(s *Server, verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}

		switch verb {
		case "start":
			cmp.Start()
		case "pause":
			cmp.Pause()
		case "resume":
			cmp.Resume()
		case "end":
			cmp.End()
		case "cancel":
			cmp.Cancel()
		}

		if err := s.saveCampaign(cmp); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}

		if verb == "end" || verb == "cancel" {
			s.Notify.AddBulk(cmp.Accepted, fmt.Sprintf("Campaign '%s' is now %s", cmp.Name, cmp.Status))
		}
		c.JSON(200, gin.H{"status": "success", "id": cmp.Id, "campaignStatus": cmp.Status})
	}
}

func inviteInfluencer(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		inf := s.Users.GetInfluencer(c.Params.ByName("username"))
		if inf == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}

		cmp.InviteInfluencer(inf.Username)
		if err := s.saveCampaign(cmp); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}

		s.Notify.AddNotification(inf.Username, fmt.Sprintf("You have been invited to campaign '%s'", cmp.Name))
		s.sendInviteEmail(inf, cmp)
		c.JSON(200, misc.StatusOK(cmp.Id))
	}
}

func (srv *Server) sendInviteEmail(inf *auth.Influencer, cmp *common.Campaign) {
	if srv.Cfg.Sandbox || inf.Email == "" {
		return
	}
	mail := srv.Cfg.MailClient()
	if mail == nil {
		return
	}
	company := cmp.Brand
	if b := srv.Users.GetBrand(cmp.Brand); b != nil && b.CompanyName != "" {
		company = b.CompanyName
	}
	email := templates.InviteEmail.Render(map[string]string{
		"Name":         inf.Username,
		"Company":      company,
		"CampaignName": cmp.Name,
		"Budget":       fmt.Sprintf("%.2f", cmp.Budget),
		"StartDate":    cmp.StartDate,
		"EndDate":      cmp.EndDate,
	})
	if _, err := mail.SendMessage(email, "You have a new campaign invitation", inf.Email, inf.Username,
		[]string{"invite"}); err != nil {
		// in-app notification already queued
		return
	}
}

func acceptInvite(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		inf := s.Users.GetInfluencer(c.Params.ByName("username"))
		if inf == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}

		cmp.AcceptInfluencer(inf)
		if err := s.saveCampaign(cmp, inf); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}

		s.Notify.AddNotification(cmp.Brand, fmt.Sprintf("%s accepted your invitation to '%s'", inf.Username, cmp.Name))
		c.JSON(200, gin.H{"status": "success", "id": cmp.Id, "influencerStatus": cmp.InfluencerStatus(inf.Username)})
	}
}

func addInfluencer(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		inf := s.Users.GetInfluencer(c.Params.ByName("username"))
		if inf == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}

		cmp.AddInfluencer(inf)
		if err := s.saveCampaign(cmp, inf); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(cmp.Id))
	}
}

func removeInfluencer(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		username := c.Params.ByName("username")
		if !cmp.RemoveInfluencer(username) {
			c.JSON(404, misc.StatusErr("influencer not part of campaign"))
			return
		}
		if err := s.saveCampaign(cmp); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		s.Notify.AddNotification(username, fmt.Sprintf("You have been removed from campaign '%s'", cmp.Name))
		c.JSON(200, misc.StatusOK(cmp.Id))
	}
}

type statusReq struct {
	Status string `json:"status"`
}

func updateInfluencerStatus(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}

		var req statusReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		username := c.Params.ByName("username")
		cmp.UpdateInfluencerStatus(username, req.Status)
		if err := s.saveCampaign(cmp); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, gin.H{"status": "success", "id": cmp.Id, "influencerStatus": cmp.InfluencerStatus(username)})
	}
}

type contentReq struct {
	URL string `json:"url"`
}

func addContentURL(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}

		var req contentReq
		if err := misc.BindJSON(c, &req); err != nil || req.URL == "" {
			c.JSON(400, misc.StatusErr("missing content url"))
			return
		}

		cmp.AddContentURL(c.Params.ByName("username"), req.URL)
		if err := s.saveCampaign(cmp); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(cmp.Id))
	}
}

type engagementReq struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

func updateEngagement(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}

		var req engagementReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		cmp.UpdateEngagementMetrics(c.Params.ByName("username"), req.Likes, req.Comments, req.Shares)
		if err := s.saveCampaign(cmp); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(cmp.Id))
	}
}

func getCampaignMetrics(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		c.JSON(200, cmp.Metrics())
	}
}

func getCampaignReport(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		c.String(200, cmp.GenerateReport())
	}
}
