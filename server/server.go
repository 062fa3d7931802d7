package server

import (
	"log"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"

	"github.com/trendlink/trendlink/config"
	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
	"github.com/trendlink/trendlink/internal/match"
	"github.com/trendlink/trendlink/internal/notify"
	"github.com/trendlink/trendlink/internal/reporting"
	"github.com/trendlink/trendlink/misc"
)

// Server is the application context: every store and service hangs off it
// and is passed down explicitly, never via package globals.
type Server struct {
	Cfg *config.Config
	db  *bolt.DB
	r   *gin.Engine

	Users     *auth.Users
	Campaigns *common.Campaigns
	Contracts *common.Contracts
	Payments  *common.Payments

	Matcher   *match.Matcher
	Notify    *notify.Service
	Analytics *reporting.Service
}

func New(cfg *config.Config, r *gin.Engine) (*Server, error) {
	db := misc.OpenDB(cfg.DBPath, cfg.DBName)
	if err := misc.InitBuckets(db, cfg.AllBuckets()); err != nil {
		return nil, err
	}

	srv := &Server{
		Cfg:       cfg,
		db:        db,
		r:         r,
		Campaigns: common.NewCampaigns(),
		Contracts: common.NewContracts(),
		Payments:  common.NewPayments(),
	}

	if err := srv.initializeStores(); err != nil {
		return nil, err
	}

	srv.Matcher = match.New(srv.Users, srv.Campaigns, nil)
	srv.Analytics = reporting.New(srv.Users, srv.Campaigns)
	srv.Notify = notify.New(cfg, func(username string) (string, string) {
		if p := srv.Users.Get(username); p != nil {
			return p.Base().Email, username
		}
		return "", ""
	})
	go srv.Notify.Run()

	srv.initializeRoutes(r)
	return srv, nil
}

func (srv *Server) initializeStores() error {
	users, err := auth.LoadUsers(srv.db, srv.Cfg)
	if err != nil {
		return err
	}
	srv.Users = users

	if err := srv.Campaigns.SetAll(common.LoadCampaigns(srv.db, srv.Cfg)); err != nil {
		return err
	}
	if err := srv.Contracts.SetAll(common.LoadContracts(srv.db, srv.Cfg)); err != nil {
		return err
	}
	return srv.Payments.SetAll(common.LoadPayments(srv.db, srv.Cfg))
}

func (srv *Server) initializeRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/signIn", signIn(srv))
	api.POST("/signUp", signUp(srv))

	api.GET("/user/:username", getUser(srv))
	api.PUT("/user/:username", putUser(srv))
	api.DELETE("/user/:username", delUser(srv))
	api.GET("/getAllUsers", getAllUsers(srv))
	api.GET("/getAllInfluencers", getAllInfluencers(srv))
	api.GET("/getAllBrands", getAllBrands(srv))
	api.GET("/getTopInfluencers", getTopInfluencers(srv))
	api.GET("/getTopBrands", getTopBrands(srv))
	api.GET("/searchInfluencers", searchInfluencers(srv))

	api.POST("/advertiser/:username/brand/:brand", postManagedBrand(srv))
	api.DELETE("/advertiser/:username/brand/:brand", delManagedBrand(srv))

	api.POST("/influencer/:username/social", putSocialMedia(srv))
	api.DELETE("/influencer/:username/social/:platform", delSocialMedia(srv))
	api.POST("/influencer/:username/engagement", putEngagementRate(srv))

	api.POST("/campaign", postCampaign(srv))
	api.GET("/campaign/:id", getCampaign(srv))
	api.DELETE("/campaign/:id", delCampaign(srv))
	api.GET("/getCampaignsByBrand/:username", getCampaignsByBrand(srv))
	api.GET("/getCampaignsByInfluencer/:username", getCampaignsByInfluencer(srv))
	api.GET("/getCampaignOffers/:username", getCampaignOffers(srv))
	api.GET("/getCampaignsByStatus/:status", getCampaignsByStatus(srv))
	api.GET("/searchCampaigns", searchCampaigns(srv))
	api.GET("/getHighEngagementCampaigns", getHighEngagementCampaigns(srv))
	api.GET("/getTopCampaigns", getTopCampaigns(srv))

	api.POST("/campaign/:id/start", campaignTransition(srv, "start"))
	api.POST("/campaign/:id/pause", campaignTransition(srv, "pause"))
	api.POST("/campaign/:id/resume", campaignTransition(srv, "resume"))
	api.POST("/campaign/:id/end", campaignTransition(srv, "end"))
	api.POST("/campaign/:id/cancel", campaignTransition(srv, "cancel"))

	api.POST("/campaign/:id/invite/:username", inviteInfluencer(srv))
	api.POST("/campaign/:id/accept/:username", acceptInvite(srv))
	api.POST("/campaign/:id/add/:username", addInfluencer(srv))
	api.DELETE("/campaign/:id/influencer/:username", removeInfluencer(srv))
	api.PUT("/campaign/:id/status/:username", updateInfluencerStatus(srv))
	api.POST("/campaign/:id/content/:username", addContentURL(srv))
	api.POST("/campaign/:id/metrics/:username", updateEngagement(srv))

	api.GET("/campaign/:id/metrics", getCampaignMetrics(srv))
	api.GET("/campaign/:id/report", getCampaignReport(srv))

	api.GET("/getRecommendedInfluencers/:id", getRecommendedInfluencers(srv))
	api.GET("/getRecommendedCampaigns/:username", getRecommendedCampaigns(srv))
	api.GET("/recommendBudget/:username", recommendBudget(srv))
	api.GET("/recommendPlatforms/:username", recommendPlatforms(srv))

	api.POST("/contract", postContract(srv))
	api.GET("/contract/:id", getContract(srv))
	api.POST("/contract/:id/sign", signContract(srv))
	api.POST("/contract/:id/complete", completeContract(srv))
	api.POST("/contract/:id/terminate", terminateContract(srv))
	api.GET("/contract/:id/document", getContractDocument(srv))
	api.GET("/getContractsByInfluencer/:username", getContractsByInfluencer(srv))
	api.GET("/getContractsByCampaign/:id", getContractsByCampaign(srv))

	api.POST("/payment", postPayment(srv))
	api.GET("/payment/:id", getPayment(srv))
	api.POST("/payment/:id/process", processPayment(srv))
	api.POST("/payment/:id/cancel", cancelPayment(srv))
	api.GET("/payment/:id/receipt", getReceipt(srv))
	api.GET("/getPaymentsByContract/:id", getPaymentsByContract(srv))

	api.GET("/analytics/influencer/:username", getInfluencerAnalytics(srv))
	api.GET("/analytics/brand/:username", getBrandAnalytics(srv))
	api.GET("/analytics/advertiser/:username", getAdvertiserAnalytics(srv))
	api.GET("/analytics/platform", getPlatformStats(srv))
	api.GET("/analytics/influencer/:username/growth", getInfluencerGrowth(srv))
	api.GET("/analytics/brand/:username/recommendations", getBrandRecommendations(srv))

	api.GET("/notifications/:username", getNotifications(srv))
	api.DELETE("/notifications/:username", clearNotifications(srv))
}

func (srv *Server) Run() error {
	return srv.r.Run(srv.Cfg.Host + ":" + srv.Cfg.Port)
}

func (srv *Server) Close() error {
	srv.Notify.Stop()
	if err := srv.db.Close(); err != nil {
		log.Println("Err closing db", err)
		return err
	}
	return nil
}
