package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/misc"
)

func getRecommendedInfluencers(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmp, ok := s.Campaigns.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		c.JSON(200, s.Matcher.RecommendedInfluencers(cmp))
	}
}

func getRecommendedCampaigns(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		inf := s.Users.GetInfluencer(c.Params.ByName("username"))
		if inf == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		c.JSON(200, s.Matcher.RecommendedCampaigns(inf))
	}
}

func recommendBudget(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		brand := s.Users.GetBrand(c.Params.ByName("username"))
		if brand == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		target, _ := strconv.Atoi(c.Query("targetInfluencers"))
		if target <= 0 {
			target = 1
		}
		budget := s.Matcher.RecommendBudget(brand, c.Query("campaignType"), target)
		c.JSON(200, gin.H{"status": "success", "budget": budget})
	}
}

func recommendPlatforms(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		brand := s.Users.GetBrand(c.Params.ByName("username"))
		if brand == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		c.JSON(200, s.Matcher.RecommendPlatforms(brand, c.Query("audience")))
	}
}
