package server

import (
	"github.com/gin-gonic/gin"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/misc"
)

func getInfluencerAnalytics(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := s.Analytics.InfluencerAnalytics(c.Params.ByName("username"))
		if a == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		c.JSON(200, a)
	}
}

func getBrandAnalytics(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := s.Analytics.BrandAnalytics(c.Params.ByName("username"))
		if a == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		c.JSON(200, a)
	}
}

func getAdvertiserAnalytics(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := s.Analytics.AdvertiserAnalytics(c.Params.ByName("username"))
		if a == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		c.JSON(200, a)
	}
}

func getPlatformStats(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Analytics.PlatformStats())
	}
}

func getInfluencerGrowth(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		g := s.Analytics.InfluencerGrowth(c.Params.ByName("username"))
		if g == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		c.JSON(200, g)
	}
}

func getBrandRecommendations(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs := s.Analytics.BrandRecommendations(c.Params.ByName("username"))
		if recs == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		c.JSON(200, recs)
	}
}

func getNotifications(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Notify.NotificationsFor(c.Params.ByName("username")))
	}
}

func clearNotifications(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Params.ByName("username")
		s.Notify.ClearFor(username)
		c.JSON(200, misc.StatusOK(username))
	}
}
