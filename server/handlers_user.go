package server

import (
	"strconv"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/misc"
)

type signInReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func signIn(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		p, err := auth.SignIn(s.Users, req.Username, req.Password)
		if err != nil {
			c.JSON(401, misc.StatusErr(err.Error()))
			return
		}

		if err := s.db.Update(func(tx *bolt.Tx) error {
			if err := auth.SaveUser(tx, s.Cfg, p); err != nil {
				return err
			}
			return misc.PutTxJson(tx, s.Cfg.Bucket.Login, p.Key(), p.Base().LastLogin)
		}); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(p.Key()))
	}
}

type signUpReq struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Type     auth.Scope `json:"type"`

	// influencer
	Niche string  `json:"niche,omitempty"`
	Rate  float64 `json:"rate,omitempty"`

	// brand
	CompanyName string  `json:"companyName,omitempty"`
	Industry    string  `json:"industry,omitempty"`
	Budget      float64 `json:"budget,omitempty"`

	// advertiser
	AgencyName string `json:"agencyName,omitempty"`
}

func signUp(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		if s.Users.UsernameExists(req.Username) {
			c.JSON(400, misc.StatusErr(auth.ErrUserExists.Error()))
			return
		}
		if s.Users.EmailInUse(req.Email) {
			c.JSON(400, misc.StatusErr(auth.ErrEmailExists.Error()))
			return
		}
		if !auth.StrongPassword(req.Password) {
			c.JSON(400, misc.StatusErr(auth.ErrWeakPass.Error()))
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}

		var p auth.Profile
		switch req.Type {
		case auth.AdminScope:
			p = auth.NewAdmin(req.Username, req.Email, hash)
		case auth.AdvertiserScope:
			p = auth.NewAdvertiser(req.Username, req.Email, hash, req.AgencyName)
		case auth.BrandScope:
			p = auth.NewBrand(req.Username, req.Email, hash, req.CompanyName, req.Industry, req.Budget)
		case auth.InfluencerScope:
			p = auth.NewInfluencer(req.Username, req.Email, hash, req.Niche, req.Rate)
		default:
			c.JSON(400, misc.StatusErr(auth.ErrInvalidUserType.Error()))
			return
		}

		if err := s.Users.Add(p); err != nil {
			c.JSON(400, misc.StatusErr(err.Error()))
			return
		}
		if err := s.saveUsers(p); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}

		s.Notify.AddNotification(p.Key(), "Welcome to Trendlink!")
		c.JSON(200, misc.StatusOK(p.Key()))
	}
}

func getUser(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := s.Users.Get(c.Params.ByName("username"))
		if p == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		c.JSON(200, p)
	}
}

type updateUserReq struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func putUser(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Params.ByName("username")

		var req updateUserReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		var hash string
		if req.Password != "" {
			if !auth.StrongPassword(req.Password) {
				c.JSON(400, misc.StatusErr(auth.ErrWeakPass.Error()))
				return
			}
			var err error
			if hash, err = auth.HashPassword(req.Password); err != nil {
				c.JSON(500, misc.StatusErr(err.Error()))
				return
			}
		}

		if err := s.Users.Update(username, req.Email, hash); err != nil {
			c.JSON(404, misc.StatusErr(err.Error()))
			return
		}
		if err := s.saveUsers(s.Users.Get(username)); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(username))
	}
}

func delUser(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Params.ByName("username")
		if !s.Users.Delete(username) {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		if err := s.db.Update(func(tx *bolt.Tx) error {
			return auth.DeleteUser(tx, s.Cfg, username)
		}); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(username))
	}
}

func getAllUsers(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Users.All())
	}
}

func getAllInfluencers(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Users.AllInfluencers())
	}
}

func getAllBrands(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Users.AllBrands())
	}
}

func postManagedBrand(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		adv := s.Users.GetAdvertiser(c.Params.ByName("username"))
		if adv == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		brand := s.Users.GetBrand(c.Params.ByName("brand"))
		if brand == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}

		adv.AddBrand(brand.Username)
		if err := s.saveUsers(adv); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(adv.Username))
	}
}

func delManagedBrand(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		adv := s.Users.GetAdvertiser(c.Params.ByName("username"))
		if adv == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		if !adv.RemoveBrand(c.Params.ByName("brand")) {
			c.JSON(404, misc.StatusErr("brand not under management"))
			return
		}
		if err := s.saveUsers(adv); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(adv.Username))
	}
}

func getTopInfluencers(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Users.TopInfluencers(queryLimit(c)))
	}
}

func getTopBrands(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Users.TopBrands(queryLimit(c)))
	}
}

// queryLimit reads the "limit" query param, defaulting to 5.
func queryLimit(c *gin.Context) int {
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		return n
	}
	return 5
}

func searchInfluencers(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		minFollowers, _ := strconv.ParseInt(c.Query("minFollowers"), 10, 64)
		maxRate, _ := strconv.ParseFloat(c.Query("maxRate"), 64)
		c.JSON(200, s.Users.SearchInfluencers(c.Query("niche"), minFollowers, maxRate))
	}
}

type socialReq struct {
	Platform  string `json:"platform"`
	Handle    string `json:"handle,omitempty"`
	Followers int64  `json:"followers"`
}

func putSocialMedia(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		inf := s.Users.GetInfluencer(c.Params.ByName("username"))
		if inf == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}

		var req socialReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}
		if req.Platform == "" {
			c.JSON(400, misc.StatusErr("missing platform"))
			return
		}

		if req.Handle != "" {
			inf.AddSocialMedia(req.Platform, req.Handle, req.Followers)
		} else if !inf.UpdateSocialMedia(req.Platform, req.Followers) {
			c.JSON(404, misc.StatusErr("platform not linked"))
			return
		}

		if err := s.saveUsers(inf); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(inf.Username))
	}
}

func delSocialMedia(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		inf := s.Users.GetInfluencer(c.Params.ByName("username"))
		if inf == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		if !inf.RemoveSocialMedia(c.Params.ByName("platform")) {
			c.JSON(404, misc.StatusErr("platform not linked"))
			return
		}
		if err := s.saveUsers(inf); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(inf.Username))
	}
}

type engagementRateReq struct {
	Platform string `json:"platform"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
	Shares   int64  `json:"shares"`
}

func putEngagementRate(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		inf := s.Users.GetInfluencer(c.Params.ByName("username"))
		if inf == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}

		var req engagementRateReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}
		if !inf.UpdateEngagementRate(req.Platform, req.Likes, req.Comments, req.Shares) {
			c.JSON(404, misc.StatusErr("platform not linked or has no followers"))
			return
		}

		if err := s.saveUsers(inf); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(inf.Username))
	}
}
