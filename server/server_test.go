package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlink/trendlink/config"
	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Sandbox:        true,
		DBPath:         t.TempDir() + "/",
		DBName:         "test",
		NotifyInterval: 1,
	}
	cfg.Bucket.User = "user"
	cfg.Bucket.Login = "login"
	cfg.Bucket.Campaign = "campaign"
	cfg.Bucket.Contract = "contract"
	cfg.Bucket.Payment = "payment"

	srv, err := New(cfg, gin.New())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func doReq(t *testing.T, srv *Server, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	srv.r.ServeHTTP(w, req)

	var out map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func signUpUser(t *testing.T, srv *Server, body map[string]interface{}) {
	t.Helper()
	w, _ := doReq(t, srv, "POST", "/api/v1/signUp", body)
	require.Equal(t, 200, w.Code, w.Body.String())
}

func TestSignUpAndSignIn(t *testing.T) {
	srv := testServer(t)

	signUpUser(t, srv, map[string]interface{}{
		"username": "jane", "email": "jane@test.io", "password": "Sup3r-Secret",
		"type": "influencer", "niche": "Fashion", "rate": 500,
	})

	// duplicate username rejected
	w, _ := doReq(t, srv, "POST", "/api/v1/signUp", map[string]interface{}{
		"username": "jane", "email": "other@test.io", "password": "Sup3r-Secret", "type": "influencer",
	})
	assert.Equal(t, 400, w.Code)

	// short password rejected
	w, _ = doReq(t, srv, "POST", "/api/v1/signUp", map[string]interface{}{
		"username": "mike", "email": "mike@test.io", "password": "short", "type": "influencer",
	})
	assert.Equal(t, 400, w.Code)

	w, out := doReq(t, srv, "POST", "/api/v1/signIn", map[string]interface{}{
		"username": "jane", "password": "Sup3r-Secret",
	})
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "jane", out["id"])

	w, _ = doReq(t, srv, "POST", "/api/v1/signIn", map[string]interface{}{
		"username": "jane", "password": "wrong",
	})
	assert.Equal(t, 401, w.Code)
}

func TestCampaignFlow(t *testing.T) {
	srv := testServer(t)

	signUpUser(t, srv, map[string]interface{}{
		"username": "acme", "email": "acme@test.io", "password": "Sup3r-Secret",
		"type": "brand", "companyName": "Acme Inc", "industry": "Fashion", "budget": 20000,
	})
	signUpUser(t, srv, map[string]interface{}{
		"username": "jane", "email": "jane@test.io", "password": "Sup3r-Secret",
		"type": "influencer", "niche": "Fashion", "rate": 500,
	})

	w, out := doReq(t, srv, "POST", "/api/v1/campaign", map[string]interface{}{
		"name": "Summer Launch", "brand": "acme", "budget": 5000,
		"startDate": "2026-06-01", "endDate": "2026-08-31",
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	cmpId := out["id"].(string)
	require.NotEmpty(t, cmpId)

	w, out = doReq(t, srv, "POST", "/api/v1/campaign/"+cmpId+"/start", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Active", out["campaignStatus"])

	w, _ = doReq(t, srv, "POST", "/api/v1/campaign/"+cmpId+"/invite/jane", nil)
	require.Equal(t, 200, w.Code)

	w, out = doReq(t, srv, "POST", "/api/v1/campaign/"+cmpId+"/accept/jane", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Accepted", out["influencerStatus"])

	w, _ = doReq(t, srv, "POST", "/api/v1/campaign/"+cmpId+"/content/jane", map[string]interface{}{
		"url": "https://insta.test/p/1",
	})
	require.Equal(t, 200, w.Code)

	w, _ = doReq(t, srv, "POST", "/api/v1/campaign/"+cmpId+"/metrics/jane", map[string]interface{}{
		"likes": 100, "comments": 20, "shares": 5,
	})
	require.Equal(t, 200, w.Code)

	w, out = doReq(t, srv, "GET", "/api/v1/campaign/"+cmpId+"/metrics", nil)
	require.Equal(t, 200, w.Code)
	assert.EqualValues(t, 1, out["total_influencers"])
	assert.EqualValues(t, 1, out["total_posts"])
	assert.EqualValues(t, 125, out["total_engagement"])

	w, _ = doReq(t, srv, "GET", "/api/v1/campaign/"+cmpId+"/report", nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Performance Report for Campaign: Summer Launch")

	// membership survives a store reload from bolt
	reloaded := common.LoadCampaigns(srv.db, srv.Cfg)
	require.Len(t, reloaded, 1)
	assert.True(t, reloaded[0].IsAccepted("jane"))
}

func TestContractAndPaymentFlow(t *testing.T) {
	srv := testServer(t)

	signUpUser(t, srv, map[string]interface{}{
		"username": "acme", "email": "acme@test.io", "password": "Sup3r-Secret",
		"type": "brand", "companyName": "Acme Inc", "industry": "Fashion", "budget": 20000,
	})
	signUpUser(t, srv, map[string]interface{}{
		"username": "jane", "email": "jane@test.io", "password": "Sup3r-Secret",
		"type": "influencer", "niche": "Fashion", "rate": 500,
	})

	_, out := doReq(t, srv, "POST", "/api/v1/campaign", map[string]interface{}{
		"name": "Summer Launch", "brand": "acme", "budget": 5000,
	})
	cmpId := out["id"].(string)

	// contract creation requires acceptance
	w, _ := doReq(t, srv, "POST", "/api/v1/contract", map[string]interface{}{
		"campaignId": cmpId, "influencer": "jane",
	})
	assert.Equal(t, 400, w.Code)

	doReq(t, srv, "POST", "/api/v1/campaign/"+cmpId+"/invite/jane", nil)
	doReq(t, srv, "POST", "/api/v1/campaign/"+cmpId+"/accept/jane", nil)

	w, out = doReq(t, srv, "POST", "/api/v1/contract", map[string]interface{}{
		"campaignId": cmpId, "influencer": "jane",
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	ctId := out["id"].(string)

	// the amount defaults to the influencer's rate
	ct, ok := srv.Contracts.Get(ctId)
	require.True(t, ok)
	assert.Equal(t, 500.0, ct.Amount)

	// payments are gated on signing
	w, _ = doReq(t, srv, "POST", "/api/v1/payment", map[string]interface{}{"contractId": ctId})
	assert.Equal(t, 400, w.Code)

	w, _ = doReq(t, srv, "POST", "/api/v1/contract/"+ctId+"/sign", nil)
	require.Equal(t, 200, w.Code)
	w, _ = doReq(t, srv, "POST", "/api/v1/contract/"+ctId+"/sign", nil)
	assert.Equal(t, 400, w.Code, "re-sign must fail")

	w, _ = doReq(t, srv, "GET", "/api/v1/contract/"+ctId+"/document", nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "CONTRACT AGREEMENT")
	assert.Contains(t, w.Body.String(), "Brand: Acme Inc")

	w, out = doReq(t, srv, "POST", "/api/v1/payment", map[string]interface{}{"contractId": ctId})
	require.Equal(t, 200, w.Code)
	payId := out["id"].(string)

	// the gateway fails 5% of the time; retry until it lands
	var status string
	for i := 0; i < 50; i++ {
		w, out = doReq(t, srv, "POST", fmt.Sprintf("/api/v1/payment/%s/process", payId), map[string]interface{}{
			"method": "bank transfer",
		})
		require.Equal(t, 200, w.Code)
		if status = out["paymentStatus"].(string); status == "Completed" {
			break
		}
	}
	require.Equal(t, "Completed", status)

	// completed payments cannot be cancelled or re-processed
	w, _ = doReq(t, srv, "POST", fmt.Sprintf("/api/v1/payment/%s/cancel", payId), map[string]interface{}{"reason": "oops"})
	assert.Equal(t, 400, w.Code)
	w, _ = doReq(t, srv, "POST", fmt.Sprintf("/api/v1/payment/%s/process", payId), map[string]interface{}{"method": "card"})
	assert.Equal(t, 400, w.Code)

	w, _ = doReq(t, srv, "GET", fmt.Sprintf("/api/v1/payment/%s/receipt", payId), nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "PAYMENT RECEIPT")

	// side effects landed on both parties
	inf := srv.Users.GetInfluencer("jane")
	assert.Equal(t, 500.0, inf.TotalEarnings)
	assert.Empty(t, inf.ActiveCampaigns)
	assert.Len(t, inf.PastCampaigns, 1)
	brand := srv.Users.GetBrand("acme")
	assert.Equal(t, 500.0, brand.TotalSpent)
}

func TestRecommendationsAndAnalytics(t *testing.T) {
	srv := testServer(t)

	signUpUser(t, srv, map[string]interface{}{
		"username": "acme", "email": "acme@test.io", "password": "Sup3r-Secret",
		"type": "brand", "companyName": "Acme Inc", "industry": "Fashion", "budget": 20000,
	})
	signUpUser(t, srv, map[string]interface{}{
		"username": "jane", "email": "jane@test.io", "password": "Sup3r-Secret",
		"type": "influencer", "niche": "Fashion", "rate": 500,
	})
	doReq(t, srv, "POST", "/api/v1/influencer/jane/social", map[string]interface{}{
		"platform": "Instagram", "handle": "janegram", "followers": 50000,
	})

	_, out := doReq(t, srv, "POST", "/api/v1/campaign", map[string]interface{}{
		"name": "Summer Launch", "brand": "acme", "budget": 5000,
	})
	cmpId := out["id"].(string)

	w := httptest.NewRecorder()
	srv.r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/getRecommendedInfluencers/"+cmpId, nil))
	require.Equal(t, 200, w.Code)
	var infs []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infs))
	require.Len(t, infs, 1)
	assert.Equal(t, "jane", infs[0]["username"])

	w, out = doReq(t, srv, "GET", "/api/v1/recommendBudget/acme?campaignType=awareness&targetInfluencers=2", nil)
	require.Equal(t, 200, w.Code)
	// avg rate 500 * 2 * 1.5 * 1.2
	assert.InDelta(t, 1800, out["budget"].(float64), 0.001)

	w, out = doReq(t, srv, "GET", "/api/v1/analytics/brand/acme", nil)
	require.Equal(t, 200, w.Code)
	assert.EqualValues(t, 20000, out["totalBudget"])
	assert.EqualValues(t, 15000, out["remainingBudget"])

	w, out = doReq(t, srv, "GET", "/api/v1/analytics/platform", nil)
	require.Equal(t, 200, w.Code)
	// 20% of the 20000 budget + a cent per follower
	assert.InDelta(t, 4500, out["value"].(float64), 0.001)

	w, _ = doReq(t, srv, "GET", "/api/v1/analytics/influencer/nobody", nil)
	assert.Equal(t, 404, w.Code)
}

func doList(t *testing.T, srv *Server, path string) []map[string]interface{} {
	t.Helper()
	w := httptest.NewRecorder()
	srv.r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	require.Equal(t, 200, w.Code, w.Body.String())
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAdvertiserManagesBrands(t *testing.T) {
	srv := testServer(t)

	signUpUser(t, srv, map[string]interface{}{
		"username": "bigagency", "email": "hq@test.io", "password": "Sup3r-Secret",
		"type": "advertiser", "agencyName": "Big Agency",
	})
	signUpUser(t, srv, map[string]interface{}{
		"username": "acme", "email": "acme@test.io", "password": "Sup3r-Secret",
		"type": "brand", "companyName": "Acme Inc", "industry": "Fashion", "budget": 20000,
	})

	campaignBody := map[string]interface{}{
		"name": "Summer Launch", "brand": "acme", "budget": 5000, "advertiser": "bigagency",
	}

	// not under management yet
	w, _ := doReq(t, srv, "POST", "/api/v1/campaign", campaignBody)
	assert.Equal(t, 403, w.Code)

	w, _ = doReq(t, srv, "POST", "/api/v1/advertiser/bigagency/brand/nobody", nil)
	assert.Equal(t, 404, w.Code)
	w, _ = doReq(t, srv, "POST", "/api/v1/advertiser/bigagency/brand/acme", nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	w, out := doReq(t, srv, "POST", "/api/v1/campaign", campaignBody)
	require.Equal(t, 200, w.Code, w.Body.String())
	cmpId := out["id"].(string)

	adv := srv.Users.GetAdvertiser("bigagency")
	require.True(t, adv.Manages("acme"))
	assert.Contains(t, adv.Campaigns, cmpId)

	// management survives a reload from bolt
	reloaded, err := auth.LoadUsers(srv.db, srv.Cfg)
	require.NoError(t, err)
	assert.True(t, reloaded.GetAdvertiser("bigagency").Manages("acme"))

	w, _ = doReq(t, srv, "DELETE", "/api/v1/advertiser/bigagency/brand/other", nil)
	assert.Equal(t, 404, w.Code)
	w, _ = doReq(t, srv, "DELETE", "/api/v1/advertiser/bigagency/brand/acme", nil)
	require.Equal(t, 200, w.Code)
	w, _ = doReq(t, srv, "POST", "/api/v1/campaign", campaignBody)
	assert.Equal(t, 403, w.Code, "dropped brands are no longer manageable")
}

func TestDirectoryListings(t *testing.T) {
	srv := testServer(t)

	signUpUser(t, srv, map[string]interface{}{
		"username": "acme", "email": "acme@test.io", "password": "Sup3r-Secret",
		"type": "brand", "companyName": "Acme Inc", "industry": "Fashion", "budget": 20000,
	})
	signUpUser(t, srv, map[string]interface{}{
		"username": "jane", "email": "jane@test.io", "password": "Sup3r-Secret",
		"type": "influencer", "niche": "Fashion", "rate": 500,
	})
	signUpUser(t, srv, map[string]interface{}{
		"username": "mike", "email": "mike@test.io", "password": "Sup3r-Secret",
		"type": "influencer", "niche": "Tech", "rate": 2000,
	})
	doReq(t, srv, "POST", "/api/v1/influencer/jane/social", map[string]interface{}{
		"platform": "Instagram", "handle": "janegram", "followers": 50000,
	})
	doReq(t, srv, "POST", "/api/v1/influencer/mike/social", map[string]interface{}{
		"platform": "YouTube", "handle": "miketube", "followers": 900000,
	})

	_, out := doReq(t, srv, "POST", "/api/v1/campaign", map[string]interface{}{
		"name": "Summer Launch", "brand": "acme", "budget": 5000,
		"startDate": "2026-06-01", "endDate": "2026-08-31",
	})
	c1 := out["id"].(string)
	doReq(t, srv, "POST", "/api/v1/campaign", map[string]interface{}{
		"name": "Winter Drop", "brand": "acme", "budget": 12000,
	})

	// pending invites show up as offers until accepted
	doReq(t, srv, "POST", "/api/v1/campaign/"+c1+"/invite/jane", nil)
	offers := doList(t, srv, "/api/v1/getCampaignOffers/jane")
	require.Len(t, offers, 1)
	assert.Equal(t, c1, offers[0]["id"])
	doReq(t, srv, "POST", "/api/v1/campaign/"+c1+"/accept/jane", nil)
	assert.Empty(t, doList(t, srv, "/api/v1/getCampaignOffers/jane"))

	doReq(t, srv, "POST", "/api/v1/campaign/"+c1+"/start", nil)
	assert.Len(t, doList(t, srv, "/api/v1/getCampaignsByStatus/Active"), 1)
	assert.Len(t, doList(t, srv, "/api/v1/getCampaignsByStatus/Draft"), 1)

	got := doList(t, srv, "/api/v1/searchCampaigns?name=summer")
	require.Len(t, got, 1)
	assert.Equal(t, "Summer Launch", got[0]["name"])
	assert.Len(t, doList(t, srv, "/api/v1/searchCampaigns?startDate=2026-01-01&endDate=2026-12-31"), 1)
	assert.Len(t, doList(t, srv, "/api/v1/searchCampaigns?maxBudget=10000"), 1)
	w, _ := doReq(t, srv, "GET", "/api/v1/searchCampaigns", nil)
	assert.Equal(t, 400, w.Code, "criteria are required")

	doReq(t, srv, "POST", "/api/v1/campaign/"+c1+"/metrics/jane", map[string]interface{}{
		"likes": 100, "comments": 20, "shares": 5,
	})
	assert.Len(t, doList(t, srv, "/api/v1/getHighEngagementCampaigns?min=100"), 1)
	assert.Empty(t, doList(t, srv, "/api/v1/getHighEngagementCampaigns?min=1000"))
	top := doList(t, srv, "/api/v1/getTopCampaigns?limit=1")
	require.Len(t, top, 1)
	assert.Equal(t, c1, top[0]["id"])

	infs := doList(t, srv, "/api/v1/getTopInfluencers?limit=1")
	require.Len(t, infs, 1)
	assert.Equal(t, "mike", infs[0]["username"])
	brands := doList(t, srv, "/api/v1/getTopBrands")
	require.Len(t, brands, 1)
	assert.Equal(t, "acme", brands[0]["username"])

	_, out = doReq(t, srv, "POST", "/api/v1/contract", map[string]interface{}{
		"campaignId": c1, "influencer": "jane",
	})
	ctId := out["id"].(string)
	cts := doList(t, srv, "/api/v1/getContractsByCampaign/"+c1)
	require.Len(t, cts, 1)
	assert.Equal(t, ctId, cts[0]["id"])

	doReq(t, srv, "POST", "/api/v1/contract/"+ctId+"/sign", nil)
	_, out = doReq(t, srv, "POST", "/api/v1/payment", map[string]interface{}{"contractId": ctId})
	payId := out["id"].(string)
	pays := doList(t, srv, "/api/v1/getPaymentsByContract/"+ctId)
	require.Len(t, pays, 1)
	assert.Equal(t, payId, pays[0]["id"])
}
