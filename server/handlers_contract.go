package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/trendlink/trendlink/internal/auth"
	"github.com/trendlink/trendlink/internal/common"
	"github.com/trendlink/trendlink/internal/templates"
	"github.com/trendlink/trendlink/misc"
)

type contractReq struct {
	CampaignId string  `json:"campaignId"`
	Influencer string  `json:"influencer"`
	Amount     float64 `json:"amount,omitempty"` // defaults to the influencer's rate
}

func postContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contractReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		cmp, ok := s.Campaigns.Get(req.CampaignId)
		if !ok {
			c.JSON(404, misc.StatusErr("campaign not found"))
			return
		}
		inf := s.Users.GetInfluencer(req.Influencer)
		if inf == nil {
			c.JSON(404, misc.StatusErr(auth.ErrUserNotFound.Error()))
			return
		}
		if !cmp.IsAccepted(inf.Username) {
			c.JSON(400, misc.StatusErr("influencer has not accepted the campaign"))
			return
		}

		var brandName string
		if b := s.Users.GetBrand(cmp.Brand); b != nil {
			brandName = b.CompanyName
		}
		ct := common.NewContract(cmp, inf.Username, inf.Rate, brandName)
		if req.Amount > 0 {
			ct.Amount = req.Amount
		}

		if !s.Contracts.Add(ct) {
			c.JSON(500, misc.StatusErr("duplicate contract id"))
			return
		}
		if err := s.saveContract(ct); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}

		s.Notify.AddNotification(inf.Username, fmt.Sprintf("A contract for campaign '%s' is ready for your signature", cmp.Name))
		c.JSON(200, misc.StatusOK(ct.Id))
	}
}

func getContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, ok := s.Contracts.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("contract not found"))
			return
		}
		c.JSON(200, ct)
	}
}

func signContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, ok := s.Contracts.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("contract not found"))
			return
		}
		if !ct.Sign() {
			c.JSON(400, misc.StatusErr("contract already signed"))
			return
		}
		if err := s.saveContract(ct); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		s.Notify.AddNotification(ct.Brand, fmt.Sprintf("%s signed the contract for '%s'", ct.Influencer, ct.CampaignName))
		c.JSON(200, misc.StatusOK(ct.Id))
	}
}

func completeContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, ok := s.Contracts.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("contract not found"))
			return
		}
		if !ct.Complete() {
			c.JSON(400, misc.StatusErr("contract is not active"))
			return
		}
		if err := s.saveContract(ct); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(ct.Id))
	}
}

type terminateReq struct {
	Reason string `json:"reason,omitempty"`
}

func terminateContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, ok := s.Contracts.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("contract not found"))
			return
		}

		var req terminateReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		if !ct.Terminate(req.Reason) {
			c.JSON(400, misc.StatusErr("contract is not active"))
			return
		}
		if err := s.saveContract(ct); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		s.Notify.AddNotification(ct.Influencer, fmt.Sprintf("The contract for '%s' was terminated", ct.CampaignName))
		c.JSON(200, misc.StatusOK(ct.Id))
	}
}

func getContractDocument(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, ok := s.Contracts.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("contract not found"))
			return
		}
		c.String(200, templates.ContractDocument(ct))
	}
}

func getContractsByInfluencer(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Contracts.ForInfluencer(c.Params.ByName("username")))
	}
}

func getContractsByCampaign(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Contracts.ForCampaign(c.Params.ByName("id")))
	}
}

func getPaymentsByContract(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, s.Payments.ForContract(c.Params.ByName("id")))
	}
}

type paymentReq struct {
	ContractId string  `json:"contractId"`
	Amount     float64 `json:"amount,omitempty"` // defaults to the contract amount
}

func postPayment(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		ct, ok := s.Contracts.Get(req.ContractId)
		if !ok {
			c.JSON(404, misc.StatusErr("contract not found"))
			return
		}
		if !ct.Signed {
			c.JSON(400, misc.StatusErr("contract is not signed"))
			return
		}

		amount := req.Amount
		if amount == 0 {
			amount = ct.Amount
		}
		pay := common.NewPayment(ct, amount)

		if !s.Payments.Add(pay) {
			c.JSON(500, misc.StatusErr("duplicate payment id"))
			return
		}
		if err := s.savePayment(pay); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(pay.Id))
	}
}

func getPayment(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		pay, ok := s.Payments.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("payment not found"))
			return
		}
		c.JSON(200, pay)
	}
}

type processReq struct {
	Method string `json:"method"`
}

func processPayment(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		pay, ok := s.Payments.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("payment not found"))
			return
		}
		if pay.Status == common.PaymentCompleted {
			c.JSON(400, misc.StatusErr("payment already completed"))
			return
		}

		var req processReq
		if err := misc.BindJSON(c, &req); err != nil || req.Method == "" {
			c.JSON(400, misc.StatusErr("missing payment method"))
			return
		}

		inf := s.Users.GetInfluencer(pay.Influencer)
		brand := s.Users.GetBrand(pay.Brand)

		done := pay.Process(req.Method, beneficiary(inf), beneficiary(brand))

		profiles := []auth.Profile{}
		if inf != nil {
			profiles = append(profiles, inf)
		}
		if brand != nil {
			profiles = append(profiles, brand)
		}
		if err := s.savePayment(pay, profiles...); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}

		if done {
			s.Notify.AddNotification(pay.Influencer, fmt.Sprintf("Payment of %s %.2f received for '%s'", pay.Currency, pay.Amount, pay.CampaignName))
		}
		c.JSON(200, gin.H{"status": "success", "id": pay.Id, "paymentStatus": pay.Status})
	}
}

// beneficiary avoids handing Process a typed-nil interface when a side of
// the payment is missing from the registry.
func beneficiary(b common.Beneficiary) common.Beneficiary {
	switch v := b.(type) {
	case *auth.Influencer:
		if v == nil {
			return nil
		}
	case *auth.Brand:
		if v == nil {
			return nil
		}
	}
	return b
}

type cancelReq struct {
	Reason string `json:"reason,omitempty"`
}

func cancelPayment(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		pay, ok := s.Payments.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("payment not found"))
			return
		}

		var req cancelReq
		if err := misc.BindJSON(c, &req); err != nil {
			c.JSON(400, misc.StatusErr("Error unmarshalling request body"))
			return
		}

		if !pay.Cancel(req.Reason) {
			c.JSON(400, misc.StatusErr("completed payments cannot be cancelled"))
			return
		}
		if err := s.savePayment(pay); err != nil {
			c.JSON(500, misc.StatusErr(err.Error()))
			return
		}
		c.JSON(200, misc.StatusOK(pay.Id))
	}
}

func getReceipt(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		pay, ok := s.Payments.Get(c.Params.ByName("id"))
		if !ok {
			c.JSON(404, misc.StatusErr("payment not found"))
			return
		}
		c.String(200, templates.Receipt(pay))
	}
}
