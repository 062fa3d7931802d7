package templates

import (
	"fmt"
	"time"

	"github.com/trendlink/trendlink/internal/common"
)

const contractTmpl = `CONTRACT AGREEMENT
=================

Contract ID: {{Id}}
Date Created: {{CreatedAt}}

PARTIES
------
Brand: {{Brand}}
Influencer: {{Influencer}}

CAMPAIGN DETAILS
----------------
Campaign Name: {{CampaignName}}
Description: {{Description}}
Duration: {{StartDate}} to {{EndDate}}

TERMS
-----
Deliverables: {{Deliverables}}

Payment Amount: ${{Amount}}
Payment Terms: {{PaymentTerms}}

SIGNATURES
----------
Brand Representative: ____________________

Influencer: ____________________
`

const receiptTmpl = `PAYMENT RECEIPT
===============

Receipt ID: {{Id}}
Transaction ID: {{TransactionId}}
Date: {{PaymentDate}}

PAYMENT DETAILS
---------------
Campaign: {{CampaignName}}
Brand: {{Brand}}
Influencer: {{Influencer}}
Amount: {{Currency}} {{Amount}}
Payment Method: {{Method}}
Status: {{Status}}

Thank you for using Trendlink!
`

var (
	contractDoc = MustacheMust(contractTmpl)
	receiptDoc  = MustacheMust(receiptTmpl)
)

func docDate(ts int64) string {
	return time.Unix(0, ts).Format("2006-01-02 15:04:05")
}

// ContractDocument renders the printable agreement for a contract.
func ContractDocument(ct *common.Contract) string {
	brand := ct.BrandName
	if brand == "" {
		brand = ct.Brand
	}
	return contractDoc.Render(map[string]string{
		"Id":           ct.Id,
		"CreatedAt":    docDate(ct.CreatedAt),
		"Brand":        brand,
		"Influencer":   ct.Influencer,
		"CampaignName": ct.CampaignName,
		"Description":  ct.CampaignDesc,
		"StartDate":    ct.StartDate,
		"EndDate":      ct.EndDate,
		"Deliverables": ct.Deliverables,
		"Amount":       fmt.Sprintf("%.2f", ct.Amount),
		"PaymentTerms": ct.PaymentTerms,
	})
}

// Receipt renders the printable receipt for a completed payment. Payments in
// any other state have no receipt.
func Receipt(p *common.Payment) string {
	if p.Status != common.PaymentCompleted {
		return "Payment not completed yet. No receipt available."
	}
	brand := p.BrandName
	if brand == "" {
		brand = p.Brand
	}
	return receiptDoc.Render(map[string]string{
		"Id":            p.Id,
		"TransactionId": p.TransactionId,
		"PaymentDate":   docDate(p.PaymentDate),
		"CampaignName":  p.CampaignName,
		"Brand":         brand,
		"Influencer":    p.Influencer,
		"Currency":      p.Currency,
		"Amount":        fmt.Sprintf("%.2f", p.Amount),
		"Method":        p.Method,
		"Status":        string(p.Status),
	})
}
