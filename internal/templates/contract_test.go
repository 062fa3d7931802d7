package templates

import (
	"strings"
	"testing"

	"github.com/trendlink/trendlink/internal/common"
)

func TestContractDocument(t *testing.T) {
	cmp := common.NewCampaign("Summer Launch", "acme", "Summer product launch", 5000, "2026-06-01", "2026-08-31")
	ct := common.NewContract(cmp, "jane", 750, "Acme Inc")

	doc := ContractDocument(ct)
	for _, want := range []string{
		"CONTRACT AGREEMENT",
		"PARTIES",
		"Brand: Acme Inc",
		"Influencer: jane",
		"CAMPAIGN DETAILS",
		"Campaign Name: Summer Launch",
		"Duration: 2026-06-01 to 2026-08-31",
		"TERMS",
		"Payment Amount: $750.00",
		"SIGNATURES",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestContractDocumentFallsBackToUsername(t *testing.T) {
	cmp := common.NewCampaign("Launch", "acme", "", 0, "", "")
	ct := common.NewContract(cmp, "jane", 0, "")

	if doc := ContractDocument(ct); !strings.Contains(doc, "Brand: acme") {
		t.Error("document must fall back to the brand username")
	}
}

func TestReceiptRequiresCompletion(t *testing.T) {
	cmp := common.NewCampaign("Launch", "acme", "", 0, "", "")
	ct := common.NewContract(cmp, "jane", 750, "Acme Inc")
	pay := common.NewPayment(ct, 750)

	if got := Receipt(pay); got != "Payment not completed yet. No receipt available." {
		t.Errorf("pending payment receipt = %q", got)
	}

	pay.Status = common.PaymentCompleted
	pay.TransactionId = "TX-ABCD1234"
	pay.Method = "bank transfer"

	receipt := Receipt(pay)
	for _, want := range []string{
		"PAYMENT RECEIPT",
		"Transaction ID: TX-ABCD1234",
		"PAYMENT DETAILS",
		"Brand: Acme Inc",
		"Influencer: jane",
		"Amount: USD 750.00",
		"Payment Method: bank transfer",
		"Status: Completed",
	} {
		if !strings.Contains(receipt, want) {
			t.Errorf("receipt missing %q", want)
		}
	}
}
