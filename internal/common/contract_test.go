package common

import "testing"

func newTestContract() *Contract {
	cmp := newTestCampaign()
	return NewContract(cmp, "jane", 750, "Acme Inc")
}

func TestContractInheritsRate(t *testing.T) {
	ct := newTestContract()
	if ct.Amount != 750 {
		t.Errorf("amount = %f, want the influencer rate 750", ct.Amount)
	}
	if ct.Status != ContractDraft || ct.Signed {
		t.Errorf("new contract should be an unsigned draft: %s signed=%v", ct.Status, ct.Signed)
	}
	if ct.StartDate != "2026-06-01" || ct.EndDate != "2026-08-31" {
		t.Errorf("date range not copied from campaign: %s to %s", ct.StartDate, ct.EndDate)
	}
	if ct.PaymentTerms == "" || ct.Deliverables == "" {
		t.Error("default terms missing")
	}
}

func TestContractSignOnce(t *testing.T) {
	ct := newTestContract()
	if !ct.Sign() {
		t.Fatal("first sign failed")
	}
	if ct.Status != ContractActive {
		t.Fatalf("status after sign = %s, want %s", ct.Status, ContractActive)
	}
	if ct.Sign() {
		t.Error("re-sign must report false")
	}
}

func TestContractCompleteRequiresActive(t *testing.T) {
	ct := newTestContract()
	if ct.Complete() {
		t.Error("completing a draft must fail")
	}
	ct.Sign()
	if !ct.Complete() {
		t.Fatal("completing an active contract failed")
	}
	if ct.Complete() {
		t.Error("completing twice must fail")
	}
}

func TestContractTerminateRequiresActive(t *testing.T) {
	ct := newTestContract()
	if ct.Terminate("breach") {
		t.Error("terminating a draft must fail")
	}
	ct.Sign()
	if !ct.Terminate("breach") {
		t.Fatal("terminating an active contract failed")
	}
	if ct.Status != ContractTerminated {
		t.Errorf("status = %s, want %s", ct.Status, ContractTerminated)
	}
}
