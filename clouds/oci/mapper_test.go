package oci

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

func usageRow() mapper.RawRecord {
	return mapper.RawRecord{Columns: map[string]interface{}{
		"tenant_id":            "ocid1.tenancy.oc1..aaaa",
		"compartment_id":       "ocid1.compartment.oc1..bbbb",
		"compartment_name":     "prod-workloads",
		"interval_usage_start": "2026-01-15T00:00:00Z",
		"interval_usage_end":   "2026-01-15T01:00:00Z",
		"service":              "COMPUTE",
		"product_description":  "Standard E4 Flex OCPU",
		"resource_id":          "ocid1.instance.oc1.iad.cccc",
		"region":               "us-ashburn-1",
		"billed_quantity":      "4",
		"billing_unit":         "OCPU Hours",
		"unit_price":           "0.025",
		"my_cost":              "0.10",
		"currency_code":        "USD",
		"sku":                  "B93113",
		"freeform_tags":        `{"team":"platform"}`,
	}}
}

func TestMapRowCostQuadruple(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["credits"] = "-0.02"
	raw.Columns["list_rate"] = "0.03"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.BilledCost.Equal(decimal.RequireFromString("0.10")) {
		t.Errorf("BilledCost = %s", rec.BilledCost)
	}
	if !rec.ContractedCost.Equal(decimal.RequireFromString("0.10")) {
		t.Errorf("ContractedCost = %s", rec.ContractedCost)
	}
	// Credits are exported negative and net off my_cost.
	if !rec.EffectiveCost.Equal(decimal.RequireFromString("0.08")) {
		t.Errorf("EffectiveCost = %s, want 0.08", rec.EffectiveCost)
	}
	// List reconstructs from quantity * list rate.
	if !rec.ListCost.Equal(decimal.RequireFromString("0.12")) {
		t.Errorf("ListCost = %s, want 0.12", rec.ListCost)
	}
}

func TestMapRowNetCostWins(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["credits"] = "-0.02"
	raw.Columns["net_cost"] = "0.07"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.EffectiveCost.Equal(decimal.RequireFromString("0.07")) {
		t.Errorf("EffectiveCost = %s, provider net cost must win over credit math", rec.EffectiveCost)
	}
}

func TestCorrectionFlag(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["is_correction"] = "true"
	raw.Columns["my_cost"] = "0"

	if !m.Include(raw) {
		t.Fatal("zero-cost correction row must be included")
	}

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.IsCorrection() {
		t.Error("correction flag must set the Correction class")
	}
	if rec.ChargeCategory != focus.ChargeCredit {
		t.Errorf("ChargeCategory = %q, want Credit", rec.ChargeCategory)
	}
	if rec.ChargeType != "correction" {
		t.Errorf("ChargeType = %q", rec.ChargeType)
	}
	if rec.PricingCategory != focus.PricingCredit {
		t.Errorf("PricingCategory = %q, want Credit", rec.PricingCategory)
	}
}

func TestNegativeCostMarksCorrection(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["my_cost"] = "-1.00"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.IsCorrection() {
		t.Error("negative cost row should carry the Correction class")
	}
	if rec.ChargeCategory != focus.ChargeUsage {
		t.Errorf("ChargeCategory = %q, stays Usage without the correction flag", rec.ChargeCategory)
	}
}

func TestFlexSubscriptionCommitment(t *testing.T) {
	m := NewMapper(nil)

	for _, model := range []string{"ANNUAL_FLEX", "MONTHLY_FLEX", "annual_flex"} {
		t.Run(model, func(t *testing.T) {
			raw := usageRow()
			raw.Columns["pricing_model"] = model
			raw.Columns["subscription_id"] = "sub-99"

			rec, err := m.MapRow(raw)
			if err != nil {
				t.Fatal(err)
			}
			if rec.PricingCategory != focus.PricingCommitted {
				t.Errorf("PricingCategory = %q, want Committed", rec.PricingCategory)
			}
			if rec.CommitmentDiscountID == nil || *rec.CommitmentDiscountID != "sub-99" {
				t.Fatal("commitment triple should carry the subscription")
			}
			if *rec.CommitmentDiscountType != focus.CommitmentBenefit {
				t.Errorf("CommitmentDiscountType = %q", *rec.CommitmentDiscountType)
			}
		})
	}
}

func TestPayAsYouGoKeepsNilCommitment(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["pricing_model"] = "PAY_AS_YOU_GO"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec.CommitmentDiscountID != nil {
		t.Error("pay-as-you-go row must keep a nil commitment triple")
	}
	if rec.PricingCategory != focus.PricingOnDemand {
		t.Errorf("PricingCategory = %q, want On-Demand", rec.PricingCategory)
	}
}

func TestOveragePricing(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["overage_cost"] = "0.05"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec.PricingCategory != focus.PricingOverage {
		t.Errorf("PricingCategory = %q, want Overage", rec.PricingCategory)
	}
}

func TestBillingPeriodIsChargeMonth(t *testing.T) {
	m := NewMapper(nil)

	rec, err := m.MapRow(usageRow())
	if err != nil {
		t.Fatal(err)
	}
	wantStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !rec.BillingPeriodStart.Equal(wantStart) {
		t.Errorf("BillingPeriodStart = %v", rec.BillingPeriodStart)
	}
	if !rec.BillingPeriodEnd.Equal(wantStart.AddDate(0, 1, 0)) {
		t.Errorf("BillingPeriodEnd = %v", rec.BillingPeriodEnd)
	}
}

func TestHierarchyCandidatesDefinedTags(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["freeform_tags"] = `{"team":"platform"}`
	raw.Columns["defined_tags"] = `{"CostTracking.BusinessUnit":"payments","Operations.Owner":"alice"}`

	got := m.HierarchyCandidates(raw)

	// Freeform team first, then cost-tracking defined tags; the Operations
	// namespace is not a cost-allocation namespace and is skipped.
	if got[1] != "platform" {
		t.Errorf("candidate[1] = %q, want platform", got[1])
	}
	foundPayments := false
	for _, c := range got {
		if c == "payments" {
			foundPayments = true
		}
		if c == "alice" {
			t.Error("non-cost-allocation defined tag must not be a candidate")
		}
	}
	if !foundPayments {
		t.Errorf("candidates = %v, want CostTracking value included", got)
	}
	if got[len(got)-2] != "ocid1.compartment.oc1..bbbb" || got[len(got)-1] != "prod-workloads" {
		t.Errorf("trailing candidates = %v", got[len(got)-2:])
	}
}

func TestResourceLeaf(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ocid1.instance.oc1.iad.cccc", "cccc"},
		{"plainid", "plainid"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resourceLeaf(tt.in); got != tt.want {
			t.Errorf("resourceLeaf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
