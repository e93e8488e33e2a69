package azure

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

func usageRow() mapper.RawRecord {
	return mapper.RawRecord{Columns: map[string]interface{}{
		"billing_account_id":        "BA-9000",
		"subscription_id":           "sub-1234",
		"subscription_name":         "Acme Production",
		"billing_period_start_date": "2026-01-01",
		"billing_period_end_date":   "2026-01-31",
		"date":                      "2026-01-15",
		"meter_category":            "Virtual Machines",
		"meter_subcategory":         "Dv3 Series",
		"meter_name":                "D4 v3",
		"meter_id":                  "meter-001",
		"consumed_service":          "Microsoft.Compute",
		"resource_id":               "/subscriptions/sub-1234/resourceGroups/rg/providers/Microsoft.Compute/virtualMachines/vm-web-1",
		"resource_location":         "eastus",
		"resource_group":            "rg",
		"quantity":                  "24",
		"unit_of_measure":           "1 Hour",
		"cost_in_billing_currency":  "4.80",
		"billing_currency":          "USD",
		"charge_type":               "Usage",
		"frequency":                 "UsageBased",
		"pricing_model":             "OnDemand",
		"tags":                      `{"CostCenter":"cc-9"}`,
	}}
}

func TestMapRowCostQuadruple(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["azure_credit_applied"] = "1.80"
	raw.Columns["payg_price"] = "0.25"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !rec.BilledCost.Equal(decimal.RequireFromString("4.80")) {
		t.Errorf("BilledCost = %s", rec.BilledCost)
	}
	if !rec.ContractedCost.Equal(decimal.RequireFromString("4.80")) {
		t.Errorf("ContractedCost = %s", rec.ContractedCost)
	}
	// Applied credit is positive in the export and nets off the bill.
	if !rec.EffectiveCost.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("EffectiveCost = %s, want 3.00", rec.EffectiveCost)
	}
	// List reconstructs from quantity * pay-as-you-go price.
	if !rec.ListCost.Equal(decimal.RequireFromString("6.00")) {
		t.Errorf("ListCost = %s, want 6.00", rec.ListCost)
	}
}

func TestMapRowListFallsBackToBilled(t *testing.T) {
	m := NewMapper(nil)

	rec, err := m.MapRow(usageRow())
	if err != nil {
		t.Fatal(err)
	}
	if !rec.ListCost.Equal(decimal.RequireFromString("4.80")) {
		t.Errorf("ListCost = %s, want 4.80 without payg_price", rec.ListCost)
	}
	if !rec.EffectiveCost.Equal(decimal.RequireFromString("4.80")) {
		t.Errorf("EffectiveCost = %s, want 4.80 without credit", rec.EffectiveCost)
	}
}

func TestDailyGrainChargePeriod(t *testing.T) {
	m := NewMapper(nil)

	rec, err := m.MapRow(usageRow())
	if err != nil {
		t.Fatal(err)
	}
	wantStart := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if !rec.ChargePeriodStart.Equal(wantStart) {
		t.Errorf("ChargePeriodStart = %v", rec.ChargePeriodStart)
	}
	if !rec.ChargePeriodEnd.Equal(wantStart.Add(24 * time.Hour)) {
		t.Errorf("ChargePeriodEnd = %v, want start of next day", rec.ChargePeriodEnd)
	}
}

func TestChargeTypeClassification(t *testing.T) {
	m := NewMapper(nil)

	tests := []struct {
		chargeType    string
		wantCategory  focus.ChargeCategory
		wantCorrected bool
	}{
		{"Usage", focus.ChargeUsage, false},
		{"UsageCharge", focus.ChargeUsage, false},
		{"Purchase", focus.ChargePurchase, false},
		{"Refund", focus.ChargeCredit, true},
		{"Credit", focus.ChargeCredit, true},
		{"Tax", focus.ChargeTax, false},
		{"RoundingAdjustment", focus.ChargeAdjustment, false},
	}
	for _, tt := range tests {
		t.Run(tt.chargeType, func(t *testing.T) {
			raw := usageRow()
			raw.Columns["charge_type"] = tt.chargeType

			rec, err := m.MapRow(raw)
			if err != nil {
				t.Fatal(err)
			}
			if rec.ChargeCategory != tt.wantCategory {
				t.Errorf("ChargeCategory = %q, want %q", rec.ChargeCategory, tt.wantCategory)
			}
			if rec.IsCorrection() != tt.wantCorrected {
				t.Errorf("IsCorrection = %v, want %v", rec.IsCorrection(), tt.wantCorrected)
			}
			if rec.ChargeType != tt.chargeType {
				t.Errorf("ChargeType = %q, native type must be preserved", rec.ChargeType)
			}
		})
	}
}

func TestFrequencyMapping(t *testing.T) {
	tests := []struct {
		in   string
		want focus.ChargeFrequency
	}{
		{"OneTime", focus.FrequencyOneTime},
		{"Recurring", focus.FrequencyRecurring},
		{"UsageBased", focus.FrequencyUsageBased},
		{"", focus.FrequencyUsageBased},
	}
	for _, tt := range tests {
		if got := frequency(tt.in); got != tt.want {
			t.Errorf("frequency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReservationCommitment(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["pricing_model"] = "Reservation"
	raw.Columns["reservation_id"] = "res-42"
	raw.Columns["reservation_name"] = "Prod VM Reservation"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec.CommitmentDiscountID == nil {
		t.Fatal("commitment triple not populated")
	}
	if *rec.CommitmentDiscountType != focus.CommitmentReservation {
		t.Errorf("CommitmentDiscountType = %q", *rec.CommitmentDiscountType)
	}
	if rec.PricingCategory != focus.PricingCommitted {
		t.Errorf("PricingCategory = %q, want Committed", rec.PricingCategory)
	}
}

func TestSavingsPlanBenefit(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["pricing_model"] = "SavingsPlan"
	raw.Columns["benefit_id"] = "benefit-7"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec.CommitmentDiscountID == nil || *rec.CommitmentDiscountType != focus.CommitmentSavingsPlan {
		t.Fatal("expected savings plan commitment")
	}
	if *rec.CommitmentDiscountName != "benefit-7" {
		t.Errorf("CommitmentDiscountName = %q, want id fallback", *rec.CommitmentDiscountName)
	}
}

func TestPlainBenefitCommitment(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["benefit_id"] = "benefit-8"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec.CommitmentDiscountID == nil || *rec.CommitmentDiscountType != focus.CommitmentBenefit {
		t.Fatal("expected generic benefit commitment")
	}
}

func TestMarketplacePublisher(t *testing.T) {
	m := NewMapper(nil)
	raw := usageRow()
	raw.Columns["publisher_type"] = "Marketplace"
	raw.Columns["publisher_name"] = "Elastic"

	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ServiceProviderName != "Elastic" || rec.InvoiceIssuerName != "Elastic" {
		t.Errorf("marketplace provenance = %q / %q", rec.ServiceProviderName, rec.InvoiceIssuerName)
	}
	if rec.HostProviderName != "Microsoft Azure" {
		t.Errorf("HostProviderName = %q, platform never changes", rec.HostProviderName)
	}
}

func TestResourceNameFromIDLeaf(t *testing.T) {
	m := NewMapper(nil)

	rec, err := m.MapRow(usageRow())
	if err != nil {
		t.Fatal(err)
	}
	if rec.ResourceName != "vm-web-1" {
		t.Errorf("ResourceName = %q, want id leaf", rec.ResourceName)
	}
}

func TestInclude(t *testing.T) {
	m := NewMapper(nil)

	tests := []struct {
		name string
		cols map[string]interface{}
		want bool
	}{
		{"nonzero cost", map[string]interface{}{"cost_in_billing_currency": "0.10"}, true},
		{"zero cost with credit", map[string]interface{}{"cost_in_billing_currency": "0", "azure_credit_applied": "0.10"}, true},
		{"zero refund", map[string]interface{}{"cost_in_billing_currency": "0", "charge_type": "Refund"}, true},
		{"zero rounding", map[string]interface{}{"cost_in_billing_currency": "0", "charge_type": "RoundingAdjustment"}, true},
		{"zero usage", map[string]interface{}{"cost_in_billing_currency": "0", "charge_type": "Usage"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Include(mapper.RawRecord{Columns: tt.cols}); got != tt.want {
				t.Errorf("Include = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHierarchyCandidates(t *testing.T) {
	m := NewMapper(nil)

	got := m.HierarchyCandidates(usageRow())
	if got[1] != "cc-9" {
		t.Errorf("candidate[1] = %q, want cc-9 from CostCenter tag", got[1])
	}
	if got[len(got)-1] != "sub-1234" {
		t.Errorf("last candidate = %q, want subscription id", got[len(got)-1])
	}
}
