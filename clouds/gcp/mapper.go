// Package gcp maps raw GCP billing export rows to canonical cost records.
//
// GCP cost semantics: the exported cost is already both the invoiced and the
// contracted amount; credits arrive as a separate negative total that nets
// against cost, and cost_at_list carries the undiscounted price when the
// account has negotiated rates.
package gcp

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// SourceSystem identifies GCP rows in lineage and the delete window
const SourceSystem = "gcp_billing_export"

const hostProvider = "Google Cloud"

// Mapper implements mapper.ProviderMapper for GCP
type Mapper struct {
	categories *mapper.CategoryTable
}

// NewMapper creates a GCP mapper, with optional category rule overrides
// checked ahead of the built-in table
func NewMapper(overrides []mapper.CategoryRule) *Mapper {
	table := mapper.NewCategoryTable(builtinRules)
	if len(overrides) > 0 {
		table.Prepend(overrides)
	}
	return &Mapper{categories: table}
}

// Provider implements mapper.ProviderMapper
func (m *Mapper) Provider() focus.Provider {
	return focus.ProviderGCP
}

// SourceSystem implements mapper.ProviderMapper
func (m *Mapper) SourceSystem() string {
	return SourceSystem
}

// DateColumn implements mapper.ProviderMapper
func (m *Mapper) DateColumn() string {
	return "usage_start_time"
}

// Include keeps rows that carry money: a nonzero cost, a nonzero credit
// total, or a tax/adjustment line even at zero cost
func (m *Mapper) Include(raw mapper.RawRecord) bool {
	if !raw.Dec("cost").IsZero() || !raw.Dec("credits_total").IsZero() {
		return true
	}
	switch raw.Str("cost_type") {
	case "tax", "adjustment":
		return true
	}
	return false
}

// HierarchyCandidates implements mapper.ProviderMapper. GCP candidates come
// from resource labels, falling back to the project id.
func (m *Mapper) HierarchyCandidates(raw mapper.RawRecord) []string {
	labels := raw.Tags("labels")
	return []string{
		labels["cost_center"],
		labels["team"],
		labels["department"],
		labels["entity_id"],
		raw.Str("project_id"),
	}
}

// MapRow implements mapper.ProviderMapper
func (m *Mapper) MapRow(raw mapper.RawRecord) (focus.Record, error) {
	cost := raw.Dec("cost")
	credits := raw.Dec("credits_total")

	rec := focus.Record{
		BillingAccountID: raw.Str("billing_account_id"),
		SubAccountID:     raw.Str("project_id"),
		SubAccountName:   raw.Str("project_name"),

		ChargePeriodStart: raw.Time("usage_start_time"),
		ChargePeriodEnd:   raw.Time("usage_end_time"),

		InvoiceIssuerName:   hostProvider,
		ServiceProviderName: hostProvider,
		HostProviderName:    hostProvider,

		ServiceName:        raw.Str("service_description"),
		ServiceSubcategory: raw.Str("sku_description"),

		ResourceID:   raw.FirstStr("resource_global_name", "resource_name"),
		ResourceName: raw.Str("resource_name"),
		ResourceType: raw.Str("resource_type"),
		RegionID:     raw.Str("region"),
		RegionName:   raw.FirstStr("location", "region"),

		ConsumedQuantity: raw.Dec("usage_amount"),
		ConsumedUnit:     raw.Str("usage_unit"),
		PricingUnit:      raw.FirstStr("pricing_unit", "usage_unit"),

		BillingCurrency: raw.StrOr("currency", "USD"),
		SkuID:           raw.Str("sku_id"),
		Tags:            raw.Tags("labels"),
	}

	rec.BillingPeriodStart, rec.BillingPeriodEnd = billingPeriod(raw.Str("invoice_month"), rec.ChargePeriodStart)

	// Marketplace rows are sold by a third party but invoiced by Google.
	if raw.Bool("is_marketplace") {
		if seller := raw.Str("seller_name"); seller != "" {
			rec.ServiceProviderName = seller
		}
	}

	rec.ServiceCategory = m.categories.Categorize(rec.ServiceName)

	if qty, ok := raw.DecOK("pricing_quantity"); ok {
		rec.PricingQuantity = qty
	} else {
		rec.PricingQuantity = rec.ConsumedQuantity
	}

	// Cost quadruple. Credits are exported as negative amounts, so the
	// effective cost is an addition that nets them off the raw cost.
	rec.BilledCost = cost
	rec.ContractedCost = cost
	rec.EffectiveCost = cost.Add(credits)
	if listCost, ok := raw.DecOK("cost_at_list"); ok {
		rec.ListCost = listCost
	} else {
		rec.ListCost = cost
	}

	rec.ContractedUnitPrice = raw.Dec("effective_price")
	if listPrice, ok := raw.DecOK("list_price"); ok {
		rec.ListUnitPrice = listPrice
	} else if rec.PricingQuantity.IsPositive() {
		rec.ListUnitPrice = rec.ListCost.Div(rec.PricingQuantity)
	} else {
		rec.ListUnitPrice = rec.ContractedUnitPrice
	}

	m.classify(&rec, raw, cost)
	m.applyCommitment(&rec, raw)
	m.applyPricingCategory(&rec, raw)

	rec.SkuPriceDetails = skuDetails(raw)

	return rec, nil
}

// classify maps the export's cost_type onto the canonical charge triple
func (m *Mapper) classify(rec *focus.Record, raw mapper.RawRecord, cost decimal.Decimal) {
	costType := raw.StrOr("cost_type", "regular")
	rec.ChargeType = costType
	rec.ChargeFrequency = focus.FrequencyUsageBased

	switch costType {
	case "tax":
		rec.ChargeCategory = focus.ChargeTax
		rec.ChargeFrequency = focus.FrequencyOneTime
	case "adjustment", "rounding_error":
		rec.ChargeCategory = focus.ChargeAdjustment
		rec.ChargeFrequency = focus.FrequencyOneTime
	default:
		rec.ChargeCategory = focus.ChargeUsage
	}

	if cost.IsNegative() {
		rec.MarkCorrection()
	}
}

func (m *Mapper) applyCommitment(rec *focus.Record, raw mapper.RawRecord) {
	id := raw.Str("commitment_id")
	if id == "" {
		return
	}
	rec.SetCommitment(id, raw.StrOr("commitment_name", id), focus.CommitmentReservation)
}

func (m *Mapper) applyPricingCategory(rec *focus.Record, raw mapper.RawRecord) {
	sku := strings.ToLower(rec.ServiceSubcategory)
	switch {
	case rec.CommitmentDiscountID != nil:
		rec.PricingCategory = focus.PricingCommitted
	case raw.Bool("is_preemptible") || strings.Contains(sku, "spot") || strings.Contains(sku, "preemptible"):
		rec.PricingCategory = focus.PricingSpot
	case strings.Contains(sku, "commitment"):
		rec.PricingCategory = focus.PricingCommitted
	default:
		rec.PricingCategory = focus.PricingOnDemand
	}
}

// skuDetails assembles the audit-only pricing metadata bag
func skuDetails(raw mapper.RawRecord) map[string]interface{} {
	details := make(map[string]interface{})
	for _, key := range []string{"effective_price", "list_price", "cost_at_list", "tier_start_amount", "pricing_unit_quantity"} {
		if d, ok := raw.DecOK(key); ok {
			details[key] = d.String()
		}
	}
	for _, key := range []string{"invoice_month", "service_id", "cost_type"} {
		if s := raw.Str(key); s != "" {
			details[key] = s
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// billingPeriod derives the calendar month bucket from the invoice month
// ("200601" form), falling back to the charge period's month
func billingPeriod(invoiceMonth string, chargeStart time.Time) (time.Time, time.Time) {
	if t, err := time.Parse("200601", invoiceMonth); err == nil {
		return t, t.AddDate(0, 1, 0)
	}
	start := time.Date(chargeStart.Year(), chargeStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
