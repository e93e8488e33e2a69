// Package azure maps raw Azure cost export rows to canonical cost records.
//
// Azure cost semantics: cost_in_billing_currency is both the invoiced and
// the contracted amount; Azure credit applied to a line is reported
// separately and nets against it, and the pay-as-you-go price reconstructs
// the list cost when present. The export's chargeType/frequency/pricingModel
// columns map almost one-to-one onto the canonical classification.
package azure

import (
	"strings"
	"time"

	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// SourceSystem identifies Azure rows in lineage and the delete window
const SourceSystem = "azure_cost_export"

const hostProvider = "Microsoft Azure"

// Mapper implements mapper.ProviderMapper for Azure
type Mapper struct {
	categories *mapper.CategoryTable
}

// NewMapper creates an Azure mapper, with optional category rule overrides
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
	return focus.ProviderAzure
}

// SourceSystem implements mapper.ProviderMapper
func (m *Mapper) SourceSystem() string {
	return SourceSystem
}

// DateColumn implements mapper.ProviderMapper
func (m *Mapper) DateColumn() string {
	return "date"
}

// Include keeps rows with nonzero cost or applied credit, plus
// refund/credit/tax/adjustment charge types even at zero cost
func (m *Mapper) Include(raw mapper.RawRecord) bool {
	if !raw.Dec("cost_in_billing_currency").IsZero() || !raw.Dec("azure_credit_applied").IsZero() {
		return true
	}
	switch raw.Str("charge_type") {
	case "Refund", "Credit", "Tax", "RoundingAdjustment":
		return true
	}
	return false
}

// HierarchyCandidates implements mapper.ProviderMapper. Azure candidates
// come from resource tags, falling back to the subscription.
func (m *Mapper) HierarchyCandidates(raw mapper.RawRecord) []string {
	tags := raw.Tags("tags")
	return []string{
		tags["cost_center"],
		tags["CostCenter"],
		tags["team"],
		tags["Team"],
		tags["department"],
		tags["Department"],
		tags["entity_id"],
		raw.Str("subscription_id"),
	}
}

// MapRow implements mapper.ProviderMapper
func (m *Mapper) MapRow(raw mapper.RawRecord) (focus.Record, error) {
	cost := raw.Dec("cost_in_billing_currency")
	quantity := raw.Dec("quantity")

	rec := focus.Record{
		BillingAccountID: raw.Str("billing_account_id"),
		SubAccountID:     raw.Str("subscription_id"),
		SubAccountName:   raw.Str("subscription_name"),

		BillingPeriodStart: raw.Time("billing_period_start_date"),
		BillingPeriodEnd:   raw.Time("billing_period_end_date"),

		InvoiceIssuerName:   "Microsoft",
		ServiceProviderName: "Microsoft",
		HostProviderName:    hostProvider,

		ServiceName:        raw.FirstStr("meter_category", "consumed_service"),
		ServiceSubcategory: raw.Str("meter_subcategory"),

		ResourceID:   raw.Str("resource_id"),
		ResourceName: raw.FirstStr("resource_name"),
		RegionID:     raw.Str("resource_location"),
		RegionName:   raw.Str("resource_location"),

		ConsumedQuantity: quantity,
		ConsumedUnit:     raw.Str("unit_of_measure"),
		PricingUnit:      raw.Str("unit_of_measure"),
		PricingQuantity:  quantity,

		BillingCurrency: raw.StrOr("billing_currency", "USD"),
		SkuID:           raw.Str("meter_id"),
		Tags:            raw.Tags("tags"),
	}

	if rec.ResourceName == "" {
		rec.ResourceName = resourceLeaf(rec.ResourceID)
	}

	// The export is daily-grained: one row covers the usage date.
	day := raw.Time("date")
	rec.ChargePeriodStart = day
	rec.ChargePeriodEnd = day.Add(24 * time.Hour)

	// Marketplace publishers sell through Azure but invoice under their own
	// name.
	if strings.EqualFold(raw.Str("publisher_type"), "Marketplace") {
		if publisher := raw.Str("publisher_name"); publisher != "" {
			rec.ServiceProviderName = publisher
			rec.InvoiceIssuerName = publisher
		}
	}

	rec.ServiceCategory = m.categories.Categorize(
		raw.Str("meter_category"),
		raw.Str("service_family"),
		raw.Str("consumed_service"),
	)

	// Cost quadruple. Applied Azure credit is reported as a positive amount
	// that nets off the billed cost; the pay-as-you-go price rebuilds the
	// list cost when exported, else list falls back to billed.
	rec.BilledCost = cost
	rec.ContractedCost = cost
	rec.EffectiveCost = cost.Sub(raw.Dec("azure_credit_applied"))

	paygPrice, hasPayg := raw.DecOK("payg_price")
	if hasPayg && !quantity.IsZero() {
		rec.ListCost = quantity.Mul(paygPrice)
	} else {
		rec.ListCost = cost
	}

	rec.ListUnitPrice = paygPrice
	if effective, ok := raw.DecOK("effective_price"); ok {
		rec.ContractedUnitPrice = effective
	} else {
		rec.ContractedUnitPrice = raw.Dec("unit_price")
	}

	m.classify(&rec, raw)
	m.applyCommitment(&rec, raw)
	m.applyPricingCategory(&rec, raw)

	rec.SkuPriceDetails = skuDetails(raw)

	return rec, nil
}

// classify maps the export's chargeType and frequency onto the canonical
// charge triple
func (m *Mapper) classify(rec *focus.Record, raw mapper.RawRecord) {
	chargeType := raw.StrOr("charge_type", "Usage")
	rec.ChargeType = chargeType
	rec.ChargeFrequency = frequency(raw.Str("frequency"))

	switch chargeType {
	case "Usage", "UsageCharge":
		rec.ChargeCategory = focus.ChargeUsage
	case "Purchase":
		rec.ChargeCategory = focus.ChargePurchase
	case "Refund", "Credit":
		rec.ChargeCategory = focus.ChargeCredit
		rec.MarkCorrection()
	case "Tax":
		rec.ChargeCategory = focus.ChargeTax
	case "RoundingAdjustment":
		rec.ChargeCategory = focus.ChargeAdjustment
	default:
		rec.ChargeCategory = focus.ChargeUsage
	}

	if rec.BilledCost.IsNegative() && rec.ChargeClass == nil {
		rec.MarkCorrection()
	}
}

// applyCommitment populates the commitment triple from the reservation or
// benefit identifiers; with neither present the triple stays nil
func (m *Mapper) applyCommitment(rec *focus.Record, raw mapper.RawRecord) {
	if id := raw.Str("reservation_id"); id != "" {
		rec.SetCommitment(id, raw.StrOr("reservation_name", id), focus.CommitmentReservation)
		return
	}
	if id := raw.Str("benefit_id"); id != "" {
		typ := focus.CommitmentBenefit
		if strings.EqualFold(raw.Str("pricing_model"), "SavingsPlan") {
			typ = focus.CommitmentSavingsPlan
		}
		rec.SetCommitment(id, raw.StrOr("benefit_name", id), typ)
	}
}

func (m *Mapper) applyPricingCategory(rec *focus.Record, raw mapper.RawRecord) {
	switch strings.ToLower(raw.Str("pricing_model")) {
	case "reservation", "savingsplan":
		rec.PricingCategory = focus.PricingCommitted
	case "spot":
		rec.PricingCategory = focus.PricingSpot
	default:
		if rec.ChargeCategory == focus.ChargeCredit {
			rec.PricingCategory = focus.PricingCredit
		} else {
			rec.PricingCategory = focus.PricingOnDemand
		}
	}
}

// frequency maps the export's frequency column onto the canonical enum
func frequency(f string) focus.ChargeFrequency {
	switch f {
	case "OneTime":
		return focus.FrequencyOneTime
	case "Recurring":
		return focus.FrequencyRecurring
	default:
		return focus.FrequencyUsageBased
	}
}

// skuDetails assembles the audit-only pricing metadata bag
func skuDetails(raw mapper.RawRecord) map[string]interface{} {
	details := make(map[string]interface{})
	for _, key := range []string{"payg_price", "unit_price", "effective_price", "azure_credit_applied"} {
		if d, ok := raw.DecOK(key); ok {
			details[key] = d.String()
		}
	}
	for _, key := range []string{"pricing_model", "frequency", "publisher_type", "resource_group", "meter_name"} {
		if s := raw.Str(key); s != "" {
			details[key] = s
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// resourceLeaf returns the final path segment of an Azure resource id
func resourceLeaf(id string) string {
	if id == "" {
		return ""
	}
	if idx := strings.LastIndex(id, "/"); idx >= 0 && idx < len(id)-1 {
		return id[idx+1:]
	}
	return id
}
