// Package oci maps raw OCI cost report rows to canonical cost records.
//
// OCI cost semantics: my_cost is both the invoiced and the contracted
// amount. The report optionally carries a provider-computed net cost; when
// absent, the effective cost nets exported credits (negative) off my_cost.
// List cost is rebuilt from the list rate when exported. Corrections are
// flagged with a boolean rather than a charge-type taxonomy.
package oci

import (
	"sort"
	"strings"
	"time"

	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// SourceSystem identifies OCI rows in lineage and the delete window
const SourceSystem = "oci_cost_report"

const hostProvider = "Oracle Cloud"

// Mapper implements mapper.ProviderMapper for OCI
type Mapper struct {
	categories *mapper.CategoryTable
}

// NewMapper creates an OCI mapper, with optional category rule overrides
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
	return focus.ProviderOCI
}

// SourceSystem implements mapper.ProviderMapper
func (m *Mapper) SourceSystem() string {
	return SourceSystem
}

// DateColumn implements mapper.ProviderMapper
func (m *Mapper) DateColumn() string {
	return "interval_usage_start"
}

// Include keeps rows with nonzero cost or credits, plus correction lines
// even at zero cost
func (m *Mapper) Include(raw mapper.RawRecord) bool {
	if !raw.Dec("my_cost").IsZero() || !raw.Dec("credits").IsZero() {
		return true
	}
	return raw.Bool("is_correction")
}

// HierarchyCandidates implements mapper.ProviderMapper. OCI candidates come
// from freeform tags, then defined tags, then the compartment.
func (m *Mapper) HierarchyCandidates(raw mapper.RawRecord) []string {
	freeform := raw.Tags("freeform_tags")
	candidates := []string{
		freeform["cost_center"],
		freeform["team"],
		freeform["department"],
		freeform["entity_id"],
	}

	// Defined tags are namespaced ("Namespace.Key"); cost-allocation
	// namespaces are checked in key order for determinism.
	defined := raw.Tags("defined_tags")
	keys := make([]string, 0, len(defined))
	for k := range defined {
		lower := strings.ToLower(k)
		if strings.HasPrefix(lower, "oracle-tags.") || strings.HasPrefix(lower, "costtracking.") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		candidates = append(candidates, defined[k])
	}

	return append(candidates, raw.Str("compartment_id"), raw.Str("compartment_name"))
}

// MapRow implements mapper.ProviderMapper
func (m *Mapper) MapRow(raw mapper.RawRecord) (focus.Record, error) {
	cost := raw.Dec("my_cost")
	quantity := raw.Dec("billed_quantity")

	rec := focus.Record{
		BillingAccountID: raw.Str("tenant_id"),
		SubAccountID:     raw.Str("compartment_id"),
		SubAccountName:   raw.Str("compartment_name"),

		ChargePeriodStart: raw.Time("interval_usage_start"),
		ChargePeriodEnd:   raw.Time("interval_usage_end"),

		InvoiceIssuerName:   hostProvider,
		ServiceProviderName: hostProvider,
		HostProviderName:    hostProvider,

		ServiceName:        raw.Str("service"),
		ServiceSubcategory: raw.Str("product_description"),

		ResourceID:   raw.Str("resource_id"),
		ResourceName: raw.FirstStr("resource_name"),
		RegionID:     raw.Str("region"),
		RegionName:   raw.Str("region"),

		ConsumedQuantity: quantity,
		ConsumedUnit:     raw.Str("billing_unit"),
		PricingUnit:      raw.Str("billing_unit"),
		PricingQuantity:  quantity,

		BillingCurrency: raw.StrOr("currency_code", "USD"),
		SkuID:           raw.Str("sku"),
		Tags:            raw.Tags("freeform_tags"),
	}

	if rec.ResourceName == "" {
		rec.ResourceName = resourceLeaf(rec.ResourceID)
	}

	start := rec.ChargePeriodStart
	rec.BillingPeriodStart = monthStart(start)
	rec.BillingPeriodEnd = rec.BillingPeriodStart.AddDate(0, 1, 0)

	rec.ServiceCategory = m.categories.Categorize(rec.ServiceName, rec.ServiceSubcategory)

	// Cost quadruple. net_cost wins when the report carries it; otherwise
	// credits (exported negative) net against my_cost.
	rec.BilledCost = cost
	rec.ContractedCost = cost
	if net, ok := raw.DecOK("net_cost"); ok {
		rec.EffectiveCost = net
	} else {
		rec.EffectiveCost = cost.Add(raw.Dec("credits"))
	}

	listRate, hasListRate := raw.DecOK("list_rate")
	if hasListRate && !quantity.IsZero() {
		rec.ListCost = quantity.Mul(listRate)
	} else {
		rec.ListCost = cost
	}

	rec.ListUnitPrice = listRate
	rec.ContractedUnitPrice = raw.Dec("unit_price")
	if rec.ListUnitPrice.IsZero() {
		rec.ListUnitPrice = rec.ContractedUnitPrice
	}

	m.classify(&rec, raw)
	m.applyCommitment(&rec, raw)

	rec.SkuPriceDetails = skuDetails(raw)

	return rec, nil
}

// classify derives the charge triple from the correction flag and cost sign
func (m *Mapper) classify(rec *focus.Record, raw mapper.RawRecord) {
	rec.ChargeFrequency = focus.FrequencyUsageBased

	if raw.Bool("is_correction") {
		rec.ChargeType = "correction"
		rec.ChargeCategory = focus.ChargeCredit
		rec.MarkCorrection()
		return
	}

	rec.ChargeType = "usage"
	rec.ChargeCategory = focus.ChargeUsage
	if rec.BilledCost.IsNegative() {
		rec.MarkCorrection()
	}
}

// applyCommitment treats flex subscriptions (pre-purchased universal
// credits) as the commitment mechanism; pay-as-you-go rows keep a nil triple
func (m *Mapper) applyCommitment(rec *focus.Record, raw mapper.RawRecord) {
	model := strings.ToUpper(raw.Str("pricing_model"))
	committed := model == "ANNUAL_FLEX" || model == "MONTHLY_FLEX"

	switch {
	case rec.ChargeCategory == focus.ChargeCredit:
		rec.PricingCategory = focus.PricingCredit
	case committed:
		rec.PricingCategory = focus.PricingCommitted
	case !raw.Dec("overage_cost").IsZero():
		rec.PricingCategory = focus.PricingOverage
	default:
		rec.PricingCategory = focus.PricingOnDemand
	}

	if committed {
		if id := raw.Str("subscription_id"); id != "" {
			rec.SetCommitment(id, id, focus.CommitmentBenefit)
		}
	}
}

// skuDetails assembles the audit-only pricing metadata bag
func skuDetails(raw mapper.RawRecord) map[string]interface{} {
	details := make(map[string]interface{})
	for _, key := range []string{"unit_price", "list_rate", "overage_cost", "credits"} {
		if d, ok := raw.DecOK(key); ok {
			details[key] = d.String()
		}
	}
	for _, key := range []string{"pricing_model", "subscription_id", "sku_name", "availability_domain"} {
		if s := raw.Str(key); s != "" {
			details[key] = s
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// resourceLeaf returns the final dotted segment of an OCID
func resourceLeaf(id string) string {
	if id == "" {
		return ""
	}
	if idx := strings.LastIndex(id, "."); idx >= 0 && idx < len(id)-1 {
		return id[idx+1:]
	}
	return id
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
