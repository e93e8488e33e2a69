// Package aws maps raw AWS cost and usage report rows to canonical cost
// records.
//
// AWS exposes four cost views per line: unblended (the invoice), net
// unblended (after discount programs), amortized (commitment purchases
// spread over their term) and public on-demand (list). Each feeds exactly
// one leg of the canonical quadruple, with unblended as the fallback when a
// view is absent.
package aws

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// SourceSystem identifies AWS rows in lineage and the delete window
const SourceSystem = "aws_cur"

const hostProvider = "Amazon Web Services"

// adjustmentTypes are CUR line item types that must be kept even when the
// unblended cost is zero
var adjustmentTypes = []string{
	"Credit",
	"Refund",
	"Tax",
	"Fee",
	"RIFee",
	"SavingsPlanRecurringFee",
	"SavingsPlanUpfrontFee",
	"SavingsPlanNegation",
	"EdpDiscount",
	"PrivateRateDiscount",
	"BundledDiscount",
}

// Mapper implements mapper.ProviderMapper for AWS
type Mapper struct {
	categories *mapper.CategoryTable
}

// NewMapper creates an AWS mapper, with optional category rule overrides
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
	return focus.ProviderAWS
}

// SourceSystem implements mapper.ProviderMapper
func (m *Mapper) SourceSystem() string {
	return SourceSystem
}

// DateColumn implements mapper.ProviderMapper
func (m *Mapper) DateColumn() string {
	return "usage_start_date"
}

// Include keeps rows with nonzero unblended cost plus every adjustment line
// item type regardless of cost sign or magnitude
func (m *Mapper) Include(raw mapper.RawRecord) bool {
	if !raw.Dec("unblended_cost").IsZero() {
		return true
	}
	return lo.Contains(adjustmentTypes, raw.Str("line_item_type"))
}

// HierarchyCandidates implements mapper.ProviderMapper. AWS candidates come
// from resource tags, then cost category values, then the linked account.
func (m *Mapper) HierarchyCandidates(raw mapper.RawRecord) []string {
	tags := raw.Tags("resource_tags")
	candidates := []string{
		tags["cost_center"],
		tags["CostCenter"],
		tags["team"],
		tags["Team"],
		tags["department"],
		tags["Department"],
		tags["entity_id"],
	}

	// Cost category assignments are operator-defined groupings; their
	// values are checked in key order for determinism.
	costCategories := raw.Tags("cost_categories")
	keys := lo.Keys(costCategories)
	sort.Strings(keys)
	for _, k := range keys {
		candidates = append(candidates, costCategories[k])
	}

	return append(candidates, raw.Str("usage_account_id"))
}

// MapRow implements mapper.ProviderMapper
func (m *Mapper) MapRow(raw mapper.RawRecord) (focus.Record, error) {
	unblended := raw.Dec("unblended_cost")

	rec := focus.Record{
		BillingAccountID: raw.Str("payer_account_id"),
		SubAccountID:     raw.Str("usage_account_id"),
		SubAccountName:   raw.Str("usage_account_name"),

		ChargePeriodStart:  raw.Time("usage_start_date"),
		ChargePeriodEnd:    raw.Time("usage_end_date"),
		BillingPeriodStart: raw.Time("billing_period_start"),
		BillingPeriodEnd:   raw.Time("billing_period_end"),

		InvoiceIssuerName:   raw.StrOr("invoicing_entity", hostProvider),
		ServiceProviderName: raw.StrOr("legal_entity", hostProvider),
		HostProviderName:    hostProvider,

		ServiceName:        raw.FirstStr("product_name", "product_code"),
		ServiceSubcategory: raw.Str("product_family"),

		ResourceID:   raw.Str("resource_id"),
		ResourceName: resourceLeaf(raw.Str("resource_id")),
		ResourceType: raw.Str("instance_type"),
		RegionID:     raw.Str("region"),
		RegionName:   raw.Str("region"),

		ConsumedQuantity: raw.Dec("usage_amount"),
		ConsumedUnit:     raw.FirstStr("usage_unit", "pricing_unit"),
		PricingUnit:      raw.Str("pricing_unit"),
		PricingQuantity:  raw.Dec("usage_amount"),

		BillingCurrency: raw.StrOr("currency_code", "USD"),
		SkuID:           raw.Str("sku"),
		Tags:            raw.Tags("resource_tags"),
	}

	rec.ServiceCategory = m.categories.Categorize(raw.Str("product_code"), raw.Str("product_family"))

	// Cost quadruple with unblended as the universal fallback: amortized and
	// net views only exist for accounts with commitments or discount
	// programs, and the public on-demand view is absent on adjustment rows.
	rec.BilledCost = unblended
	if amortized, ok := raw.DecOK("amortized_cost"); ok {
		rec.ContractedCost = amortized
	} else {
		rec.ContractedCost = unblended
	}
	if net, ok := raw.DecOK("net_unblended_cost"); ok {
		rec.EffectiveCost = net
	} else {
		rec.EffectiveCost = unblended
	}
	if list, ok := raw.DecOK("public_on_demand_cost"); ok {
		rec.ListCost = list
	} else {
		rec.ListCost = unblended
	}

	rec.ListUnitPrice = raw.Dec("public_on_demand_rate")
	if rate, ok := raw.DecOK("net_unblended_rate"); ok {
		rec.ContractedUnitPrice = rate
	} else {
		rec.ContractedUnitPrice = raw.Dec("unblended_rate")
	}

	m.classify(&rec, raw)
	m.applyCommitment(&rec, raw)
	m.applyPricingCategory(&rec, raw)

	rec.SkuPriceDetails = skuDetails(raw)

	return rec, nil
}

// classify maps the CUR line item type onto the canonical charge triple
func (m *Mapper) classify(rec *focus.Record, raw mapper.RawRecord) {
	lineItemType := raw.StrOr("line_item_type", "Usage")
	rec.ChargeType = lineItemType
	rec.ChargeFrequency = focus.FrequencyUsageBased

	switch lineItemType {
	case "Usage", "DiscountedUsage", "SavingsPlanCoveredUsage":
		rec.ChargeCategory = focus.ChargeUsage
	case "Credit", "Refund":
		rec.ChargeCategory = focus.ChargeCredit
		rec.ChargeFrequency = focus.FrequencyOneTime
		rec.MarkCorrection()
	case "EdpDiscount", "PrivateRateDiscount", "BundledDiscount":
		rec.ChargeCategory = focus.ChargeCredit
		rec.MarkCorrection()
	case "Tax":
		rec.ChargeCategory = focus.ChargeTax
		rec.ChargeFrequency = focus.FrequencyOneTime
	case "Fee", "SavingsPlanUpfrontFee":
		rec.ChargeCategory = focus.ChargePurchase
		rec.ChargeFrequency = focus.FrequencyOneTime
	case "RIFee", "SavingsPlanRecurringFee":
		rec.ChargeCategory = focus.ChargePurchase
		rec.ChargeFrequency = focus.FrequencyRecurring
	case "SavingsPlanNegation":
		rec.ChargeCategory = focus.ChargeAdjustment
		rec.MarkCorrection()
	default:
		rec.ChargeCategory = focus.ChargeUsage
	}

	if rec.BilledCost.IsNegative() && rec.ChargeClass == nil {
		rec.MarkCorrection()
	}
}

// applyCommitment populates the commitment triple from the reservation or
// savings plan ARN; absence of both means the triple stays nil
func (m *Mapper) applyCommitment(rec *focus.Record, raw mapper.RawRecord) {
	if arn := raw.Str("reservation_arn"); arn != "" {
		rec.SetCommitment(arn, resourceLeaf(arn), focus.CommitmentReservedInstance)
		return
	}
	if arn := raw.Str("savings_plan_arn"); arn != "" {
		rec.SetCommitment(arn, resourceLeaf(arn), focus.CommitmentSavingsPlan)
	}
}

func (m *Mapper) applyPricingCategory(rec *focus.Record, raw mapper.RawRecord) {
	switch {
	case rec.ChargeCategory == focus.ChargeCredit:
		rec.PricingCategory = focus.PricingCredit
	case rec.CommitmentDiscountID != nil,
		rec.ChargeType == "DiscountedUsage",
		rec.ChargeType == "SavingsPlanCoveredUsage":
		rec.PricingCategory = focus.PricingCommitted
	case strings.Contains(raw.Str("usage_type"), "SpotUsage"):
		rec.PricingCategory = focus.PricingSpot
	default:
		rec.PricingCategory = focus.PricingOnDemand
	}
}

// skuDetails assembles the audit-only pricing metadata bag
func skuDetails(raw mapper.RawRecord) map[string]interface{} {
	details := make(map[string]interface{})
	for _, key := range []string{"public_on_demand_rate", "unblended_rate", "net_unblended_rate"} {
		if d, ok := raw.DecOK(key); ok {
			details[key] = d.String()
		}
	}
	for _, key := range []string{"usage_type", "operation", "purchase_option", "lease_contract_length", "offering_class", "item_description"} {
		if s := raw.Str(key); s != "" {
			details[key] = s
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// resourceLeaf returns the final path segment of an ARN or resource id
func resourceLeaf(id string) string {
	if id == "" {
		return ""
	}
	if idx := strings.LastIndexAny(id, "/:"); idx >= 0 && idx < len(id)-1 {
		return id[idx+1:]
	}
	return id
}
