// Package focus - Canonical cost record definition
package focus

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one canonical cost row. The cost quadruple carries distinct
// semantics that must never be conflated:
//
//	ListCost       retail price, no discounts
//	ContractedCost after negotiated/committed pricing, before credits
//	BilledCost     gross amount as invoiced
//	EffectiveCost  net amount after all credits and discounts
type Record struct {
	// Identity / grouping
	BillingAccountID string `json:"billing_account_id"`
	SubAccountID     string `json:"sub_account_id"`
	SubAccountName   string `json:"sub_account_name"`

	// Time
	ChargePeriodStart  time.Time `json:"charge_period_start"`
	ChargePeriodEnd    time.Time `json:"charge_period_end"`
	BillingPeriodStart time.Time `json:"billing_period_start"`
	BillingPeriodEnd   time.Time `json:"billing_period_end"`

	// Provenance naming. HostProviderName names the cloud platform running
	// the workload; ServiceProviderName and InvoiceIssuerName differ from it
	// for marketplace resellers.
	InvoiceIssuerName   string `json:"invoice_issuer_name"`
	ServiceProviderName string `json:"service_provider_name"`
	HostProviderName    string `json:"host_provider_name"`

	// Service taxonomy
	ServiceCategory    ServiceCategory `json:"service_category"`
	ServiceName        string          `json:"service_name"`
	ServiceSubcategory string          `json:"service_subcategory"`

	// Resource identity
	ResourceID   string `json:"resource_id"`
	ResourceName string `json:"resource_name"`
	ResourceType string `json:"resource_type"`
	RegionID     string `json:"region_id"`
	RegionName   string `json:"region_name"`

	// Usage / pricing
	ConsumedQuantity    decimal.Decimal `json:"consumed_quantity"`
	ConsumedUnit        string          `json:"consumed_unit"`
	PricingCategory     PricingCategory `json:"pricing_category"`
	PricingUnit         string          `json:"pricing_unit"`
	PricingQuantity     decimal.Decimal `json:"pricing_quantity"`
	ListUnitPrice       decimal.Decimal `json:"list_unit_price"`
	ContractedUnitPrice decimal.Decimal `json:"contracted_unit_price"`

	// Cost quadruple
	ListCost       decimal.Decimal `json:"list_cost"`
	ContractedCost decimal.Decimal `json:"contracted_cost"`
	BilledCost     decimal.Decimal `json:"billed_cost"`
	EffectiveCost  decimal.Decimal `json:"effective_cost"`

	// BillingCurrency is the ISO currency code
	BillingCurrency string `json:"billing_currency"`

	// Charge classification. ChargeType preserves the provider's native
	// line-item type verbatim.
	ChargeCategory  ChargeCategory  `json:"charge_category"`
	ChargeClass     *ChargeClass    `json:"charge_class,omitempty"`
	ChargeType      string          `json:"charge_type"`
	ChargeFrequency ChargeFrequency `json:"charge_frequency"`

	// Commitment discount triple: either all three populated or all nil
	CommitmentDiscountID   *string                 `json:"commitment_discount_id,omitempty"`
	CommitmentDiscountName *string                 `json:"commitment_discount_name,omitempty"`
	CommitmentDiscountType *CommitmentDiscountType `json:"commitment_discount_type,omitempty"`

	// SKU
	SkuID string `json:"sku_id"`

	// SkuPriceDetails is a schema-less bag of provider pricing metadata,
	// preserved for audit only and never used in cost math
	SkuPriceDetails map[string]interface{} `json:"sku_price_details,omitempty"`

	// Tags are the original resource labels, used as hierarchy-resolution
	// input and preserved for audit
	Tags map[string]string `json:"tags,omitempty"`

	// Hierarchy is nil when no entity matched; a non-nil value always has
	// every field populated
	Hierarchy *HierarchyAttribution `json:"hierarchy,omitempty"`

	// Lineage is always populated
	Lineage Lineage `json:"lineage"`
}

// HierarchyAttribution is the organizational entity a charge is allocated to.
// Keeping it behind a single pointer makes partial attribution
// unrepresentable: the five fields and ValidatedAt travel together.
type HierarchyAttribution struct {
	EntityID    string    `json:"entity_id"`
	EntityName  string    `json:"entity_name"`
	LevelCode   string    `json:"level_code"`
	Path        string    `json:"path"`
	PathNames   string    `json:"path_names"`
	ValidatedAt time.Time `json:"validated_at"`
}

// Lineage identifies the pipeline run that produced a row, for audit and
// replay. Every field is required.
type Lineage struct {
	SourceSystem    string    `json:"source_system"`
	SourceRecordID  string    `json:"source_record_id"`
	UpdatedAt       time.Time `json:"updated_at"`
	CloudProvider   Provider  `json:"cloud_provider"`
	CloudAccountID  string    `json:"cloud_account_id"`
	PipelineID      string    `json:"pipeline_id"`
	CredentialID    string    `json:"credential_id"`
	PipelineRunDate string    `json:"pipeline_run_date"`
	RunID           string    `json:"run_id"`
	IngestedAt      time.Time `json:"ingested_at"`
}

// SetCommitment populates the commitment triple as a unit
func (r *Record) SetCommitment(id, name string, typ CommitmentDiscountType) {
	r.CommitmentDiscountID = &id
	r.CommitmentDiscountName = &name
	r.CommitmentDiscountType = &typ
}

// MarkCorrection sets the Correction charge class
func (r *Record) MarkCorrection() {
	c := ClassCorrection
	r.ChargeClass = &c
}

// IsCorrection reports whether the row is a correction
func (r *Record) IsCorrection() bool {
	return r.ChargeClass != nil && *r.ChargeClass == ClassCorrection
}
