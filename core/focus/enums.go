// Package focus defines the canonical cost schema shared across all layers.
// One record represents one charge line from one provider on one day,
// normalized to a FOCUS-style column set. This package contains NO business
// logic - only type definitions.
package focus

// Provider represents a cloud provider
type Provider string

const (
	ProviderGCP     Provider = "gcp"
	ProviderAWS     Provider = "aws"
	ProviderAzure   Provider = "azure"
	ProviderOCI     Provider = "oci"
	ProviderUnknown Provider = "unknown"
)

// String returns the string representation of the provider
func (p Provider) String() string {
	return string(p)
}

// IsValid checks if the provider is a known provider
func (p Provider) IsValid() bool {
	switch p {
	case ProviderGCP, ProviderAWS, ProviderAzure, ProviderOCI:
		return true
	default:
		return false
	}
}

// All returns the closed set of supported providers
func All() []Provider {
	return []Provider{ProviderGCP, ProviderAWS, ProviderAzure, ProviderOCI}
}

// ServiceCategory is the normalized service bucket
type ServiceCategory string

const (
	CategoryCompute    ServiceCategory = "Compute"
	CategoryStorage    ServiceCategory = "Storage"
	CategoryDatabase   ServiceCategory = "Database"
	CategoryNetworking ServiceCategory = "Networking"
	CategoryAIML       ServiceCategory = "AI-ML"
	CategorySecurity   ServiceCategory = "Security"
	CategoryOther      ServiceCategory = "Other"
)

// IsValid checks if the category is part of the closed set
func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategoryCompute, CategoryStorage, CategoryDatabase, CategoryNetworking,
		CategoryAIML, CategorySecurity, CategoryOther:
		return true
	default:
		return false
	}
}

// ChargeCategory classifies the nature of a charge line
type ChargeCategory string

const (
	ChargeUsage      ChargeCategory = "Usage"
	ChargePurchase   ChargeCategory = "Purchase"
	ChargeCredit     ChargeCategory = "Credit"
	ChargeTax        ChargeCategory = "Tax"
	ChargeAdjustment ChargeCategory = "Adjustment"
)

// ChargeClass qualifies a charge category. The only defined value is
// Correction, which marks credits, refunds and negative-cost rows.
type ChargeClass string

const (
	ClassCorrection ChargeClass = "Correction"
)

// ChargeFrequency describes how often a charge recurs
type ChargeFrequency string

const (
	FrequencyUsageBased ChargeFrequency = "Usage-Based"
	FrequencyRecurring  ChargeFrequency = "Recurring"
	FrequencyOneTime    ChargeFrequency = "One-Time"
)

// PricingCategory describes the pricing model applied to a charge
type PricingCategory string

const (
	PricingOnDemand  PricingCategory = "On-Demand"
	PricingCommitted PricingCategory = "Committed"
	PricingSpot      PricingCategory = "Spot"
	PricingOverage   PricingCategory = "Overage"
	PricingCredit    PricingCategory = "Credit"
)

// CommitmentDiscountType identifies the pre-purchased discount mechanism
type CommitmentDiscountType string

const (
	CommitmentReservedInstance CommitmentDiscountType = "Reserved Instance"
	CommitmentSavingsPlan      CommitmentDiscountType = "Savings Plan"
	CommitmentReservation      CommitmentDiscountType = "Reservation"
	CommitmentBenefit          CommitmentDiscountType = "Benefit"
)
