package db

import (
	"context"
	"fmt"

	"cloudcost/internal/errors"
)

// canonicalColumns is the full column list of the canonical cost table, in
// insert order. Timestamps are fixed-width UTC text and monetary amounts are
// decimal text, identical on both drivers.
var canonicalColumns = []string{
	"record_id",
	"billing_account_id",
	"sub_account_id",
	"sub_account_name",
	"charge_period_start",
	"charge_period_end",
	"billing_period_start",
	"billing_period_end",
	"invoice_issuer_name",
	"service_provider_name",
	"host_provider_name",
	"service_category",
	"service_name",
	"service_subcategory",
	"resource_id",
	"resource_name",
	"resource_type",
	"region_id",
	"region_name",
	"consumed_quantity",
	"consumed_unit",
	"pricing_category",
	"pricing_unit",
	"pricing_quantity",
	"list_unit_price",
	"contracted_unit_price",
	"list_cost",
	"contracted_cost",
	"billed_cost",
	"effective_cost",
	"billing_currency",
	"charge_category",
	"charge_class",
	"charge_type",
	"charge_frequency",
	"commitment_discount_id",
	"commitment_discount_name",
	"commitment_discount_type",
	"sku_id",
	"sku_price_details",
	"tags",
	"hierarchy_entity_id",
	"hierarchy_entity_name",
	"hierarchy_level_code",
	"hierarchy_path",
	"hierarchy_path_names",
	"hierarchy_validated_at",
	"source_system",
	"source_record_id",
	"updated_at",
	"cloud_provider",
	"cloud_account_id",
	"pipeline_id",
	"credential_id",
	"pipeline_run_date",
	"run_id",
	"ingested_at",
}

// InitSchema creates every table the engine touches. Shared deployments
// already carry the raw and hierarchy tables; this exists for local mode and
// tests, so everything is IF NOT EXISTS.
func (s *Store) InitSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			record_id TEXT PRIMARY KEY,
			billing_account_id TEXT NOT NULL,
			sub_account_id TEXT,
			sub_account_name TEXT,
			charge_period_start TEXT NOT NULL,
			charge_period_end TEXT NOT NULL,
			billing_period_start TEXT,
			billing_period_end TEXT,
			invoice_issuer_name TEXT,
			service_provider_name TEXT,
			host_provider_name TEXT,
			service_category TEXT NOT NULL,
			service_name TEXT,
			service_subcategory TEXT,
			resource_id TEXT,
			resource_name TEXT,
			resource_type TEXT,
			region_id TEXT,
			region_name TEXT,
			consumed_quantity TEXT,
			consumed_unit TEXT,
			pricing_category TEXT,
			pricing_unit TEXT,
			pricing_quantity TEXT,
			list_unit_price TEXT,
			contracted_unit_price TEXT,
			list_cost TEXT NOT NULL,
			contracted_cost TEXT NOT NULL,
			billed_cost TEXT NOT NULL,
			effective_cost TEXT NOT NULL,
			billing_currency TEXT,
			charge_category TEXT NOT NULL,
			charge_class TEXT,
			charge_type TEXT,
			charge_frequency TEXT,
			commitment_discount_id TEXT,
			commitment_discount_name TEXT,
			commitment_discount_type TEXT,
			sku_id TEXT,
			sku_price_details TEXT,
			tags TEXT,
			hierarchy_entity_id TEXT,
			hierarchy_entity_name TEXT,
			hierarchy_level_code TEXT,
			hierarchy_path TEXT,
			hierarchy_path_names TEXT,
			hierarchy_validated_at TEXT,
			source_system TEXT NOT NULL,
			source_record_id TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			cloud_provider TEXT NOT NULL,
			cloud_account_id TEXT,
			pipeline_id TEXT NOT NULL,
			credential_id TEXT NOT NULL,
			pipeline_run_date TEXT NOT NULL,
			run_id TEXT NOT NULL,
			ingested_at TEXT NOT NULL
		)`, s.tables.Canonical),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_window ON %s (source_system, charge_period_start)`,
			s.tables.Canonical, s.tables.Canonical),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			org_id TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			entity_name TEXT NOT NULL,
			level_code TEXT NOT NULL,
			path TEXT NOT NULL,
			path_names TEXT NOT NULL,
			valid_from TEXT,
			end_date TEXT
		)`, s.tables.Hierarchy),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			org_id TEXT PRIMARY KEY,
			org_name TEXT,
			created_at TEXT
		)`, s.tables.Organizations),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			billing_account_id TEXT,
			project_id TEXT,
			project_name TEXT,
			usage_start_time TEXT,
			usage_end_time TEXT,
			invoice_month TEXT,
			service_id TEXT,
			service_description TEXT,
			sku_id TEXT,
			sku_description TEXT,
			resource_name TEXT,
			resource_global_name TEXT,
			resource_type TEXT,
			region TEXT,
			location TEXT,
			cost TEXT,
			credits_total TEXT,
			cost_type TEXT,
			cost_at_list TEXT,
			effective_price TEXT,
			list_price TEXT,
			tier_start_amount TEXT,
			usage_amount TEXT,
			usage_unit TEXT,
			pricing_unit TEXT,
			pricing_quantity TEXT,
			pricing_unit_quantity TEXT,
			currency TEXT,
			labels TEXT,
			is_marketplace TEXT,
			seller_name TEXT,
			commitment_id TEXT,
			commitment_name TEXT,
			is_preemptible TEXT
		)`, s.tables.RawGCP),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			payer_account_id TEXT,
			usage_account_id TEXT,
			usage_account_name TEXT,
			billing_period_start TEXT,
			billing_period_end TEXT,
			usage_start_date TEXT,
			usage_end_date TEXT,
			product_code TEXT,
			product_name TEXT,
			product_family TEXT,
			item_description TEXT,
			resource_id TEXT,
			instance_type TEXT,
			region TEXT,
			usage_type TEXT,
			operation TEXT,
			line_item_type TEXT,
			usage_amount TEXT,
			usage_unit TEXT,
			pricing_unit TEXT,
			unblended_cost TEXT,
			net_unblended_cost TEXT,
			amortized_cost TEXT,
			public_on_demand_cost TEXT,
			public_on_demand_rate TEXT,
			unblended_rate TEXT,
			net_unblended_rate TEXT,
			currency_code TEXT,
			sku TEXT,
			reservation_arn TEXT,
			savings_plan_arn TEXT,
			resource_tags TEXT,
			cost_categories TEXT,
			invoicing_entity TEXT,
			legal_entity TEXT,
			purchase_option TEXT,
			lease_contract_length TEXT,
			offering_class TEXT
		)`, s.tables.RawAWS),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			billing_account_id TEXT,
			subscription_id TEXT,
			subscription_name TEXT,
			billing_period_start_date TEXT,
			billing_period_end_date TEXT,
			date TEXT,
			meter_category TEXT,
			meter_subcategory TEXT,
			meter_name TEXT,
			meter_id TEXT,
			service_family TEXT,
			consumed_service TEXT,
			resource_id TEXT,
			resource_name TEXT,
			resource_location TEXT,
			resource_group TEXT,
			quantity TEXT,
			unit_of_measure TEXT,
			cost_in_billing_currency TEXT,
			billing_currency TEXT,
			payg_price TEXT,
			unit_price TEXT,
			effective_price TEXT,
			charge_type TEXT,
			frequency TEXT,
			pricing_model TEXT,
			reservation_id TEXT,
			reservation_name TEXT,
			benefit_id TEXT,
			benefit_name TEXT,
			publisher_type TEXT,
			publisher_name TEXT,
			azure_credit_applied TEXT,
			tags TEXT
		)`, s.tables.RawAzure),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			tenant_id TEXT,
			compartment_id TEXT,
			compartment_name TEXT,
			interval_usage_start TEXT,
			interval_usage_end TEXT,
			service TEXT,
			product_description TEXT,
			resource_id TEXT,
			resource_name TEXT,
			region TEXT,
			availability_domain TEXT,
			billed_quantity TEXT,
			billing_unit TEXT,
			unit_price TEXT,
			list_rate TEXT,
			my_cost TEXT,
			net_cost TEXT,
			credits TEXT,
			overage_cost TEXT,
			currency_code TEXT,
			is_correction TEXT,
			pricing_model TEXT,
			subscription_id TEXT,
			sku TEXT,
			sku_name TEXT,
			freeform_tags TEXT,
			defined_tags TEXT
		)`, s.tables.RawOCI),
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Storage("initializing schema", err)
		}
	}
	return nil
}
