// Package gcp - GCP service categorization
package gcp

import (
	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// builtinRules bucket GCP service descriptions into canonical categories.
// Matching runs against the billing export's service description.
var builtinRules = []mapper.CategoryRule{
	{Match: "compute engine", Category: focus.CategoryCompute},
	{Match: "kubernetes engine", Category: focus.CategoryCompute},
	{Match: "cloud run", Category: focus.CategoryCompute},
	{Match: "cloud functions", Category: focus.CategoryCompute},
	{Match: "app engine", Category: focus.CategoryCompute},
	{Match: "cloud storage", Category: focus.CategoryStorage},
	{Match: "filestore", Category: focus.CategoryStorage},
	{Match: "persistent disk", Category: focus.CategoryStorage},
	{Match: "storage transfer", Category: focus.CategoryStorage},
	{Match: "bigquery", Category: focus.CategoryDatabase},
	{Match: "cloud sql", Category: focus.CategoryDatabase},
	{Match: "spanner", Category: focus.CategoryDatabase},
	{Match: "firestore", Category: focus.CategoryDatabase},
	{Match: "bigtable", Category: focus.CategoryDatabase},
	{Match: "memorystore", Category: focus.CategoryDatabase},
	{Match: "alloydb", Category: focus.CategoryDatabase},
	{Match: "cloud cdn", Category: focus.CategoryNetworking},
	{Match: "cloud dns", Category: focus.CategoryNetworking},
	{Match: "load balancing", Category: focus.CategoryNetworking},
	{Match: "interconnect", Category: focus.CategoryNetworking},
	{Match: "cloud nat", Category: focus.CategoryNetworking},
	{Match: "vpc", Category: focus.CategoryNetworking},
	{Match: "network", Category: focus.CategoryNetworking},
	{Match: "vertex ai", Category: focus.CategoryAIML},
	{Match: "ai platform", Category: focus.CategoryAIML},
	{Match: "dialogflow", Category: focus.CategoryAIML},
	{Match: "speech", Category: focus.CategoryAIML},
	{Match: "vision", Category: focus.CategoryAIML},
	{Match: "translation", Category: focus.CategoryAIML},
	{Match: "natural language", Category: focus.CategoryAIML},
	{Match: "cloud armor", Category: focus.CategorySecurity},
	{Match: "cloud kms", Category: focus.CategorySecurity},
	{Match: "secret manager", Category: focus.CategorySecurity},
	{Match: "security command center", Category: focus.CategorySecurity},
	{Match: "identity", Category: focus.CategorySecurity},
}
