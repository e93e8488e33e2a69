// Package azure - Azure service categorization
package azure

import (
	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// builtinRules bucket Azure meter categories and service families into
// canonical categories. Matching runs against the meter category first, then
// the service family and consumed service.
var builtinRules = []mapper.CategoryRule{
	{Match: "virtual machines", Category: focus.CategoryCompute},
	{Match: "azure app service", Category: focus.CategoryCompute},
	{Match: "functions", Category: focus.CategoryCompute},
	{Match: "container", Category: focus.CategoryCompute},
	{Match: "azure kubernetes", Category: focus.CategoryCompute},
	{Match: "cloud services", Category: focus.CategoryCompute},
	{Match: "batch", Category: focus.CategoryCompute},
	{Match: "storage", Category: focus.CategoryStorage},
	{Match: "backup", Category: focus.CategoryStorage},
	{Match: "data box", Category: focus.CategoryStorage},
	{Match: "sql", Category: focus.CategoryDatabase},
	{Match: "cosmos db", Category: focus.CategoryDatabase},
	{Match: "database", Category: focus.CategoryDatabase},
	{Match: "redis cache", Category: focus.CategoryDatabase},
	{Match: "data explorer", Category: focus.CategoryDatabase},
	{Match: "synapse", Category: focus.CategoryDatabase},
	{Match: "bandwidth", Category: focus.CategoryNetworking},
	{Match: "virtual network", Category: focus.CategoryNetworking},
	{Match: "load balancer", Category: focus.CategoryNetworking},
	{Match: "application gateway", Category: focus.CategoryNetworking},
	{Match: "vpn gateway", Category: focus.CategoryNetworking},
	{Match: "expressroute", Category: focus.CategoryNetworking},
	{Match: "content delivery network", Category: focus.CategoryNetworking},
	{Match: "azure dns", Category: focus.CategoryNetworking},
	{Match: "azure front door", Category: focus.CategoryNetworking},
	{Match: "cognitive services", Category: focus.CategoryAIML},
	{Match: "azure openai", Category: focus.CategoryAIML},
	{Match: "machine learning", Category: focus.CategoryAIML},
	{Match: "azure ai", Category: focus.CategoryAIML},
	{Match: "bot service", Category: focus.CategoryAIML},
	{Match: "key vault", Category: focus.CategorySecurity},
	{Match: "microsoft defender", Category: focus.CategorySecurity},
	{Match: "sentinel", Category: focus.CategorySecurity},
	{Match: "security center", Category: focus.CategorySecurity},
	{Match: "ddos protection", Category: focus.CategorySecurity},
}
