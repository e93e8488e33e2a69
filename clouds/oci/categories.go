// Package oci - OCI service categorization
package oci

import (
	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// builtinRules bucket OCI cost report service names into canonical
// categories.
var builtinRules = []mapper.CategoryRule{
	{Match: "compute", Category: focus.CategoryCompute},
	{Match: "container engine", Category: focus.CategoryCompute},
	{Match: "functions", Category: focus.CategoryCompute},
	{Match: "container instances", Category: focus.CategoryCompute},
	{Match: "object storage", Category: focus.CategoryStorage},
	{Match: "block storage", Category: focus.CategoryStorage},
	{Match: "file storage", Category: focus.CategoryStorage},
	{Match: "archive storage", Category: focus.CategoryStorage},
	{Match: "autonomous database", Category: focus.CategoryDatabase},
	{Match: "database", Category: focus.CategoryDatabase},
	{Match: "mysql", Category: focus.CategoryDatabase},
	{Match: "nosql", Category: focus.CategoryDatabase},
	{Match: "opensearch", Category: focus.CategoryDatabase},
	{Match: "load balancer", Category: focus.CategoryNetworking},
	{Match: "fastconnect", Category: focus.CategoryNetworking},
	{Match: "virtual cloud network", Category: focus.CategoryNetworking},
	{Match: "vcn", Category: focus.CategoryNetworking},
	{Match: "dns", Category: focus.CategoryNetworking},
	{Match: "networking", Category: focus.CategoryNetworking},
	{Match: "outbound data transfer", Category: focus.CategoryNetworking},
	{Match: "data science", Category: focus.CategoryAIML},
	{Match: "generative ai", Category: focus.CategoryAIML},
	{Match: "ai language", Category: focus.CategoryAIML},
	{Match: "ai vision", Category: focus.CategoryAIML},
	{Match: "ai speech", Category: focus.CategoryAIML},
	{Match: "ai anomaly detection", Category: focus.CategoryAIML},
	{Match: "vault", Category: focus.CategorySecurity},
	{Match: "key management", Category: focus.CategorySecurity},
	{Match: "cloud guard", Category: focus.CategorySecurity},
	{Match: "web application firewall", Category: focus.CategorySecurity},
	{Match: "bastion", Category: focus.CategorySecurity},
}
