// Package aws - AWS service categorization
package aws

import (
	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// builtinRules bucket AWS product codes and product families into canonical
// categories. Matching runs against the CUR product code first, then the
// product family.
var builtinRules = []mapper.CategoryRule{
	{Match: "amazonec2", Category: focus.CategoryCompute},
	{Match: "awslambda", Category: focus.CategoryCompute},
	{Match: "amazonecs", Category: focus.CategoryCompute},
	{Match: "amazoneks", Category: focus.CategoryCompute},
	{Match: "amazonlightsail", Category: focus.CategoryCompute},
	{Match: "awsbatch", Category: focus.CategoryCompute},
	{Match: "compute instance", Category: focus.CategoryCompute},
	{Match: "amazons3", Category: focus.CategoryStorage},
	{Match: "amazonefs", Category: focus.CategoryStorage},
	{Match: "amazonfsx", Category: focus.CategoryStorage},
	{Match: "amazonglacier", Category: focus.CategoryStorage},
	{Match: "awsbackup", Category: focus.CategoryStorage},
	{Match: "storage snapshot", Category: focus.CategoryStorage},
	{Match: "storage", Category: focus.CategoryStorage},
	{Match: "amazonrds", Category: focus.CategoryDatabase},
	{Match: "amazondynamodb", Category: focus.CategoryDatabase},
	{Match: "amazonredshift", Category: focus.CategoryDatabase},
	{Match: "amazonelasticache", Category: focus.CategoryDatabase},
	{Match: "amazonneptune", Category: focus.CategoryDatabase},
	{Match: "amazondocdb", Category: focus.CategoryDatabase},
	{Match: "amazontimestream", Category: focus.CategoryDatabase},
	{Match: "amazonvpc", Category: focus.CategoryNetworking},
	{Match: "amazoncloudfront", Category: focus.CategoryNetworking},
	{Match: "amazonroute53", Category: focus.CategoryNetworking},
	{Match: "awselb", Category: focus.CategoryNetworking},
	{Match: "elasticloadbalancing", Category: focus.CategoryNetworking},
	{Match: "awsdirectconnect", Category: focus.CategoryNetworking},
	{Match: "amazonapigateway", Category: focus.CategoryNetworking},
	{Match: "data transfer", Category: focus.CategoryNetworking},
	{Match: "amazonsagemaker", Category: focus.CategoryAIML},
	{Match: "amazonbedrock", Category: focus.CategoryAIML},
	{Match: "amazoncomprehend", Category: focus.CategoryAIML},
	{Match: "amazonrekognition", Category: focus.CategoryAIML},
	{Match: "amazontextract", Category: focus.CategoryAIML},
	{Match: "amazontranscribe", Category: focus.CategoryAIML},
	{Match: "amazonpolly", Category: focus.CategoryAIML},
	{Match: "awswaf", Category: focus.CategorySecurity},
	{Match: "amazonguardduty", Category: focus.CategorySecurity},
	{Match: "awskms", Category: focus.CategorySecurity},
	{Match: "awsshield", Category: focus.CategorySecurity},
	{Match: "awssecretsmanager", Category: focus.CategorySecurity},
	{Match: "amazoninspector", Category: focus.CategorySecurity},
	{Match: "awssecurityhub", Category: focus.CategorySecurity},
}
