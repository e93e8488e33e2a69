// Package clouds wires the provider field mappers into a mapper registry.
// Providers are a closed set; a fifth provider is added here and nowhere
// else.
package clouds

import (
	"cloudcost/clouds/aws"
	"cloudcost/clouds/azure"
	"cloudcost/clouds/gcp"
	"cloudcost/clouds/oci"
	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

// NewRegistry builds a registry holding all four provider mappers, applying
// any per-provider category rule overrides
func NewRegistry(overrides map[focus.Provider][]mapper.CategoryRule) (*mapper.Registry, error) {
	registry := mapper.NewRegistry()

	mappers := []mapper.ProviderMapper{
		gcp.NewMapper(overrides[focus.ProviderGCP]),
		aws.NewMapper(overrides[focus.ProviderAWS]),
		azure.NewMapper(overrides[focus.ProviderAzure]),
		oci.NewMapper(overrides[focus.ProviderOCI]),
	}
	for _, m := range mappers {
		if err := registry.Register(m); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
