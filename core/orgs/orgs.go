// Package orgs derives and authorizes the organization behind a dataset.
package orgs

import (
	"context"
	"strings"
)

// environment suffixes recognized in dataset identifiers
var environmentSuffixes = []string{"prod", "stage", "dev", "local", "test"}

// DeriveOrganization extracts the organization identifier from a dataset
// identifier following the "{org}_{environment}" convention. A dataset with
// no recognized environment suffix is treated as the organization identifier
// itself, which keeps pre-convention datasets working.
func DeriveOrganization(dataset string) string {
	idx := strings.LastIndex(dataset, "_")
	if idx <= 0 {
		return dataset
	}
	suffix := dataset[idx+1:]
	for _, env := range environmentSuffixes {
		if suffix == env {
			return dataset[:idx]
		}
	}
	return dataset
}

// Registry answers whether an organization is known. This is the
// authorization boundary: an unrecognized organization aborts a run before
// any customer data is read or written.
type Registry interface {
	// Exists reports whether exactly one organization with this id is
	// registered
	Exists(ctx context.Context, orgID string) (bool, error)
}
