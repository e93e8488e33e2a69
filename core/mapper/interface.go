// Package mapper - Provider mapper interface definition
// All provider field mappers must implement this interface.
package mapper

import (
	"cloudcost/core/focus"
)

// ProviderMapper is the interface each provider's field mapper implements.
// MapRow is a pure transform from one raw billing row to one unstamped
// canonical record; the hierarchy join and lineage stamp are applied by the
// orchestrator afterwards, in that order.
type ProviderMapper interface {
	// Provider returns the cloud provider this mapper handles
	Provider() focus.Provider

	// SourceSystem identifies the provider raw table in lineage and in the
	// idempotent delete window (e.g. "gcp_billing_export")
	SourceSystem() string

	// DateColumn names the raw table column holding the charge date, used
	// to restrict reads to the requested window
	DateColumn() string

	// Include decides whether a raw row belongs in the canonical output.
	// A row qualifies when its primary cost field is nonzero, or when its
	// charge type marks a credit, refund, tax or fee even at zero cost -
	// dropping those would silently lose financial adjustments.
	Include(raw RawRecord) bool

	// HierarchyCandidates extracts candidate entity identifiers from the
	// raw row's tags in this provider's precedence order
	HierarchyCandidates(raw RawRecord) []string

	// MapRow converts a raw row into an unstamped canonical record
	MapRow(raw RawRecord) (focus.Record, error)
}
