// Package lineage stamps pipeline provenance onto canonical records.
package lineage

import (
	"time"

	"github.com/google/uuid"

	"cloudcost/core/focus"
)

// Params are the identifiers handed down by the pipeline orchestration
// service for one normalization run
type Params struct {
	PipelineID   string
	CredentialID string
	RunID        string
	RunDate      string
}

// Stamper attaches lineage fields to mapped records. Mechanical and uniform
// across providers; applied once per row immediately before insertion.
type Stamper struct {
	params Params
	now    func() time.Time
	newID  func() string
}

// NewStamper creates a stamper for one run
func NewStamper(params Params) *Stamper {
	return &Stamper{
		params: params,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Stamp fills every lineage field on a record. sourceSystem and provider
// come from the mapper that produced the row; cloud_account_id is the row's
// own billing account.
func (s *Stamper) Stamp(rec *focus.Record, sourceSystem string, provider focus.Provider) {
	now := s.now().UTC()
	rec.Lineage = focus.Lineage{
		SourceSystem:    sourceSystem,
		SourceRecordID:  s.newID(),
		UpdatedAt:       now,
		CloudProvider:   provider,
		CloudAccountID:  rec.BillingAccountID,
		PipelineID:      s.params.PipelineID,
		CredentialID:    s.params.CredentialID,
		PipelineRunDate: s.params.RunDate,
		RunID:           s.params.RunID,
		IngestedAt:      now,
	}
}
