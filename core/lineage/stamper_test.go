package lineage

import (
	"testing"
	"time"

	"cloudcost/core/focus"
)

func TestStampFillsEveryField(t *testing.T) {
	s := NewStamper(Params{
		PipelineID:   "pipe-1",
		CredentialID: "cred-1",
		RunID:        "run-1",
		RunDate:      "2026-01-16",
	})
	now := time.Date(2026, 1, 16, 3, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	s.newID = func() string { return "rec-0001" }

	rec := focus.Record{BillingAccountID: "BA-1"}
	s.Stamp(&rec, "gcp_billing_export", focus.ProviderGCP)

	l := rec.Lineage
	if l.SourceSystem != "gcp_billing_export" {
		t.Errorf("SourceSystem = %q", l.SourceSystem)
	}
	if l.SourceRecordID != "rec-0001" {
		t.Errorf("SourceRecordID = %q", l.SourceRecordID)
	}
	if l.CloudProvider != focus.ProviderGCP {
		t.Errorf("CloudProvider = %q", l.CloudProvider)
	}
	if l.CloudAccountID != "BA-1" {
		t.Errorf("CloudAccountID = %q, want the row's billing account", l.CloudAccountID)
	}
	if l.PipelineID != "pipe-1" || l.CredentialID != "cred-1" || l.RunID != "run-1" {
		t.Errorf("run identifiers = %q / %q / %q", l.PipelineID, l.CredentialID, l.RunID)
	}
	if l.PipelineRunDate != "2026-01-16" {
		t.Errorf("PipelineRunDate = %q", l.PipelineRunDate)
	}
	if !l.UpdatedAt.Equal(now) || !l.IngestedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v, want %v", l.UpdatedAt, l.IngestedAt, now)
	}
}

func TestStampOverwritesStaleLineage(t *testing.T) {
	s := NewStamper(Params{PipelineID: "pipe-2", CredentialID: "cred-2", RunID: "run-2", RunDate: "2026-01-17"})

	rec := focus.Record{BillingAccountID: "BA-2"}
	rec.Lineage = focus.Lineage{RunID: "old-run", SourceSystem: "old-system"}

	s.Stamp(&rec, "aws_cur", focus.ProviderAWS)
	if rec.Lineage.RunID != "run-2" || rec.Lineage.SourceSystem != "aws_cur" {
		t.Errorf("stale lineage survived: %+v", rec.Lineage)
	}
	if rec.Lineage.SourceRecordID == "" {
		t.Error("SourceRecordID must always be generated")
	}
}
