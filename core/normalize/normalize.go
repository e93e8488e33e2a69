// Package normalize runs the end-to-end normalization pipeline: read a raw
// billing window, map it to canonical records, join hierarchy, stamp lineage,
// and atomically replace the matching canonical window.
package normalize

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cloudcost/core/focus"
	"cloudcost/core/hierarchy"
	"cloudcost/core/lineage"
	"cloudcost/core/mapper"
	"cloudcost/core/orgs"
	"cloudcost/db"
	"cloudcost/internal/errors"
	"cloudcost/internal/logging"
)

// ProviderAll selects every registered provider in one run
const ProviderAll = "all"

const dateLayout = "2006-01-02"

// Params describe one normalization run
type Params struct {
	// Project is the billing project or deployment the dataset lives in
	Project string

	// Dataset is the per-organization dataset name, e.g. "acme_prod". The
	// organization identifier is derived from it.
	Dataset string

	// StartDate and EndDate bound the charge window, inclusive, as
	// YYYY-MM-DD
	StartDate string
	EndDate   string

	// Provider selects one provider, or "all"
	Provider string

	// Pipeline identifiers stamped into lineage
	PipelineID   string
	CredentialID string
	RunID        string
	RunDate      string

	// DryRun rolls the transaction back instead of committing
	DryRun bool
}

// Summary reports what a run did
type Summary struct {
	Project      string    `json:"project"`
	Organization string    `json:"organization"`
	Provider     string    `json:"provider"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	RowsRead     int       `json:"rows_read"`
	RowsDeleted  int64     `json:"rows_deleted"`
	RowsInserted int       `json:"rows_inserted"`
	TargetTable  string    `json:"target_table"`
	DryRun       bool      `json:"dry_run,omitempty"`
	ExecutedAt   time.Time `json:"executed_at"`
}

// Engine ties the storage layer to the mapper registry
type Engine struct {
	store    *db.Store
	registry *mapper.Registry
}

// NewEngine creates a normalization engine
func NewEngine(store *db.Store, registry *mapper.Registry) *Engine {
	return &Engine{store: store, registry: registry}
}

// Run executes one normalization run. Delete and insert share a single
// transaction, so a failure anywhere leaves the canonical table exactly as it
// was and a re-run with the same window replaces rather than duplicates.
func (e *Engine) Run(ctx context.Context, params Params) (*Summary, error) {
	start, end, err := e.validate(&params)
	if err != nil {
		return nil, err
	}

	mappers, err := e.selectMappers(params.Provider)
	if err != nil {
		return nil, err
	}

	org := orgs.DeriveOrganization(params.Dataset)
	authorized, err := e.store.OrganizationExists(ctx, org)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, errors.Authorization("organization is not registered").
			WithContext("organization", org).
			WithContext("dataset", params.Dataset)
	}

	entities, err := e.store.ValidHierarchyEntities(ctx, org)
	if err != nil {
		return nil, err
	}
	resolver := hierarchy.NewResolver(entities)

	logging.Info("starting normalization run",
		zap.String("project", params.Project),
		zap.String("organization", org),
		zap.String("provider", params.Provider),
		zap.String("start_date", params.StartDate),
		zap.String("end_date", params.EndDate),
		zap.String("run_id", params.RunID),
		zap.Int("hierarchy_entities", resolver.Size()))

	tx, err := e.store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	sourceSystems := make([]string, len(mappers))
	for i, m := range mappers {
		sourceSystems[i] = m.SourceSystem()
	}
	deleted, err := e.store.DeleteWindow(ctx, tx, start, end, sourceSystems)
	if err != nil {
		return nil, runError(err, params)
	}

	stamper := lineage.NewStamper(lineage.Params{
		PipelineID:   params.PipelineID,
		CredentialID: params.CredentialID,
		RunID:        params.RunID,
		RunDate:      params.RunDate,
	})
	validatedAt := time.Now().UTC()

	rowsRead := 0
	var records []focus.Record
	for _, m := range mappers {
		table, err := e.store.RawTable(m.Provider())
		if err != nil {
			return nil, err
		}
		raws, err := e.store.RawRows(ctx, table, m.DateColumn(), start, end)
		if err != nil {
			return nil, runError(err, params)
		}
		rowsRead += len(raws)

		for _, raw := range raws {
			if !m.Include(raw) {
				continue
			}
			rec, err := m.MapRow(raw)
			if err != nil {
				return nil, runError(err, params)
			}
			if entity := resolver.Resolve(m.HierarchyCandidates(raw)); entity != nil {
				rec.Hierarchy = entity.Attribution(validatedAt)
			}
			stamper.Stamp(&rec, m.SourceSystem(), m.Provider())
			records = append(records, rec)
		}

		logging.Debug("mapped provider window",
			zap.String("provider", string(m.Provider())),
			zap.Int("raw_rows", len(raws)))
	}

	if err := e.store.InsertRecords(ctx, tx, records); err != nil {
		return nil, runError(err, params)
	}

	if !params.DryRun {
		if err := tx.Commit(); err != nil {
			return nil, errors.Storage("committing normalization run", err)
		}
		committed = true
	}

	summary := &Summary{
		Project:      params.Project,
		Organization: org,
		Provider:     params.Provider,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		RowsRead:     rowsRead,
		RowsDeleted:  deleted,
		RowsInserted: len(records),
		TargetTable:  e.store.Tables().Canonical,
		DryRun:       params.DryRun,
		ExecutedAt:   time.Now().UTC(),
	}

	logging.Info("normalization run finished",
		zap.String("organization", org),
		zap.Int64("rows_deleted", deleted),
		zap.Int("rows_inserted", len(records)),
		zap.Bool("dry_run", params.DryRun))

	return summary, nil
}

// validate checks run parameters and returns the half-open charge window
// [start, end)
func (e *Engine) validate(params *Params) (time.Time, time.Time, error) {
	var zero time.Time

	if params.Project == "" {
		return zero, zero, errors.Validation("project is required")
	}
	if params.Dataset == "" {
		return zero, zero, errors.Validation("dataset is required")
	}
	if params.Provider == "" {
		return zero, zero, errors.Validation("provider is required (gcp, aws, azure, oci or all)")
	}
	if params.PipelineID == "" || params.CredentialID == "" || params.RunID == "" {
		return zero, zero, errors.Validation("pipeline-id, credential-id and run-id are required")
	}
	if params.RunDate == "" {
		params.RunDate = time.Now().UTC().Format(dateLayout)
	}

	startDay, err := time.Parse(dateLayout, params.StartDate)
	if err != nil {
		return zero, zero, errors.Validationf("invalid start date %q: expected YYYY-MM-DD", params.StartDate)
	}
	if params.EndDate == "" {
		params.EndDate = params.StartDate
	}
	endDay, err := time.Parse(dateLayout, params.EndDate)
	if err != nil {
		return zero, zero, errors.Validationf("invalid end date %q: expected YYYY-MM-DD", params.EndDate)
	}
	if endDay.Before(startDay) {
		return zero, zero, errors.Validationf("end date %s precedes start date %s", params.EndDate, params.StartDate)
	}

	return startDay.UTC(), endDay.UTC().Add(24 * time.Hour), nil
}

func (e *Engine) selectMappers(provider string) ([]mapper.ProviderMapper, error) {
	if provider == ProviderAll {
		return e.registry.All(), nil
	}
	p := focus.Provider(provider)
	if !p.IsValid() {
		return nil, errors.Validationf("unknown provider %q", provider)
	}
	m, ok := e.registry.Get(p)
	if !ok {
		return nil, errors.NotFound("provider mapper", provider)
	}
	return []mapper.ProviderMapper{m}, nil
}

func runError(err error, params Params) error {
	appErr, ok := err.(*errors.Error)
	if !ok {
		appErr = errors.Internal("normalization run failed", err)
	}
	return appErr.
		WithContext("provider", params.Provider).
		WithContext("start_date", params.StartDate).
		WithContext("end_date", params.EndDate)
}
