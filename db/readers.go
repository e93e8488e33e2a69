package db

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloudcost/core/hierarchy"
	"cloudcost/core/mapper"
	"cloudcost/internal/errors"
)

// RawRows reads a provider's raw billing rows whose date column falls inside
// [start, end). Raw schemas vary per provider and evolve without notice, so
// rows come back as generic column maps.
//
// Window bounds are always midnight-aligned, so comparing only the date
// portion of the column is exact. Exports differ in grain: some carry full
// timestamps, daily-grained ones carry bare YYYY-MM-DD values, and a text
// comparison of the full bounds would drop the bare-date rows.
func (s *Store) RawRows(ctx context.Context, table, dateColumn string, start, end time.Time) ([]mapper.RawRecord, error) {
	query := s.rebind(fmt.Sprintf(
		`SELECT * FROM %s WHERE substr(%s, 1, 10) >= ? AND substr(%s, 1, 10) < ?`,
		table, dateColumn, dateColumn))

	rows, err := s.db.QueryContext(ctx, query, formatDate(start), formatDate(end))
	if err != nil {
		return nil, errors.Storage(fmt.Sprintf("querying raw table %s", table), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Storage("reading raw column names", err)
	}

	var records []mapper.RawRecord
	for rows.Next() {
		values := make([]interface{}, len(columns))
		targets := make([]interface{}, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, errors.Storage("scanning raw row", err)
		}

		cols := make(map[string]interface{}, len(columns))
		for i, name := range columns {
			cols[name] = values[i]
		}
		records = append(records, mapper.RawRecord{Columns: cols})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterating raw rows", err)
	}
	return records, nil
}

// InsertRaw writes rows into a raw billing table. Shared deployments are fed
// by external ingestion; this serves local mode and tests.
func (s *Store) InsertRaw(ctx context.Context, table string, rows []mapper.RawRecord) error {
	for _, row := range rows {
		if len(row.Columns) == 0 {
			continue
		}
		columns := make([]string, 0, len(row.Columns))
		for name := range row.Columns {
			columns = append(columns, name)
		}
		sort.Strings(columns)

		args := make([]interface{}, len(columns))
		for i, name := range columns {
			args[i] = row.Columns[name]
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
		query := s.rebind(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			table, strings.Join(columns, ", "), placeholders))
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return errors.Storage(fmt.Sprintf("inserting raw row into %s", table), err)
		}
	}
	return nil
}

// OrganizationExists reports whether an organization is registered, requiring
// exactly one registry row. This is the authorization gate: no row here means
// no write anywhere, and an ambiguous registration aborts the run on
// externally managed schemas that do not enforce org_id uniqueness.
func (s *Store) OrganizationExists(ctx context.Context, orgID string) (bool, error) {
	query := s.rebind(fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE org_id = ?`, s.tables.Organizations))
	var count int64
	if err := s.db.QueryRowContext(ctx, query, orgID).Scan(&count); err != nil {
		return false, errors.Storage("checking organization registry", err)
	}
	return count == 1, nil
}

// ValidHierarchyEntities loads one organization's currently valid hierarchy
// entities. A NULL end date marks an entity as current. Scoping by org here
// keeps one tenant's tags from ever matching another tenant's entities.
func (s *Store) ValidHierarchyEntities(ctx context.Context, orgID string) ([]hierarchy.Entity, error) {
	query := s.rebind(fmt.Sprintf(
		`SELECT entity_id, entity_name, level_code, path, path_names FROM %s WHERE org_id = ? AND end_date IS NULL ORDER BY entity_id`,
		s.tables.Hierarchy))

	rows, err := s.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, errors.Storage("querying hierarchy entities", err)
	}
	defer rows.Close()

	var entities []hierarchy.Entity
	for rows.Next() {
		var e hierarchy.Entity
		if err := rows.Scan(&e.EntityID, &e.EntityName, &e.LevelCode, &e.Path, &e.PathNames); err != nil {
			return nil, errors.Storage("scanning hierarchy entity", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterating hierarchy entities", err)
	}
	return entities, nil
}
