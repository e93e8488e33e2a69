// Package db implements the SQL storage layer: the canonical cost table the
// engine owns, plus read access to the raw provider tables, the validated
// hierarchy table, and the organization registry maintained by external
// collaborators.
package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"cloudcost/core/focus"
	"cloudcost/internal/config"
	"cloudcost/internal/errors"
)

// Store wraps a database handle plus the configured table names. It supports
// the postgres driver for shared deployments and sqlite3 for local mode and
// tests.
type Store struct {
	db     *sql.DB
	driver string
	tables config.TablesConfig
}

// Open opens a store from configuration
func Open(cfg *config.Config) (*Store, error) {
	if cfg.Database.Driver == "sqlite3" && cfg.Database.DSN != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0755); err != nil {
			return nil, errors.Storage("creating database directory", err)
		}
	}

	handle, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, errors.Storage("opening database", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		handle.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}

	store := NewStore(handle, cfg.Database.Driver, cfg.Tables)
	if cfg.Database.Driver == "sqlite3" {
		if err := store.configureSQLite(); err != nil {
			handle.Close()
			return nil, err
		}
	}
	return store, nil
}

// NewStore wraps an existing handle
func NewStore(handle *sql.DB, driver string, tables config.TablesConfig) *Store {
	return &Store{db: handle, driver: driver, tables: tables}
}

// Close closes the underlying handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying handle for tests
func (s *Store) DB() *sql.DB {
	return s.db
}

// Tables returns the configured table names
func (s *Store) Tables() config.TablesConfig {
	return s.tables
}

// BeginTx starts a transaction. All canonical-table writes for a run happen
// inside one transaction so a failure leaves the table untouched.
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Storage("beginning transaction", err)
	}
	return tx, nil
}

// RawTable returns the raw billing table for a provider
func (s *Store) RawTable(provider focus.Provider) (string, error) {
	switch provider {
	case focus.ProviderGCP:
		return s.tables.RawGCP, nil
	case focus.ProviderAWS:
		return s.tables.RawAWS, nil
	case focus.ProviderAzure:
		return s.tables.RawAzure, nil
	case focus.ProviderOCI:
		return s.tables.RawOCI, nil
	}
	return "", errors.Validationf("no raw table for provider %q", provider)
}

func (s *Store) configureSQLite() error {
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := s.db.Exec(pragma); err != nil {
			return errors.Storage("configuring sqlite connection", err)
		}
	}
	return nil
}

// rebind converts ? placeholders to the $n form lib/pq expects. Queries here
// never contain a literal question mark.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// Timestamps are stored as fixed-width UTC text so lexicographic comparison
// matches chronological order on both drivers.
const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timeLayout)
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
