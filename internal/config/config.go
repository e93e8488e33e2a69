// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cloudcost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Database contains storage configuration
	Database DatabaseConfig `json:"database"`

	// Tables contains table name configuration
	Tables TablesConfig `json:"tables"`

	// Rules contains categorization rule configuration
	Rules RulesConfig `json:"rules"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DatabaseConfig contains storage settings
type DatabaseConfig struct {
	// Driver is the database/sql driver name (postgres, sqlite3)
	Driver string `json:"driver"`

	// DSN is the connection string
	DSN string `json:"dsn"`

	// MaxOpenConns caps the connection pool
	MaxOpenConns int `json:"max_open_conns"`
}

// TablesConfig names the tables the engine reads and writes.
// The canonical table lives inside the per-organization dataset; raw provider
// tables, the hierarchy table and the organization registry are maintained by
// external collaborators and read here as-is.
type TablesConfig struct {
	// Canonical is the canonical cost table name
	Canonical string `json:"canonical"`

	// Hierarchy is the validated hierarchy entity table
	Hierarchy string `json:"hierarchy"`

	// Organizations is the organization registry table
	Organizations string `json:"organizations"`

	// RawGCP is the raw GCP billing export table
	RawGCP string `json:"raw_gcp"`

	// RawAWS is the raw AWS cost and usage report table
	RawAWS string `json:"raw_aws"`

	// RawAzure is the raw Azure cost export table
	RawAzure string `json:"raw_azure"`

	// RawOCI is the raw OCI cost report table
	RawOCI string `json:"raw_oci"`
}

// RulesConfig contains service categorization settings
type RulesConfig struct {
	// OverridesFile is an optional HCL file with extra category rules,
	// checked ahead of the built-in tables
	OverridesFile string `json:"overrides_file,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".cloudcost", "cloudcost.db")

	return &Config{
		Version: "1.0",
		Database: DatabaseConfig{
			Driver:       "sqlite3",
			DSN:          dbPath,
			MaxOpenConns: 8,
		},
		Tables: TablesConfig{
			Canonical:     "canonical_costs",
			Hierarchy:     "hierarchy_entities",
			Organizations: "organizations",
			RawGCP:        "raw_gcp_billing",
			RawAWS:        "raw_aws_billing",
			RawAzure:      "raw_azure_billing",
			RawOCI:        "raw_oci_billing",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
