package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime settings for the garden engine and its tools.
// Environment variables are parsed from the GARDEN_ prefix,
// e.g. GARDEN_DATA_DIR, GARDEN_CATALOG_PATH.
type Config struct {
	// DataDir is where the garden store lives and where backups are taken from.
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	// CatalogPath optionally points at a YAML species catalog that replaces
	// the built-in table.
	CatalogPath string `envconfig:"CATALOG_PATH" default:""`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// New creates a Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("GARDEN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return &cfg, nil
}
