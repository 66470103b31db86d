// Package config loads aplsf configuration from baseDir/config.json.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// MaxFileBytes caps the size of a .sf input file the tool will read.
	// Component files are small in practice; the cap guards against
	// feeding an arbitrary huge binary to the scanner by mistake.
	MaxFileBytes int64 `json:"max_file_bytes"`

	// AllowedPaths is an allowlist of directories for export operations.
	// Paths outside ~/.aplsf/exports require either being in this list
	// or AllowUnsafePaths=true.
	AllowedPaths []string `json:"allowed_paths,omitempty"`

	// AllowUnsafePaths disables directory restrictions for export.
	// Symlink checks still apply.
	AllowUnsafePaths bool `json:"allow_unsafe_paths,omitempty"`

	// DBMaxOpenConns limits open database connections. 0 means the
	// sql.DB default. Set to 1 to serialize all catalog access.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits idle database connections. 0 means default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools lists MCP tool names to exclude from registration.
	// Unknown names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxFileBytes: 64 << 20,
	}
}

// Load reads configuration from baseDir/config.json, returning defaults
// if the file does not exist. The baseDir parameter lets tests use
// t.TempDir() instead of ~/.aplsf.
func Load(baseDir string) (*Config, error) {
	path := filepath.Join(baseDir, "config.json")

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = DefaultConfig().MaxFileBytes
	}
	return cfg, nil
}
