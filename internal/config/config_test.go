package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxFileBytes != 64<<20 {
		t.Errorf("MaxFileBytes = %d, want default", cfg.MaxFileBytes)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"max_file_bytes": 1024, "allow_unsafe_paths": true, "disabled_tools": ["sf_purge"]}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxFileBytes != 1024 {
		t.Errorf("MaxFileBytes = %d, want 1024", cfg.MaxFileBytes)
	}
	if !cfg.AllowUnsafePaths {
		t.Error("AllowUnsafePaths = false, want true")
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "sf_purge" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoad_ZeroMaxFileBytesResetsToDefault(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"max_file_bytes": 0}`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxFileBytes != 64<<20 {
		t.Errorf("MaxFileBytes = %d, want default", cfg.MaxFileBytes)
	}
}
