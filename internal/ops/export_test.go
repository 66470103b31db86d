package ops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpungsan/aplsf/internal/config"
	"github.com/hpungsan/aplsf/internal/errors"
)

func TestExport_DefaultDir(t *testing.T) {
	database, baseDir := setupTestDB(t)
	srcDir := t.TempDir()
	path := writeFixture(t, srcDir, "billing.sf", addSrc, iotaSrc)
	if _, err := Ingest(database, testCfg(), IngestInput{Path: path}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	out, err := Export(database, testCfg(), baseDir, ExportInput{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(out.Files) != 1 || out.Functions != 2 {
		t.Fatalf("files=%d functions=%d, want 1/2", len(out.Files), out.Functions)
	}

	want := filepath.Join(baseDir, "exports", "billing.apl")
	if out.Files[0].Path != want {
		t.Errorf("Path = %q, want %q", out.Files[0].Path, want)
	}

	content, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	text := string(content)
	if !strings.HasPrefix(text, "⍝ === Extracted from billing.sf ===") {
		t.Errorf("banner missing: %q", text[:min(60, len(text))])
	}
	if !strings.Contains(text, "∇ R←ADD A;B") || !strings.Contains(text, "⍳N") {
		t.Errorf("function text missing from export")
	}
}

func TestExport_SingleScan(t *testing.T) {
	database, baseDir := setupTestDB(t)
	srcDir := t.TempDir()
	a := writeFixture(t, srcDir, "a.sf", addSrc)
	writeFixture(t, srcDir, "b.sf", iotaSrc)
	if _, err := Ingest(database, testCfg(), IngestInput{Path: srcDir}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	inv, err := Inventory(database, InventoryInput{})
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	var scanID string
	for _, s := range inv.Items {
		if s.Path == a {
			scanID = s.ID
		}
	}

	out, err := Export(database, testCfg(), baseDir, ExportInput{ScanID: scanID})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(out.Files) != 1 || out.Files[0].Source != a {
		t.Errorf("files = %+v", out.Files)
	}
}

func TestExport_NameCollision(t *testing.T) {
	database, baseDir := setupTestDB(t)
	dirA, dirB := t.TempDir(), t.TempDir()
	pa := writeFixture(t, dirA, "funcs.sf", addSrc)
	pb := writeFixture(t, dirB, "funcs.sf", iotaSrc)
	for _, p := range []string{pa, pb} {
		if _, err := Ingest(database, testCfg(), IngestInput{Path: p}); err != nil {
			t.Fatalf("Ingest %s: %v", p, err)
		}
	}

	out, err := Export(database, testCfg(), baseDir, ExportInput{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(out.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(out.Files))
	}
	names := []string{filepath.Base(out.Files[0].Path), filepath.Base(out.Files[1].Path)}
	if names[0] == names[1] {
		t.Errorf("colliding export names: %v", names)
	}
}

func TestExport_DisallowedDir(t *testing.T) {
	database, baseDir := setupTestDB(t)
	outside := t.TempDir()

	_, err := Export(database, testCfg(), baseDir, ExportInput{Dir: outside})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("want INVALID_REQUEST for dir outside allowlist, got %v", err)
	}
}

func TestExport_AllowedPathsAndUnsafeOverride(t *testing.T) {
	database, baseDir := setupTestDB(t)
	srcDir := t.TempDir()
	path := writeFixture(t, srcDir, "funcs.sf", addSrc)
	if _, err := Ingest(database, testCfg(), IngestInput{Path: path}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	allowed := t.TempDir()
	cfg := &config.Config{MaxFileBytes: 64 << 20, AllowedPaths: []string{allowed}}
	if _, err := Export(database, cfg, baseDir, ExportInput{Dir: allowed}); err != nil {
		t.Errorf("allowed path rejected: %v", err)
	}

	anywhere := t.TempDir()
	unsafe := &config.Config{MaxFileBytes: 64 << 20, AllowUnsafePaths: true}
	if _, err := Export(database, unsafe, baseDir, ExportInput{Dir: anywhere}); err != nil {
		t.Errorf("unsafe override rejected: %v", err)
	}
}

func TestExport_TraversalRejected(t *testing.T) {
	database, baseDir := setupTestDB(t)
	_, err := Export(database, testCfg(), baseDir, ExportInput{Dir: baseDir + "/exports/../../etc"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("want INVALID_REQUEST for traversal, got %v", err)
	}
}
