package ops

import (
	"testing"

	"github.com/hpungsan/aplsf/internal/errors"
)

func TestIngest_SingleFile(t *testing.T) {
	database, _ := setupTestDB(t)
	srcDir := t.TempDir()
	path := writeFixture(t, srcDir, "funcs.sf", addSrc, iotaSrc)

	out, err := Ingest(database, testCfg(), IngestInput{Path: path})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(out.Scans) != 1 {
		t.Fatalf("got %d scans, want 1", len(out.Scans))
	}
	if out.Scans[0].Functions != 2 || out.TotalFunctions != 2 {
		t.Errorf("functions = %d (total %d), want 2", out.Scans[0].Functions, out.TotalFunctions)
	}
	if out.Scans[0].Replaced {
		t.Error("first ingest reported Replaced")
	}
}

func TestIngest_Directory(t *testing.T) {
	database, _ := setupTestDB(t)
	srcDir := t.TempDir()
	writeFixture(t, srcDir, "b.sf", iotaSrc)
	writeFixture(t, srcDir, "a.sf", addSrc)

	out, err := Ingest(database, testCfg(), IngestInput{Path: srcDir})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(out.Scans) != 2 {
		t.Fatalf("got %d scans, want 2", len(out.Scans))
	}
	// Directory entries are ingested in name order.
	if out.Scans[0].Functions != 1 || out.Scans[1].Functions != 1 {
		t.Errorf("scan results = %+v", out.Scans)
	}
}

func TestIngest_ReplacesPreviousScan(t *testing.T) {
	database, _ := setupTestDB(t)
	srcDir := t.TempDir()
	path := writeFixture(t, srcDir, "funcs.sf", addSrc)

	first, err := Ingest(database, testCfg(), IngestInput{Path: path})
	if err != nil {
		t.Fatalf("first Ingest: %v", err)
	}

	// Same path again: the old scan is replaced, not duplicated.
	writeFixture(t, srcDir, "funcs.sf", addSrc, iotaSrc)
	second, err := Ingest(database, testCfg(), IngestInput{Path: path})
	if err != nil {
		t.Fatalf("second Ingest: %v", err)
	}
	if !second.Scans[0].Replaced {
		t.Error("second ingest did not report Replaced")
	}
	if second.Scans[0].ScanID == first.Scans[0].ScanID {
		t.Error("replacement reused the old scan ID")
	}

	inv, err := Inventory(database, InventoryInput{})
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	if inv.Pagination.Total != 1 {
		t.Errorf("catalog has %d scans, want 1", inv.Pagination.Total)
	}
	if inv.Items[0].FunctionCount != 2 {
		t.Errorf("replacement scan has %d functions, want 2", inv.Items[0].FunctionCount)
	}
}

func TestIngest_EmptyDirectory(t *testing.T) {
	database, _ := setupTestDB(t)
	_, err := Ingest(database, testCfg(), IngestInput{Path: t.TempDir()})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("want INVALID_REQUEST for dir without .sf files, got %v", err)
	}
}

func TestIngest_MissingPath(t *testing.T) {
	database, _ := setupTestDB(t)
	_, err := Ingest(database, testCfg(), IngestInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("want INVALID_REQUEST, got %v", err)
	}
}
