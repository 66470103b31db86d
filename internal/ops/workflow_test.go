package ops

import (
	"testing"

	"github.com/hpungsan/aplsf/internal/errors"
	"github.com/stretchr/testify/require"
)

// TestFullWorkflow exercises the complete forensic lifecycle:
// ingest → inventory → list → fetch → search → export → purge.
func TestFullWorkflow(t *testing.T) {
	database, baseDir := setupTestDB(t)
	cfg := testCfg()

	srcDir := t.TempDir()
	path := writeFixture(t, srcDir, "legacy.sf", addSrc, iotaSrc)

	// 1. Ingest
	ingested, err := Ingest(database, cfg, IngestInput{Path: path})
	require.NoError(t, err)
	require.Len(t, ingested.Scans, 1)
	require.Equal(t, 2, ingested.TotalFunctions)
	scanID := ingested.Scans[0].ScanID

	// 2. Inventory shows the scan
	inv, err := Inventory(database, InventoryInput{})
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	require.Equal(t, scanID, inv.Items[0].ID)
	require.Equal(t, 2, inv.Items[0].FunctionCount)

	// 3. List in offset order
	listed, err := List(database, ListInput{ScanID: scanID})
	require.NoError(t, err)
	require.Len(t, listed.Items, 2)
	require.Equal(t, "ADD", listed.Items[0].Name)
	require.Equal(t, "IOTA", listed.Items[1].Name)
	require.Less(t, listed.Items[0].Offset, listed.Items[1].Offset)

	// 4. Fetch with round-trip verification
	fetched, err := Fetch(database, FetchInput{ID: listed.Items[1].ID})
	require.NoError(t, err)
	require.True(t, fetched.Verified)
	require.Contains(t, fetched.Text, "⍳N")
	require.Equal(t, path, fetched.SourcePath)

	// 5. Search by glyph
	found, err := Search(database, SearchInput{Query: "⎕IO"})
	require.NoError(t, err)
	require.Equal(t, 1, found.Pagination.Total)
	require.Equal(t, "IOTA", found.Items[0].Name)

	// 6. Export
	exported, err := Export(database, cfg, baseDir, ExportInput{ScanID: scanID})
	require.NoError(t, err)
	require.Len(t, exported.Files, 1)
	require.Equal(t, 2, exported.Files[0].Functions)

	// 7. Purge
	purged, err := Purge(database, PurgeInput{ScanID: scanID})
	require.NoError(t, err)
	require.Equal(t, 1, purged.Purged)

	_, err = Fetch(database, FetchInput{ID: listed.Items[0].ID})
	require.True(t, errors.Is(err, errors.ErrNotFound))
}
