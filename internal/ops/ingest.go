package ops

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hpungsan/aplsf/internal/config"
	"github.com/hpungsan/aplsf/internal/db"
	"github.com/hpungsan/aplsf/internal/errors"
	"github.com/hpungsan/aplsf/internal/sf"
)

// IngestInput contains parameters for the Ingest operation.
type IngestInput struct {
	// Path is a .sf file or a directory of .sf files.
	Path string

	// Heuristic selects the del-to-del fallback scanner.
	Heuristic bool
}

// ScanResult summarizes one ingested file.
type ScanResult struct {
	ScanID    string `json:"scan_id"`
	Path      string `json:"path"`
	Size      int    `json:"size"`
	Functions int    `json:"functions"`
	Replaced  bool   `json:"replaced,omitempty"`
}

// IngestOutput contains the result of the Ingest operation.
type IngestOutput struct {
	Scans          []ScanResult `json:"scans"`
	TotalFunctions int          `json:"total_functions"`
}

// Ingest extracts one file or every .sf file in a directory and stores
// the results in the catalog. Re-ingesting a path replaces its previous
// scan (the catalog mirrors the current state of the inputs; history is
// the filesystem's problem).
func Ingest(database *sql.DB, cfg *config.Config, input IngestInput) (*IngestOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	paths, err := resolveSources(input.Path)
	if err != nil {
		return nil, err
	}

	out := &IngestOutput{Scans: make([]ScanResult, 0, len(paths))}
	for _, path := range paths {
		result, err := ingestOne(database, cfg, path, input.Heuristic)
		if err != nil {
			return nil, err
		}
		out.Scans = append(out.Scans, *result)
		out.TotalFunctions += result.Functions
	}
	return out, nil
}

// resolveSources expands a path argument into the list of .sf files to
// ingest. A directory contributes its .sf entries in name order; a
// directory with none is an error (likely a typo, not an empty corpus).
func resolveSources(path string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewInvalidRequest("invalid path: " + err.Error())
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.NewSourceUnreadable(path, err)
	}
	if !info.IsDir() {
		return []string{abs}, nil
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.NewSourceUnreadable(path, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".sf") {
			paths = append(paths, filepath.Join(abs, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, errors.NewInvalidRequest("no .sf files found in " + path)
	}
	sort.Strings(paths)
	return paths, nil
}

// ingestOne extracts a single file and writes its scan + function rows.
func ingestOne(database *sql.DB, cfg *config.Config, path string, heuristic bool) (*ScanResult, error) {
	data, err := readSource(cfg, path)
	if err != nil {
		return nil, err
	}

	cf := sf.ReadBytesWith(path, data, scannerFor(heuristic))
	now := time.Now().Unix()

	// Replace any previous scan of the same path.
	replaced := false
	if prev, err := db.GetScanByPath(database, path); err != nil {
		return nil, err
	} else if prev != nil {
		if _, err := db.DeleteScan(database, prev.ID); err != nil {
			return nil, err
		}
		replaced = true
	}

	scan := &db.Scan{
		ID:            newULID(),
		Path:          path,
		SizeBytes:     int64(cf.Size),
		FunctionCount: len(cf.Functions),
		ScannedAt:     now,
	}
	if err := db.InsertScan(database, scan); err != nil {
		return nil, err
	}

	for _, fn := range cf.Functions {
		row := &db.FunctionRow{
			ID:        newULID(),
			ScanID:    scan.ID,
			Name:      fn.Name,
			Arity:     fn.Arity.String(),
			Offset:    fn.Offset,
			Text:      fn.Text,
			Raw:       fn.Raw,
			CreatedAt: now,
		}
		if err := db.InsertFunction(database, row); err != nil {
			return nil, err
		}
	}

	return &ScanResult{
		ScanID:    scan.ID,
		Path:      path,
		Size:      cf.Size,
		Functions: len(cf.Functions),
		Replaced:  replaced,
	}, nil
}
