package ops

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hpungsan/aplsf/internal/config"
	"github.com/hpungsan/aplsf/internal/db"
	"github.com/hpungsan/aplsf/internal/errors"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	// ScanID narrows the export to one scan; empty exports the whole
	// catalog.
	ScanID string

	// Dir is the output directory. Defaults to baseDir/exports.
	Dir string
}

// ExportedFile describes one written .apl file.
type ExportedFile struct {
	Path      string `json:"path"`
	Source    string `json:"source"`
	Functions int    `json:"functions"`
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Files      []ExportedFile `json:"files"`
	Functions  int            `json:"functions"`
	ExportedAt int64          `json:"exported_at"`
}

// Export writes decoded function text as UTF-8 .apl files, one per
// scanned source file. The .apl extension marks decoded plain text as
// opposed to the binary .sf container.
func Export(database *sql.DB, cfg *config.Config, baseDir string, input ExportInput) (*ExportOutput, error) {
	dir := input.Dir
	if dir == "" {
		dir = filepath.Join(baseDir, "exports")
	}
	if err := validateExportDir(dir, cfg, baseDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	scans, err := exportScans(database, input.ScanID)
	if err != nil {
		return nil, err
	}

	out := &ExportOutput{ExportedAt: time.Now().Unix()}
	used := make(map[string]int)
	for _, scan := range scans {
		fns, err := db.FunctionsForScan(database, scan.ID)
		if err != nil {
			return nil, err
		}
		if len(fns) == 0 {
			continue
		}

		path := filepath.Join(dir, exportName(scan.Path, used))
		if err := writeAPLFile(path, scan.Path, fns); err != nil {
			return nil, err
		}

		out.Files = append(out.Files, ExportedFile{
			Path:      path,
			Source:    scan.Path,
			Functions: len(fns),
		})
		out.Functions += len(fns)
	}
	if out.Files == nil {
		out.Files = []ExportedFile{}
	}
	return out, nil
}

// exportScans resolves the scans covered by an export request.
func exportScans(database *sql.DB, scanID string) ([]db.Scan, error) {
	if scanID != "" {
		scan, err := db.GetScanByID(database, scanID)
		if err != nil {
			return nil, err
		}
		return []db.Scan{*scan}, nil
	}
	scans, _, err := db.ListScans(database, MaxInventoryLimit, 0)
	return scans, err
}

// exportName derives a .apl filename from a source path, keeping names
// unique within one export run.
func exportName(sourcePath string, used map[string]int) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	if stem == "" {
		stem = "functions"
	}
	n := used[stem]
	used[stem]++
	if n == 0 {
		return stem + ".apl"
	}
	return fmt.Sprintf("%s-%d.apl", stem, n)
}

// writeAPLFile writes one decoded source file with a lamp-comment
// banner, matching the convention consumers of .apl dumps expect.
func writeAPLFile(path, source string, fns []db.FunctionRow) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "⍝ === Extracted from %s ===\n", filepath.Base(source))
	fmt.Fprintf(&sb, "⍝ === %d function(s) ===\n\n", len(fns))
	for _, fn := range fns {
		sb.WriteString(strings.TrimRight(fn.Text, "\n"))
		sb.WriteString("\n\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write export file: %w", err))
	}
	return nil
}

// validateExportDir restricts where exports may be written: inside
// baseDir/exports, inside a configured allowed path, or anywhere when
// the unsafe override is set. Traversal sequences are always rejected.
func validateExportDir(dir string, cfg *config.Config, baseDir string) error {
	if strings.Contains(dir, "..") {
		return errors.NewInvalidRequest("export dir must not contain directory traversal (..)")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid export dir: %v", err))
	}

	if cfg != nil && cfg.AllowUnsafePaths {
		return nil
	}

	allowed := []string{filepath.Join(baseDir, "exports")}
	if cfg != nil {
		allowed = append(allowed, cfg.AllowedPaths...)
	}
	for _, a := range allowed {
		if a == "" || !filepath.IsAbs(a) {
			continue
		}
		if abs == filepath.Clean(a) || strings.HasPrefix(abs, filepath.Clean(a)+string(filepath.Separator)) {
			return nil
		}
	}
	return errors.NewInvalidRequest(fmt.Sprintf("export dir %s is outside allowed paths; add it to allowed_paths or set allow_unsafe_paths", dir))
}
