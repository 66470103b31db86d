package db

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/aplsf/internal/errors"
)

// Scan is one catalog row per ingested .sf file.
type Scan struct {
	ID            string `json:"id"`
	Path          string `json:"path"`
	SizeBytes     int64  `json:"size_bytes"`
	FunctionCount int    `json:"function_count"`
	ScannedAt     int64  `json:"scanned_at"`
}

// FunctionRow is one catalog row per extracted function. Raw holds the
// undecoded bytes so the decode round trip can be re-verified after
// ingest.
type FunctionRow struct {
	ID        string `json:"id"`
	ScanID    string `json:"scan_id"`
	Name      string `json:"name"`
	Arity     string `json:"arity"`
	Offset    int    `json:"offset"`
	Text      string `json:"text,omitempty"`
	Raw       []byte `json:"-"`
	CreatedAt int64  `json:"created_at"`
}

// InsertScan stores a scan row.
func InsertScan(db *sql.DB, s *Scan) error {
	_, err := db.Exec(`
		INSERT INTO scans (id, path, size_bytes, function_count, scanned_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Path, s.SizeBytes, s.FunctionCount, s.ScannedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// InsertFunction stores a function row.
func InsertFunction(db *sql.DB, f *FunctionRow) error {
	_, err := db.Exec(`
		INSERT INTO functions (id, scan_id, name, arity, offset, text, raw, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ScanID, f.Name, f.Arity, f.Offset, f.Text, f.Raw, f.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetScanByID retrieves one scan.
func GetScanByID(db *sql.DB, id string) (*Scan, error) {
	row := db.QueryRow(`
		SELECT id, path, size_bytes, function_count, scanned_at
		FROM scans WHERE id = ?`, id)
	return scanScan(row, id)
}

// GetScanByPath retrieves the scan for a source path, if any.
// Returns (nil, nil) when the path has never been ingested.
func GetScanByPath(db *sql.DB, path string) (*Scan, error) {
	row := db.QueryRow(`
		SELECT id, path, size_bytes, function_count, scanned_at
		FROM scans WHERE path = ?`, path)
	s, err := scanScan(row, path)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, nil
	}
	return s, err
}

// DeleteScan removes a scan; its functions cascade.
// Returns the number of scans deleted (0 or 1).
func DeleteScan(db *sql.DB, id string) (int, error) {
	res, err := db.Exec(`DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

// DeleteAllScans empties the catalog. Returns the number of scans
// removed.
func DeleteAllScans(db *sql.DB) (int, error) {
	res, err := db.Exec(`DELETE FROM scans`)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

// ListScans returns scans ordered by most recent first, plus the total
// count.
func ListScans(db *sql.DB, limit, offset int) ([]Scan, int, error) {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM scans`).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.Query(`
		SELECT id, path, size_bytes, function_count, scanned_at
		FROM scans
		ORDER BY scanned_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var s Scan
		if err := rows.Scan(&s.ID, &s.Path, &s.SizeBytes, &s.FunctionCount, &s.ScannedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	return scans, total, nil
}

// GetFunctionByID retrieves one function row, raw bytes included.
func GetFunctionByID(db *sql.DB, id string) (*FunctionRow, error) {
	row := db.QueryRow(`
		SELECT id, scan_id, name, arity, offset, text, raw, created_at
		FROM functions WHERE id = ?`, id)

	var f FunctionRow
	err := row.Scan(&f.ID, &f.ScanID, &f.Name, &f.Arity, &f.Offset, &f.Text, &f.Raw, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &f, nil
}

// ListFunctions returns function rows ordered by source layout (scan,
// then offset), plus the total count. scanID narrows to one scan when
// non-empty. Text and raw are omitted from list rows.
func ListFunctions(db *sql.DB, scanID string, limit, offset int) ([]FunctionRow, int, error) {
	where := ""
	args := []any{}
	if scanID != "" {
		where = "WHERE scan_id = ?"
		args = append(args, scanID)
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM functions `+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, scan_id, name, arity, offset, created_at
		FROM functions ` + where + `
		ORDER BY scan_id, offset
		LIMIT ? OFFSET ?`
	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectFunctionRows(rows, total)
}

// SearchFunctions matches the query as a case-insensitive substring of
// the function name or decoded text. Ordered by scan and offset.
func SearchFunctions(db *sql.DB, query string, limit, offset int) ([]FunctionRow, int, error) {
	pattern := "%" + escapeLike(query) + "%"

	var total int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM functions
		WHERE name LIKE ? ESCAPE '\' OR text LIKE ? ESCAPE '\'`,
		pattern, pattern).Scan(&total)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.Query(`
		SELECT id, scan_id, name, arity, offset, created_at
		FROM functions
		WHERE name LIKE ? ESCAPE '\' OR text LIKE ? ESCAPE '\'
		ORDER BY scan_id, offset
		LIMIT ? OFFSET ?`,
		pattern, pattern, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectFunctionRows(rows, total)
}

// FunctionsForScan returns every function of a scan in offset order,
// text included. Used by export, which needs full bodies.
func FunctionsForScan(db *sql.DB, scanID string) ([]FunctionRow, error) {
	rows, err := db.Query(`
		SELECT id, scan_id, name, arity, offset, text, raw, created_at
		FROM functions
		WHERE scan_id = ?
		ORDER BY offset`, scanID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var fns []FunctionRow
	for rows.Next() {
		var f FunctionRow
		if err := rows.Scan(&f.ID, &f.ScanID, &f.Name, &f.Arity, &f.Offset, &f.Text, &f.Raw, &f.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		fns = append(fns, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return fns, nil
}

// collectFunctionRows scans list-shaped rows (no text/raw columns).
func collectFunctionRows(rows *sql.Rows, total int) ([]FunctionRow, int, error) {
	var fns []FunctionRow
	for rows.Next() {
		var f FunctionRow
		if err := rows.Scan(&f.ID, &f.ScanID, &f.Name, &f.Arity, &f.Offset, &f.CreatedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		fns = append(fns, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	return fns, total, nil
}

// escapeLike escapes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// scanScan reads one scans row.
func scanScan(row *sql.Row, identifier string) (*Scan, error) {
	var s Scan
	err := row.Scan(&s.ID, &s.Path, &s.SizeBytes, &s.FunctionCount, &s.ScannedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(identifier)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &s, nil
}
