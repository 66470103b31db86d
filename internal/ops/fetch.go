package ops

import (
	"database/sql"

	"github.com/hpungsan/aplsf/internal/db"
	"github.com/hpungsan/aplsf/internal/encoding"
	"github.com/hpungsan/aplsf/internal/errors"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID string
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	db.FunctionRow
	SourcePath string `json:"source_path"`
	RawLen     int    `json:"raw_len"`

	// Verified reports whether re-decoding the stored raw bytes still
	// reproduces the stored text, the catalog's integrity check.
	Verified bool `json:"verified"`
}

// Fetch retrieves one function by ULID, full text included, and
// re-verifies the decode round trip against the stored raw bytes.
func Fetch(database *sql.DB, input FetchInput) (*FetchOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	fn, err := db.GetFunctionByID(database, input.ID)
	if err != nil {
		return nil, err
	}

	scan, err := db.GetScanByID(database, fn.ScanID)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{
		FunctionRow: *fn,
		SourcePath:  scan.Path,
		RawLen:      len(fn.Raw),
		Verified:    encoding.Decode(fn.Raw) == fn.Text,
	}, nil
}
