package ops

import (
	"database/sql"

	"github.com/hpungsan/aplsf/internal/db"
	"github.com/hpungsan/aplsf/internal/errors"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	// ScanID removes one scan. Mutually exclusive with All.
	ScanID string

	// All empties the catalog.
	All bool
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged int `json:"purged"`
}

// Purge deletes scans (functions cascade). The catalog is rebuildable
// from the .sf inputs, so deletion is hard; there is no soft-delete
// tier to restore from.
func Purge(database *sql.DB, input PurgeInput) (*PurgeOutput, error) {
	switch {
	case input.All && input.ScanID != "":
		return nil, errors.NewInvalidRequest("specify either scan_id or all, not both")
	case input.All:
		n, err := db.DeleteAllScans(database)
		if err != nil {
			return nil, err
		}
		return &PurgeOutput{Purged: n}, nil
	case input.ScanID != "":
		n, err := db.DeleteScan(database, input.ScanID)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, errors.NewNotFound(input.ScanID)
		}
		return &PurgeOutput{Purged: n}, nil
	default:
		return nil, errors.NewInvalidRequest("specify scan_id or all")
	}
}
