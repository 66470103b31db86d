package ops

import (
	"database/sql"

	"github.com/hpungsan/aplsf/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	ScanID string // optional: narrow to one scan
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []db.FunctionRow `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Sort       string           `json:"sort"`
}

// List retrieves function summaries in source-layout order (scan, then
// byte offset) with pagination.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := clampLimit(input.Limit, DefaultListLimit, MaxListLimit)
	offset := max(input.Offset, 0)

	items, total, err := db.ListFunctions(database, input.ScanID, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []db.FunctionRow{}
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "offset_asc",
	}, nil
}
