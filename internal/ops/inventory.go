package ops

import (
	"database/sql"

	"github.com/hpungsan/aplsf/internal/db"
)

// InventoryInput contains parameters for the Inventory operation.
type InventoryInput struct {
	Limit  int // default: 50, max: 200
	Offset int
}

// InventoryOutput contains the result of the Inventory operation.
type InventoryOutput struct {
	Items      []db.Scan  `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Inventory lists catalog scans, most recent first.
func Inventory(database *sql.DB, input InventoryInput) (*InventoryOutput, error) {
	limit := clampLimit(input.Limit, DefaultInventoryLimit, MaxInventoryLimit)
	offset := max(input.Offset, 0)

	items, total, err := db.ListScans(database, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []db.Scan{}
	}

	return &InventoryOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}
