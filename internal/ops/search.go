package ops

import (
	"database/sql"
	"strings"

	"github.com/hpungsan/aplsf/internal/db"
	"github.com/hpungsan/aplsf/internal/errors"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query  string
	Limit  int
	Offset int
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Query      string           `json:"query"`
	Items      []db.FunctionRow `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// Search matches functions whose name or decoded source contains the
// query string. APL glyphs work as query text: the catalog stores
// decoded UTF-8, so searching for ⎕IO or a function name is the same
// operation.
func Search(database *sql.DB, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	limit := clampLimit(input.Limit, DefaultListLimit, MaxListLimit)
	offset := max(input.Offset, 0)

	items, total, err := db.SearchFunctions(database, query, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []db.FunctionRow{}
	}

	return &SearchOutput{
		Query: query,
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}
