package mcp

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/aplsf/internal/config"
	"github.com/hpungsan/aplsf/internal/encoding"
	"github.com/hpungsan/aplsf/internal/errors"
	"github.com/hpungsan/aplsf/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	baseDir string
}

// NewHandlers creates a new Handlers instance. baseDir is the aplsf
// data directory (export default target).
func NewHandlers(db *sql.DB, cfg *config.Config, baseDir string) *Handlers {
	return &Handlers{db: db, cfg: cfg, baseDir: baseDir}
}

// Request types for each tool

// DecodeRequest represents the arguments for sf_decode.
type DecodeRequest struct {
	Hex    string `json:"hex,omitempty"`
	Base64 string `json:"base64,omitempty"`
}

// ExtractRequest represents the arguments for sf_extract.
type ExtractRequest struct {
	Path      string `json:"path"`
	Heuristic bool   `json:"heuristic,omitempty"`
}

// ScanRequest represents the arguments for sf_scan.
type ScanRequest struct {
	Path      string `json:"path"`
	Heuristic bool   `json:"heuristic,omitempty"`
}

// ListRequest represents the arguments for sf_list.
type ListRequest struct {
	ScanID string `json:"scan_id,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// FetchRequest represents the arguments for sf_fetch.
type FetchRequest struct {
	ID string `json:"id"`
}

// SearchRequest represents the arguments for sf_search.
type SearchRequest struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// InventoryRequest represents the arguments for sf_inventory.
type InventoryRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ExportRequest represents the arguments for sf_export.
type ExportRequest struct {
	ScanID string `json:"scan_id,omitempty"`
	Dir    string `json:"dir,omitempty"`
}

// PurgeRequest represents the arguments for sf_purge.
type PurgeRequest struct {
	ScanID string `json:"scan_id,omitempty"`
	All    bool   `json:"all,omitempty"`
}

// Handler implementations

// HandleDecode handles the sf_decode tool call.
func (h *Handlers) HandleDecode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[DecodeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var raw []byte
	switch {
	case input.Hex != "" && input.Base64 != "":
		return errorResult(errors.NewInvalidRequest("provide hex or base64, not both")), nil
	case input.Hex != "":
		raw, err = hex.DecodeString(input.Hex)
		if err != nil {
			return errorResult(errors.NewInvalidRequest("invalid hex: " + err.Error())), nil
		}
	case input.Base64 != "":
		raw, err = base64.StdEncoding.DecodeString(input.Base64)
		if err != nil {
			return errorResult(errors.NewInvalidRequest("invalid base64: " + err.Error())), nil
		}
	default:
		return errorResult(errors.NewInvalidRequest("provide hex or base64 input")), nil
	}

	return successResult(map[string]any{
		"text":  encoding.Decode(raw),
		"bytes": len(raw),
	})
}

// HandleExtract handles the sf_extract tool call.
func (h *Handlers) HandleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[ExtractRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Extract(h.cfg, ops.ExtractInput{
		Path:      input.Path,
		Heuristic: input.Heuristic,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleScan handles the sf_scan tool call.
func (h *Handlers) HandleScan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[ScanRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Ingest(h.db, h.cfg, ops.IngestInput{
		Path:      input.Path,
		Heuristic: input.Heuristic,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the sf_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.db, ops.ListInput{
		ScanID: input.ScanID,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the sf_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.db, ops.FetchInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the sf_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(h.db, ops.SearchInput{
		Query:  input.Query,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleInventory handles the sf_inventory tool call.
func (h *Handlers) HandleInventory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[InventoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Inventory(h.db, ops.InventoryInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the sf_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.db, h.cfg, h.baseDir, ops.ExportInput{
		ScanID: input.ScanID,
		Dir:    input.Dir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePurge handles the sf_purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[PurgeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Purge(h.db, ops.PurgeInput{
		ScanID: input.ScanID,
		All:    input.All,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sfErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    sfErr.Code,
			"message": sfErr.Message,
			"status":  sfErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if sfErr.Code != errors.ErrInternal && sfErr.Details != nil {
			errorObj["details"] = sfErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
