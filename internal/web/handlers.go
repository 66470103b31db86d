package web

import (
	"database/sql"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/aplsf/internal/config"
	"github.com/hpungsan/aplsf/internal/errors"
	"github.com/hpungsan/aplsf/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	baseDir  string
	renderer *Renderer
}

// HandleScans handles GET /scans, the catalog inventory.
func (h *Handlers) HandleScans(w http.ResponseWriter, r *http.Request) {
	input := ops.InventoryInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultInventoryLimit),
		Offset: parseIntParam(r, "offset", 0),
	}

	result, err := ops.Inventory(h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "scans", ScansPageData{
		PageData: PageData{
			Title:   "Scans",
			Version: h.renderer.version,
			Nav:     "scans",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleFunctions handles GET /functions: list cataloged functions,
// optionally narrowed to one scan.
func (h *Handlers) HandleFunctions(w http.ResponseWriter, r *http.Request) {
	scanID := r.URL.Query().Get("scan_id")

	input := ops.ListInput{
		ScanID: scanID,
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	}

	result, err := ops.List(h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "functions", FunctionsPageData{
		PageData: PageData{
			Title:   "Functions",
			Version: h.renderer.version,
			Nav:     "functions",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		ScanID:     scanID,
	})
}

// HandleDetail handles GET /functions/{id}: view one function.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("function ID is required"))
		return
	}

	fn, err := ops.Fetch(h.db, ops.FetchInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	rendered := renderMarkdown(functionReport(fn))

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   fn.Name,
			Version: h.renderer.version,
			Nav:     "functions",
		},
		Function:     fn,
		RenderedHTML: rendered,
	})
}

// HandleSearch handles GET /search: substring search over names and
// decoded source.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := SearchPageData{
		PageData: PageData{
			Title:   "Search",
			Version: h.renderer.version,
			Nav:     "search",
		},
		Query:    query,
		HasQuery: query != "",
	}

	if query == "" {
		// If htmx targets #results (user cleared the search box), return just the results fragment
		if r.Header.Get("HX-Target") == "results" {
			h.renderer.renderBlock(w, http.StatusOK, "search", "search-results", data)
			return
		}
		h.renderer.renderPage(w, r, "search", data)
		return
	}

	result, err := ops.Search(h.db, ops.SearchInput{
		Query:  query,
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data.Items = result.Items
	data.Pagination = result.Pagination

	// If htmx targets #results, render only the results fragment
	if r.Header.Get("HX-Target") == "results" {
		h.renderer.renderBlock(w, http.StatusOK, "search", "search-results", data)
		return
	}

	h.renderer.renderPage(w, r, "search", data)
}

// HandleExport handles POST /scans/{id}/export: write one scan's
// functions to the default export directory.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("scan ID is required"))
		return
	}

	result, err := ops.Export(h.db, h.cfg, h.baseDir, ops.ExportInput{ScanID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: return HTML fragment
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		msg := "exported " + strconv.Itoa(result.Functions) + " function(s)"
		_, _ = w.Write([]byte(`<div class="export-result">` + template.HTMLEscapeString(msg) + `</div>`))
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/scans", http.StatusFound)
}

// HandleDeleteScan handles DELETE /scans/{id}: remove a scan and its
// functions from the catalog.
func (h *Handlers) HandleDeleteScan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("scan ID is required"))
		return
	}

	result, err := ops.Purge(h.db, ops.PurgeInput{ScanID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/scans")
		w.WriteHeader(http.StatusOK)
		return
	}

	// JSON request
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"purged": result.Purged,
			"id":     id,
		})
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/scans", http.StatusFound)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
