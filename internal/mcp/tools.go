package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the sf_* tool set. Descriptions are written for
// MCP clients that have never seen an APL component file.

var decodeToolDef = mcp.NewTool("sf_decode",
	mcp.WithDescription("Decode raw APL+Win component-file bytes into Unicode APL text. Provide the bytes as hex or base64 (exactly one). Every byte maps to exactly one character, so offsets in the output line up with offsets in the input."),
	mcp.WithString("hex", mcp.Description("Input bytes as a hex string.")),
	mcp.WithString("base64", mcp.Description("Input bytes as a base64 string.")),
)

var extractToolDef = mcp.NewTool("sf_extract",
	mcp.WithDescription("Extract function definitions from a .sf component file and return them decoded, without writing to the catalog. Malformed binary content degrades to partial results rather than failing."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path of the .sf file to read.")),
	mcp.WithBoolean("heuristic", mcp.Description("Use the del-to-del fallback scanner instead of sub-object headers. For dumps with damaged or missing headers.")),
)

var scanToolDef = mcp.NewTool("sf_scan",
	mcp.WithDescription("Extract a .sf file (or every .sf file in a directory) and store the results in the catalog. Re-scanning a path replaces its previous scan."),
	mcp.WithString("path", mcp.Required(), mcp.Description("A .sf file or a directory containing .sf files.")),
	mcp.WithBoolean("heuristic", mcp.Description("Use the del-to-del fallback scanner.")),
)

var listToolDef = mcp.NewTool("sf_list",
	mcp.WithDescription("List cataloged functions in source-layout order (scan, then byte offset). Returns summaries without source text; use sf_fetch for the full text."),
	mcp.WithString("scan_id", mcp.Description("Narrow the listing to one scan.")),
	mcp.WithNumber("limit", mcp.Description("Max results per page (default 20, max 100).")),
	mcp.WithNumber("offset", mcp.Description("Number of results to skip.")),
)

var fetchToolDef = mcp.NewTool("sf_fetch",
	mcp.WithDescription("Fetch one cataloged function by ID, full decoded text included. The stored raw bytes are re-decoded and compared against the stored text as an integrity check."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Function ID (ULID) from sf_list or sf_search.")),
)

var searchToolDef = mcp.NewTool("sf_search",
	mcp.WithDescription("Search cataloged functions by substring of their name or decoded source. APL glyphs work as query text, e.g. ⎕IO or ⍳."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Substring to match against function names and source text.")),
	mcp.WithNumber("limit", mcp.Description("Max results per page (default 20, max 100).")),
	mcp.WithNumber("offset", mcp.Description("Number of results to skip.")),
)

var inventoryToolDef = mcp.NewTool("sf_inventory",
	mcp.WithDescription("List catalog scans, most recent first, with path, size, and function count per scan."),
	mcp.WithNumber("limit", mcp.Description("Max results per page (default 50, max 200).")),
	mcp.WithNumber("offset", mcp.Description("Number of results to skip.")),
)

var exportToolDef = mcp.NewTool("sf_export",
	mcp.WithDescription("Write decoded function text as UTF-8 .apl files, one per scanned source file. Defaults to the aplsf exports directory; other targets must be on the configured allowlist."),
	mcp.WithString("scan_id", mcp.Description("Export one scan; empty exports the whole catalog.")),
	mcp.WithString("dir", mcp.Description("Output directory.")),
)

var purgeToolDef = mcp.NewTool("sf_purge",
	mcp.WithDescription("Delete scans and their functions from the catalog. Deletion is permanent; the catalog is rebuildable from the .sf inputs."),
	mcp.WithString("scan_id", mcp.Description("Delete one scan. Mutually exclusive with all.")),
	mcp.WithBoolean("all", mcp.Description("Empty the whole catalog.")),
)
