package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/aplsf/internal/config"
	"github.com/hpungsan/aplsf/internal/encoding"
	"github.com/hpungsan/aplsf/internal/errors"
	"github.com/hpungsan/aplsf/internal/ops"
	"github.com/hpungsan/aplsf/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "aplsf",
		Usage:   "APL+Win component file extractor",
		Version: Version,
		Commands: []*cli.Command{
			extractCmd(cfg),
			decodeCmd(),
			scanCmd(db, cfg),
			listCmd(db),
			fetchCmd(db),
			searchCmd(db),
			inventoryCmd(db),
			exportCmd(db, cfg, baseDir),
			purgeCmd(db),
			webCmd(db, cfg, baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// extractCmd creates the extract command.
func extractCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract functions from a .sf file without touching the catalog",
		ArgsUsage: "<file.sf>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "heuristic", Usage: "Use the del-to-del fallback scanner (for damaged headers)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("a .sf file path is required"))
			}

			output, err := ops.Extract(cfg, ops.ExtractInput{
				Path:      c.Args().First(),
				Heuristic: c.Bool("heuristic"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// decodeCmd creates the decode command.
func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a whole file (or stdin) from the APL+Win byte encoding to Unicode text",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			var data []byte
			var err error

			if c.NArg() > 0 {
				data, err = os.ReadFile(c.Args().First())
				if err != nil {
					return outputError(errors.NewSourceUnreadable(c.Args().First(), err))
				}
			} else if stdinHasData() {
				data, err = io.ReadAll(os.Stdin)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			} else {
				return outputError(errors.NewInvalidRequest("provide a file path or pipe bytes via stdin"))
			}

			fmt.Print(encoding.Decode(data))
			return nil
		},
	}
}

// scanCmd creates the scan command.
func scanCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Extract a .sf file (or a directory of them) into the catalog",
		ArgsUsage: "<file.sf|dir>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "heuristic", Usage: "Use the del-to-del fallback scanner"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("a .sf file or directory path is required"))
			}

			output, err := ops.Ingest(db, cfg, ops.IngestInput{
				Path:      c.Args().First(),
				Heuristic: c.Bool("heuristic"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List cataloged functions in source-layout order",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scan", Aliases: []string{"s"}, Usage: "Narrow to one scan ID"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(db, ops.ListInput{
				ScanID: c.String("scan"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch one function by ID, full decoded text included",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("a function ID is required"))
			}

			output, err := ops.Fetch(db, ops.FetchInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search function names and decoded source (APL glyphs work)",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("a search query is required"))
			}

			output, err := ops.Search(db, ops.SearchInput{
				Query:  c.Args().First(),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// inventoryCmd creates the inventory command.
func inventoryCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "inventory",
		Usage: "List catalog scans, most recent first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 50, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Inventory(db, ops.InventoryInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write decoded functions as UTF-8 .apl files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scan", Aliases: []string{"s"}, Usage: "Export one scan ID (default: whole catalog)"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Output directory (default: ~/.aplsf/exports)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(db, cfg, baseDir, ops.ExportInput{
				ScanID: c.String("scan"),
				Dir:    c.String("dir"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Delete scans from the catalog (permanent)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scan", Aliases: []string{"s"}, Usage: "Delete one scan ID"},
			&cli.BoolFlag{Name: "all", Usage: "Empty the whole catalog"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Purge(db, ops.PurgeInput{
				ScanID: c.String("scan"),
				All:    c.Bool("all"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(db *sql.DB, cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8765, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, baseDir, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sfErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sfErr.Code, sfErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
