// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/songtable/internal/formatter"
	"github.com/urfave/cli/v3"
)

// rootFlags are accepted by every command.
func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
			Sources: cli.EnvVars("SONGTABLE_CONFIG"),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "Base URL of a running songtable server (overrides client.base_url)",
		},
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config if missing, initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// serveCommand runs the HTTP API and web page.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the song API and web table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// songsCommand handles song list operations against a running server
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "List, upload, clear and export songs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs from the server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "order",
						Usage: "Order by name, band or year",
						Value: "band",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "upload",
				Usage: "Upload a CSV file of name, band, year rows",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Action: r.SongsUpload,
			},
			{
				Name:  "import",
				Usage: "Import a CSV file straight into the local database",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Action: r.SongsImport,
			},
			{
				Name:  "clear",
				Usage: "Delete every song on the server",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.SongsClear,
			},
			{
				Name:  "export",
				Usage: "Fetch songs and write them to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, json, markdown, txt)",
						Value:   string(formatter.FormatCSV),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: songs.{ext})",
					},
					&cli.StringFlag{
						Name:  "order",
						Usage: "Order by name, band or year",
						Value: "band",
					},
				},
				Action: r.SongsExport,
			},
		},
	}
}

// statusCommand checks a running server.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check server health and song count (calls /health)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Status,
	}
}

// tuiCommand returns the top-level TUI command for the interactive song table.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive song table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where TUI logs are written",
				Value: "./tmp/songtable-tui.log",
			},
		},
		Action: r.TUI,
	}
}
