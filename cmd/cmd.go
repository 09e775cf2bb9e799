// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/desertthunder/moviebox/internal/formatter"
	"github.com/urfave/cli/v3"
)

func outputFlags(prettyDefault bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: prettyDefault,
		},
	}
}

// setupCommand creates the config file and initializes the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml, initialize the database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// popularCommand lists the popular movies.
func popularCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "popular",
		Usage:  "List popular movies",
		Flags:  outputFlags(false),
		Action: r.Popular,
	}
}

// searchCommand searches movies by title.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search movies by title (an empty query lists popular movies)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags:  outputFlags(false),
		Action: r.Search,
	}
}

// detailsCommand prints a single movie.
func detailsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "details",
		Aliases: []string{"show"},
		Usage:   "Show details for a movie id",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags:  outputFlags(true),
		Action: r.Details,
	}
}

// favoritesCommand handles the persisted favorites list.
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage the favorites list",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List favorites",
				Flags: append(outputFlags(false),
					&cli.StringFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Fuzzy filter by title",
					},
				),
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Look up a movie id and append it to favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove every favorite with the movie id",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.FavoritesRemove,
			},
			{
				Name:   "clear",
				Usage:  "Remove all favorites",
				Action: r.FavoritesClear,
			},
			{
				Name:  "export",
				Usage: "Export favorites to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (json, csv, markdown, txt)",
						Value: formatter.FormatJSON,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: favorites.<ext>)",
					},
				},
				Action: r.FavoritesExport,
			},
			{
				Name:  "check",
				Usage: "Compare stored favorites with the Movie API",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent lookups",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the report as JSON",
					},
				},
				Action: r.FavoritesCheck,
			},
		},
	}
}

// storageCommand inspects the local key-value store.
func storageCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "storage",
		Usage: "Inspect local storage",
		Commands: []*cli.Command{
			{
				Name:   "keys",
				Usage:  "List stored keys",
				Action: r.StorageKeys,
			},
			{
				Name:  "get",
				Usage: "Print the raw value stored under a key",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "key",
					},
				},
				Action: r.StorageGet,
			},
			{
				Name:  "delete",
				Usage: "Delete a stored key",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "key",
					},
				},
				Action: r.StorageDelete,
			},
			{
				Name:  "reset",
				Usage: "Drop and recreate the local schema, discarding all stored data",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm that stored favorites will be lost",
					},
				},
				Action: r.StorageReset,
			},
		},
	}
}

// apiCommand handles direct Movie API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the Movie API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the Movie API, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive movie browser",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "refresh",
				Usage: "Reload popular movies on this interval while not searching (0 disables)",
				Value: 5 * time.Minute,
			},
		},
		Action: r.TUI,
	}
}

// serveCommand runs the web view.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the movie browser over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (default from config)",
			},
		},
		Action: r.Serve,
	}
}
