// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and log in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AuthStatus,
			},
		},
	}
}

// catalogFlags are shared by the chords and songs list commands.
func catalogFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Filter by name",
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
	}

	return append(flags, extra...)
}

// chordsCommand handles chord catalog operations
func chordsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "chords",
		Aliases: []string{"chord"},
		Usage:   "Chord catalog operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List chords, optionally filtered by name",
				Flags:  catalogFlags(),
				Action: r.ChordsList,
			},
			{
				Name:      "get",
				Usage:     "Show a single chord",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ChordsGet,
			},
			{
				Name:  "create",
				Usage: "Create a chord (admin only)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Chord name, e.g. Am7",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "strings",
						Usage:    "Six comma-separated frets, low E first, x for muted",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Chord description",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Path to a diagram image to upload",
					},
					&cli.StringFlag{
						Name:  "audio",
						Usage: "Path to an audio sample to upload",
					},
				},
				Action: r.ChordsCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a chord (admin only)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ChordsDelete,
			},
			{
				Name:      "save",
				Usage:     "Save a chord to your library",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ChordsSave,
			},
			{
				Name:      "unsave",
				Usage:     "Remove a chord from your library",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ChordsUnsave,
			},
			{
				Name:   "saved",
				Usage:  "List chords saved to your library",
				Flags:  catalogFlags(),
				Action: r.ChordsSaved,
			},
		},
	}
}

// songsCommand handles song catalog operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"song"},
		Usage:   "Song catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs, optionally filtered",
				Flags: catalogFlags(
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Filter by genre (rock, pop, jazz, classic, other)",
					},
					&cli.IntFlag{
						Name:  "chord",
						Usage: "Filter to songs using a chord ID",
					},
				),
				Action: r.SongsList,
			},
			{
				Name:      "get",
				Usage:     "Show a single song",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.SongsGet,
			},
			{
				Name:  "create",
				Usage: "Create a song (admin only)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Song title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "genre",
						Usage:    "Song genre (rock, pop, jazz, classic, other)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "lyrics",
						Usage: "Song lyrics",
					},
					&cli.StringFlag{
						Name:     "chord-ids",
						Usage:    "Comma-separated chord IDs used by the song",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Path to sheet image, uploaded after creation",
					},
					&cli.StringFlag{
						Name:  "audio",
						Usage: "Path to audio file, uploaded after creation",
					},
				},
				Action: r.SongsCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a song (admin only)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.SongsDelete,
			},
			{
				Name:      "save",
				Usage:     "Save a song to your library",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.SongsSave,
			},
			{
				Name:      "unsave",
				Usage:     "Remove a song from your library",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.SongsUnsave,
			},
			{
				Name:   "saved",
				Usage:  "List songs saved to your library",
				Flags:  catalogFlags(),
				Action: r.SongsSaved,
			},
		},
	}
}

// libraryCommand handles saved-library export and import
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Export and import your saved library",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export saved chords and songs to a JSON dump",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "library.json",
					},
				},
				Action: r.LibraryExport,
			},
			{
				Name:  "import",
				Usage: "Create chords from a previously exported dump (admin only)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Dump file path",
						Required: true,
					},
				},
				Action: r.LibraryImport,
			},
		},
	}
}

// cacheCommand handles the local listing cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local listing cache",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show cached listings for a catalog kind",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "kind"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.CacheShow,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the config file, with optional overrides",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:  "base-url",
						Usage: "Catalog backend base URL",
					},
					&cli.IntFlag{
						Name:  "timeout-seconds",
						Usage: "Request timeout in seconds",
					},
					&cli.IntFlag{
						Name:  "debounce-ms",
						Usage: "TUI search debounce in milliseconds",
					},
					&cli.StringFlag{
						Name:  "db-path",
						Usage: "Cache database path",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Catalog to browse (chords or songs)",
				Value: "chords",
			},
		},
		Action: r.TUI,
	}
}
