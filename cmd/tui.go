package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/session"
	"github.com/guitarkit/strum/internal/shared"
	"github.com/guitarkit/strum/internal/ui"
	"github.com/urfave/cli/v3"
)

// chordBrowser configures the browser for the chord catalog.
func (r *Runner) chordBrowser() ui.Config {
	return ui.Config{
		Title:      "Chords",
		Catalog:    r.chords,
		Debounce:   r.config.UI.Debounce(),
		Admin:      r.session.Role() == session.RoleAdmin,
		FormLabels: []string{"Name", "Strings (e.g. x,0,2,2,1,0)", "Description"},
		Create: func(ctx context.Context, values []string) error {
			strings, err := models.ParseStrings(values[1])
			if err != nil {
				return err
			}

			draft := models.ChordDraft{Name: values[0], Strings: strings, Description: values[2]}
			_, err = r.chords.Create(ctx, draft)
			return err
		},
	}
}

// songBrowser configures the browser for the song catalog.
func (r *Runner) songBrowser() ui.Config {
	return ui.Config{
		Title:      "Songs",
		Catalog:    r.songs,
		Debounce:   r.config.UI.Debounce(),
		Admin:      r.session.Role() == session.RoleAdmin,
		FormLabels: []string{"Title", "Genre", "Chord IDs (e.g. 1,4,7)", "Lyrics"},
		Create: func(ctx context.Context, values []string) error {
			chordIDs, err := parseChordIDs(values[2])
			if err != nil {
				return err
			}

			draft := models.SongDraft{Title: values[0], Genre: values[1], Lyrics: values[3], ChordIDs: chordIDs}
			_, err = r.songs.Create(ctx, draft)
			return err
		},
	}
}

// TUI launches the interactive catalog browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	var cfg ui.Config
	switch kind := cmd.String("kind"); kind {
	case "chords":
		cfg = r.chordBrowser()
	case "songs":
		cfg = r.songBrowser()
	default:
		return fmt.Errorf("%w: kind must be chords or songs, got %q", shared.ErrInvalidFlag, kind)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/strum-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	cfg.Logger = fileLogger

	model := ui.NewModel(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
