package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/shared"
	"golang.org/x/time/rate"
)

// LibraryDump is the on-disk export format for a user's saved library.
type LibraryDump struct {
	ExportedAt time.Time        `json:"exported_at"`
	Chords     []services.Entry `json:"chords"`
	Songs      []services.Entry `json:"songs"`
}

// ChordDumpEntry is one chord in an import file.
type ChordDumpEntry struct {
	Name        string `json:"name"`
	Strings     []int  `json:"strings"`
	Description string `json:"description,omitempty"`
}

// ImportItemError records a single failed chord creation during import.
type ImportItemError struct {
	Name string
	Err  error
}

// ImportResult summarizes a bulk chord import.
type ImportResult struct {
	Total   int
	Created int
	Failed  int
	Errors  []ImportItemError
}

// ChordCreator is the subset of the chord client the import path needs.
type ChordCreator interface {
	Create(ctx context.Context, draft models.ChordDraft) (*models.Chord, error)
}

// LibraryEngine orchestrates saved-library export and bulk chord import.
type LibraryEngine struct {
	chords  services.Catalog
	songs   services.Catalog
	creator ChordCreator

	// createsPerSecond caps the bulk-create request rate.
	createsPerSecond float64
}

// NewLibraryEngine creates a LibraryEngine over the two catalog clients.
// The ChordAPI passed as creator is also the chords catalog in production;
// the split exists so tests can fake each side independently.
func NewLibraryEngine(chords, songs services.Catalog, creator ChordCreator) *LibraryEngine {
	return &LibraryEngine{
		chords:           chords,
		songs:            songs,
		creator:          creator,
		createsPerSecond: 5.0,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ExportSaved fetches the session's saved chords and songs and writes them as
// a JSON dump to path. Requires an authenticated session.
func (e *LibraryEngine) ExportSaved(ctx context.Context, progress chan<- ProgressUpdate, path string) (*LibraryDump, error) {
	e.sendProgress(progress, fetchSavedUpdate(FetchSavedChords, "chords"))
	chords, err := e.chords.ListSaved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved chords: %w", err)
	}

	e.sendProgress(progress, fetchSavedUpdate(FetchSavedSongs, "songs"))
	songs, err := e.songs.ListSaved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved songs: %w", err)
	}

	dump := &LibraryDump{
		ExportedAt: time.Now(),
		Chords:     chords,
		Songs:      songs,
	}

	e.sendProgress(progress, writeDumpUpdate(path))
	data, err := shared.MarshalJSON(dump, true)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write dump: %w", err)
	}

	return dump, nil
}

// ImportChords bulk-creates chords from a JSON dump file. Every entry is
// validated locally before any request; per-item creation failures are
// collected in the result rather than aborting the run.
func (e *LibraryEngine) ImportChords(ctx context.Context, progress chan<- ProgressUpdate, path string) (*ImportResult, error) {
	e.sendProgress(progress, readDumpUpdate(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", shared.ErrInvalidInput, path, err)
	}

	var entries []ChordDumpEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: malformed chord dump: %v", shared.ErrInvalidInput, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: chord dump is empty", shared.ErrInvalidInput)
	}

	drafts := make([]models.ChordDraft, len(entries))
	for i, entry := range entries {
		draft := models.ChordDraft{
			Name:        entry.Name,
			Strings:     entry.Strings,
			Description: entry.Description,
		}
		if err := draft.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i+1, entry.Name, err)
		}
		drafts[i] = draft
	}

	limiter := rate.NewLimiter(rate.Limit(e.createsPerSecond), 1)
	result := &ImportResult{Total: len(drafts)}

	for i, draft := range drafts {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("import interrupted: %w", err)
		}

		e.sendProgress(progress, createChordUpdate(i+1, len(drafts), draft.Name))

		if _, err := e.creator.Create(ctx, draft); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportItemError{Name: draft.Name, Err: err})
			continue
		}
		result.Created++
	}

	return result, nil
}
