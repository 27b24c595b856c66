package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/shared"
)

// ChordAPI implements [Catalog] for the chord library.
type ChordAPI struct {
	client *Client
}

// NewChordAPI creates a ChordAPI on the shared client.
func NewChordAPI(client *Client) *ChordAPI {
	return &ChordAPI{client: client}
}

func (a *ChordAPI) Kind() string { return "chords" }

// List retrieves chords, optionally narrowed by filter.Search.
// Genre and ChordID do not apply to chords and are ignored.
func (a *ChordAPI) List(ctx context.Context, filter Filter) ([]Entry, error) {
	var chords []models.Chord
	query := Filter{Search: filter.Search}.Values()
	if err := a.client.get(ctx, "/chords", query, &chords); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(chords))
	for i, c := range chords {
		entries[i] = chordEntry(c)
	}
	return entries, nil
}

// Get retrieves a chord by id.
func (a *ChordAPI) Get(ctx context.Context, id int) (*Detail, error) {
	var chord models.Chord
	if err := a.client.get(ctx, fmt.Sprintf("/chords/%d", id), nil, &chord); err != nil {
		return nil, err
	}

	detail := &Detail{Entry: chordEntry(chord)}
	detail.Fields = append(detail.Fields, Field{Label: "Fingering", Value: models.FormatStrings(chord.Strings)})
	if chord.Description != "" {
		detail.Fields = append(detail.Fields, Field{Label: "Description", Value: chord.Description})
	}
	if chord.ImageURL != "" {
		detail.Fields = append(detail.Fields, Field{Label: "Image", Value: a.client.BaseURL() + chord.ImageURL})
	}
	if chord.AudioURL != "" {
		detail.Fields = append(detail.Fields, Field{Label: "Audio", Value: a.client.BaseURL() + chord.AudioURL})
	}
	return detail, nil
}

// Create submits a new chord as a multipart form. Admin-only per backend
// policy; the draft is validated locally before any network call.
func (a *ChordAPI) Create(ctx context.Context, draft models.ChordDraft) (*models.Chord, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	strings, err := json.Marshal(draft.Strings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode strings: %w", err)
	}

	fields := map[string]string{
		"name":        draft.Name,
		"strings":     string(strings),
		"description": draft.Description,
	}
	files := []formFile{
		{field: "image_url", path: draft.ImagePath},
		{field: "audio_url", path: draft.AudioPath},
	}

	var chord models.Chord
	if err := a.client.postForm(ctx, "/chords", fields, files, &chord); err != nil {
		return nil, err
	}
	return &chord, nil
}

// Delete removes a chord. Admin-only per backend policy.
func (a *ChordAPI) Delete(ctx context.Context, id int) error {
	return a.client.delete(ctx, fmt.Sprintf("/chords/%d", id))
}

// Save bookmarks a chord. The backend reports an already-saved chord as a
// client error; that case is success from the caller's perspective.
func (a *ChordAPI) Save(ctx context.Context, id int) error {
	err := a.client.post(ctx, fmt.Sprintf("/chords/%d/save", id), nil)
	if err != nil && (errors.Is(err, shared.ErrInvalidInput) || errors.Is(err, shared.ErrConflict)) {
		return nil
	}
	return err
}

// Unsave removes a bookmark. A not-saved chord is success, symmetrically to Save.
func (a *ChordAPI) Unsave(ctx context.Context, id int) error {
	err := a.client.delete(ctx, fmt.Sprintf("/chords/%d/save", id))
	if err != nil && errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

// ListSaved retrieves the session's bookmarked chords.
func (a *ChordAPI) ListSaved(ctx context.Context) ([]Entry, error) {
	if a.client.Token() == "" {
		return nil, fmt.Errorf("%w: login required", shared.ErrUnauthorized)
	}

	var chords []models.Chord
	if err := a.client.get(ctx, "/chords/me/saved", nil, &chords); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(chords))
	for i, c := range chords {
		entries[i] = chordEntry(c)
	}
	return entries, nil
}

func chordEntry(c models.Chord) Entry {
	summary := c.Description
	if summary == "" && len(c.Strings) > 0 {
		summary = models.FormatStrings(c.Strings)
	}
	return Entry{ID: c.ID, Name: c.Name, Summary: summary}
}

var _ Catalog = (*ChordAPI)(nil)
