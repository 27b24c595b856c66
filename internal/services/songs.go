package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/shared"
)

// SongAPI implements [Catalog] for the song library.
type SongAPI struct {
	client *Client
}

// NewSongAPI creates a SongAPI on the shared client.
func NewSongAPI(client *Client) *SongAPI {
	return &SongAPI{client: client}
}

func (a *SongAPI) Kind() string { return "songs" }

// List retrieves songs matching the filter (search, genre, chord id).
func (a *SongAPI) List(ctx context.Context, filter Filter) ([]Entry, error) {
	var songs []models.Song
	if err := a.client.get(ctx, "/songs", filter.Values(), &songs); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(songs))
	for i, s := range songs {
		entries[i] = songEntry(s)
	}
	return entries, nil
}

// Get retrieves a song by id, including its related chords.
func (a *SongAPI) Get(ctx context.Context, id int) (*Detail, error) {
	var song models.Song
	if err := a.client.get(ctx, fmt.Sprintf("/songs/%d", id), nil, &song); err != nil {
		return nil, err
	}

	detail := &Detail{Entry: songEntry(song)}
	if song.Genre != "" {
		detail.Fields = append(detail.Fields, Field{Label: "Genre", Value: song.Genre})
	}
	if len(song.Chords) > 0 {
		names := make([]string, len(song.Chords))
		for i, ref := range song.Chords {
			names[i] = ref.Name
		}
		detail.Fields = append(detail.Fields, Field{Label: "Chords", Value: strings.Join(names, ", ")})
	}
	if song.Lyrics != "" {
		detail.Fields = append(detail.Fields, Field{Label: "Lyrics", Value: song.Lyrics})
	}
	if song.SheetURL != "" {
		detail.Fields = append(detail.Fields, Field{Label: "Sheet", Value: a.client.BaseURL() + song.SheetURL})
	}
	if song.AudioURL != "" {
		detail.Fields = append(detail.Fields, Field{Label: "Audio", Value: a.client.BaseURL() + song.AudioURL})
	}
	return detail, nil
}

// Create submits a new song. Admin-only per backend policy; the draft is
// validated locally before any network call. Media is attached afterwards
// via UploadImage/UploadAudio.
func (a *SongAPI) Create(ctx context.Context, draft models.SongDraft) (*models.Song, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	payload := struct {
		Title    string `json:"title"`
		Lyrics   string `json:"lyrics,omitempty"`
		Genre    string `json:"genre,omitempty"`
		ChordIDs []int  `json:"chord_ids"`
	}{draft.Title, draft.Lyrics, draft.Genre, draft.ChordIDs}

	var song models.Song
	if err := a.client.postJSON(ctx, "/songs", payload, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// UploadImage attaches a sheet/cover image to an existing song.
func (a *SongAPI) UploadImage(ctx context.Context, id int, path string) error {
	return a.client.postForm(ctx, fmt.Sprintf("/songs/%d/upload-image", id), nil, []formFile{{field: "file", path: path}}, nil)
}

// UploadAudio attaches an audio recording to an existing song.
func (a *SongAPI) UploadAudio(ctx context.Context, id int, path string) error {
	return a.client.postForm(ctx, fmt.Sprintf("/songs/%d/upload-audio", id), nil, []formFile{{field: "file", path: path}}, nil)
}

// Delete removes a song. Admin-only per backend policy.
func (a *SongAPI) Delete(ctx context.Context, id int) error {
	return a.client.delete(ctx, fmt.Sprintf("/songs/%d", id))
}

// Save bookmarks a song; an already-saved song is success.
func (a *SongAPI) Save(ctx context.Context, id int) error {
	err := a.client.post(ctx, fmt.Sprintf("/songs/%d/save", id), nil)
	if err != nil && (errors.Is(err, shared.ErrInvalidInput) || errors.Is(err, shared.ErrConflict)) {
		return nil
	}
	return err
}

// Unsave removes a bookmark; a not-saved song is success.
func (a *SongAPI) Unsave(ctx context.Context, id int) error {
	err := a.client.delete(ctx, fmt.Sprintf("/songs/%d/save", id))
	if err != nil && errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	return err
}

// ListSaved retrieves the session's bookmarked songs.
func (a *SongAPI) ListSaved(ctx context.Context) ([]Entry, error) {
	if a.client.Token() == "" {
		return nil, fmt.Errorf("%w: login required", shared.ErrUnauthorized)
	}

	var songs []models.Song
	if err := a.client.get(ctx, "/songs/me/saved", nil, &songs); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(songs))
	for i, s := range songs {
		entries[i] = songEntry(s)
	}
	return entries, nil
}

func songEntry(s models.Song) Entry {
	return Entry{ID: s.ID, Name: s.Title, Summary: s.Genre}
}

var _ Catalog = (*SongAPI)(nil)
