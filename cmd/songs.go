package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/shared"
	"github.com/urfave/cli/v3"
)

func parseChordIDs(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: chord id %q is not a number", shared.ErrInvalidFlag, part)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// SongsList fetches the song listing and writes it through to the cache.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	filter := services.Filter{
		Search:  cmd.String("search"),
		Genre:   cmd.String("genre"),
		ChordID: cmd.Int("chord"),
	}

	if filter.Genre != "" && !models.ValidGenre(filter.Genre) {
		return fmt.Errorf("%w: unknown genre %q", shared.ErrInvalidFlag, filter.Genre)
	}

	entries, err := r.songs.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if filter.Search == "" && filter.Genre == "" && filter.ChordID == 0 {
		r.cacheListing(r.songs.Kind(), entries)
	}

	return r.renderEntries(entries, cmd.Bool("json"), cmd.Bool("pretty"))
}

// SongsGet shows one song with its chords, lyrics and media links.
func (r *Runner) SongsGet(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	detail, err := r.songs.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get song %d: %w", id, err)
	}

	return r.renderDetail(detail, cmd.Bool("json"))
}

// SongsCreate creates a song, then uploads sheet and audio files when
// paths were given. Upload failures after a successful create are
// reported but leave the song in place.
func (r *Runner) SongsCreate(ctx context.Context, cmd *cli.Command) error {
	chordIDs, err := parseChordIDs(cmd.String("chord-ids"))
	if err != nil {
		return err
	}

	draft := models.SongDraft{
		Title:    cmd.String("title"),
		Genre:    cmd.String("genre"),
		Lyrics:   cmd.String("lyrics"),
		ChordIDs: chordIDs,
	}

	r.logger.Info("creating song", "title", draft.Title, "genre", draft.Genre)

	song, err := r.songs.Create(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}

	r.writePlain("✓ Created song %s (#%d)\n", song.Title, song.ID)

	if imagePath := cmd.String("image"); imagePath != "" {
		if err := r.songs.UploadImage(ctx, song.ID, imagePath); err != nil {
			r.logger.Warn("sheet upload failed", "error", err)
			r.writePlain("✗ Sheet upload failed: %v\n", err)
		} else {
			r.writePlain("✓ Uploaded sheet image\n")
		}
	}

	if audioPath := cmd.String("audio"); audioPath != "" {
		if err := r.songs.UploadAudio(ctx, song.ID, audioPath); err != nil {
			r.logger.Warn("audio upload failed", "error", err)
			r.writePlain("✗ Audio upload failed: %v\n", err)
		} else {
			r.writePlain("✓ Uploaded audio\n")
		}
	}

	return nil
}

// SongsDelete removes a song from the catalog.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	if err := r.songs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song %d: %w", id, err)
	}

	r.writePlain("✓ Deleted song %d\n", id)
	return nil
}

// SongsSave adds a song to the user's library. Saving an already
// saved song succeeds.
func (r *Runner) SongsSave(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	if err := r.songs.Save(ctx, id); err != nil {
		return fmt.Errorf("failed to save song %d: %w", id, err)
	}

	r.writePlain("✓ Saved song %d\n", id)
	return nil
}

// SongsUnsave removes a song from the user's library.
func (r *Runner) SongsUnsave(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	if err := r.songs.Unsave(ctx, id); err != nil {
		return fmt.Errorf("failed to unsave song %d: %w", id, err)
	}

	r.writePlain("✓ Removed song %d from library\n", id)
	return nil
}

// SongsSaved lists the songs in the user's library.
func (r *Runner) SongsSaved(ctx context.Context, cmd *cli.Command) error {
	entries, err := r.songs.ListSaved(ctx)
	if err != nil {
		return fmt.Errorf("failed to list saved songs: %w", err)
	}

	r.cacheSaved(r.songs.Kind(), entries)

	return r.renderEntries(entries, cmd.Bool("json"), cmd.Bool("pretty"))
}
