package main

import (
	"context"
	"fmt"

	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/services"
	"github.com/urfave/cli/v3"
)

// ChordsList fetches the chord listing and writes it through to the cache.
func (r *Runner) ChordsList(ctx context.Context, cmd *cli.Command) error {
	filter := services.Filter{Search: cmd.String("search")}

	entries, err := r.chords.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list chords: %w", err)
	}

	if filter.Search == "" {
		r.cacheListing(r.chords.Kind(), entries)
	}

	return r.renderEntries(entries, cmd.Bool("json"), cmd.Bool("pretty"))
}

// ChordsGet shows one chord with its fingering and media links.
func (r *Runner) ChordsGet(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	detail, err := r.chords.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get chord %d: %w", id, err)
	}

	return r.renderDetail(detail, cmd.Bool("json"))
}

// ChordsCreate creates a chord from flags. Validation happens locally
// before any request is made.
func (r *Runner) ChordsCreate(ctx context.Context, cmd *cli.Command) error {
	strings, err := models.ParseStrings(cmd.String("strings"))
	if err != nil {
		return err
	}

	draft := models.ChordDraft{
		Name:        cmd.String("name"),
		Strings:     strings,
		Description: cmd.String("description"),
		ImagePath:   cmd.String("image"),
		AudioPath:   cmd.String("audio"),
	}

	r.logger.Info("creating chord", "name", draft.Name)

	chord, err := r.chords.Create(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to create chord: %w", err)
	}

	r.writePlain("✓ Created chord %s (#%d)\n", chord.Name, chord.ID)
	return nil
}

// ChordsDelete removes a chord from the catalog.
func (r *Runner) ChordsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	if err := r.chords.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chord %d: %w", id, err)
	}

	r.writePlain("✓ Deleted chord %d\n", id)
	return nil
}

// ChordsSave adds a chord to the user's library. Saving an already
// saved chord succeeds.
func (r *Runner) ChordsSave(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	if err := r.chords.Save(ctx, id); err != nil {
		return fmt.Errorf("failed to save chord %d: %w", id, err)
	}

	r.writePlain("✓ Saved chord %d\n", id)
	return nil
}

// ChordsUnsave removes a chord from the user's library.
func (r *Runner) ChordsUnsave(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	if err := r.chords.Unsave(ctx, id); err != nil {
		return fmt.Errorf("failed to unsave chord %d: %w", id, err)
	}

	r.writePlain("✓ Removed chord %d from library\n", id)
	return nil
}

// ChordsSaved lists the chords in the user's library.
func (r *Runner) ChordsSaved(ctx context.Context, cmd *cli.Command) error {
	entries, err := r.chords.ListSaved(ctx)
	if err != nil {
		return fmt.Errorf("failed to list saved chords: %w", err)
	}

	r.cacheSaved(r.chords.Kind(), entries)

	return r.renderEntries(entries, cmd.Bool("json"), cmd.Bool("pretty"))
}
