package main

import (
	"context"
	"fmt"

	"github.com/guitarkit/strum/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheShow prints the cached listing for a catalog kind along with
// its fetch time, without touching the network.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	kind := cmd.StringArg("kind")
	if kind != "chords" && kind != "songs" {
		return fmt.Errorf("%w: kind must be chords or songs, got %q", shared.ErrInvalidArgument, kind)
	}

	repo := r.cacheRepo()
	if repo == nil {
		return fmt.Errorf("%w: cache database not available, run 'strum setup database' first", shared.ErrMissingConfig)
	}

	entries, err := repo.Listing(kind)
	if err != nil {
		return fmt.Errorf("failed to read cached %s: %w", kind, err)
	}

	if len(entries) == 0 {
		r.writePlain("No cached %s. Run 'strum %s list' to populate the cache.\n", kind, kind)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	fetchedAt, err := repo.LastFetched(kind)
	if err == nil && !fetchedAt.IsZero() {
		r.writePlain("Cached %s (fetched %s)\n\n", kind, fetchedAt.Format("2006-01-02 15:04:05"))
	}

	return r.renderEntries(entries, false, false)
}
