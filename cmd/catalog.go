package main

import (
	"fmt"
	"strconv"

	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/shared"
	"github.com/urfave/cli/v3"
)

// idArg parses the positional id argument shared by the get, delete,
// save and unsave subcommands.
func idArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: id is required", shared.ErrMissingArgument)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be a number, got %q", shared.ErrInvalidArgument, raw)
	}

	return id, nil
}

// renderEntries prints a listing either as JSON or as a plain table.
func (r *Runner) renderEntries(entries []services.Entry, asJSON, pretty bool) error {
	if asJSON {
		return r.writeJSON(entries, pretty)
	}

	if len(entries) == 0 {
		r.writePlain("No results\n")
		return nil
	}

	for _, entry := range entries {
		if entry.Summary != "" {
			r.writePlain("%4d  %-20s %s\n", entry.ID, entry.Name, entry.Summary)
		} else {
			r.writePlain("%4d  %s\n", entry.ID, entry.Name)
		}
	}

	r.writePlain("\n%d result(s)\n", len(entries))
	return nil
}

func (r *Runner) renderDetail(detail *services.Detail, asJSON bool) error {
	if asJSON {
		return r.writeJSON(detail, true)
	}

	r.writePlain("%s (#%d)\n", detail.Name, detail.ID)
	for _, field := range detail.Fields {
		if field.Value == "" {
			continue
		}
		r.writePlain("  %s: %s\n", field.Label, field.Value)
	}

	return nil
}

// cacheListing writes a fetched listing through to the local cache.
// Cache failures never fail the command.
func (r *Runner) cacheListing(kind string, entries []services.Entry) {
	repo := r.cacheRepo()
	if repo == nil {
		return
	}

	if err := repo.ReplaceListing(kind, entries); err != nil {
		r.logger.Debug("failed to cache listing", "kind", kind, "error", err)
	}
}

// cacheSaved mirrors the saved-id set for a kind into the local cache.
func (r *Runner) cacheSaved(kind string, entries []services.Entry) {
	repo := r.cacheRepo()
	if repo == nil {
		return
	}

	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}

	if err := repo.ReplaceSaved(kind, ids); err != nil {
		r.logger.Debug("failed to cache saved ids", "kind", kind, "error", err)
	}
}
