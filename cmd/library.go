package main

import (
	"context"
	"fmt"

	"github.com/guitarkit/strum/internal/tasks"
	"github.com/urfave/cli/v3"
)

// LibraryExport dumps the saved chords and songs to a JSON file.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	outputPath := cmd.String("output")

	r.logger.Info("exporting saved library", "output", outputPath)
	r.writePlain("Exporting saved library...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 10)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			r.writePlain("📥 %s\n", update.Message)
		}
	}()

	dump, err := r.engine.ExportSaved(ctx, progressCh, outputPath)
	close(progressCh)
	<-drained

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("\n✓ Export complete\n")
	r.writePlain("Chords: %d\n", len(dump.Chords))
	r.writePlain("Songs: %d\n", len(dump.Songs))
	r.writePlain("Written to: %s\n", outputPath)

	return nil
}

// LibraryImport creates chords from a previously exported dump.
func (r *Runner) LibraryImport(ctx context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")

	r.logger.Info("importing chords from dump", "input", inputPath)
	r.writePlain("Importing chords...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			switch update.Phase {
			case tasks.CreateChords:
				r.writePlain("   %s\n", update.Message)
			default:
				r.writePlain("📥 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.ImportChords(ctx, progressCh, inputPath)
	close(progressCh)
	<-drained

	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	r.writePlain("\n═══════════════════════════════════════\n")
	r.writePlain("Import Complete\n")
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("Created: %d/%d chords\n", result.Created, result.Total)

	if result.Failed > 0 {
		r.writePlain("\nFailed to create %d chords:\n", result.Failed)
		for _, itemErr := range result.Errors {
			r.writePlain("  - %s: %v\n", itemErr.Name, itemErr.Err)
		}
	}

	return nil
}
