package main

import (
	"context"
	"fmt"
	"os"

	"github.com/guitarkit/strum/internal/shared"
	"github.com/urfave/cli/v3"
)

// loadOrCreateConfig reads the config file at path, writing the embedded
// template first when no file exists yet. Any failure falls back to defaults.
func (r *Runner) loadOrCreateConfig(path string) *shared.Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			return shared.DefaultConfig()
		}
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return shared.DefaultConfig()
	}

	return config
}

// SetupConfig writes the config file, applying flag overrides on top of
// the existing file or the embedded defaults.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := shared.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		config = loaded
	}

	if cmd.IsSet("base-url") {
		config.API.BaseURL = cmd.String("base-url")
	}
	if cmd.IsSet("timeout-seconds") {
		config.API.TimeoutSeconds = cmd.Int("timeout-seconds")
	}
	if cmd.IsSet("debounce-ms") {
		config.UI.DebounceMS = cmd.Int("debounce-ms")
	}
	if cmd.IsSet("db-path") {
		config.Database.Path = cmd.String("db-path")
	}

	if err := shared.SaveConfig(path, config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	r.logger.Info("config written", "path", path)
	r.writePlain("✓ Config written: %s\n", path)
	return nil
}

// SetupDatabase initializes the listing cache database and brings its
// schema up to date.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.loadOrCreateConfig(cmd.String("config"))

	r.logger.Info("initializing cache database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writePlain("✓ Cache database ready: %s\n", config.Database.Path)
	return nil
}
