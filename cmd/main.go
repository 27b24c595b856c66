package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/session"
	"github.com/guitarkit/strum/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	client := services.NewClient(config.API.BaseURL, &http.Client{Timeout: config.API.Timeout()})
	auth := services.NewAuthAPI(client)
	store := session.NewStore(auth, client, config.Storage.ResolveStateDir(), logger)
	if err := store.Restore(); err != nil {
		logger.Warn("failed to restore session", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Client:  client,
		Auth:    auth,
		Session: store,
		Logger:  logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "strum",
		Usage:    "Browse and manage a guitar chord and song catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
