package main

import (
	"context"
	"errors"
	"os"

	"github.com/tmattson/flix/internal/shared"
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

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "flix",
		Usage:    "Browse the movie catalog and manage your watchlist",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrSessionExpired) {
			logger.Warn("session expired, run 'flix auth login' to continue")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
