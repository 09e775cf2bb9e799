package main

import (
	"context"
	"os"

	"github.com/desertthunder/moviebox/internal/services"
	"github.com/desertthunder/moviebox/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}
	config.ApplyEnv()
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	opts := RunnerOpts{Config: config, Logger: logger}
	if tmdb, err := services.NewTMDBServiceFromConfig(config); err == nil {
		opts.API = tmdb
	} else {
		logger.Debug("movie API disabled", "error", err)
	}

	runner := NewRunner(opts)
	defer runner.Close()

	app := &cli.Command{
		Name:     "moviebox",
		Usage:    "Browse popular movies, search TMDB, and keep a favorites list",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		runner.Close()
		logger.Fatalf("application error: %v", err)
	}
}
