package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"recall-ai/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "recall",
	Short:         "Retrieval and ranking core for an AI knowledge base",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadConfig reads the environment and installs the default logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	return cfg, logger, nil
}
