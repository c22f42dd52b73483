package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/lorenzwed/lorenzwed/cmd/website/internal/configuration"
)

func setupLogger(config *configuration.Config, version string) {
	level := slog.LevelInfo

	switch strings.ToLower(config.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, options)

	if strings.ToLower(config.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}

	logger := slog.New(handler).With("app", appName, "version", version)
	slog.SetDefault(logger)
}
