package main

import (
	"log/slog"
	"os"

	"github.com/elee1766/drover/src/config"
	"github.com/lmittmann/tint"
)

// newLogger builds the process logger from the logging config. Text output
// goes through tint so interactive use stays readable; json is for piping.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := parseLogLevel(cfg.Level)

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	}))
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
