// Package observability provides structured logging setup.
package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the application's JSON slog logger. Debug level is enabled
// outside production.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == "production" || env == "prod" {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// Init installs the application logger as the slog default.
func Init(env string) *slog.Logger {
	logger := NewLogger(env)
	slog.SetDefault(logger)
	return logger
}
