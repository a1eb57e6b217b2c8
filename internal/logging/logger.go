// Package logging builds the structured loggers used across the watcher,
// remote adapter, local adapter, and reconciliation engine.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger creates a structured root logger appropriate for the
// environment. Production uses JSON format, development uses
// human-readable text with debug-level output.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// For derives a component-scoped child logger carrying a "component"
// attribute, so a host's handler can filter records by component.
func For(root *slog.Logger, component string) *slog.Logger {
	return root.With(slog.String("component", component))
}
