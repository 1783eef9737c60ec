// Package logger configures the global log/slog logger. JSON output is the
// default so logs stay machine-parseable in aggregation systems; the text
// handler is available for local development.
package logger

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger. Source location tracking is
// enabled to identify where log entries originated.
func Setup(level slog.Level, format string) {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error".
// Unrecognized values default to info level.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
