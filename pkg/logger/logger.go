// Package logger builds the process-wide slog loggers.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a logger configured from the environment. LOG_LEVEL
// selects the minimum level (debug, info, warn, error; default info) and
// GO_ENV=production switches to JSON output for log aggregation.
func NewLogger() *slog.Logger {
	return newLogger(parseLevel(os.Getenv("LOG_LEVEL")))
}

// NewDebugLogger returns a logger at debug level regardless of LOG_LEVEL.
func NewDebugLogger() *slog.Logger {
	return newLogger(slog.LevelDebug)
}

func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Scope tags log records with the component that emitted them.
func Scope(scope string) slog.Attr {
	return slog.String("scope", scope)
}

// Error wraps an error for structured logging.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
