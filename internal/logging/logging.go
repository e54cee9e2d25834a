package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the service logger. The level accepts "debug", "info", "warn" and
// "error" (case-insensitive) and falls back to info. Outside local runs the
// output is JSON.
func New(level string, json bool) *slog.Logger {
	return newLogger(os.Stderr, level, json)
}

func newLogger(w io.Writer, level string, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
