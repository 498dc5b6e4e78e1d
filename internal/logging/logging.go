// Package logging sets up the process-wide slog logger and hands out
// component-scoped loggers.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog default with the given level and format.
// If w is nil, os.Stderr is used. Format is "text" (default) or "json".
func Init(level slog.Level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Setup parses a level name ("debug", "info", "warn", "error") and calls Init.
func Setup(level, format string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	switch format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	Init(lvl, format, w)
	return nil
}

// ParseLevel maps a case-insensitive level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger with a "component" attribute. Call it where the
// logger is used so it picks up the current default.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
