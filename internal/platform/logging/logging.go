// Package logging builds the process-wide structured logger. Components
// receive *slog.Logger through their constructors; nothing logs through
// package-level state.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a slog logger writing to w with the given level and handler
// format. Unknown values fall back to info/text rather than failing; config
// validation rejects them earlier in the normal startup path.
func New(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
