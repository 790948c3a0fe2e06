package logging

import (
	"log/slog"
	"os"
)

// NewLogger returns a structured slog.Logger writing to stderr at the given
// level. Clock anomaly warnings from the ledger end up here.
func NewLogger(level string) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
