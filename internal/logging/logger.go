package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewJSONHandler returns the stdout handler shared by every logger in the process.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// Setup initializes the global slog logger with JSON output to stdout.
func Setup(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(NewJSONHandler(os.Stdout, level))
	slog.SetDefault(logger)
	return logger
}
