package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global structured logger. Its level follows the last Setup.
var Logger *slog.Logger

var level = new(slog.LevelVar)

func init() {
	Logger = newLogger(os.Stderr, false)
}

func newLogger(w io.Writer, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup points the logger at w (stderr when nil). Debug records are only
// emitted when verbose is set.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	if w == nil {
		w = os.Stderr
	}
	Logger = newLogger(w, jsonOutput)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
