// Package log builds the run-scoped logger. Every component receives a
// *slog.Logger explicitly; nothing logs through package-level state.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewFileLogger returns a logger writing JSON records to path, plus a closer
// for the underlying file. The caller owns the closer for the run's lifetime.
func NewFileLogger(path string, verbose bool) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return New(f, verbose), f, nil
}

// New returns a logger writing JSON records to w. Debug records are emitted
// only when verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record. Used by tests and by
// components constructed without an explicit logger.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
