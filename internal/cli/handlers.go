package cli

import (
	"io"
	"log/slog"
	"path/filepath"
)

// NewLogger returns the text logger used by every command. verbose enables
// debug records; quiet keeps only errors.
func NewLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// utility
func absPath(p string) string {
	if p == "" || p == stdoutOut || filepath.IsAbs(p) {
		return p
	}
	abs, _ := filepath.Abs(p)
	return abs
}
