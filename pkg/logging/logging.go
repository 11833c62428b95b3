// Package logging builds the structured logger shared by the display and the
// CLI. The terminal belongs to the UI, so logs only go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options selects where logs go and how much is kept.
type Options struct {
	// File receives the log. Empty discards everything.
	File  string
	Debug bool
}

// New returns a text logger writing to opts.File. The returned close func
// must be called once the program is done logging.
func New(opts Options) (*slog.Logger, func() error, error) {
	if opts.File == "" {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", opts.File, err)
	}
	return slog.New(newHandler(f, opts.Debug)), f.Close, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(w io.Writer, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}
