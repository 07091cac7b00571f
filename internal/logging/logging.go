// Package logging configures the process-wide slog logger. The terminal is
// owned by the UI, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type Options struct {
	// File is the log path. Empty discards all records.
	File   string
	Format Format
	Level  slog.Level
}

var (
	mu    sync.RWMutex
	base  *slog.Logger
	level = new(slog.LevelVar)
)

// Init installs the process logger and makes it the slog default. The
// returned function closes the log file.
func Init(opts Options) (func() error, error) {
	var (
		w       io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log directory %s: %w", dir, err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	level.Set(opts.Level)
	logger := slog.New(newHandler(w, opts.Format))

	mu.Lock()
	base = logger
	mu.Unlock()
	slog.SetDefault(logger)
	return closeFn, nil
}

func newHandler(w io.Writer, format Format) slog.Handler {
	ho := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(string(format), string(FormatText)) {
		return slog.NewTextHandler(w, ho)
	}
	return slog.NewJSONHandler(w, ho)
}

// SetLevel changes the level of the installed logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// ForService returns the process logger tagged with a service attribute.
// Before Init it derives from slog.Default.
func ForService(name string) *slog.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l == nil {
		l = slog.Default()
	}
	return l.With("service", name)
}
