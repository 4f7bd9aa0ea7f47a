package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ffpb/internal/dirs"
)

// LevelOff disables logging entirely.
const LevelOff = "off"

// Options describes logger construction parameters.
type Options struct {
	Level  string // off, debug, info, warn, error
	Format string // text or json
	Path   string // empty selects <state dir>/ffpb.log
}

// New constructs a slog logger. The returned close function releases the log file
// and is never nil. Logs never go to the terminal: the progress bar owns it.
func New(opts Options) (*slog.Logger, func() error, error) {
	nop := func() error { return nil }

	level, enabled, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nop, err
	}
	if !enabled {
		return Discard(), nop, nil
	}

	path, err := Path(opts.Path)
	if err != nil {
		return nil, nop, err
	}
	if err := dirs.Ensure(filepath.Dir(path)); err != nil {
		return nil, nop, fmt.Errorf("ensure log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nop, fmt.Errorf("open log file: %w", err)
	}

	handler, err := newHandler(f, opts.Format, level)
	if err != nil {
		_ = f.Close()
		return nil, nop, err
	}
	return slog.New(handler), f.Close, nil
}

// Path returns p, or <state dir>/ffpb.log when p is empty.
func Path(p string) (string, error) {
	if p != "" {
		return p, nil
	}
	stateDir, err := dirs.StateDir()
	if err != nil {
		return "", fmt.Errorf("resolve state dir: %w", err)
	}
	return filepath.Join(stateDir, "ffpb.log"), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel maps a level name to a slog level. enabled is false for "off".
func ParseLevel(s string) (level slog.Level, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", LevelOff, "none":
		return 0, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	default:
		return 0, false, fmt.Errorf("log level: unsupported value %q", s)
	}
}

// ValidFormat reports whether f names a supported handler format.
func ValidFormat(f string) bool {
	switch strings.ToLower(strings.TrimSpace(f)) {
	case "", "text", "json":
		return true
	}
	return false
}

func newHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}
}
