package model

import "time"

// UIMode selects how progress is rendered.
type UIMode string

const (
	UIAuto  UIMode = "auto"  // TUI on a terminal, plain otherwise
	UITUI   UIMode = "tui"   // bubbletea progress bar
	UIPlain UIMode = "plain" // single status line
	UINone  UIMode = "none"  // no progress output
)

// ParseUIMode validates a mode name.
func ParseUIMode(s string) (UIMode, bool) {
	switch m := UIMode(s); m {
	case UIAuto, UITUI, UIPlain, UINone:
		return m, true
	case "":
		return UIAuto, true
	}
	return "", false
}

// Options holds ffpb's own settings, merged from flags, environment and config file.
// Nothing here is passed to ffmpeg.
type Options struct {
	FFmpegPath   string // empty means look up "ffmpeg" on PATH
	UI           UIMode
	PollInterval time.Duration
	LogLevel     string
	LogFormat    string
	LogFile      string
	History      int // diagnostic lines replayed on failure
	Verbose      bool
}
