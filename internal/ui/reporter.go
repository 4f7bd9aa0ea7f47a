package ui

import (
	"io"
	"log/slog"

	"ffpb/internal/model"
	"ffpb/internal/progress"
)

// NewReporter picks the renderer for mode. Auto draws the TUI only when out
// is a terminal.
func NewReporter(mode model.UIMode, out io.Writer, tty bool, width int, log *slog.Logger) progress.Reporter {
	switch mode {
	case model.UINone:
		return progress.Discard{}
	case model.UIPlain:
		return NewPlainReporter(out, tty)
	case model.UITUI:
		return NewTUIReporter(out, width, log)
	default:
		if tty {
			return NewTUIReporter(out, width, log)
		}
		return NewPlainReporter(out, false)
	}
}
