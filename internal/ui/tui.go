package ui

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"ffpb/internal/logging"
	"ffpb/internal/progress"
)

// TUIReporter renders progress with a bubbletea program. The program is only
// started once ffmpeg begins encoding, so it never draws over the overwrite
// prompt. Its methods are called from the interpreter's goroutine.
type TUIReporter struct {
	out   io.Writer
	width int
	log   *slog.Logger

	ev   events
	prog *tea.Program
	done chan struct{}
}

// NewTUIReporter draws on out, which should be the SyncWriter shared with the
// prompt relay.
func NewTUIReporter(out io.Writer, width int, log *slog.Logger) *TUIReporter {
	if log == nil {
		log = logging.Discard()
	}
	return &TUIReporter{out: out, width: width, log: log, ev: newEvents()}
}

func (r *TUIReporter) Update(s progress.Snapshot) {
	if r.prog == nil {
		if !s.Started {
			return
		}
		r.start()
	}
	// Stale snapshots are worthless; keep only the newest.
	for {
		select {
		case r.ev.snaps <- s:
			return
		default:
		}
		select {
		case <-r.ev.snaps:
		default:
		}
	}
}

func (r *TUIReporter) Log(l progress.Log) {
	if r.prog == nil {
		fmt.Fprintln(r.out, l.Line)
		return
	}
	select {
	case r.ev.logs <- l:
	case <-r.done:
	}
}

// Finish draws the final frame and waits for the program to exit.
func (r *TUIReporter) Finish(err error) {
	if r.prog == nil {
		return
	}
	select {
	case r.ev.finish <- err:
	case <-r.done:
	}
	<-r.done
}

func (r *TUIReporter) start() {
	r.prog = tea.NewProgram(NewModel(r.ev, r.width),
		tea.WithOutput(r.out),
		// stdin belongs to ffmpeg ("q" to stop, the overwrite answer).
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	r.done = make(chan struct{})
	r.log.Debug("starting progress display", "width", r.width)
	go func() {
		defer close(r.done)
		if _, err := r.prog.Run(); err != nil {
			r.log.Warn("progress display stopped", "error", err)
		}
	}()
}
