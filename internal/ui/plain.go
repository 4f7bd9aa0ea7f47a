package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ffpb/internal/progress"
)

// DefaultPlainInterval limits how often a line is printed when stderr is not a terminal.
const DefaultPlainInterval = time.Second

// PlainReporter prints a one-line status. On a terminal the line is redrawn in
// place with a carriage return; otherwise a new line is printed at most once
// per Interval.
type PlainReporter struct {
	w        io.Writer
	tty      bool
	Interval time.Duration
	now      func() time.Time

	tracker *progress.Tracker
	started bool
	line    string
	drawn   int
	printed time.Time
	pending bool
}

// NewPlainReporter writes to w. tty selects in-place redrawing.
func NewPlainReporter(w io.Writer, tty bool) *PlainReporter {
	return &PlainReporter{
		w:        w,
		tty:      tty,
		Interval: DefaultPlainInterval,
		now:      time.Now,
		tracker:  progress.NewTracker(progress.DefaultSmoothing),
	}
}

func (r *PlainReporter) Update(s progress.Snapshot) {
	if !s.Started && !r.started {
		return
	}
	r.started = true
	r.line = newStatus(s, r.tracker.Observe(s)).plain()

	if r.tty {
		r.redraw()
		return
	}
	now := r.now()
	if r.printed.IsZero() || now.Sub(r.printed) >= r.Interval || s.Complete() {
		fmt.Fprintln(r.w, r.line)
		r.printed = now
		r.pending = false
		return
	}
	r.pending = true
}

func (r *PlainReporter) Log(l progress.Log) {
	if r.tty && r.drawn > 0 {
		fmt.Fprint(r.w, "\r"+strings.Repeat(" ", r.drawn)+"\r")
		r.drawn = 0
		fmt.Fprintln(r.w, l.Line)
		r.redraw()
		return
	}
	fmt.Fprintln(r.w, l.Line)
}

// Finish leaves the last status on its own line.
func (r *PlainReporter) Finish(error) {
	if !r.started {
		return
	}
	switch {
	case r.tty:
		r.redraw()
		fmt.Fprintln(r.w)
		r.drawn = 0
	case r.pending:
		fmt.Fprintln(r.w, r.line)
		r.pending = false
	}
}

func (r *PlainReporter) redraw() {
	pad := ""
	if n := r.drawn - len(r.line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprint(r.w, "\r"+r.line+pad)
	r.drawn = len(r.line)
}
