package ui

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ffpb/internal/model"
	"ffpb/internal/progress"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func snap(cur, total uint64, at time.Duration) progress.Snapshot {
	return progress.Snapshot{Current: cur, Total: total, HasTotal: total > 0, Started: true, At: t0.Add(at)}
}

func TestStatus_Plain(t *testing.T) {
	tests := []struct {
		name string
		s    progress.Snapshot
		st   progress.Stats
		want string
	}{
		{
			name: "known total",
			s:    progress.Snapshot{Current: 240, Total: 1000, HasTotal: true, Unit: progress.UnitFrames},
			st:   progress.Stats{Percent: 24, Elapsed: 10 * time.Second, Remaining: 31 * time.Second, Rate: 24},
			want: "24.0% | 240/1000 frames | 24.0 fps | elapsed 00:10 | eta 00:31",
		},
		{
			name: "seconds without total",
			s:    progress.Snapshot{Current: 1},
			st:   progress.Stats{Percent: -1, Elapsed: 2 * time.Second, Remaining: -1, Rate: 0.5},
			want: "1 second | 0.50x | elapsed 00:02",
		},
		{
			name: "no rate yet",
			s:    progress.Snapshot{Current: 0, Total: 60, HasTotal: true},
			st:   progress.Stats{Percent: 0, Remaining: -1},
			want: "0.0% | 0/60 seconds | elapsed 00:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newStatus(tt.s, tt.st).plain(); got != tt.want {
				t.Errorf("plain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlainReporter_Pipe(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainReporter(&buf, false)
	clock := t0
	r.now = func() time.Time { return clock }

	r.Update(progress.Snapshot{Current: 1, Total: 10, HasTotal: true, At: t0})
	if buf.Len() != 0 {
		t.Fatalf("printed %q before ffmpeg started", buf.String())
	}
	r.Update(snap(1, 10, 0))
	clock = t0.Add(200 * time.Millisecond)
	r.Update(snap(2, 10, 200*time.Millisecond))
	clock = t0.Add(1100 * time.Millisecond)
	r.Update(snap(5, 10, 1100*time.Millisecond))
	clock = t0.Add(1300 * time.Millisecond)
	r.Update(snap(6, 10, 1300*time.Millisecond))
	r.Finish(nil)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("printed %d lines, want 3:\n%s", len(lines), buf.String())
	}
	for i, prefix := range []string{"10.0%", "50.0%", "60.0%"} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
	if strings.Contains(buf.String(), "\r") {
		t.Errorf("pipe output contains carriage returns: %q", buf.String())
	}
}

func TestPlainReporter_CompletePrintsImmediately(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainReporter(&buf, false)
	r.now = func() time.Time { return t0 }
	r.Update(snap(1, 10, 0))
	r.Update(snap(10, 10, 0))
	r.Finish(nil)
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("printed %d lines, want 2:\n%s", got, buf.String())
	}
}

func TestPlainReporter_Terminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainReporter(&buf, true)
	r.Update(snap(5, 10, 0))
	r.Log(progress.Log{Line: "size= 1024kB time=00:00:10.00"})
	r.Update(snap(10, 10, time.Second))
	r.Finish(nil)

	out := buf.String()
	if !strings.HasPrefix(out, "\r50.0%") {
		t.Errorf("output starts %q, want a carriage-return redraw", out)
	}
	if !strings.Contains(out, "size= 1024kB time=00:00:10.00\n") {
		t.Errorf("log line missing from %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output %q does not end the status line", out)
	}
}

func TestPlainReporter_NeverStarted(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainReporter(&buf, true)
	r.Finish(errors.New("boom"))
	if buf.Len() != 0 {
		t.Errorf("Finish wrote %q, want nothing", buf.String())
	}
}

func TestModel_Update(t *testing.T) {
	ev := newEvents()
	m := NewModel(ev, 100)

	next, cmd := m.Update(snapshotMsg{S: snap(5, 10, 0)})
	m = next.(Model)
	if cmd == nil {
		t.Errorf("Update(snapshot) returned no listen command")
	}
	if got := m.View(); !strings.Contains(got, "50.0%") || !strings.Contains(got, "5/10 seconds") {
		t.Errorf("View() = %q, want percentage and count", got)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(Model)
	if m.width != 40 {
		t.Errorf("width = %d, want 40", m.width)
	}

	ev.snaps <- snap(10, 10, time.Second)
	next, cmd = m.Update(finishMsg{})
	m = next.(Model)
	if !m.done {
		t.Errorf("done = false after finish")
	}
	if m.snap.Current != 10 {
		t.Errorf("Current = %d, want the queued snapshot applied", m.snap.Current)
	}
	if cmd == nil {
		t.Errorf("Update(finish) returned no quit command")
	}
}

func TestModel_ViewUnknownTotal(t *testing.T) {
	m := NewModel(newEvents(), 80)
	next, _ := m.Update(snapshotMsg{S: snap(7, 0, 0)})
	m = next.(Model)
	got := m.View()
	if strings.Contains(got, "%") {
		t.Errorf("View() = %q, want no percentage without a total", got)
	}
	if !strings.Contains(got, "7 seconds") {
		t.Errorf("View() = %q, want the position", got)
	}

	next, _ = m.Update(finishMsg{Err: errors.New("boom")})
	if got := next.(Model).View(); !strings.Contains(got, "✗") {
		t.Errorf("View() after failure = %q, want a failure mark", got)
	}
}

func TestModel_BarWidth(t *testing.T) {
	m := NewModel(newEvents(), 20)
	if got := m.barWidth(strings.Repeat("x", 30)); got != minBarWidth {
		t.Errorf("barWidth() = %d, want %d", got, minBarWidth)
	}
	m.width = 500
	if got := m.barWidth("x"); got != maxBarWidth {
		t.Errorf("barWidth() = %d, want %d", got, maxBarWidth)
	}
}

func TestTUIReporter_NotStartedBeforeSteadyState(t *testing.T) {
	var buf bytes.Buffer
	r := NewTUIReporter(NewSyncWriter(&buf), 80, nil)
	r.Update(progress.Snapshot{Total: 10, HasTotal: true})
	if r.prog != nil {
		t.Fatalf("program started before ffmpeg began encoding")
	}
	r.Log(progress.Log{Line: "hello"})
	r.Finish(nil)
	if got := buf.String(); got != "hello\n" {
		t.Errorf("output = %q, want the log line only", got)
	}
}

func TestTUIReporter_Run(t *testing.T) {
	var buf bytes.Buffer
	r := NewTUIReporter(NewSyncWriter(&buf), 80, nil)
	r.Update(snap(0, 10, 0))
	for i := uint64(1); i <= 10; i++ {
		r.Update(snap(i, 10, time.Duration(i)*time.Second))
	}

	finished := make(chan struct{})
	go func() {
		r.Finish(nil)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("Finish did not return")
	}
}

func TestNewReporter(t *testing.T) {
	tests := []struct {
		mode model.UIMode
		tty  bool
		want string
	}{
		{model.UINone, true, "progress.Discard"},
		{model.UIPlain, true, "*ui.PlainReporter"},
		{model.UITUI, false, "*ui.TUIReporter"},
		{model.UIAuto, true, "*ui.TUIReporter"},
		{model.UIAuto, false, "*ui.PlainReporter"},
	}
	for _, tt := range tests {
		r := NewReporter(tt.mode, &bytes.Buffer{}, tt.tty, 80, nil)
		var got string
		switch r.(type) {
		case progress.Discard:
			got = "progress.Discard"
		case *PlainReporter:
			got = "*ui.PlainReporter"
		case *TUIReporter:
			got = "*ui.TUIReporter"
		}
		if got != tt.want {
			t.Errorf("NewReporter(%q, tty=%v) = %s, want %s", tt.mode, tt.tty, got, tt.want)
		}
	}
}

func TestSyncWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewSyncWriter(&buf)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w.Write([]byte("ab"))
			}
		}()
	}
	wg.Wait()
	if err := w.Flush(); err != nil {
		t.Errorf("Flush() error = %v", err)
	}
	if buf.Len() != 1600 {
		t.Errorf("wrote %d bytes, want 1600", buf.Len())
	}
}
