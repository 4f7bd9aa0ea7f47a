package ui

import (
	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ffpb/internal/progress"
)

// events carries reporter calls into the bubbletea program.
type events struct {
	snaps  chan progress.Snapshot // capacity 1, newest wins
	logs   chan progress.Log
	finish chan error
}

func newEvents() events {
	return events{
		snaps:  make(chan progress.Snapshot, 1),
		logs:   make(chan progress.Log, 16),
		finish: make(chan error, 1),
	}
}

// Model draws a single progress bar for one ffmpeg run.
type Model struct {
	ev      events
	tracker *progress.Tracker

	snap progress.Snapshot
	stat progress.Stats
	done bool
	err  error

	bar     bubblesprogress.Model
	spinner spinner.Model
	styles  Styles
	width   int
}

// NewModel returns a model fed from ev, laid out for a terminal width columns wide.
func NewModel(ev events, width int) Model {
	sty := defaultStyles()
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = sty.Spinner
	if width <= 0 {
		width = DefaultWidth
	}
	return Model{
		ev:      ev,
		tracker: progress.NewTracker(progress.DefaultSmoothing),
		bar: bubblesprogress.New(
			bubblesprogress.WithDefaultGradient(),
			bubblesprogress.WithoutPercentage(),
		),
		spinner: sp,
		styles:  sty,
		width:   width,
		stat:    progress.Stats{Percent: -1, Remaining: -1},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case snapshotMsg:
		m.observe(msg.S)
		return m, m.listen()

	case logMsg:
		return m, tea.Batch(tea.Println(msg.L.Line), m.listen())

	case finishMsg:
		m.done, m.err = true, msg.Err
		// Apply whatever was queued behind the finish so the last frame is current.
		var cmds []tea.Cmd
		for pending := true; pending; {
			select {
			case s := <-m.ev.snaps:
				m.observe(s)
			case l := <-m.ev.logs:
				cmds = append(cmds, tea.Println(l.Line))
			default:
				pending = false
			}
		}
		cmds = append(cmds, tea.Quit)
		return m, tea.Sequence(cmds...)

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) observe(s progress.Snapshot) {
	m.snap = s
	m.stat = m.tracker.Observe(s)
}

// listen waits for the next reporter call. Exactly one listen is outstanding
// at a time.
func (m Model) listen() tea.Cmd {
	ev := m.ev
	return func() tea.Msg {
		select {
		case s := <-ev.snaps:
			return snapshotMsg{S: s}
		case l := <-ev.logs:
			return logMsg{L: l}
		case err := <-ev.finish:
			return finishMsg{Err: err}
		}
	}
}
