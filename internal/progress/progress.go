package progress

import "time"

// Unit identifies the scale progress is counted in.
type Unit int

const (
	UnitSeconds Unit = iota
	UnitFrames
)

func (u Unit) String() string {
	switch u {
	case UnitFrames:
		return "frame"
	default:
		return "second"
	}
}

// Snapshot is a copy of the interpreter's progress state at one point in time.
// Total is only meaningful when HasTotal is set.
type Snapshot struct {
	Current   uint64
	Total     uint64
	HasTotal  bool
	Unit      Unit
	FrameRate float64 // 0 until a rate has been parsed

	// Started reports that ffmpeg has left its startup banner and is
	// overwriting a single stats line.
	Started bool
	At      time.Time
}

// Complete reports whether the position has reached the known total.
func (s Snapshot) Complete() bool {
	return s.HasTotal && s.Total > 0 && s.Current >= s.Total
}

// Log is a line of child output that should be kept on screen.
type Log struct {
	Line string
}

// Reporter is implemented by renderers interested in progress events.
// Update and Log are called from the interpreter's goroutine and must not block
// for long. Finish is called exactly once when the run ends.
type Reporter interface {
	Update(s Snapshot)
	Log(l Log)
	Finish(err error)
}

// Discard is a Reporter that drops everything.
type Discard struct{}

func (Discard) Update(Snapshot) {}
func (Discard) Log(Log)         {}
func (Discard) Finish(error)    {}
