package progress

import "time"

// DefaultSmoothing weights the newest instantaneous rate in the moving average.
const DefaultSmoothing = 0.3

// Stats are the derived figures a renderer shows next to the bar.
// Percent is 0..100 when known, or -1. Remaining is -1 while it cannot be estimated.
type Stats struct {
	Percent   float64
	Elapsed   time.Duration
	Remaining time.Duration
	Rate      float64 // units per second
}

// Tracker turns successive snapshots into rate and ETA estimates.
// It is not safe for concurrent use.
type Tracker struct {
	smoothing float64

	start   time.Time
	lastAt  time.Time
	last    uint64
	unit    Unit
	rate    float64
	started bool
}

// NewTracker returns a Tracker using an exponential moving average with the given
// smoothing factor; values outside (0,1] fall back to DefaultSmoothing.
func NewTracker(smoothing float64) *Tracker {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = DefaultSmoothing
	}
	return &Tracker{smoothing: smoothing}
}

// Observe folds s into the estimate and returns the current stats.
func (t *Tracker) Observe(s Snapshot) Stats {
	at := s.At
	if at.IsZero() {
		at = time.Now()
	}

	switch {
	case !t.started:
		t.started = true
		t.start = at
	case s.Unit != t.unit:
		// Rescaled to frames; the old rate is in the wrong unit.
		t.rate = 0
	default:
		dt := at.Sub(t.lastAt).Seconds()
		if dt > 0 && s.Current >= t.last {
			inst := float64(s.Current-t.last) / dt
			if t.rate == 0 {
				t.rate = inst
			} else {
				t.rate = t.smoothing*inst + (1-t.smoothing)*t.rate
			}
		}
	}
	if at.After(t.lastAt) || t.lastAt.IsZero() {
		t.lastAt = at
	}
	t.last = s.Current
	t.unit = s.Unit

	st := Stats{
		Percent:   -1,
		Elapsed:   at.Sub(t.start),
		Remaining: -1,
		Rate:      t.rate,
	}
	if s.HasTotal && s.Total > 0 {
		st.Percent = float64(s.Current) / float64(s.Total) * 100
		if st.Percent > 100 {
			st.Percent = 100
		}
		if s.Current >= s.Total {
			st.Remaining = 0
		} else if t.rate > 0 {
			secs := float64(s.Total-s.Current) / t.rate
			st.Remaining = time.Duration(secs * float64(time.Second))
		}
	}
	return st
}
