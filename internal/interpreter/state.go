package interpreter

import (
	"math"
	"time"

	"ffpb/internal/progress"
)

// State is the progress record for a single run. Positions are counted in
// seconds until a frame rate is learned, then in frames.
type State struct {
	total    uint64
	totalSet bool
	current  uint64
	unit     progress.Unit
	fps      float64
	started  bool
}

// SetTotal records the job duration in seconds. Only the first call has any effect.
func (s *State) SetTotal(seconds uint64) bool {
	if s.totalSet {
		return false
	}
	s.total = s.toUnits(seconds)
	s.totalSet = true
	return true
}

// SetFrameRate switches the unit to frames and rescales the recorded values.
// Only the first positive rate has any effect.
func (s *State) SetFrameRate(fps float64) bool {
	if s.fps > 0 || fps <= 0 || math.IsInf(fps, 0) || math.IsNaN(fps) {
		return false
	}
	s.fps = fps
	s.unit = progress.UnitFrames
	if s.totalSet {
		s.total = scale(s.total, fps)
	}
	s.current = scale(s.current, fps)
	return true
}

// Advance moves the position to the given number of seconds. Positions behind
// the current one are ignored so the bar never moves backwards.
func (s *State) Advance(seconds uint64) bool {
	v := s.toUnits(seconds)
	if v <= s.current {
		return false
	}
	s.current = v
	return true
}

// Start marks the transition to steady-state progress reporting.
func (s *State) Start() bool {
	if s.started {
		return false
	}
	s.started = true
	return true
}

// Snapshot copies the state for a renderer.
func (s *State) Snapshot(at time.Time) progress.Snapshot {
	return progress.Snapshot{
		Current:   s.current,
		Total:     s.total,
		HasTotal:  s.totalSet,
		Unit:      s.unit,
		FrameRate: s.fps,
		Started:   s.started,
		At:        at,
	}
}

func (s *State) toUnits(seconds uint64) uint64 {
	if s.fps > 0 {
		return scale(seconds, s.fps)
	}
	return seconds
}

// scale multiplies v by f and rounds to the nearest unit.
func scale(v uint64, f float64) uint64 {
	return uint64(math.Round(float64(v) * f))
}
