package interpreter

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Outcome is the set of things recognized in one chunk of output.
type Outcome uint8

const (
	Unrecognized     Outcome = 0
	DurationMetadata Outcome = 1 << (iota - 1)
	FPSMetadata
	ProgressUpdate
	OverwritePrompt
	StreamEnd
)

var outcomeNames = []struct {
	o    Outcome
	name string
}{
	{DurationMetadata, "duration-metadata"},
	{FPSMetadata, "fps-metadata"},
	{ProgressUpdate, "progress-update"},
	{OverwritePrompt, "overwrite-prompt"},
	{StreamEnd, "stream-end"},
}

// Has reports whether every bit of k is set in o.
func (o Outcome) Has(k Outcome) bool {
	return k != 0 && o&k == k
}

func (o Outcome) String() string {
	if o == Unrecognized {
		return "unrecognized"
	}
	var parts []string
	for _, n := range outcomeNames {
		if o.Has(n.o) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

var (
	durationRx = regexp.MustCompile(`Duration: (\d{2,}):(\d{2}):(\d{2})\.\d+`)
	// The trailing class keeps the stats line's "240 fps=0.0" from matching.
	fpsRx      = regexp.MustCompile(`\b(\d+(?:\.\d+)?) fps(?:[,\s]|$)`)
	positionRx = regexp.MustCompile(`time=(\d{2,}):(\d{2}):(\d{2})\.\d+`)
)

// Classify runs the duration, frame-rate and position extractions over line
// and applies them to st in that order. changed reports whether st was mutated.
func Classify(line string, st *State) (out Outcome, changed bool, err error) {
	if line == "" {
		return StreamEnd, false, nil
	}

	if !st.totalSet {
		if m := durationRx.FindStringSubmatch(line); m != nil {
			secs, err := clockSeconds(m)
			if err != nil {
				return out, changed, fmt.Errorf("%w: duration %q: %w", ErrMalformedMetric, m[0], err)
			}
			out |= DurationMetadata
			changed = st.SetTotal(secs) || changed
		}
	}

	if st.fps == 0 {
		if m := fpsRx.FindStringSubmatch(line); m != nil {
			fps, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return out, changed, fmt.Errorf("%w: fps %q: %w", ErrMalformedMetric, m[0], err)
			}
			if st.SetFrameRate(fps) {
				out |= FPSMetadata
				changed = true
			}
		}
	}

	if m := positionRx.FindStringSubmatch(line); m != nil {
		secs, err := clockSeconds(m)
		if err != nil {
			return out, changed, fmt.Errorf("%w: position %q: %w", ErrMalformedMetric, m[0], err)
		}
		out |= ProgressUpdate
		changed = st.Advance(secs) || changed
	}

	return out, changed, nil
}

var errClockOverflow = errors.New("clock out of range")

// clockSeconds converts the HH, MM and SS groups of m to whole seconds.
func clockSeconds(m []string) (uint64, error) {
	var hms [3]uint64
	for i := range hms {
		v, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return 0, err
		}
		hms[i] = v
	}
	if hms[0] > (math.MaxUint64-hms[1]*60-hms[2])/3600 {
		return 0, errClockOverflow
	}
	return (hms[0]*60+hms[1])*60 + hms[2], nil
}
