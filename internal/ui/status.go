package ui

import (
	"strconv"
	"strings"

	"ffpb/internal/progress"
	"ffpb/internal/util/format"
)

// status is the text shown next to (or instead of) the bar.
type status struct {
	Percent float64 // -1 when the total is unknown
	Count   string
	Rate    string // empty until a rate has been measured
	Elapsed string
	ETA     string // empty when it can't be estimated
}

func newStatus(s progress.Snapshot, st progress.Stats) status {
	unit := s.Unit.String()
	out := status{
		Percent: st.Percent,
		Elapsed: format.Clock(st.Elapsed),
	}
	if s.HasTotal {
		out.Count = strconv.FormatUint(s.Current, 10) + "/" + format.Count(s.Total, unit)
	} else {
		out.Count = format.Count(s.Current, unit)
	}
	if st.Rate > 0 {
		if s.Unit == progress.UnitFrames {
			out.Rate = format.FPS(st.Rate)
		} else {
			out.Rate = format.Speed(st.Rate)
		}
	}
	if st.Remaining >= 0 && st.Percent >= 0 {
		out.ETA = format.Clock(st.Remaining)
	}
	return out
}

// plain renders the status as a single uncolored line.
func (s status) plain() string {
	parts := make([]string, 0, 5)
	if s.Percent >= 0 {
		parts = append(parts, strconv.FormatFloat(s.Percent, 'f', 1, 64)+"%")
	}
	parts = append(parts, s.Count)
	if s.Rate != "" {
		parts = append(parts, s.Rate)
	}
	parts = append(parts, "elapsed "+s.Elapsed)
	if s.ETA != "" {
		parts = append(parts, "eta "+s.ETA)
	}
	return strings.Join(parts, " | ")
}
