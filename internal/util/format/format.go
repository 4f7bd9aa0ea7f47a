package format

import (
	"strconv"
	"time"
)

// Clock renders d as MM:SS, or H:MM:SS from one hour up. Negative durations
// mean unknown and render as --:--.
func Clock(d time.Duration) string {
	if d < 0 {
		return "--:--"
	}
	s := int64(d.Round(time.Second) / time.Second)
	h, m, sec := s/3600, (s/60)%60, s%60
	var buf [24]byte
	b := buf[:0]
	if h > 0 {
		b = strconv.AppendInt(b, h, 10)
		b = append(b, ':')
	}
	b = appendTwo(b, m)
	b = append(b, ':')
	b = appendTwo(b, sec)
	return string(b)
}

func appendTwo(b []byte, v int64) []byte {
	if v < 10 {
		b = append(b, '0')
	}
	return strconv.AppendInt(b, v, 10)
}

// FPS renders a frame rate, e.g. "23.9 fps".
func FPS(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + " fps"
}

// Speed renders media seconds per wall second the way ffmpeg does, e.g. "1.50x".
func Speed(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64) + "x"
}

// Count renders n with its unit name, pluralized: "1 second", "240 frames".
func Count(n uint64, unit string) string {
	s := strconv.FormatUint(n, 10) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
