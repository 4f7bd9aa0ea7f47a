package interpreter

import (
	"container/ring"
	"strings"
)

// history keeps the last lines of diagnostic output for replay on failure.
type history struct {
	r *ring.Ring
}

func newHistory(n int) *history {
	if n <= 0 {
		return &history{}
	}
	return &history{r: ring.New(n)}
}

func (h *history) add(text string) {
	if h.r == nil {
		return
	}
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		h.r.Value = line
		h.r = h.r.Next()
	}
}

func (h *history) lines() []string {
	if h.r == nil {
		return nil
	}
	var out []string
	h.r.Do(func(v any) {
		if v != nil {
			out = append(out, v.(string))
		}
	})
	return out
}
