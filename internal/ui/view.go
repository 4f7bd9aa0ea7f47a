package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minBarWidth = 10
	maxBarWidth = 60
)

func (m Model) View() string {
	st := newStatus(m.snap, m.stat)
	info := m.viewInfo(st)

	var lead string
	switch {
	case m.done && m.err != nil:
		lead = m.styles.Error.Render("✗")
	case st.Percent >= 0:
		bar := m.bar
		bar.Width = m.barWidth(info)
		lead = bar.ViewAs(st.Percent / 100)
	case m.done:
		lead = m.styles.Success.Render("✓")
	default:
		lead = m.spinner.View()
	}
	return lead + " " + info + "\n"
}

func (m Model) viewInfo(st status) string {
	parts := make([]string, 0, 5)
	if st.Percent >= 0 {
		parts = append(parts, m.styles.Percent.Render(strconv.FormatFloat(st.Percent, 'f', 1, 64)+"%"))
	}
	parts = append(parts, m.styles.Count.Render(st.Count))
	if st.Rate != "" {
		parts = append(parts, m.styles.Rate.Render(st.Rate))
	}
	parts = append(parts, m.styles.Faint.Render(st.Elapsed))
	if st.ETA != "" && !m.done {
		parts = append(parts, m.styles.ETA.Render("eta "+st.ETA))
	}
	return strings.Join(parts, " ")
}

// barWidth gives the bar whatever the info text leaves free.
func (m Model) barWidth(info string) int {
	w := m.width - lipgloss.Width(info) - 2
	if w < minBarWidth {
		return minBarWidth
	}
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}
