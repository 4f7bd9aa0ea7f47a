package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Percent lipgloss.Style
	Count   lipgloss.Style
	Rate    lipgloss.Style
	ETA     lipgloss.Style
	Faint   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Spinner lipgloss.Style
}

func defaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Percent: base.Bold(true),
		Count:   base.Foreground(lipgloss.Color("#D1D5DB")),
		Rate:    base.Foreground(lipgloss.Color("#D946EF")),
		ETA:     base.Foreground(lipgloss.Color("#60A5FA")),
		Faint:   base.Faint(true),
		Success: base.Foreground(lipgloss.Color("#22C55E")),
		Error:   base.Foreground(lipgloss.Color("#EF4444")),
		Spinner: base.Foreground(lipgloss.Color("#22D3EE")),
	}
}
