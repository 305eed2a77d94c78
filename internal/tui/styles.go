package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/headergen/internal/ui"
)

// styles holds the dashboard's lipgloss styles, built from the active theme.
type styles struct {
	panel   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newStyles() styles {
	t := ui.GetCurrentTUITheme()
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		title:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		label:   lipgloss.NewStyle().Foreground(t.Dim),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		dim:     lipgloss.NewStyle().Foreground(t.Dim),
		success: lipgloss.NewStyle().Foreground(t.Success),
		warning: lipgloss.NewStyle().Foreground(t.Warning),
		failure: lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}
