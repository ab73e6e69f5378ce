package bubbletea

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the Viewer.
type Styles struct {
	Title   lipgloss.Style
	Line    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the Viewer's default styling.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Line:    lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Muted:   lipgloss.NewStyle().Faint(true),
	}
}
