package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the terminal widget.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	User     lipgloss.Style
	Bot      lipgloss.Style
	Online   lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Frame    lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B6DF6")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#667788")),
		User:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B6DF6")),
		Bot:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22AA77")),
		Online:   lipgloss.NewStyle().Foreground(lipgloss.Color("#22AA77")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#CC8833")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#CCCCDD")),
	}
}
