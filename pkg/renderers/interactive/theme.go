package interactive

import "github.com/charmbracelet/lipgloss"

// Theme styles the session.
type Theme struct {
	Title       lipgloss.Style
	Heading     lipgloss.Style
	Label       lipgloss.Style
	Focused     lipgloss.Style
	Placeholder lipgloss.Style
	Error       lipgloss.Style
	Button      lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Heading:     lipgloss.NewStyle().Bold(true).Underline(true),
		Label:       lipgloss.NewStyle().Bold(true),
		Focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Button:      lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
