package components

import "github.com/charmbracelet/lipgloss"

var (
	ColorBlue   = lipgloss.Color("4")
	ColorGreen  = lipgloss.Color("2")
	ColorRed    = lipgloss.Color("1")
	ColorYellow = lipgloss.Color("3")
	ColorGrey   = lipgloss.Color("8")
)

var (
	DimStyle    = lipgloss.NewStyle().Foreground(ColorGrey)
	HelpStyle   = lipgloss.NewStyle().Foreground(ColorGrey)
	YellowStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	GreenStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	RedStyle    = lipgloss.NewStyle().Foreground(ColorRed)
	PromptStyle = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
)
