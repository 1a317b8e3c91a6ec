package components

import (
	"github.com/charmbracelet/lipgloss"
)

// List and calendar cell styles
var (
	sidebarItemStyle  = lipgloss.NewStyle()
	selectedItemStyle = lipgloss.NewStyle().
				Background(ColorGreen).
				Foreground(lipgloss.AdaptiveColor{Light: "15", Dark: "0"})
	markedItemStyle = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

	monthTitleStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	cellStyle       = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)

	levelStyles = [...]lipgloss.Style{
		cellStyle,
		cellStyle.Foreground(lipgloss.Color("22")),
		cellStyle.Foreground(lipgloss.Color("28")),
		cellStyle.Foreground(lipgloss.Color("34")),
		cellStyle.Foreground(lipgloss.Color("46")).Bold(true),
	}
)
