package tui

import (
	"hourbox/tui/components"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(components.ColorGrey).
			Padding(0, 1)

	activeBoxStyle = boxStyle.BorderForeground(components.ColorGreen)
)

var (
	inactiveTabStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.NormalBorder()).
				BorderForeground(components.ColorGrey).
				Foreground(components.ColorGrey)

	activeTabStyle = inactiveTabStyle.
			Foreground(components.ColorGreen).
			BorderForeground(components.ColorGreen).
			Bold(true)
)

var (
	panelTitleStyle       = lipgloss.NewStyle().Foreground(components.ColorGrey)
	activePanelTitleStyle = lipgloss.NewStyle().Foreground(components.ColorGreen).Bold(true)
)
