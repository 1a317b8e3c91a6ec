package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cornerLeft         = "┌"
	cornerRight        = "┐"
	cornerLeftRounded  = "╭"
	cornerRightRounded = "╮"
	dash               = "─"
)

// renderPanel draws content in a bordered box with title set into the top
// border. Focused panels get the accent colour.
func renderPanel(title string, content string, width int, height int, focused bool) string {
	borderStyle, titleStyle := boxStyle, panelTitleStyle
	if focused {
		borderStyle, titleStyle = activeBoxStyle, activePanelTitleStyle
	}
	box := borderStyle.Width(width).Height(height).Render(content)
	lines := strings.Split(box, "\n")

	top, ok := titledBorder(lines[0], titleStyle.Render(" "+title+" "))
	if !ok {
		return box
	}
	lines[0] = top
	return strings.Join(lines, "\n")
}

// titledBorder rewrites a rendered top border line so it starts with two
// dashes, then styledTitle, then the remaining dashes. ANSI codes around the
// border characters are kept.
func titledBorder(border string, styledTitle string) (string, bool) {
	left := strings.Index(border, cornerLeft)
	right := strings.Index(border, cornerRight)
	if left == -1 || right == -1 {
		return border, false
	}
	opening := border[:left]
	closing := ""
	if i := strings.LastIndex(border, "\x1b[0m"); i != -1 {
		closing = border[i:]
	}

	// dashes between the corners, minus the two before the title
	dashes := (right-left-len(cornerLeft))/len(dash) - 2 - lipgloss.Width(styledTitle)
	if dashes < 0 {
		return border, false
	}
	return opening + cornerLeftRounded + dash + dash + closing +
		styledTitle +
		opening + strings.Repeat(dash, dashes) + cornerRightRounded + closing, true
}
