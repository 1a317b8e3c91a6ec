package components

import (
	"fmt"
	"hourbox/calendar"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var weekdays = [calendar.DAYS]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// RenderCalendar draws grid as a month of day cells shaded by hours logged.
// selected is the YYYY-MM-DD date under the cursor.
func RenderCalendar(
	grid calendar.Grid,
	selected string,
	focusOnCalendar bool,
	width int,
) string {
	var sb strings.Builder

	// align with tabs on the content side
	sb.WriteString("\n")

	title := fmt.Sprintf("%s %d", grid.Month, grid.Year)
	sb.WriteString(monthTitleStyle.Width(width-2).Align(lipgloss.Center).Render(title) + "\n")

	header := make([]string, 0, calendar.DAYS)
	for _, d := range weekdays {
		header = append(header, cellStyle.Foreground(ColorGrey).Render(d))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...) + "\n")

	for _, week := range grid.Cells {
		row := make([]string, 0, calendar.DAYS)
		for _, cell := range week {
			style := levelStyles[cell.Level]
			if !cell.InMonth {
				style = cellStyle.Foreground(ColorGrey)
			}
			if cell.IsToday {
				style = style.Underline(true).Bold(true)
			}
			if cell.Date == selected {
				if focusOnCalendar {
					style = selectedItemStyle.Width(cellStyle.GetWidth())
				} else {
					style = style.Background(ColorGrey)
				}
			}
			row = append(row, style.Render(fmt.Sprintf("%2d", cell.Day)))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
	}

	sb.WriteString("\n" + DimStyle.Render(fmt.Sprintf("Month  %.1fh", grid.Total)) + "\n")
	legend := []string{DimStyle.Render("less ")}
	for level := calendar.Level(1); level <= 4; level++ {
		legend = append(legend, levelStyles[level].Width(2).Render("■"))
	}
	legend = append(legend, DimStyle.Render(" more"))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, legend...))
	return sb.String()
}
