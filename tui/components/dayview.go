package components

import (
	"fmt"
	"hourbox/session"
	"strings"

	L "hourbox/logger"

	"github.com/charmbracelet/lipgloss"
)

var (
	tableStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(ColorGrey)
	tableTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
)

type Row struct {
	label string
	value string
}

type DaySummary struct {
	Date       string
	Sessions   []session.Session
	TotalHours float64
	Target     float64
	// Progress is the percentage of Target reached, 0 to 100
	Progress float64
	// ProgressBar is the rendered bar for Progress
	ProgressBar string
}

func buildSection(title string, rows []Row, labelWidth int, valueWidth int) string {
	labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(ColorGrey)
	valueStyle := lipgloss.NewStyle().Width(valueWidth).Foreground(ColorGreen)

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row.label),
			valueStyle.Render(row.value),
		))
	}
	return tableTitleStyle.Render(title) + "\n" + tableStyle.Render(strings.Join(lines, "\n"))
}

// RenderDayView shows the overall progress and the sessions of one day.
func RenderDayView(summary DaySummary, width int) string {
	labelWidth := 16
	valueWidth := max(width-labelWidth-6, 10)

	var sb strings.Builder
	remaining := "target reached"
	if left := summary.Target - summary.TotalHours; left > 0 {
		remaining = fmt.Sprintf("%.2fh", left)
	}
	sb.WriteString(buildSection("PROGRESS", []Row{
		{"Total:", fmt.Sprintf("%.2fh", summary.TotalHours)},
		{"Target:", fmt.Sprintf("%.0fh", summary.Target)},
		{"Remaining:", remaining},
		{"Done:", fmt.Sprintf("%.1f%%", summary.Progress)},
	}, labelWidth, valueWidth))
	sb.WriteString("\n" + summary.ProgressBar + "\n\n")

	if len(summary.Sessions) == 0 {
		sb.WriteString(tableTitleStyle.Render("SESSIONS ON "+summary.Date) + "\n")
		sb.WriteString(DimStyle.Render("  Nothing logged. Use 'hourbox log add --date "+summary.Date+"'."))
		return sb.String()
	}

	dayMinutes := 0
	rows := make([]Row, 0, len(summary.Sessions))
	for _, s := range summary.Sessions {
		dayMinutes += s.NetMinutes
		value := fmt.Sprintf("%-8s %s", L.HumanReadableMinutes(s.NetMinutes), s.Category)
		if s.BreakMinutes > 0 {
			value += DimStyle.Render(fmt.Sprintf(" (-%dm)", s.BreakMinutes))
		}
		if s.Note != nil && *s.Note != "" {
			value += " " + DimStyle.Render(L.TruncateString(*s.Note, max(valueWidth-len(value)-2, 3), L.TRUNC_RIGHT))
		}
		rows = append(rows, Row{s.StartTime + " - " + s.EndTime, value})
	}
	title := fmt.Sprintf("SESSIONS ON %s · %s", summary.Date, L.HumanReadableMinutes(dayMinutes))
	sb.WriteString(buildSection(title, rows, labelWidth, valueWidth))
	return sb.String()
}
