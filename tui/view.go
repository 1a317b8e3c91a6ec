package tui

import (
	"hourbox/calendar"
	"hourbox/tui/components"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 30

func (m modelTui) daySummary(contentWidth int) components.DaySummary {
	total := m.app.Sessions.TotalNetHours()
	target := m.app.Sessions.Target()
	pct := calendar.Progress(total, target)
	bar := m.progress
	bar.Width = max(contentWidth-4, 10)
	return components.DaySummary{
		Date:        m.selectedDate,
		Sessions:    m.app.Sessions.SessionsForDate(m.selectedDate),
		TotalHours:  total,
		Target:      target,
		Progress:    pct,
		ProgressBar: bar.ViewAs(pct / 100),
	}
}

func (m modelTui) helpBindings() []key.Binding {
	if m.prompt != promptNone {
		return m.keys.promptHelp()
	}
	bindings := m.keys.globalHelp()
	switch {
	case m.focus == focusSidebar:
		bindings = append(m.keys.calendarHelp(), bindings...)
	case m.activeTab == tabFiles:
		bindings = append(m.keys.filesHelp(), bindings...)
	}
	return bindings
}

func (m modelTui) renderTabs() string {
	dayLabel := "Day"
	filesLabel := "Files"
	if m.focus != focusContent {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			inactiveTabStyle.Render(dayLabel),
			inactiveTabStyle.Render(filesLabel))
	}
	dayLabel = "[3] Day"
	filesLabel = "[4] Files"
	if m.activeTab == tabDay {
		return lipgloss.JoinHorizontal(lipgloss.Top, activeTabStyle.Render(dayLabel), inactiveTabStyle.Render(filesLabel))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, inactiveTabStyle.Render(dayLabel), activeTabStyle.Render(filesLabel))
}

func (m modelTui) renderPrompt() string {
	label := ""
	switch m.prompt {
	case promptNewFolder:
		label = "New folder: "
	case promptRename:
		label = "Rename " + m.promptTarget.Name + " to: "
	case promptDelete:
		label = "Delete " + m.promptTarget.Name + "? "
	}
	return components.PromptStyle.Render(label) + m.input.View()
}

func (m modelTui) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	// account for both panels' borders (2+2)
	contentWidth := m.width - sidebarWidth - 4
	// account for borders (2 lines) and footer (1 line)
	mainHeight := m.height - 3

	grid := calendar.Month(m.year, m.month, m.app.Sessions.HoursForDate, m.now())
	sidebarContent := components.RenderCalendar(grid, m.selectedDate, m.focus == focusSidebar, sidebarWidth)
	sidebarBox := renderPanel("[1] Calendar", sidebarContent, sidebarWidth, mainHeight, m.focus == focusSidebar)

	var cb strings.Builder
	cb.WriteString(m.renderTabs() + "\n")

	if m.activeTab == tabDay {
		cb.WriteString(components.RenderDayView(m.daySummary(contentWidth), contentWidth))
	} else {
		cb.WriteString(components.RenderFilesView(
			m.fileRows,
			m.folderPath(),
			m.contentCursor,
			m.contentOffset,
			m.app.Files.IsSelected,
			m.focus == focusContent,
			contentWidth,
			m.height,
		))
	}

	cb.WriteString("\n")
	if m.prompt != promptNone {
		cb.WriteString(m.renderPrompt())
	} else {
		cb.WriteString(components.RenderStatusBar(components.SyncStatus{
			RemoteEnabled: m.app.Remote != nil,
			NeedsReauth:   m.app.NeedsReauth(),
			Loaded:        m.app.Loaded,
			LastSync:      m.app.Sessions.LastSync(),
			Message:       m.message,
			IsError:       m.messageErr,
		}, contentWidth))
	}

	contentBox := renderPanel("[2] Content", cb.String(), contentWidth, mainHeight, m.focus == focusContent)

	footer := components.HelpStyle.Width(m.width).Align(lipgloss.Center).Render(m.help.ShortHelpView(m.helpBindings()))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, contentBox),
		footer,
	)
}

func (m modelTui) folderPath() string {
	names := []string{}
	for _, folder := range m.app.Files.Breadcrumbs(m.app.Files.CurrentFolder()) {
		names = append(names, folder.Name)
	}
	return "/" + strings.Join(names, "/")
}
