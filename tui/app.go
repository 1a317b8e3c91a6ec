package tui

import (
	"context"
	"errors"
	"fmt"
	"hourbox/app"
	"hourbox/calendar"
	"hourbox/files"
	L "hourbox/logger"
	"hourbox/session"
	"hourbox/tui/components"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusContent
)

type tabId int

const (
	tabDay tabId = iota
	tabFiles
)

type promptKind int

const (
	promptNone promptKind = iota
	promptNewFolder
	promptRename
	promptDelete
)

type loadedMsg session.LoadResult

// actionMsg reports the outcome of a file operation.
type actionMsg struct {
	text string
	err  error
}

type modelTui struct {
	ctx      context.Context
	app      *app.App
	now      func() time.Time
	keys     keyMap
	help     help.Model
	progress progress.Model
	input    textinput.Model

	year         int
	month        time.Month
	selectedDate string

	fileRows      []components.FileRow
	contentCursor int
	contentOffset int

	focus     focusArea
	activeTab tabId
	prompt    promptKind
	// promptTarget is the row a rename or delete prompt acts on
	promptTarget components.FileRow
	message      string
	messageErr   bool
	width        int
	height       int
}

func NewApp(ctx context.Context, a *app.App) *modelTui {
	return newModel(ctx, a, time.Now)
}

func newModel(ctx context.Context, a *app.App, now func() time.Time) *modelTui {
	input := textinput.New()
	input.CharLimit = 120
	input.Width = 40

	today := now()
	m := &modelTui{
		ctx:          ctx,
		app:          a,
		now:          now,
		keys:         newKeyMap(),
		help:         help.New(),
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		input:        input,
		year:         today.Year(),
		month:        today.Month(),
		selectedDate: today.Format(calendar.DATE_FORMAT),
		focus:        focusSidebar,
		activeTab:    tabDay,
	}
	m.refreshFiles()
	return m
}

func (m modelTui) Init() tea.Cmd {
	return nil
}

func (m *modelTui) reload() tea.Msg {
	return loadedMsg(m.app.Sessions.Load(m.ctx))
}

func (m *modelTui) refreshFiles() {
	m.fileRows = components.FileRows(m.app.Files.List(m.app.Files.CurrentFolder()))
	if m.contentCursor >= len(m.fileRows) {
		m.contentCursor = len(m.fileRows) - 1
	}
	m.contentOffset = min(m.contentOffset, m.contentCursor)
}

func (m *modelTui) setMessage(text string, err error) {
	m.message = text
	m.messageErr = err != nil
	if err != nil {
		m.message = err.Error()
		if text != "" {
			m.message = text + ": " + err.Error()
		}
	}
}

// selectDate moves the calendar cursor and follows it into other months.
func (m *modelTui) selectDate(t time.Time) {
	m.selectedDate = t.Format(calendar.DATE_FORMAT)
	m.year, m.month = t.Year(), t.Month()
}

func (m *modelTui) shiftSelectedDate(days int) {
	t, err := time.Parse(calendar.DATE_FORMAT, m.selectedDate)
	if err != nil {
		t = m.now()
	}
	m.selectDate(t.AddDate(0, 0, days))
}

func (m *modelTui) shiftMonth(delta int) {
	m.year, m.month = calendar.Shift(m.year, m.month, delta)
	m.selectedDate = time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).Format(calendar.DATE_FORMAT)
}

func (m *modelTui) cursorRow() (components.FileRow, bool) {
	if m.contentCursor < 0 || m.contentCursor >= len(m.fileRows) {
		return components.FileRow{}, false
	}
	return m.fileRows[m.contentCursor], true
}

func (m *modelTui) goBack() {
	current := m.app.Files.CurrentFolder()
	if current == nil {
		return
	}
	var parent *string
	if folder, err := m.app.Files.Folder(*current); err == nil {
		parent = folder.ParentId
	}
	m.navigate(parent)
}

func (m *modelTui) navigate(folderId *string) {
	err := m.app.Files.Navigate(folderId)
	if err != nil {
		m.setMessage("could not open folder", err)
		return
	}
	m.contentCursor = 0
	m.contentOffset = 0
	m.refreshFiles()
}

func (m *modelTui) openPrompt(kind promptKind, target components.FileRow, value string, placeholder string) tea.Cmd {
	m.prompt = kind
	m.promptTarget = target
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *modelTui) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.SetValue("")
}

// submitPrompt runs the prompted operation as a command.
func (m *modelTui) submitPrompt() tea.Cmd {
	ctx, filesManager := m.ctx, m.app.Files
	kind, target, value := m.prompt, m.promptTarget, m.input.Value()
	current := filesManager.CurrentFolder()
	m.closePrompt()

	switch kind {
	case promptNewFolder:
		return func() tea.Msg {
			folder, err := filesManager.CreateFolder(ctx, value, current)
			if err != nil {
				return actionMsg{text: "could not create folder", err: err}
			}
			return actionMsg{text: "created " + folder.Name}
		}
	case promptRename:
		return func() tea.Msg {
			err := filesManager.RenameFolder(ctx, target.Id, value)
			if err != nil {
				return actionMsg{text: "could not rename", err: err}
			}
			return actionMsg{text: "renamed to " + value}
		}
	case promptDelete:
		if value != "y" && value != "yes" {
			return nil
		}
		return func() tea.Msg {
			if target.IsFolder {
				summary, err := filesManager.DeleteFolder(ctx, target.Id)
				if err != nil {
					return actionMsg{text: "could not delete folder", err: err}
				}
				return actionMsg{text: fmt.Sprintf("deleted %s: %d folders, %d files", summary.RemovedFolder.Name, summary.Folders, summary.Files)}
			}
			err := filesManager.DeleteFile(ctx, target.Id)
			if err != nil {
				return actionMsg{text: "could not delete file", err: err}
			}
			return actionMsg{text: "deleted " + target.Name}
		}
	}
	return nil
}

func (m *modelTui) moveSelected() tea.Cmd {
	row, ok := m.cursorRow()
	if !ok || !row.IsFolder {
		m.setMessage("", errors.New("put the cursor on a folder to move the selection into it"))
		return nil
	}
	if len(m.app.Files.Selected()) == 0 {
		m.setMessage("", errors.New("nothing selected, press space to select"))
		return nil
	}
	var target *string
	if row.IsParent() {
		current := m.app.Files.CurrentFolder()
		if current == nil {
			m.setMessage("", errors.New("already at the root"))
			return nil
		}
		if folder, err := m.app.Files.Folder(*current); err == nil {
			target = folder.ParentId
		}
	} else {
		id := row.Id
		target = &id
	}

	ctx, filesManager := m.ctx, m.app.Files
	return func() tea.Msg {
		result, err := filesManager.MoveSelected(ctx, target)
		if err != nil {
			return actionMsg{text: "could not move", err: err}
		}
		if len(result.Failed) > 0 {
			return actionMsg{
				text: fmt.Sprintf("moved %d, %d failed", result.Moved, len(result.Failed)),
				err:  result.Failed[0].Err,
			}
		}
		return actionMsg{text: fmt.Sprintf("moved %d items", result.Moved)}
	}
}

func (m *modelTui) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitPrompt()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *modelTui) updateCalendar(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.PrevDay):
		m.shiftSelectedDate(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.shiftSelectedDate(1)
	case key.Matches(msg, m.keys.PrevWeek):
		m.shiftSelectedDate(-calendar.DAYS)
	case key.Matches(msg, m.keys.NextWeek):
		m.shiftSelectedDate(calendar.DAYS)
	case key.Matches(msg, m.keys.PrevMonth):
		m.shiftMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.shiftMonth(1)
	case key.Matches(msg, m.keys.Today):
		m.selectDate(m.now())
	}
}

func (m *modelTui) updateFiles(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.contentCursor > 0 {
			m.contentCursor--
			if m.contentCursor < m.contentOffset {
				m.contentOffset = m.contentCursor
			}
		}

	case key.Matches(msg, m.keys.Down):
		if m.contentCursor < len(m.fileRows)-1 {
			m.contentCursor++
			maxVisible := components.VisibleFileRows(m.height)
			if m.contentCursor >= m.contentOffset+maxVisible {
				m.contentOffset = m.contentCursor - maxVisible + 1
			}
		}

	case key.Matches(msg, m.keys.Open):
		row, ok := m.cursorRow()
		switch {
		case !ok || !row.IsFolder:
		case row.IsParent():
			m.goBack()
		default:
			id := row.Id
			m.navigate(&id)
		}

	case key.Matches(msg, m.keys.Back):
		m.goBack()

	case key.Matches(msg, m.keys.Select):
		row, ok := m.cursorRow()
		if ok && !row.IsParent() {
			if _, err := m.app.Files.ToggleSelection(row.Id); err != nil {
				m.setMessage("", err)
			}
		}

	case key.Matches(msg, m.keys.SelectAll):
		if len(m.app.Files.Selected()) > 0 {
			m.app.Files.SelectAll(false)
		} else {
			m.app.Files.SelectAll(true)
		}

	case key.Matches(msg, m.keys.MoveHere):
		return m.moveSelected()

	case key.Matches(msg, m.keys.NewFolder):
		return m.openPrompt(promptNewFolder, components.FileRow{}, "", "folder name")

	case key.Matches(msg, m.keys.Rename):
		row, ok := m.cursorRow()
		if !ok || row.IsParent() || !row.IsFolder {
			m.setMessage("", errors.New("only folders can be renamed"))
			return nil
		}
		folder, err := m.app.Files.Folder(row.Id)
		if err != nil {
			m.setMessage("", err)
			return nil
		}
		return m.openPrompt(promptRename, row, folder.Name, "new name")

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.cursorRow()
		if !ok || row.IsParent() {
			return nil
		}
		return m.openPrompt(promptDelete, row, "", "type y to delete "+row.Name)
	}
	return nil
}

func (m *modelTui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case loadedMsg:
		m.app.Loaded = session.LoadResult(msg)
		m.setMessage(fmt.Sprintf("reloaded %d sessions from %s", msg.Count, msg.Source), nil)
		switch {
		case m.app.NeedsReauth():
			m.setMessage("", fmt.Errorf("token rejected, showing local copy"))
		case msg.Source == session.LOAD_SOURCE_CACHE && msg.RemoteErr != nil:
			m.setMessage("", fmt.Errorf("remote unavailable, showing local copy: %w", msg.RemoteErr))
		}

	case actionMsg:
		if msg.err != nil {
			L.Debug(fmt.Sprintf("tui: %s: %v", msg.text, msg.err))
			if errors.Is(msg.err, files.ErrBlobStoreUnavailable) {
				msg.text = "file storage unavailable"
			}
		}
		m.setMessage(msg.text, msg.err)
		m.refreshFiles()

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m, m.updatePrompt(msg)
		}
		m.message = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.FocusCalendar):
			m.focus = focusSidebar

		case key.Matches(msg, m.keys.FocusContent):
			m.focus = focusContent

		case key.Matches(msg, m.keys.ToggleFocus):
			if m.focus == focusSidebar {
				m.focus = focusContent
			} else {
				m.focus = focusSidebar
			}

		case key.Matches(msg, m.keys.DayTab):
			m.activeTab = tabDay

		case key.Matches(msg, m.keys.FilesTab):
			m.activeTab = tabFiles
			m.focus = focusContent
			m.refreshFiles()

		case key.Matches(msg, m.keys.Reload):
			return m, m.reload

		case m.focus == focusSidebar:
			m.updateCalendar(msg)

		case m.activeTab == tabFiles:
			return m, m.updateFiles(msg)
		}
	}

	return m, nil
}
