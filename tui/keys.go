package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	FocusCalendar key.Binding
	FocusContent  key.Binding
	ToggleFocus   key.Binding
	DayTab        key.Binding
	FilesTab      key.Binding
	Reload        key.Binding

	// calendar
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding

	// file browser
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Back      key.Binding
	Select    key.Binding
	SelectAll key.Binding
	MoveHere  key.Binding
	NewFolder key.Binding
	Rename    key.Binding
	Delete    key.Binding

	// prompt
	Submit key.Binding
	Cancel key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		FocusCalendar: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "calendar")),
		FocusContent:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "content")),
		ToggleFocus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle")),
		DayTab:        key.NewBinding(key.WithKeys("3", "d"), key.WithHelp("3/d", "day")),
		FilesTab:      key.NewBinding(key.WithKeys("4", "f"), key.WithHelp("4/f", "files")),
		Reload:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

		PrevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "day")),
		NextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "day")),
		PrevWeek:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "week")),
		NextWeek:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "week")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open")),
		Back:      key.NewBinding(key.WithKeys("esc", "h", "left", "backspace"), key.WithHelp("esc", "back")),
		Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all/none")),
		MoveHere:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move selected into")),
		NewFolder: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new folder")),
		Rename:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) globalHelp() []key.Binding {
	return []key.Binding{k.FocusCalendar, k.FocusContent, k.ToggleFocus, k.DayTab, k.FilesTab, k.Reload, k.Quit}
}

func (k keyMap) calendarHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.PrevMonth, k.NextMonth, k.Today}
}

func (k keyMap) filesHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Select, k.SelectAll, k.MoveHere, k.NewFolder, k.Rename, k.Delete}
}

func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
