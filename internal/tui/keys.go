package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Tabs     key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	AddFunds key.Binding
	Refresh  key.Binding
	Close    key.Binding

	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	Toggle key.Binding
	Cycle  key.Binding

	Push      key.Binding
	Pull      key.Binding
	Frequency key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Dismiss key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Tabs:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "screens")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		AddFunds: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "add funds")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Cycle:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "choose")),

		Push:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "push")),
		Pull:      key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "hard reset")),
		Frequency: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "frequency")),

		Confirm: key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok")),
	}
}

func (k keyMap) listHelp(hasAction bool) []key.Binding {
	out := []key.Binding{k.Tabs, k.Up, k.Down, k.Open}
	if hasAction {
		out = append(out, k.New)
	}
	return append(out, k.Delete, k.Refresh, k.Quit)
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Delete, k.Close, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Cycle, k.Save, k.Close}
}

func (k keyMap) transferHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Cycle, k.Toggle, k.Save, k.Close}
}

func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{k.Tabs, k.Push, k.Frequency, k.Pull, k.Refresh, k.Quit}
}
