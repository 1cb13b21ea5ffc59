package tui

import "github.com/charmbracelet/bubbles/key"

type boardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	AddDefault  key.Binding
	AddToday    key.Binding
	AddNextDay  key.Binding
	AddNextWeek key.Binding
	AddSomeday  key.Binding
	AddProject  key.Binding
	Toggle      key.Binding
	Activate    key.Binding
	Quit        key.Binding
}

type modalKeyMap struct {
	Dismiss   key.Binding
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Delete    key.Binding
	Confirm   key.Binding
	Deny      key.Binding
}

var boardKeys = boardKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	AddDefault:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	AddToday:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	AddNextDay:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next day")),
	AddNextWeek: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next week")),
	AddSomeday:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "someday")),
	AddProject:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "project")),
	Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done/collapse")),
	Activate:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter×2", "edit")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var modalKeys = modalKeyMap{
	Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab")),
	Left:      key.NewBinding(key.WithKeys("left")),
	Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "choose")),
	Delete:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
	Confirm:   key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
	Deny:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "keep")),
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if i > 0 && out != "" {
			out += "   "
		}
		out += h.Key + ": " + h.Desc
	}
	return out
}
