package shell

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	start    key.Binding
	end      key.Binding
	details  key.Binding
	edit     key.Binding
	lock     key.Binding
	schedule key.Binding
	clear    key.Binding
	help     key.Binding
	quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.start, k.end, k.details, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.start, k.end, k.details},
		{k.edit, k.lock},
		{k.schedule, k.clear},
		{k.help, k.quit},
	}
}

var defaultKeymap = keyMap{
	start: key.NewBinding(
		key.WithKeys("s", "1"),
		key.WithHelp("s", "start session"),
	),
	end: key.NewBinding(
		key.WithKeys("e", "2"),
		key.WithHelp("e", "end session"),
	),
	details: key.NewBinding(
		key.WithKeys("i", "3"),
		key.WithHelp("i", "status"),
	),
	edit: key.NewBinding(
		key.WithKeys("c", "4"),
		key.WithHelp("c", "edit config"),
	),
	lock: key.NewBinding(
		key.WithKeys("l", "5"),
		key.WithHelp("l", "locked mode"),
	),
	schedule: key.NewBinding(
		key.WithKeys("t", "6"),
		key.WithHelp("t", "set schedule"),
	),
	clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear schedule"),
	),
	help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "7", "ctrl+c"),
		key.WithHelp("q", "exit"),
	),
}
