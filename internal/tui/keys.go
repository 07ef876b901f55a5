package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Replay key.Binding
	Reload key.Binding
	Edit   key.Binding
	Filter key.Binding
	About  key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var defaultKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Play: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "play next"),
	),
	Replay: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "replay previous"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit config"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "find show"),
	),
	About: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "about"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x", "esc"),
		key.WithHelp("x", "dismiss"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Replay, k.Up, k.Down, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Play, k.Replay, k.Edit},
		{k.Reload, k.About, k.Clear},
		{k.Help, k.Quit},
	}
}
