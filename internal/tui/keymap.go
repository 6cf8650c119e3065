package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	TogglePeriod key.Binding
	Month        key.Binding
	AllTime      key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TogglePeriod: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch period"),
		),
		Month: key.NewBinding(
			key.WithKeys("m", "1"),
			key.WithHelp("m", "this month"),
		),
		AllTime: key.NewBinding(
			key.WithKeys("a", "2"),
			key.WithHelp("a", "all time"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePeriod, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePeriod, k.Month, k.AllTime},
		{k.Refresh, k.Help, k.Quit},
	}
}
