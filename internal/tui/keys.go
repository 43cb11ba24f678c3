package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the invoice browser.
type KeyMap struct {
	SwitchTab   key.Binding
	CardLayout  key.Binding
	ListLayout  key.Binding
	Search      key.Binding
	Clear       key.Binding
	Accept      key.Binding
	Sync        key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the key map used by New.
var DefaultKeyMap = KeyMap{
	SwitchTab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "inbox/processed"),
	),
	CardLayout: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cards"),
	),
	ListLayout: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "list"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "done"),
	),
	Sync: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "sync"),
	),
	ScrollLeft: key.NewBinding(
		key.WithKeys("left", "["),
		key.WithHelp("←/[", "prev"),
	),
	ScrollRight: key.NewBinding(
		key.WithKeys("right", "]"),
		key.WithHelp("→/]", "next"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.CardLayout, k.ListLayout, k.Search, k.Clear, k.Sync, k.Quit}
}
