package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the feed key bindings.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Like         key.Binding
	Refresh      key.Binding
	Delete       key.Binding
	Comment      key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
	Submit       key.Binding
	Back         key.Binding
	DismissToast key.Binding
	ClearToasts  key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		DismissToast: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		ClearToasts: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear toasts"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Like, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Like, k.Comment, k.Delete},
		{k.DismissToast, k.ClearToasts},
		{k.Help, k.Quit},
	}
}

// confirmHelp is shown while a delete awaits confirmation.
type confirmHelp struct{ k KeyMap }

func (h confirmHelp) ShortHelp() []key.Binding { return []key.Binding{h.k.Confirm, h.k.Cancel} }
func (h confirmHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

// composeHelp is shown while a comment is being written.
type composeHelp struct{ k KeyMap }

func (h composeHelp) ShortHelp() []key.Binding { return []key.Binding{h.k.Submit, h.k.Back} }
func (h composeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
