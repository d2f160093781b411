package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the reminder watcher.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Actions
	Dismiss key.Binding
	Refresh key.Binding

	// Help toggle
	Help key.Binding

	// Quit
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d/enter", "dismiss"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Dismiss, k.Refresh},
		{k.Help, k.Quit},
	}
}
