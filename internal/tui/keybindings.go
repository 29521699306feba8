package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the play screen.
type KeyMap struct {
	// Turn
	Start   key.Binding
	GotIt   key.Binding
	Pass    key.Binding
	Undo    key.Binding
	EndTurn key.Binding

	// Modals
	Continue key.Binding

	// Control
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Start: key.NewBinding(
		key.WithKeys(" ", "s"),
		key.WithHelp("space/s", "start turn"),
	),
	GotIt: key.NewBinding(
		key.WithKeys("g", "right", "enter"),
		key.WithHelp("g/→", "got it"),
	),
	Pass: key.NewBinding(
		key.WithKeys("p", "left"),
		key.WithHelp("p/←", "pass"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u", "backspace"),
		key.WithHelp("u", "undo"),
	),
	EndTurn: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end turn"),
	),
	Continue: key.NewBinding(
		key.WithKeys("n", "enter"),
		key.WithHelp("n/enter", "continue"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.GotIt, k.Pass, k.Undo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.GotIt, k.Pass},
		{k.Undo, k.EndTurn, k.Continue},
		{k.Help, k.Quit},
	}
}
