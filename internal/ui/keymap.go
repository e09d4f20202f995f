package ui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap defines the key bindings the dialogs react to.
// Esc is not here: closing on Esc is the behavior's job.
type KeyMap struct {
	// Button navigation
	Left  key.Binding
	Right key.Binding
	Tab   key.Binding

	Enter key.Binding

	// Confirm shortcuts
	Yes key.Binding
	No  key.Binding
}

// ShortHelp returns bindings shown in the compact helpline.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Yes, k.No}
}

// FullHelp returns all bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Tab}, {k.Enter, k.Yes, k.No}}
}

// Keys is the default key map used by the dialogs.
var Keys = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev button"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next button"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch button"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
}
