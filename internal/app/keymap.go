package app

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap defines the demo's own bindings. The letter keys only act while
// no dialog is open; the ctrl bindings always do.
type KeyMap struct {
	Alert   key.Binding
	Confirm key.Binding
	Prompt  key.Binding
	Modal   key.Binding

	Nested     key.Binding
	CloseAll   key.Binding
	UnmountAll key.Binding

	Up   key.Binding
	Down key.Binding

	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns bindings shown in the compact helpline.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Alert, k.Confirm, k.Prompt, k.Modal, k.Nested, k.Help, k.Quit}
}

// FullHelp returns all bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Alert, k.Confirm, k.Prompt, k.Modal},
		{k.Nested, k.CloseAll, k.UnmountAll},
		{k.Up, k.Down, k.Help, k.Quit, k.ForceQuit},
	}
}

// Keys is the default key map of the demo.
var Keys = KeyMap{
	Alert: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "alert"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "confirm"),
	),
	Prompt: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "prompt"),
	),
	Modal: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "modal"),
	),
	Nested: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "stack another"),
	),
	CloseAll: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "close all"),
	),
	UnmountAll: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "unmount all"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "force quit"),
	),
}
