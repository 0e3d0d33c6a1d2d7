package keyboard

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings understood by the Router.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	First      key.Binding
	Last       key.Binding
	Activate   key.Binding
	Dismiss    key.Binding
	Backspace  key.Binding
	CaretLeft  key.Binding
	CaretRight key.Binding
	Swallow    key.Binding
}

// DefaultKeyMap returns the default list navigation bindings.
// Letters are never bound: they belong to the text field.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		First: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "last"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "toggle"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "remove last"),
		),
		CaretLeft: key.NewBinding(
			key.WithKeys("shift+left"),
		),
		CaretRight: key.NewBinding(
			key.WithKeys("shift+right"),
		),
		Swallow: key.NewBinding(
			key.WithKeys("left", "right"),
		),
	}
}
