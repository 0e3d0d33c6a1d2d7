package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the file list key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Select      key.Binding
	SelectAll   key.Binding
	Tag         key.Binding
	Filter      key.Binding
	YankPath    key.Binding
	Remove      key.Binding
	PanelGrow   key.Binding
	PanelShrink key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("V", "select all"),
		),
		Tag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "edit tags"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		YankPath: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "yank path"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "unregister"),
		),
		PanelGrow: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "taller panel"),
		),
		PanelShrink: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shorter panel"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "clear"),
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

// TaggerKeyMap defines the tag panel bindings the combobox router doesn't own.
type TaggerKeyMap struct {
	Leave   key.Binding
	OpenTag key.Binding
	Quit    key.Binding
}

// DefaultTaggerKeyMap returns the default tag panel bindings.
func DefaultTaggerKeyMap() TaggerKeyMap {
	return TaggerKeyMap{
		Leave: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "back to files"),
		),
		OpenTag: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "show files with tag"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
