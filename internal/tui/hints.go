package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move h:back l:open"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (Enter, Tab, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeFilter:
		return a.getFilterModeHints()
	case ModeTag:
		return a.getTagModeHints()
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal (file list).
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "space", Desc: "select"},
		},
		Action: []Hint{
			{Key: "t", Desc: "tags"},
			{Key: "/", Desc: "filter"},
			{Key: "Y", Desc: "yank"},
		},
		Edit: []Hint{
			{Key: "d", Desc: "unregister"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
	if a.panelVisible {
		hints.Edit = append(hints.Edit, Hint{Key: "+/-", Desc: "panel"})
	}
	if a.filter.Query != "" || a.tagFilter != nil || a.selection.HasSelection() || a.panelVisible {
		hints.System = append([]Hint{{Key: "Esc", Desc: "clear"}}, hints.System...)
	}
	return hints
}

// getFilterModeHints returns hints for ModeFilter (file filter input).
func (a App) getFilterModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "filter"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "apply"},
		},
		System: []Hint{
			{Key: "Esc", Desc: "cancel"},
		},
	}
}

// getTagModeHints returns hints for ModeTag, depending on the combobox state.
func (a App) getTagModeHints() HintSet {
	frame := a.tagger.Frame()

	if !frame.Open {
		return HintSet{
			Nav: []Hint{
				{Key: "type/↓", Desc: "open"},
			},
			Edit: []Hint{
				{Key: "Bksp", Desc: "remove last"},
			},
			System: []Hint{
				{Key: "Tab", Desc: "files"},
				{Key: "Esc", Desc: "hide"},
			},
		}
	}

	hints := HintSet{
		Nav: []Hint{
			{Key: "↑/↓", Desc: "move"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "toggle"},
		},
		System: []Hint{
			{Key: "Tab", Desc: "files"},
			{Key: "Esc", Desc: "close"},
		},
	}
	if frame.Create != nil {
		hints.Action = append(hints.Action, Hint{Key: "Enter", Desc: "create"})
	}
	if frame.CanOpenTag {
		hints.Action = append(hints.Action, Hint{Key: "ctrl+o", Desc: "show files"})
	}
	if frame.Query == "" && len(frame.Chips) > 0 {
		hints.Edit = []Hint{{Key: "Bksp", Desc: "remove last"}}
	}
	return hints
}

type helpSection struct {
	title string
	hints []Hint
}

// helpSections lists every binding for the help overlay.
func (a App) helpSections() []helpSection {
	fromBindings := func(bindings ...key.Binding) []Hint {
		hints := make([]Hint, 0, len(bindings))
		for _, b := range bindings {
			h := b.Help()
			hints = append(hints, Hint{Key: h.Key, Desc: h.Desc})
		}
		return hints
	}

	router := a.tagger.router.KeyMap()
	return []helpSection{
		{
			title: "Files",
			hints: fromBindings(a.keys.Up, a.keys.Down, a.keys.Top, a.keys.Bottom,
				a.keys.Select, a.keys.SelectAll, a.keys.Filter, a.keys.YankPath, a.keys.Remove),
		},
		{
			title: "Tag panel",
			hints: fromBindings(a.keys.Tag, router.Up, router.Down, router.Activate, router.Dismiss,
				router.Backspace, a.tagger.keys.OpenTag, a.tagger.keys.Leave, a.keys.PanelGrow, a.keys.PanelShrink),
		},
		{
			title: "General",
			hints: fromBindings(a.keys.Back, a.keys.Help, a.keys.Quit),
		},
	}
}
