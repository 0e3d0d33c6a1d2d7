// Package keyboard maps key presses to navigation and selection intents
// for a list with a single active row.
package keyboard

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// IntentKind identifies what a key press means for the list.
type IntentKind int

const (
	// IntentPass leaves the key to the text field.
	IntentPass IntentKind = iota
	// IntentCaret moves the text cursor by Intent.Delta.
	IntentCaret
	// IntentMove means the active row changed.
	IntentMove
	// IntentSwallow consumes the key without effect.
	IntentSwallow
	// IntentActivate toggles the row in Intent.RowID.
	IntentActivate
	// IntentDismiss closes the list.
	IntentDismiss
	// IntentBackspace is a backspace the host may turn into a removal.
	IntentBackspace
)

// Intent is the result of routing a key press.
type Intent struct {
	Kind  IntentKind
	RowID string
	Delta int
}

// Captured reports whether the router consumed the key, i.e. it must not
// reach the text field or any surrounding navigation.
func (i Intent) Captured() bool {
	switch i.Kind {
	case IntentMove, IntentSwallow, IntentActivate, IntentDismiss:
		return true
	}
	return false
}

// Router tracks the active row of the rendered list and resolves key presses
// against it. It knows nothing about how the rows were produced.
type Router struct {
	keys   KeyMap
	rows   []string
	active int // -1 = no active row
}

// NewRouter creates a Router. A nil keys uses DefaultKeyMap.
func NewRouter(keys *KeyMap) *Router {
	km := DefaultKeyMap()
	if keys != nil {
		km = *keys
	}
	return &Router{keys: km, active: -1}
}

// KeyMap returns the router's bindings.
func (r *Router) KeyMap() KeyMap {
	return r.keys
}

// SetRows replaces the rendered rows. The active row is kept when it is
// still present; otherwise the first row becomes active.
func (r *Router) SetRows(ids []string) {
	current := r.ActiveRowID()
	r.rows = slices.Clone(ids)

	if idx := slices.Index(r.rows, current); current != "" && idx >= 0 {
		r.active = idx
		return
	}
	if len(r.rows) > 0 {
		r.active = 0
		return
	}
	r.active = -1
}

// Rows returns the rendered row IDs.
func (r *Router) Rows() []string {
	return slices.Clone(r.rows)
}

// ActiveRowID returns the active row, or "" if there is none.
func (r *Router) ActiveRowID() string {
	if r.active < 0 || r.active >= len(r.rows) {
		return ""
	}
	return r.rows[r.active]
}

// SetActive makes id the active row. Returns false if id isn't rendered.
func (r *Router) SetActive(id string) bool {
	idx := slices.Index(r.rows, id)
	if idx < 0 {
		return false
	}
	r.active = idx
	return true
}

// Route resolves a key press.
func (r *Router) Route(msg tea.KeyMsg) Intent {
	switch {
	case key.Matches(msg, r.keys.Up):
		return r.move(r.active - 1)

	case key.Matches(msg, r.keys.Down):
		return r.move(r.active + 1)

	case key.Matches(msg, r.keys.First):
		return r.move(0)

	case key.Matches(msg, r.keys.Last):
		return r.move(len(r.rows) - 1)

	case key.Matches(msg, r.keys.Activate):
		id := r.ActiveRowID()
		if id == "" {
			return Intent{Kind: IntentSwallow}
		}
		return Intent{Kind: IntentActivate, RowID: id}

	case key.Matches(msg, r.keys.Dismiss):
		return Intent{Kind: IntentDismiss}

	case key.Matches(msg, r.keys.Backspace):
		return Intent{Kind: IntentBackspace}

	case key.Matches(msg, r.keys.CaretLeft):
		return Intent{Kind: IntentCaret, Delta: -1}

	case key.Matches(msg, r.keys.CaretRight):
		return Intent{Kind: IntentCaret, Delta: 1}

	case key.Matches(msg, r.keys.Swallow):
		return Intent{Kind: IntentSwallow}
	}

	return Intent{Kind: IntentPass}
}

// move clamps idx to the rendered rows; no wrapping.
func (r *Router) move(idx int) Intent {
	if len(r.rows) == 0 {
		return Intent{Kind: IntentSwallow}
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(r.rows)-1 {
		idx = len(r.rows) - 1
	}
	r.active = idx
	return Intent{Kind: IntentMove, RowID: r.rows[idx]}
}
