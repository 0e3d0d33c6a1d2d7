package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/tagbox/internal/tui/layout"
)

// Mode is the interaction mode of the App.
type Mode int

const (
	ModeNormal Mode = iota // browsing files
	ModeFilter             // typing a file filter
	ModeTag                // tag panel focused
	ModeHelp               // help overlay
)

// FilterState holds state for narrowing the file list.
type FilterState struct {
	Input textinput.Model
	Query string // active filter query (persists after closing the input)
}

// NewFilterState creates a FilterState with an initialized input.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	input := textinput.New()
	input.Placeholder = "Filter files..."
	input.CharLimit = cfg.Input.FilterCharLimit
	input.Width = cfg.Input.FilterWidth
	return FilterState{Input: input}
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Query = ""
}

// SelectionState holds the multi-selection of files. Order is selection order.
type SelectionState struct {
	IDs []string
}

// NewSelectionState creates an empty SelectionState.
func NewSelectionState() SelectionState {
	return SelectionState{}
}

// Reset clears all selection state.
func (s *SelectionState) Reset() {
	s.IDs = nil
}

// Toggle adds or removes a file from selection.
func (s *SelectionState) Toggle(id string) {
	if idx := slices.Index(s.IDs, id); idx >= 0 {
		s.IDs = slices.Delete(s.IDs, idx, idx+1)
		return
	}
	s.IDs = append(s.IDs, id)
}

// Add selects id if it isn't selected yet.
func (s *SelectionState) Add(id string) {
	if !s.IsSelected(id) {
		s.IDs = append(s.IDs, id)
	}
}

// Retain drops selected IDs for which keep returns false.
func (s *SelectionState) Retain(keep func(id string) bool) {
	s.IDs = slices.DeleteFunc(s.IDs, func(id string) bool { return !keep(id) })
}

// IsSelected returns true if the file is selected.
func (s *SelectionState) IsSelected(id string) bool {
	return slices.Contains(s.IDs, id)
}

// Count returns the number of selected files.
func (s *SelectionState) Count() int {
	return len(s.IDs)
}

// HasSelection returns true if any files are selected.
func (s *SelectionState) HasSelection() bool {
	return len(s.IDs) > 0
}

// targetSet is the file IDs the tag panel edits. It is shared by pointer
// between App copies so the combobox always reads the current set.
type targetSet struct {
	ids []string
}

func (t *targetSet) set(ids []string) {
	t.ids = slices.Clone(ids)
}

func (t *targetSet) get() []string {
	return slices.Clone(t.ids)
}
