package combobox

import "github.com/nikbrunner/tagbox/internal/tristate"

// CreateRowID is the row ID of the create affordance.
const CreateRowID = "\x00create"

// Row describes one suggestion.
type Row struct {
	ID         string
	Label      string
	Breadcrumb string // ancestor path, "" for root tags
	Color      string
	State      tristate.State
	Selected   bool // every target carries the tag
}

// Chip describes one tag of the current selection.
type Chip struct {
	ID    string
	Label string
	Color string
	State tristate.State
}

// CreateRow describes the create affordance.
type CreateRow struct {
	Name    string
	Pending bool
}

// Frame is everything a renderer needs for one frame.
type Frame struct {
	Open        bool
	Query       string
	Rows        []Row
	ActiveRowID string
	Chips       []Chip
	Create      *CreateRow
	Err         error
	CanOpenTag  bool
	TargetCount int
}

// RowIDs returns the navigable row IDs in display order,
// with the create affordance last.
func (f Frame) RowIDs() []string {
	ids := make([]string, 0, len(f.Rows)+1)
	for _, r := range f.Rows {
		ids = append(ids, r.ID)
	}
	if f.Create != nil {
		ids = append(ids, CreateRowID)
	}
	return ids
}
