package combobox

// Command is a mutation request processed by Controller.Execute.
type Command interface {
	command()
}

// ToggleTag flips a tag on the current target set.
type ToggleTag struct {
	TagID string
}

// CreateAndApplyTag creates a tag and applies it to the current target set
// once creation succeeded.
type CreateAndApplyTag struct {
	Name     string
	ParentID *string // nil = root
}

// RemoveLastSelected removes the last tag of the selection from every target
// carrying it. Ignored while the query is non-empty.
type RemoveLastSelected struct{}

// OpenTag asks the host to open a tag. Ignored if the host doesn't offer it.
type OpenTag struct {
	TagID string
}

func (ToggleTag) command()          {}
func (CreateAndApplyTag) command()  {}
func (RemoveLastSelected) command() {}
func (OpenTag) command()            {}
