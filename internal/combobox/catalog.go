package combobox

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/tristate"
)

// Catalog is the source of truth for tags.
type Catalog interface {
	Tags() []model.Tag
	Tag(id string) (model.Tag, bool)
	Path(tag model.Tag) []string
	CreateTag(ctx context.Context, parentID *string, name string) (model.Tag, error)
}

// Revisioner is implemented by catalogs that can report when their tag list
// changed. Suggestions are memoized only for such catalogs.
type Revisioner interface {
	Revision() uint64
}

// TargetSource returns the target set being edited right now.
// It is called at the moment a command is applied, never cached.
type TargetSource func() []tristate.Target

// TagOpener is an optional host capability: opening a tag, e.g. to filter
// a file list by it. Hosts that don't offer it leave Params.Opener nil.
type TagOpener interface {
	OpenTag(tag model.Tag) tea.Cmd
}
