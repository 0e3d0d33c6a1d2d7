package combobox

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/tristate"
)

// DefaultCreateTimeout bounds a single CreateTag call.
const DefaultCreateTimeout = 10 * time.Second

// TagCreatedMsg reports a durable tag creation. Targets is the target set
// captured when creation was requested.
type TagCreatedMsg struct {
	Name    string
	Tag     model.Tag
	Targets []tristate.Target
}

// TagCreateFailedMsg reports a rejected tag creation.
type TagCreateFailedMsg struct {
	Name string
	Err  error
}

// Gate decides when tag creation is offered and runs creation requests,
// ignoring a request while one for the same name is in flight.
type Gate struct {
	timeout time.Duration
	pending map[string]bool
}

// NewGate creates a Gate. A non-positive timeout uses DefaultCreateTimeout.
func NewGate(timeout time.Duration) *Gate {
	if timeout <= 0 {
		timeout = DefaultCreateTimeout
	}
	return &Gate{
		timeout: timeout,
		pending: make(map[string]bool),
	}
}

// Offer returns the create affordance for query, or nil when it isn't offered:
// the query is blank or a tag with that name already exists under parentID.
func (g *Gate) Offer(query string, parentID *string, tags []model.Tag) *CreateRow {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	for _, t := range tags {
		if sameParent(t.ParentID, parentID) && strings.EqualFold(t.Name, query) {
			return nil
		}
	}
	return &CreateRow{Name: query, Pending: g.Pending(query)}
}

// Pending reports whether creation of name is in flight.
func (g *Gate) Pending(name string) bool {
	return g.pending[pendingKey(name)]
}

// Request starts creating name under parentID. The returned command runs
// off the event loop and reports TagCreatedMsg or TagCreateFailedMsg.
// Returns nil if the same name is already pending.
func (g *Gate) Request(catalog Catalog, parentID *string, name string, targets []tristate.Target) tea.Cmd {
	key := pendingKey(name)
	if g.pending[key] {
		return nil
	}
	g.pending[key] = true

	timeout := g.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		tag, err := catalog.CreateTag(ctx, parentID, name)
		if err != nil {
			return TagCreateFailedMsg{Name: name, Err: err}
		}
		return TagCreatedMsg{Name: name, Tag: tag, Targets: targets}
	}
}

// Resolve marks the request for name as finished.
func (g *Gate) Resolve(name string) {
	delete(g.pending, pendingKey(name))
}

func pendingKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
