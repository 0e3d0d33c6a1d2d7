// Package combobox implements the tag combobox: its open/close state machine,
// suggestion rows, tri-state selection across targets and tag creation.
// It renders nothing; hosts draw a Frame and feed events back.
package combobox

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/recency"
	"github.com/nikbrunner/tagbox/internal/suggest"
	"github.com/nikbrunner/tagbox/internal/tristate"
)

// ErrCreateFailed wraps every tag creation failure exposed in Frame.Err.
var ErrCreateFailed = errors.New("tag creation failed")

// Focus identifies which element of the widget holds focus.
type Focus int

const (
	FocusNone      Focus = iota // widget not focused
	FocusInput                  // the text input
	FocusRow                    // a suggestion row
	FocusElsewhere              // something outside the widget
)

// FocusTarget is the element receiving focus in a blur event.
type FocusTarget struct {
	Kind  Focus
	RowID string
}

// State is the mutable combobox state.
type State struct {
	Open        bool
	Query       string
	ActiveRowID string
	Focus       Focus
	Err         error
}

// Params holds parameters for creating a new Controller.
type Params struct {
	Catalog       Catalog
	Recency       *recency.Queue
	Targets       TargetSource
	ParentID      *string       // parent of created tags, nil = root
	Opener        TagOpener     // optional
	CreateTimeout time.Duration // optional, uses DefaultCreateTimeout if zero
	Logger        *slog.Logger  // optional, uses slog.Default() if nil
}

// Controller owns the combobox state and processes events and commands.
type Controller struct {
	catalog  Catalog
	recent   *recency.Queue
	targets  TargetSource
	parentID *string
	opener   TagOpener
	gate     *Gate
	logger   *slog.Logger
	cache    suggest.Cache
	state    State
}

// NewController creates a closed Controller with an empty query.
func NewController(params Params) *Controller {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recent := params.Recency
	if recent == nil {
		recent = recency.New(recency.DefaultCapacity)
	}

	targets := params.Targets
	if targets == nil {
		targets = func() []tristate.Target { return nil }
	}

	return &Controller{
		catalog:  params.Catalog,
		recent:   recent,
		targets:  targets,
		parentID: params.ParentID,
		opener:   params.Opener,
		gate:     NewGate(params.CreateTimeout),
		logger:   logger.With("component", "combobox"),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Reset starts a new editing session on another target set.
// Pending creations keep their own captured targets.
func (c *Controller) Reset(targets TargetSource) {
	if targets != nil {
		c.targets = targets
	}
	c.state = State{}
}

// Focus handles focus entering the text input.
func (c *Controller) Focus() {
	c.state.Open = true
	c.state.Focus = FocusInput
}

// Input handles a change of the text input.
func (c *Controller) Input(query string) {
	if query != c.state.Query {
		c.state.Err = nil
	}
	c.state.Query = query
	c.state.Open = true
	c.state.Focus = FocusInput
}

// Blur handles focus leaving its current element for next. Moving between
// the input and the suggestion rows keeps the combobox open.
func (c *Controller) Blur(next FocusTarget) {
	switch next.Kind {
	case FocusInput:
		c.state.Focus = FocusInput
		return
	case FocusRow:
		c.state.Focus = FocusRow
		if next.RowID != "" {
			c.state.ActiveRowID = next.RowID
		}
		return
	}

	c.close()
	c.state.Focus = next.Kind
}

// Escape closes the combobox and clears the query. Focus stays on the input.
func (c *Controller) Escape() {
	c.close()
	c.state.Focus = FocusInput
}

// Dismiss closes the combobox from outside, e.g. when its panel is hidden.
func (c *Controller) Dismiss() {
	c.close()
	c.state.Focus = FocusNone
}

func (c *Controller) close() {
	c.state.Open = false
	c.state.Query = ""
	c.state.ActiveRowID = ""
}

// SetActiveRow mirrors the active row of the rendered list.
func (c *Controller) SetActiveRow(id string) {
	c.state.ActiveRowID = id
}

// Backspace handles a backspace press. With an empty query it removes the
// last selected tag and returns true; otherwise the text input owns the key.
func (c *Controller) Backspace() bool {
	if c.state.Query != "" {
		return false
	}
	c.Execute(RemoveLastSelected{})
	return true
}

// Activate runs the command behind a row: toggling its tag or creating one.
func (c *Controller) Activate(rowID string) tea.Cmd {
	if rowID == CreateRowID {
		return c.Execute(CreateAndApplyTag{Name: c.state.Query, ParentID: c.parentID})
	}
	return c.Execute(ToggleTag{TagID: rowID})
}

// Execute processes a command. Creation returns a command that completes
// asynchronously; everything else is applied before Execute returns.
func (c *Controller) Execute(cmd Command) tea.Cmd {
	switch cmd := cmd.(type) {
	case ToggleTag:
		c.toggle(cmd.TagID)
	case RemoveLastSelected:
		c.removeLast()
	case CreateAndApplyTag:
		return c.create(cmd)
	case OpenTag:
		return c.openTag(cmd.TagID)
	}
	return nil
}

// Update handles the asynchronous results of tag creation.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TagCreatedMsg:
		c.created(msg)
	case TagCreateFailedMsg:
		c.gate.Resolve(msg.Name)
		c.state.Err = fmt.Errorf("%w: %q: %w", ErrCreateFailed, msg.Name, msg.Err)
		c.logger.Warn("tag creation failed", "name", msg.Name, "error", msg.Err)
	}
	return nil
}

func (c *Controller) toggle(tagID string) {
	if _, ok := c.catalog.Tag(tagID); !ok {
		c.logger.Debug("toggle of unknown tag ignored", "tag", tagID)
		return
	}

	targets := c.targets()
	ops := tristate.Toggle(tagID, targets)
	if err := tristate.Apply(ops); err != nil {
		c.state.Err = err
		c.logger.Error("toggle failed", "tag", tagID, "error", err)
		return
	}
	if tristate.HasAdd(ops) {
		c.recent.Touch(tagID)
	}

	c.logger.Debug("tag toggled", "tag", tagID, "targets", len(targets), "ops", len(ops))
	c.state.Err = nil
	c.state.Query = ""
	c.state.Focus = FocusInput
}

func (c *Controller) removeLast() {
	if c.state.Query != "" {
		return
	}

	targets := c.targets()
	chips := c.chips(targets, tristate.Membership(targets))
	if len(chips) == 0 {
		return
	}

	last := chips[len(chips)-1].ID
	if err := tristate.Apply(tristate.RemoveAll(last, targets)); err != nil {
		c.state.Err = err
		c.logger.Error("remove last tag failed", "tag", last, "error", err)
		return
	}
	c.logger.Debug("last tag removed", "tag", last)
}

func (c *Controller) create(cmd CreateAndApplyTag) tea.Cmd {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil
	}

	cmdFn := c.gate.Request(c.catalog, cmd.ParentID, cmd.Name, c.targets())
	if cmdFn == nil {
		c.logger.Debug("duplicate creation request ignored", "name", cmd.Name)
		return nil
	}
	c.state.Err = nil
	return cmdFn
}

func (c *Controller) created(msg TagCreatedMsg) {
	c.gate.Resolve(msg.Name)
	c.cache.Invalidate()

	if len(msg.Targets) > 0 {
		if err := tristate.Apply(tristate.AddAll(msg.Tag.ID, msg.Targets)); err != nil {
			c.state.Err = err
			c.logger.Error("apply created tag failed", "tag", msg.Tag.ID, "error", err)
			return
		}
		c.recent.Touch(msg.Tag.ID)
	}

	c.logger.Info("tag created", "tag", msg.Tag.ID, "name", msg.Name, "targets", len(msg.Targets))
	if c.state.Query == msg.Name {
		c.state.Query = ""
		c.state.Err = nil
		if c.state.Open {
			c.state.Focus = FocusInput
		}
	}
}

func (c *Controller) openTag(tagID string) tea.Cmd {
	if c.opener == nil {
		return nil
	}
	tag, ok := c.catalog.Tag(tagID)
	if !ok {
		return nil
	}
	return c.opener.OpenTag(tag)
}

// Frame computes the render description of the current state.
func (c *Controller) Frame() Frame {
	targets := c.targets()
	counts := tristate.Membership(targets)

	frame := Frame{
		Open:        c.state.Open,
		Query:       c.state.Query,
		ActiveRowID: c.state.ActiveRowID,
		Chips:       c.chips(targets, counts),
		Err:         c.state.Err,
		CanOpenTag:  c.opener != nil,
		TargetCount: len(targets),
	}

	if !c.state.Open {
		return frame
	}

	tags := c.catalog.Tags()
	for _, t := range c.suggestions(tags) {
		state := tristate.StateOf(counts, t.ID, len(targets))
		frame.Rows = append(frame.Rows, Row{
			ID:         t.ID,
			Label:      t.Name,
			Breadcrumb: breadcrumb(c.catalog.Path(t)),
			Color:      t.Color,
			State:      state,
			Selected:   state == tristate.All,
		})
	}
	frame.Create = c.gate.Offer(c.state.Query, c.parentID, tags)

	return frame
}

func (c *Controller) suggestions(tags []model.Tag) []model.Tag {
	compute := func() []model.Tag {
		return suggest.Suggest(tags, c.state.Query, c.recent)
	}

	rev, ok := c.catalog.(Revisioner)
	if !ok {
		return compute()
	}
	return c.cache.Get(c.state.Query, rev.Revision(), c.recent.Revision(), compute)
}

// chips lists the selection in display order, skipping stale tag IDs.
func (c *Controller) chips(targets []tristate.Target, counts map[string]int) []Chip {
	var chips []Chip
	for _, id := range tristate.Selected(targets) {
		tag, ok := c.catalog.Tag(id)
		if !ok {
			continue
		}
		chips = append(chips, Chip{
			ID:    tag.ID,
			Label: tag.Name,
			Color: tag.Color,
			State: tristate.StateOf(counts, id, len(targets)),
		})
	}
	return chips
}

// breadcrumb joins the ancestors of a tag path.
func breadcrumb(path []string) string {
	if len(path) <= 1 {
		return ""
	}
	return strings.Join(path[:len(path)-1], "/")
}
