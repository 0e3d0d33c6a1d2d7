package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/combobox"
	"github.com/nikbrunner/tagbox/internal/keyboard"
	"github.com/nikbrunner/tagbox/internal/tui/layout"
)

// PanelHeightPersister stores the tag panel height across sessions.
type PanelHeightPersister interface {
	PersistPanelHeight(rows int)
}

// Tagger is the tag panel: a text input over the combobox controller,
// with the keyboard router resolving navigation keys.
type Tagger struct {
	ctrl      *combobox.Controller
	router    *keyboard.Router
	input     textinput.Model
	keys      TaggerKeyMap
	rows      int
	persister PanelHeightPersister
	frame     combobox.Frame
	focused   bool
}

// TaggerParams holds parameters for creating a new Tagger.
type TaggerParams struct {
	Controller *combobox.Controller
	Rows       int                  // visible suggestion rows
	Persister  PanelHeightPersister // optional
	Layout     layout.LayoutConfig
	Keys       *TaggerKeyMap     // optional, uses default if nil
	RouterKeys *keyboard.KeyMap // optional, uses default if nil
}

// NewTagger creates an unfocused Tagger.
func NewTagger(params TaggerParams) Tagger {
	keys := DefaultTaggerKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	rows := params.Rows
	if rows <= 0 {
		rows = params.Layout.Panel.DefaultHeight
	}

	input := textinput.New()
	input.Placeholder = "Add tag..."
	input.Prompt = "# "
	input.CharLimit = params.Layout.Input.QueryCharLimit
	input.Width = params.Layout.Input.QueryWidth

	t := Tagger{
		ctrl:      params.Controller,
		router:    keyboard.NewRouter(params.RouterKeys),
		input:     input,
		keys:      keys,
		rows:      rows,
		persister: params.Persister,
	}
	t.refresh()
	return t
}

// Frame returns the last computed frame.
func (t Tagger) Frame() combobox.Frame {
	return t.frame
}

// Focused reports whether the text input has focus.
func (t Tagger) Focused() bool {
	return t.focused
}

// Open reports whether the suggestion list is open.
func (t Tagger) Open() bool {
	return t.ctrl.State().Open
}

// Rows returns the number of visible suggestion rows.
func (t Tagger) Rows() int {
	return t.rows
}

// Query returns the text input value.
func (t Tagger) Query() string {
	return t.input.Value()
}

// Focus gives the text input focus, which opens the suggestion list.
func (t *Tagger) Focus() tea.Cmd {
	t.focused = true
	t.ctrl.Focus()
	t.refresh()
	return t.input.Focus()
}

// Blur moves focus out of the panel.
func (t *Tagger) Blur() {
	t.focused = false
	t.input.Blur()
	t.ctrl.Blur(combobox.FocusTarget{Kind: combobox.FocusElsewhere})
	t.syncInput()
	t.refresh()
}

// Close dismisses the panel.
func (t *Tagger) Close() {
	t.focused = false
	t.input.Blur()
	t.ctrl.Dismiss()
	t.syncInput()
	t.refresh()
}

// Refresh recomputes the frame after the target set changed.
func (t *Tagger) Refresh() {
	t.refresh()
}

// Resize changes the suggestion row count and persists it.
func (t *Tagger) Resize(rows int) {
	if rows == t.rows {
		return
	}
	t.rows = rows
	if t.persister != nil {
		t.persister.PersistPanelHeight(rows)
	}
}

// Update handles key presses while focused and creation results at any time.
func (t Tagger) Update(msg tea.Msg) (Tagger, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case combobox.TagCreatedMsg, combobox.TagCreateFailedMsg:
		cmd = t.ctrl.Update(msg)

	case tea.KeyMsg:
		if !t.focused {
			return t, nil
		}
		cmd = t.handleKey(msg)
	}

	t.syncInput()
	t.refresh()
	return t, cmd
}

func (t *Tagger) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, t.keys.OpenTag) {
		active := t.router.ActiveRowID()
		if !t.frame.CanOpenTag || active == "" || active == combobox.CreateRowID {
			return nil
		}
		return t.ctrl.Execute(combobox.OpenTag{TagID: active})
	}

	// down on a closed list reopens it
	if !t.ctrl.State().Open && key.Matches(msg, t.router.KeyMap().Down) {
		t.ctrl.Focus()
		return nil
	}

	intent := t.router.Route(msg)
	switch intent.Kind {
	case keyboard.IntentMove:
		t.ctrl.SetActiveRow(intent.RowID)

	case keyboard.IntentActivate:
		return t.ctrl.Activate(intent.RowID)

	case keyboard.IntentDismiss:
		t.ctrl.Escape()

	case keyboard.IntentBackspace:
		if t.ctrl.Backspace() {
			return nil
		}
		return t.editInput(msg)

	case keyboard.IntentCaret:
		t.input.SetCursor(t.input.Position() + intent.Delta)

	case keyboard.IntentPass:
		return t.editInput(msg)
	}

	return nil
}

// editInput forwards a key to the text input and reports the new query.
func (t *Tagger) editInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	before := t.input.Value()
	t.input, cmd = t.input.Update(msg)
	if value := t.input.Value(); value != before || !t.ctrl.State().Open {
		t.ctrl.Input(value)
	}
	return cmd
}

// syncInput mirrors query changes made by the controller, e.g. the query
// being cleared after a toggle.
func (t *Tagger) syncInput() {
	if query := t.ctrl.State().Query; query != t.input.Value() {
		t.input.SetValue(query)
	}
}

func (t *Tagger) refresh() {
	t.frame = t.ctrl.Frame()
	t.router.SetRows(t.frame.RowIDs())
	active := t.router.ActiveRowID()
	t.ctrl.SetActiveRow(active)
	t.frame.ActiveRowID = active
}
