package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/combobox"
	"github.com/nikbrunner/tagbox/internal/library"
	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/tristate"
	"github.com/nikbrunner/tagbox/internal/tui/layout"
	"gotest.tools/v3/assert"
)

type recordedHeights []int

func (r *recordedHeights) PersistPanelHeight(rows int) { *r = append(*r, rows) }

func newTestTagger(t *testing.T) (Tagger, *library.Library, *recordedHeights) {
	t.Helper()
	lib := library.New(library.Params{Store: &model.Store{
		Tags: []model.Tag{
			{ID: "red", Name: "Red"},
			{ID: "blue", Name: "Blue"},
		},
		Files: []model.File{{ID: "f1", Path: "/f1", Tags: []string{}}},
	}})
	ctrl := combobox.NewController(combobox.Params{
		Catalog: lib,
		Targets: func() []tristate.Target { return lib.Targets("f1") },
	})
	heights := &recordedHeights{}
	tg := NewTagger(TaggerParams{Controller: ctrl, Persister: heights, Layout: layout.DefaultConfig()})
	return tg, lib, heights
}

func TestTagger_IgnoresKeysWhenUnfocused(t *testing.T) {
	tg, _, _ := newTestTagger(t)

	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("re")})

	assert.Equal(t, tg.Query(), "")
	assert.Assert(t, !tg.Open())
}

func TestTagger_ArrowsMoveActiveRow(t *testing.T) {
	tg, _, _ := newTestTagger(t)
	tg.Focus()
	assert.Equal(t, tg.Frame().ActiveRowID, "red")

	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, tg.Frame().ActiveRowID, "blue")
	assert.Equal(t, tg.ctrl.State().ActiveRowID, "blue")

	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, tg.Frame().ActiveRowID, "blue", "no wrap at the end")
}

func TestTagger_EnterTogglesActiveRow(t *testing.T) {
	tg, lib, _ := newTestTagger(t)
	tg.Focus()

	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyDown})
	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyEnter})

	file, _ := lib.File("f1")
	assert.DeepEqual(t, file.Tags, []string{"blue"})

	rows := tg.Frame().Rows
	assert.Equal(t, rows[0].ID, "blue", "toggled tag moves to the front")
	assert.Equal(t, rows[0].State, tristate.All)
	assert.Equal(t, rows[1].ID, "red")
}

func TestTagger_ShiftArrowsMoveCaret(t *testing.T) {
	tg, _, _ := newTestTagger(t)
	tg.Focus()
	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("blu")})
	assert.Equal(t, tg.input.Position(), 3)

	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	assert.Equal(t, tg.input.Position(), 2)

	// plain left is swallowed
	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tg.input.Position(), 2)

	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	assert.Equal(t, tg.input.Position(), 3)
	assert.Equal(t, tg.Query(), "blu")
}

func TestTagger_OpenTagWithoutOpener(t *testing.T) {
	tg, _, _ := newTestTagger(t)
	tg.Focus()

	_, cmd := tg.Update(tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.Assert(t, cmd == nil)
	assert.Assert(t, !tg.Frame().CanOpenTag)
}

func TestTagger_Resize(t *testing.T) {
	tg, _, heights := newTestTagger(t)
	rows := tg.Rows()

	tg.Resize(rows)
	tg.Resize(rows + 2)

	assert.Equal(t, tg.Rows(), rows+2)
	assert.DeepEqual(t, []int(*heights), []int{rows + 2})
}

func TestTagger_BlurClosesAndClears(t *testing.T) {
	tg, _, _ := newTestTagger(t)
	tg.Focus()
	tg, _ = tg.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("re")})

	tg.Blur()

	assert.Assert(t, !tg.Focused())
	assert.Assert(t, !tg.Open())
	assert.Equal(t, tg.Query(), "")
	assert.Equal(t, tg.ctrl.State().Focus, combobox.FocusElsewhere)
}
