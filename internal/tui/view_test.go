package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/tui/layout"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func plainView(f *fixture) string {
	return layout.StripANSI(f.app.View())
}

func TestView_FileList(t *testing.T) {
	f := newFixture(t)
	out := plainView(f)

	assert.Assert(t, is.Contains(out, "tagbox"))
	assert.Assert(t, is.Contains(out, "3 files"))
	assert.Assert(t, is.Contains(out, "a.jpg"))
	assert.Assert(t, is.Contains(out, "/docs/c.pdf"))
	assert.Assert(t, is.Contains(out, "t:tags"))
}

func TestView_SelectionCount(t *testing.T) {
	f := newFixture(t)
	f.keys(runes(" "))

	assert.Assert(t, is.Contains(plainView(f), "1/3 selected"))
}

func TestView_PanelRowsAndChips(t *testing.T) {
	f := newFixture(t)
	f.keys(runes("t"))
	out := plainView(f)

	assert.Assert(t, is.Contains(out, "1 file: #Travel"))
	assert.Assert(t, is.Contains(out, "[x] Travel"))
	assert.Assert(t, is.Contains(out, "[ ] Japan  Travel"), "breadcrumb follows the label")
	assert.Assert(t, is.Contains(out, "[ ] Work"))
	assert.Assert(t, !strings.Contains(out, "Create"))
}

func TestView_PartialChip(t *testing.T) {
	f := newFixture(t)
	f.keys(runes(" "), runes(" "), runes("t"))
	out := plainView(f)

	assert.Assert(t, is.Contains(out, "2 files: ~Travel"))
	assert.Assert(t, is.Contains(out, "[-] Travel"))
}

func TestView_CreateRow(t *testing.T) {
	f := newFixture(t)
	f.keys(runes("t"), runes("Beach"))

	assert.Assert(t, is.Contains(plainView(f), `+ Create "Beach"`))

	f.keys(keyMsg(tea.KeyEnter))
	assert.Assert(t, is.Contains(plainView(f), `Creating "Beach"...`))
}

func TestView_ClosedPanelHidesRows(t *testing.T) {
	f := newFixture(t)
	f.keys(runes("t"), keyMsg(tea.KeyTab))
	out := plainView(f)

	assert.Assert(t, is.Contains(out, "#Travel"))
	assert.Assert(t, !strings.Contains(out, "[ ] Work"))
}

func TestView_EmptyState(t *testing.T) {
	f := newFixture(t)
	f.keys(runes("/"), runes("zzz"))

	assert.Assert(t, is.Contains(plainView(f), "(no matching files)"))
}

func TestView_HelpOverlay(t *testing.T) {
	f := newFixture(t)
	f.keys(runes("?"))
	out := plainView(f)

	assert.Assert(t, is.Contains(out, "Tag panel"))
	assert.Assert(t, is.Contains(out, "show files with tag"))
	assert.Assert(t, is.Contains(out, "remove last"))
}
