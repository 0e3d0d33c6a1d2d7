package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/tagbox/internal/combobox"
	"github.com/nikbrunner/tagbox/internal/library"
	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/recency"
	"github.com/nikbrunner/tagbox/internal/search"
	"github.com/nikbrunner/tagbox/internal/tristate"
	"github.com/nikbrunner/tagbox/internal/tui/layout"
)

// RecentTagsPersister stores the recently used tags across sessions.
type RecentTagsPersister interface {
	PersistRecentTags(ids []string)
}

// TagFilterMsg narrows the file list to files carrying a tag.
type TagFilterMsg struct {
	TagID string
	Name  string
}

type yankedMsg struct {
	count int
}

type errMsg struct {
	err error
}

// tagOpener offers the combobox's open-tag capability by filtering the file list.
type tagOpener struct{}

func (tagOpener) OpenTag(tag model.Tag) tea.Cmd {
	return func() tea.Msg {
		return TagFilterMsg{TagID: tag.ID, Name: tag.Name}
	}
}

// App is the main bubbletea model: a file list with the tag panel below it.
type App struct {
	lib     *library.Library
	recent  *recency.Queue
	keys    KeyMap
	styles  Styles
	layout  layout.LayoutConfig
	logger  *slog.Logger
	persist RecentTagsPersister

	mode      Mode
	items     []Item
	cursor    int
	filter    FilterState
	tagFilter *TagFilterMsg
	selection SelectionState

	targets      *targetSet
	tagger       Tagger
	panelVisible bool
	recentRev    uint64

	// For gg command
	lastKeyWasG bool

	status string
	err    error

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Library *library.Library
	Recency *recency.Queue // optional, empty queue if nil

	Panel     PanelHeightPersister // optional
	Recent    RecentTagsPersister  // optional
	PanelRows int                  // optional, uses layout default if zero

	ParentID      *string // parent of created tags, nil = root
	CreateTimeout time.Duration

	Preselect  []string // file IDs selected at startup
	OpenTagger bool     // start with the tag panel focused

	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Logger       *slog.Logger         // optional, uses slog.Default() if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		cfg = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recent := params.Recency
	if recent == nil {
		recent = recency.New(recency.DefaultCapacity)
	}

	targets := &targetSet{}
	lib := params.Library
	ctrl := combobox.NewController(combobox.Params{
		Catalog:       lib,
		Recency:       recent,
		Targets:       func() []tristate.Target { return lib.Targets(targets.get()...) },
		ParentID:      params.ParentID,
		Opener:        tagOpener{},
		CreateTimeout: params.CreateTimeout,
		Logger:        logger,
	})

	app := App{
		lib:       lib,
		recent:    recent,
		keys:      keys,
		styles:    styles,
		layout:    cfg,
		logger:    logger.With("component", "tui"),
		persist:   params.Recent,
		mode:      ModeNormal,
		filter:    NewFilterState(cfg),
		selection: NewSelectionState(),
		targets:   targets,
		tagger: NewTagger(TaggerParams{
			Controller: ctrl,
			Rows:       params.PanelRows,
			Persister:  params.Panel,
			Layout:     cfg,
		}),
		recentRev: recent.Revision(),
		width:     80,
		height:    24,
	}

	for _, id := range params.Preselect {
		if _, ok := lib.File(id); ok {
			app.selection.Add(id)
		}
	}

	app.refreshItems()
	if params.OpenTagger {
		app.openPanel()
	}
	return app
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Items returns the visible file list.
func (a App) Items() []Item {
	return a.items
}

// Selection returns the selected file IDs in selection order.
func (a App) Selection() []string {
	return a.selection.IDs
}

// TargetIDs returns the file IDs the tag panel edits.
func (a App) TargetIDs() []string {
	return a.targets.get()
}

// PanelVisible reports whether the tag panel is shown.
func (a App) PanelVisible() bool {
	return a.panelVisible
}

// Tagger returns the tag panel.
func (a App) Tagger() Tagger {
	return a.tagger
}

// TagFilter returns the tag the list is narrowed to, or "" if none.
func (a App) TagFilter() string {
	if a.tagFilter == nil {
		return ""
	}
	return a.tagFilter.TagID
}

// FilterQuery returns the active file filter.
func (a App) FilterQuery() string {
	return a.filter.Query
}

// Status returns the status line message.
func (a App) Status() string {
	return a.status
}

// Err returns the last error shown in the status line.
func (a App) Err() error {
	return a.err
}

// WithDimensions returns a copy with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// refreshItems rebuilds the visible list from the library, the tag filter
// and the file filter, then re-derives the target set.
func (a *App) refreshItems() {
	var files []model.File
	if a.tagFilter != nil {
		files = a.lib.FilesWithTag(a.tagFilter.TagID)
	} else {
		files = a.lib.Files()
	}
	files = search.FilterFiles(files, a.filter.Query)

	a.items = make([]Item, 0, len(files))
	for _, f := range files {
		item := Item{File: f}
		for _, id := range f.Tags {
			if tag, ok := a.lib.Tag(id); ok {
				item.Tags = append(item.Tags, tag)
			}
		}
		a.items = append(a.items, item)
	}

	if a.cursor >= len(a.items) {
		a.cursor = max(len(a.items)-1, 0)
	}

	a.selection.Retain(func(id string) bool {
		_, ok := a.lib.File(id)
		return ok
	})
	a.syncTargets()
}

// syncTargets points the tag panel at the selection, or at the file under
// the cursor when nothing is selected.
func (a *App) syncTargets() {
	switch {
	case a.selection.HasSelection():
		a.targets.set(a.selection.IDs)
	case a.cursor < len(a.items):
		a.targets.set([]string{a.items[a.cursor].ID()})
	default:
		a.targets.set(nil)
	}
	a.tagger.Refresh()
}

func (a *App) setCursor(idx int) {
	if len(a.items) == 0 {
		a.cursor = 0
		return
	}
	a.cursor = min(max(idx, 0), len(a.items)-1)
	if !a.selection.HasSelection() {
		a.syncTargets()
	}
}

func (a *App) openPanel() tea.Cmd {
	a.panelVisible = true
	a.mode = ModeTag
	a.status = ""
	a.err = nil
	return a.tagger.Focus()
}

func (a *App) hidePanel() {
	a.tagger.Close()
	a.panelVisible = false
	a.mode = ModeNormal
}

// afterTagChange persists what a tag panel command changed.
func (a *App) afterTagChange() {
	if err := a.lib.Flush(); err != nil {
		a.err = fmt.Errorf("save tags: %w", err)
		a.logger.Error("flush failed", "error", err)
	}
	if rev := a.recent.Revision(); rev != a.recentRev {
		a.recentRev = rev
		if a.persist != nil {
			a.persist.PersistRecentTags(a.recent.IDs())
		}
	}
	a.refreshItems()
}

func (a App) targetFiles() []model.File {
	var files []model.File
	for _, id := range a.targets.get() {
		if f, ok := a.lib.File(id); ok {
			files = append(files, f)
		}
	}
	return files
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tagger.Resize(layout.ClampPanelHeight(a.tagger.Rows(), a.height, a.layout.Panel, a.layout.List))
		return a, nil

	case combobox.TagCreatedMsg, combobox.TagCreateFailedMsg:
		var cmd tea.Cmd
		a.tagger, cmd = a.tagger.Update(msg)
		a.afterTagChange()
		return a, cmd

	case TagFilterMsg:
		a.tagFilter = &msg
		a.tagger.Blur()
		a.mode = ModeNormal
		a.cursor = 0
		a.selection.Reset()
		a.refreshItems()
		a.status = "Files tagged " + msg.Name
		return a, nil

	case yankedMsg:
		a.status = fmt.Sprintf("Yanked %d path(s)", msg.count)
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeHelp:
			return a.updateHelp(msg)
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeTag:
			return a.updateTag(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Help, a.keys.Back, a.keys.Quit) {
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.filter.Reset()
		a.mode = ModeNormal
		a.refreshItems()
		return a, nil

	case tea.KeyEnter:
		a.filter.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	a.filter.Query = a.filter.Input.Value()
	a.cursor = 0
	a.refreshItems()
	return a, cmd
}

func (a App) updateTag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	taggerKeys := a.tagger.keys

	switch {
	case key.Matches(msg, taggerKeys.Quit):
		return a, tea.Quit

	case key.Matches(msg, taggerKeys.Leave):
		a.tagger.Blur()
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Back) && !a.tagger.Open():
		a.hidePanel()
		return a, nil
	}

	var cmd tea.Cmd
	a.tagger, cmd = a.tagger.Update(msg)
	a.afterTagChange()
	return a, cmd
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			a.setCursor(0)
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.status = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.setCursor(a.cursor + 1)

	case key.Matches(msg, a.keys.Up):
		a.setCursor(a.cursor - 1)

	case key.Matches(msg, a.keys.Bottom):
		a.setCursor(len(a.items) - 1)

	case key.Matches(msg, a.keys.Select):
		if a.cursor < len(a.items) {
			a.selection.Toggle(a.items[a.cursor].ID())
			a.setCursor(a.cursor + 1)
			a.syncTargets()
		}

	case key.Matches(msg, a.keys.SelectAll):
		a.toggleSelectAll()

	case key.Matches(msg, a.keys.Tag):
		if len(a.targets.get()) == 0 {
			a.status = "No file to tag"
			return a, nil
		}
		return a, a.openPanel()

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filter.Input.SetValue(a.filter.Query)
		return a, a.filter.Input.Focus()

	case key.Matches(msg, a.keys.YankPath):
		return a, a.yankPaths()

	case key.Matches(msg, a.keys.Remove):
		a.removeTargets()

	case key.Matches(msg, a.keys.PanelGrow):
		a.resizePanel(1)

	case key.Matches(msg, a.keys.PanelShrink):
		a.resizePanel(-1)

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Back):
		a.clearOne()
	}

	return a, nil
}

func (a *App) toggleSelectAll() {
	all := len(a.items) > 0
	for _, item := range a.items {
		if !a.selection.IsSelected(item.ID()) {
			all = false
			break
		}
	}

	if all {
		a.selection.Reset()
	} else {
		for _, item := range a.items {
			a.selection.Add(item.ID())
		}
	}
	a.syncTargets()
}

// clearOne undoes the most specific narrowing: text filter, then tag
// filter, then selection, then the panel.
func (a *App) clearOne() {
	switch {
	case a.filter.Query != "":
		a.filter.Reset()
	case a.tagFilter != nil:
		a.tagFilter = nil
	case a.selection.HasSelection():
		a.selection.Reset()
	case a.panelVisible:
		a.hidePanel()
		return
	default:
		return
	}
	a.refreshItems()
}

func (a *App) resizePanel(delta int) {
	if !a.panelVisible {
		return
	}
	rows := layout.ClampPanelHeight(a.tagger.Rows()+delta, a.height, a.layout.Panel, a.layout.List)
	a.tagger.Resize(rows)
}

func (a App) yankPaths() tea.Cmd {
	files := a.targetFiles()
	if len(files) == 0 {
		return nil
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(strings.Join(paths, "\n")); err != nil {
			return errMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return yankedMsg{count: len(paths)}
	}
}

// removeTargets unregisters the target files. Tags stay in the catalog.
func (a *App) removeTargets() {
	ids := a.targets.get()
	removed := 0
	for _, id := range ids {
		if err := a.lib.RemoveFile(id); err != nil {
			a.err = err
			a.logger.Error("remove file failed", "id", id, "error", err)
			continue
		}
		removed++
	}

	a.selection.Reset()
	a.refreshItems()
	if removed > 0 {
		a.status = fmt.Sprintf("Removed %d file(s)", removed)
	}
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
