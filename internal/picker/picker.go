package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/tagbox/internal/model"
	"github.com/nikbrunner/tagbox/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Underline(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Picker selects one or more files from search results.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	marked    map[int]bool
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		marked:  make(map[int]bool),
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			p.selected = true
			return p, tea.Quit

		case tea.KeyDown:
			p.moveDown()
			return p, nil

		case tea.KeyUp:
			p.moveUp()
			return p, nil

		case tea.KeySpace:
			p.toggleMark()
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.moveDown()
			case "k":
				p.moveUp()
			case " ":
				p.toggleMark()
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) moveDown() {
	if p.cursor < len(p.results)-1 {
		p.cursor++
	}
}

func (p *Picker) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Picker) toggleMark() {
	if len(p.results) == 0 {
		return
	}
	if p.marked[p.cursor] {
		delete(p.marked, p.cursor)
	} else {
		p.marked[p.cursor] = true
	}
	p.moveDown()
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Find: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	for i, result := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}
		mark := "[ ]"
		if p.marked[i] {
			mark = "[x]"
		}

		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, style.Render(result.File.Name))
		fmt.Fprintf(&b, "      %s\n", highlight(result.File.Path, result.MatchedIndexes))
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("j/k: move  space: mark  Enter: tag  q/Esc: cancel"))

	return b.String()
}

// highlight renders path with the fuzzy-matched bytes emphasized.
func highlight(path string, matched []int) string {
	if len(matched) == 0 {
		return pathStyle.Render(path)
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range path {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(pathStyle.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedFiles returns the marked files, or the file under the cursor when
// nothing is marked. Returns nil if cancelled.
func (p Picker) SelectedFiles() []model.File {
	if p.cancelled || !p.selected || len(p.results) == 0 {
		return nil
	}

	var files []model.File
	for i, r := range p.results {
		if p.marked[i] {
			files = append(files, r.File)
		}
	}
	if len(files) == 0 {
		files = append(files, p.results[p.cursor].File)
	}
	return files
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
