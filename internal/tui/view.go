package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/tagbox/internal/combobox"
	"github.com/nikbrunner/tagbox/internal/tristate"
	"github.com/nikbrunner/tagbox/internal/tui/layout"
)

// renderView creates the complete view: title, file list, tag panel, status and hints.
func (a App) renderView() string {
	if a.mode == ModeHelp {
		return a.renderHelpOverlay()
	}

	sections := []string{a.renderTitle(), a.renderList()}
	if a.panelVisible {
		sections = append(sections, a.tagger.View(a.styles, a.panelWidth(), a.layout.Text))
	}
	sections = append(sections, a.renderStatusLine(), a.renderHelpBar())

	content := a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) panelWidth() int {
	return layout.CalculateItemWidth(a.width, a.layout.List)
}

// renderTitle renders the app name followed by the active narrowing.
func (a App) renderTitle() string {
	parts := []string{a.styles.Title.Render("tagbox")}

	if a.tagFilter != nil {
		parts = append(parts, a.styles.Tag.Render("#"+a.tagFilter.Name))
	}
	if a.mode == ModeFilter {
		parts = append(parts, a.filter.Input.View())
	} else if a.filter.Query != "" {
		parts = append(parts, a.styles.Path.Render("/"+a.filter.Query))
	}

	count := fmt.Sprintf("%d files", len(a.items))
	if n := a.selection.Count(); n > 0 {
		count = fmt.Sprintf("%d/%d selected", n, len(a.items))
	}
	parts = append(parts, a.styles.Status.Render(count))

	return strings.Join(parts, "  ")
}

// renderList renders the visible window of the file list.
func (a App) renderList() string {
	height := layout.CalculateListHeight(a.height, a.tagger.Rows(), a.panelVisible, a.layout)

	if len(a.items) == 0 {
		msg := "(no files, add some with: tagbox add <path>)"
		if a.filter.Query != "" || a.tagFilter != nil {
			msg = "(no matching files)"
		}
		return lipgloss.NewStyle().Height(height).Render(a.styles.Empty.Render(msg))
	}

	itemWidth := layout.CalculateItemWidth(a.width, a.layout.List)
	offset := layout.CalculateViewportOffset(a.cursor, len(a.items), height)

	var lines []string
	for i := offset; i < len(a.items) && i < offset+height; i++ {
		lines = append(lines, a.renderItem(a.items[i], i == a.cursor, itemWidth))
	}

	return lipgloss.NewStyle().Height(height).Render(strings.Join(lines, "\n"))
}

// renderItem renders a file row: selection marker, name, tags and path.
func (a App) renderItem(item Item, isCursor bool, maxWidth int) string {
	selected := a.selection.IsSelected(item.ID())

	marker := "  "
	if selected {
		marker = "● "
	}

	name, _ := layout.TruncateWithPrefixSuffix(item.Title(), maxWidth/2, marker, "", a.layout.Text)

	if isCursor {
		// Pad to fill width for the cursor highlight
		plain := name + "  " + item.File.Path
		plain = layout.TruncateANSIAware(plain, maxWidth, a.layout.Text)
		if w := layout.VisibleWidth(plain); w < maxWidth {
			plain += strings.Repeat(" ", maxWidth-w)
		}
		return a.styles.ItemActive.Render(plain)
	}

	style := a.styles.Item
	if selected {
		style = a.styles.ItemSelected
	}

	line := style.Render(name)
	for _, tag := range item.Tags {
		line += " " + TagColor(a.styles.Tag, tag.Color).Render("#"+tag.Name)
	}
	line += "  " + a.styles.Path.Render(item.File.Path)

	return layout.TruncateANSIAware(line, maxWidth, a.layout.Text)
}

// renderStatusLine shows the last error, or the last status message.
func (a App) renderStatusLine() string {
	if a.err != nil {
		return a.styles.Error.Render(a.err.Error())
	}
	return a.styles.Status.Render(a.status)
}

// View renders the tag panel: selected chips, the query input and, while
// the combobox is open, the suggestion rows and the create affordance.
func (t Tagger) View(styles Styles, width int, text layout.TextConfig) string {
	frame := t.frame
	inner := max(width-4, 1) // border and padding
	var lines []string

	lines = append(lines, t.renderChips(styles, frame))
	lines = append(lines, t.input.View())

	if frame.Open {
		lines = append(lines, t.renderRows(styles, frame, inner, text)...)
	}

	if frame.Err != nil {
		lines = append(lines, styles.Error.Render(layout.TruncateANSIAware(frame.Err.Error(), inner, text)))
	}

	style := styles.PanelBlurred
	if t.focused {
		style = styles.Panel
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (t Tagger) renderChips(styles Styles, frame combobox.Frame) string {
	if frame.TargetCount == 0 {
		return styles.Empty.Render("no file selected")
	}
	if len(frame.Chips) == 0 {
		return styles.Empty.Render(targetLabel(frame.TargetCount) + ": no tags")
	}

	chips := make([]string, len(frame.Chips))
	for i, c := range frame.Chips {
		if c.State == tristate.Partial {
			chips[i] = TagColor(styles.ChipPartial, c.Color).Render("~" + c.Label)
			continue
		}
		chips[i] = TagColor(styles.Chip, c.Color).Render("#" + c.Label)
	}
	return styles.Status.Render(targetLabel(frame.TargetCount)+":") + " " + strings.Join(chips, " ")
}

func targetLabel(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

// renderRows renders the suggestion window around the active row.
func (t Tagger) renderRows(styles Styles, frame combobox.Frame, width int, text layout.TextConfig) []string {
	ids := frame.RowIDs()
	if len(ids) == 0 {
		return []string{styles.Empty.Render("(no tags)")}
	}

	activeIdx := max(slices.Index(ids, frame.ActiveRowID), 0)
	start, end := layout.CalculateVisibleListItems(t.rows, activeIdx, len(ids))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		active := ids[i] == frame.ActiveRowID
		if ids[i] == combobox.CreateRowID {
			lines = append(lines, renderCreateRow(styles, frame.Create, active, width, text))
			continue
		}
		lines = append(lines, renderRow(styles, frame.Rows[i], active, width, text))
	}
	return lines
}

func renderRow(styles Styles, row combobox.Row, active bool, width int, text layout.TextConfig) string {
	label := stateMarker(row.State) + " " + row.Label
	if row.Breadcrumb != "" {
		label += "  " + row.Breadcrumb
	}
	label, _ = layout.TruncateText(label, width, text)

	if active {
		if w := layout.VisibleWidth(label); w < width {
			label += strings.Repeat(" ", width-w)
		}
		return styles.RowActive.Render(label)
	}

	name := TagColor(styles.Row, row.Color).Render(stateMarker(row.State) + " " + row.Label)
	if row.Breadcrumb == "" {
		return layout.TruncateANSIAware(name, width, text)
	}
	return layout.TruncateANSIAware(name+"  "+styles.Breadcrumb.Render(row.Breadcrumb), width, text)
}

func renderCreateRow(styles Styles, create *combobox.CreateRow, active bool, width int, text layout.TextConfig) string {
	label := fmt.Sprintf("+ Create %q", create.Name)
	if create.Pending {
		label = fmt.Sprintf("  Creating %q...", create.Name)
	}
	label, _ = layout.TruncateText(label, width, text)

	if active {
		return styles.RowActive.Render(label)
	}
	return styles.Create.Render(label)
}

func stateMarker(s tristate.State) string {
	switch s {
	case tristate.All:
		return "[x]"
	case tristate.Partial:
		return "[-]"
	default:
		return "[ ]"
	}
}

// renderHelpBar renders the contextual hints at the bottom.
func (a App) renderHelpBar() string {
	hints := a.renderHints(a.getContextualHints())
	return layout.TruncateANSIAware(hints, layout.CalculateItemWidth(a.width, a.layout.List), a.layout.Text)
}

// renderHelpOverlay renders the full key reference as a modal.
func (a App) renderHelpOverlay() string {
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layout.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	keyCol := lipgloss.NewStyle().Width(a.layout.Modal.HelpKeyColumnWidth)

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys") + "\n")
	for _, section := range a.helpSections() {
		b.WriteString("\n" + a.styles.Status.Render(section.title) + "\n")
		for _, h := range section.hints {
			b.WriteString(keyCol.Render(a.styles.HintKey.Render(h.Key)) + a.styles.HintDesc.Render(h.Desc) + "\n")
		}
	}
	b.WriteString("\n" + a.renderHintsInline([]Hint{{Key: "?/Esc", Desc: "close"}}))

	modal := modalStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}
