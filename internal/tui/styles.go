package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Item         lipgloss.Style
	ItemActive   lipgloss.Style
	ItemSelected lipgloss.Style
	Path         lipgloss.Style
	Tag          lipgloss.Style
	Empty        lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "confirm", "move")
	Panel        lipgloss.Style
	PanelBlurred lipgloss.Style
	Row          lipgloss.Style
	RowActive    lipgloss.Style
	Breadcrumb   lipgloss.Style
	Chip         lipgloss.Style
	ChipPartial  lipgloss.Style
	Create       lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	danger := lipgloss.AdaptiveColor{Light: "#A04040", Dark: "#C07070"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemActive: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(accent),

		Path: lipgloss.NewStyle().
			Foreground(subtle),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(danger),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		PanelBlurred: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Row: lipgloss.NewStyle().
			Foreground(primary),

		RowActive: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Breadcrumb: lipgloss.NewStyle().
			Foreground(subtle),

		Chip: lipgloss.NewStyle().
			Bold(true),

		ChipPartial: lipgloss.NewStyle().
			Italic(true).
			Faint(true),

		Create: lipgloss.NewStyle().
			Foreground(accent),
	}
}

// TagColor styles text in a tag's color, falling back to base for tags without one.
func TagColor(base lipgloss.Style, color string) lipgloss.Style {
	if color == "" {
		return base
	}
	return base.Foreground(lipgloss.Color(color))
}
