package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Panel PanelConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds file list dimension configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list content.
	// Accounts for: app padding (1) + title (1) + status line (1) + hints (1) = 4
	HeightReduction int

	// MinHeight is the minimum list height.
	MinHeight int

	// ContentPadding is subtracted from terminal width for row rendering.
	ContentPadding int
}

// PanelConfig holds tag panel configuration.
type PanelConfig struct {
	// DefaultHeight is the number of suggestion rows shown.
	DefaultHeight int

	// MinHeight and MaxHeight bound the user-adjustable row count.
	MinHeight int
	MaxHeight int

	// ChromeLines accounts for: borders (2) + chips (1) + input (1) + status (1) = 5
	ChromeLines int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// WidthPercent is the modal width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpKeyColumnWidth: width of the key column in the help overlay.
	HelpKeyColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	QueryCharLimit  int
	FilterCharLimit int

	QueryWidth  int
	FilterWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction: 4, // app padding (1) + title (1) + status line (1) + hints (1)
			MinHeight:       3,
			ContentPadding:  4,
		},
		Panel: PanelConfig{
			DefaultHeight: 8,
			MinHeight:     3,
			MaxHeight:     20,
			ChromeLines:   5, // borders (2) + chips (1) + input (1) + status (1)
		},
		Modal: ModalConfig{
			WidthPercent:       50,
			MinWidth:           40,
			MaxWidth:           90,
			HelpKeyColumnWidth: 14,
		},
		Input: InputConfig{
			QueryCharLimit:  64,
			FilterCharLimit: 50,
			QueryWidth:      40,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
