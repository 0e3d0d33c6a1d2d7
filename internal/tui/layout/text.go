package layout

import "github.com/charmbracelet/x/ansi"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleWidth returns the display width of a string in terminal cells,
// ignoring ANSI codes.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}

	// Not enough room for any text + ellipsis
	if maxWidth <= ansi.StringWidth(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}

	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("Development", 12, "# ", "/", cfg) -> "# Develo.../"
// Returns the truncated text and whether truncation occurred.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	if ansi.StringWidth(combined) <= maxWidth {
		return combined, false
	}

	overhead := ansi.StringWidth(prefix) + ansi.StringWidth(suffix) + ansi.StringWidth(cfg.Ellipsis)
	if overhead >= maxWidth {
		return TruncateText(combined, maxWidth, cfg)
	}

	available := maxWidth - overhead
	return prefix + ansi.Truncate(text, available, "") + cfg.Ellipsis + suffix, true
}

// TruncateANSIAware truncates styled text, preserving ANSI codes.
// A reset code is appended after truncation to prevent style bleed.
func TruncateANSIAware(styledText string, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(styledText) <= maxWidth {
		return styledText
	}
	return ansi.Truncate(styledText, maxWidth, cfg.Ellipsis) + "\x1b[0m"
}
