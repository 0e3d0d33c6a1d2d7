package layout

import (
	"strings"
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
		{"truecolor", "\x1b[38;2;255;0;0mred\x1b[0m", "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI bold", "\x1b[1mhello\x1b[0m", 5},
		{"wide characters", "こんにちは", 10},
		{"empty", "", 0},
		{"only ANSI", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleWidth(tt.input)
			if got != tt.want {
				t.Errorf("VisibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 2", "hello", 2, "..", true},
		{"max is 0", "hello", 0, "", true},
		{"empty string", "", 10, "", false},
		{"wide text fits", "こんにちは", 10, "こんにちは", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithPrefixSuffix(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		prefix    string
		suffix    string
		want      string
		truncated bool
	}{
		{"no truncation", "Dev", 10, "# ", "/", "# Dev/", false},
		{"with truncation", "Development", 12, "# ", "/", "# Develo.../", true}, // 2+6+3+1=12
		{"just fits", "Dev", 6, "# ", "/", "# Dev/", false},
		{"no prefix/suffix", "Development", 8, "", "", "Devel...", true},
		{"empty text", "", 10, "# ", "/", "# /", false},
		{"needs truncation tight", "abc", 4, "# ", "/", "#...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateWithPrefixSuffix(tt.text, tt.maxWidth, tt.prefix, tt.suffix, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateWithPrefixSuffix(%q, %d, %q, %q) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, tt.prefix, tt.suffix, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateANSIAware(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		input    string
		maxWidth int
	}{
		{"no truncation plain", "hello", 10},
		{"no truncation styled", "\x1b[1mhello\x1b[0m", 10},
		{"truncation plain", "hello world", 8},
		{"truncation styled", "\x1b[1mhello world\x1b[0m", 8},
		{"partial style", "he\x1b[1mllo wor\x1b[0mld", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateANSIAware(tt.input, tt.maxWidth, cfg)

			if w := VisibleWidth(got); w > tt.maxWidth {
				t.Errorf("visible width = %d, want <= %d (got: %q)", w, tt.maxWidth, got)
			}

			if VisibleWidth(tt.input) > tt.maxWidth && !strings.HasSuffix(got, "\x1b[0m") {
				t.Errorf("should end with reset code when truncating, got: %q", got)
			}
		})
	}
}

func TestTruncateANSIAware_EdgeCases(t *testing.T) {
	cfg := DefaultConfig().Text

	for _, width := range []int{0, -1} {
		if got := TruncateANSIAware("hello", width, cfg); got != "" {
			t.Errorf("TruncateANSIAware(width=%d) = %q, want empty", width, got)
		}
	}
	if got := TruncateANSIAware("", 10, cfg); got != "" {
		t.Errorf("expected empty output for empty input, got %q", got)
	}
}
