package layout

import "testing"

func TestClampPanelHeight(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name           string
		rows           int
		terminalHeight int
		want           int
	}{
		{"default fits", 8, 40, 8},
		{"below min", 1, 40, 3},
		{"above max", 30, 100, 20},
		{"terminal limits rows", 15, 24, 12}, // 24 - 4 - 3 - 5
		{"tiny terminal keeps min", 8, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPanelHeight(tt.rows, tt.terminalHeight, cfg.Panel, cfg.List)
			if got != tt.want {
				t.Errorf("ClampPanelHeight(%d, %d) = %d, want %d", tt.rows, tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculateListHeight(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name           string
		terminalHeight int
		panelRows      int
		panelOpen      bool
		want           int
	}{
		{"panel closed", 24, 8, false, 20},
		{"panel open", 24, 8, true, 7}, // 24 - 4 - 8 - 5
		{"clamps to min", 12, 8, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateListHeight(tt.terminalHeight, tt.panelRows, tt.panelOpen, cfg)
			if got != tt.want {
				t.Errorf("CalculateListHeight(%d, %d, %v) = %d, want %d",
					tt.terminalHeight, tt.panelRows, tt.panelOpen, got, tt.want)
			}
		})
	}
}

func TestCalculateItemWidth(t *testing.T) {
	cfg := DefaultConfig().List

	if got := CalculateItemWidth(80, cfg); got != 76 {
		t.Errorf("CalculateItemWidth(80) = %d, want 76", got)
	}
	if got := CalculateItemWidth(2, cfg); got != 1 {
		t.Errorf("CalculateItemWidth(2) = %d, want 1", got)
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name                    string
		selected, total, height int
		want                    int
	}{
		{"all fit", 3, 5, 10, 0},
		{"top", 0, 50, 10, 0},
		{"centered", 20, 50, 10, 15},
		{"bottom clamps", 49, 50, 10, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.height)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.height, got, tt.want)
			}
		})
	}
}
