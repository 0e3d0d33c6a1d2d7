package layout

// ClampPanelHeight bounds the tag panel row count to the configured range
// and to what the terminal can show next to a minimal file list.
func ClampPanelHeight(rows, terminalHeight int, panel PanelConfig, list ListConfig) int {
	maxRows := terminalHeight - list.HeightReduction - list.MinHeight - panel.ChromeLines
	if maxRows > panel.MaxHeight {
		maxRows = panel.MaxHeight
	}

	if rows > maxRows {
		rows = maxRows
	}
	if rows < panel.MinHeight {
		rows = panel.MinHeight
	}
	return rows
}

// CalculateListHeight computes the file list height, leaving room for the
// tag panel when it is open. Returns at least MinHeight.
func CalculateListHeight(terminalHeight, panelRows int, panelOpen bool, cfg LayoutConfig) int {
	height := terminalHeight - cfg.List.HeightReduction
	if panelOpen {
		height -= panelRows + cfg.Panel.ChromeLines
	}
	if height < cfg.List.MinHeight {
		return cfg.List.MinHeight
	}
	return height
}

// CalculateItemWidth computes the width available for row content.
func CalculateItemWidth(terminalWidth int, cfg ListConfig) int {
	width := terminalWidth - cfg.ContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
