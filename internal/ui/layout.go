package ui

// Layout thresholds and fixed rows.
const (
	// LayoutCompactWidth is the threshold below which the panes stack vertically.
	LayoutCompactWidth = 90

	// headerRows is the status line plus the command bar.
	headerRows = 2

	// panelChrome is the border rows/columns a panel adds around its content.
	panelChrome = 2

	minPickerWidth = 28
)

func (m Model) compact() bool {
	return m.width > 0 && m.width < LayoutCompactWidth
}

// pickerWidth is the content width of the file picker pane.
func (m Model) pickerWidth() int {
	if m.compact() {
		return maxInt(m.width-panelChrome-2, 10)
	}
	return maxInt(m.width*2/5-panelChrome-2, minPickerWidth)
}

// detailWidth is the content width of the selection/result pane.
func (m Model) detailWidth() int {
	if m.compact() {
		return maxInt(m.width-panelChrome-2, 10)
	}
	return maxInt(m.width-m.pickerWidth()-2*(panelChrome+2), 10)
}

// bodyHeight is the content height available below the header.
func (m Model) bodyHeight() int {
	h := m.height - headerRows - panelChrome
	if m.compact() {
		h = h / 2
	}
	return maxInt(h, 3)
}
