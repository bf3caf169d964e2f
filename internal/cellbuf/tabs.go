package cellbuf

// RecomputeTabs refreshes the cached display width of every tab cell on
// the line for the given tabstop. Non-tab cells keep their rune-width
// cache; spec §3 only calls out tabs as needing recomputation when the
// tabstop changes.
func (l *Line) RecomputeTabs(tabstop int) {
	if tabstop < 1 {
		tabstop = 1
	}
	col := 0
	for i := range l.Cells {
		c := &l.Cells[i]
		if c.Codepoint == '\t' {
			w := tabstop - (col % tabstop)
			if w > 15 {
				w = 15
			}
			c.Width = int8(w)
		}
		col += int(c.Width)
	}
}

// VisualCol returns the zero-based display column of cell index col on
// the line (sum of display widths of all cells before it).
func VisualCol(l *Line, col int, tabstop int) int {
	if col > len(l.Cells) {
		col = len(l.Cells)
	}
	v := 0
	for i := 0; i < col; i++ {
		v += int(l.Cells[i].Width)
	}
	return v
}

// VisualWidth returns the total display width of the line.
func (l *Line) VisualWidth() int {
	v := 0
	for _, c := range l.Cells {
		v += int(c.Width)
	}
	return v
}
