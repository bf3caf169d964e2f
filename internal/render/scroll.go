package render

import "github.com/kobzarvs/bim/internal/buffer"

// ScrollIntoView adjusts a buffer's vertical and horizontal offsets so
// the cursor stays within a rows x cols pane, mirroring the teacher's
// Editor.Scroll cy/rowOffset clamping and extended with the `padding`
// bimrc setting (spec §6 cursor_padding: keep at least this many lines
// above/below the cursor when the pane is tall enough to allow it).
func ScrollIntoView(b *buffer.Buffer, rows, cols, padding int) {
	if rows <= 0 {
		rows = 1
	}
	top := padding
	bottom := rows - 1 - padding
	if bottom < top {
		top, bottom = 0, rows-1
	}

	line := b.LineNo - 1
	if line < b.Offset+top {
		b.Offset = line - top
	}
	if line > b.Offset+bottom {
		b.Offset = line - bottom
	}
	if b.Offset < 0 {
		b.Offset = 0
	}

	col := VisualColOf(b)
	if col < b.COffset {
		b.COffset = col
	}
	if cols > 0 && col >= b.COffset+cols {
		b.COffset = col - cols + 1
	}
	if b.COffset < 0 {
		b.COffset = 0
	}
}
