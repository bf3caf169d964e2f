package render

import (
	"fmt"
	"io"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

// Dump renders lines to w non-interactively, one per output line, the
// way the `-c`/`-C` flags print a syntax-highlighted file to stdout
// instead of opening the full-screen editor (spec §6). withNumbers
// selects `-C`'s line-number gutter over `-c`'s bare text.
func (r *Renderer) Dump(w io.Writer, lines []*cellbuf.Line, withNumbers bool) {
	gw := gutterWidth(len(lines))
	for i, l := range lines {
		if withNumbers {
			fmt.Fprintf(w, "%*d ", gw, i+1)
		}
		for _, c := range l.Cells {
			g := renderGlyph(c, r.Caps.Unicode)
			fg, bg := cellPalette(r.Theme, c, false)
			fmt.Fprintf(w, "\x1b[%sm%s", sgr(fg, bg), g.text)
		}
		io.WriteString(w, escReset)
		io.WriteString(w, "\n")
	}
}
