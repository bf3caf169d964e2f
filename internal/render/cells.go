package render

import (
	"fmt"

	"github.com/kobzarvs/bim/internal/cellbuf"
	"github.com/kobzarvs/bim/internal/termctl"
)

// glyph is one cell's rendered form: the bytes to emit and the number
// of terminal columns it occupies, per spec §4.5's cell rendering
// rules. It generalizes the teacher's row.render expansion (tabs,
// control-sequence markers) to the fuller code-point classification
// spec §4.5 calls for.
type glyph struct {
	text  string
	width int
}

func renderGlyph(c cellbuf.Cell, unicode bool) glyph {
	r := c.Codepoint

	if r == '\t' {
		w := int(c.Width)
		if w < 1 {
			w = 1
		}
		if unicode {
			return glyph{text: "»" + repeat("·", w-1), width: w}
		}
		return glyph{text: ">" + repeat("-", w-1), width: w}
	}

	switch {
	case r < 32:
		return glyph{text: "^" + string(rune(r+64)), width: 2}
	case r == 0x7F:
		return glyph{text: "^?", width: 2}
	case r >= 0x80 && r <= 0x9F:
		return glyph{text: fmt.Sprintf("<%02x>", r), width: 4}
	case r == 0xA0:
		return glyph{text: "_", width: 1}
	}

	w := int(c.Width)
	if w <= 0 && r > 0x9F {
		if r <= 0xFFFF {
			return glyph{text: fmt.Sprintf("[U+%04X]", r), width: 8}
		}
		return glyph{text: fmt.Sprintf("[U+%06X]", r), width: 10}
	}
	if w <= 0 {
		w = 1
	}
	return glyph{text: string(r), width: w}
}

func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// cellPalette resolves the fg/bg pair a single cell paints with, per
// spec §4.5: select/search/notice override syntax class; current line
// uses the alternate background.
func cellPalette(th Theme, c cellbuf.Cell, isCurrentLine bool) (fg, bg termctl.Color) {
	bg = th.Background
	if isCurrentLine {
		bg = th.CurrentBg
	}
	if c.Select {
		return th.Normal, th.SelectBg
	}
	if c.Search || c.Flags == cellbuf.FlagNotice {
		return th.Normal, th.SearchBg
	}
	return syntaxFg(th, c.Flags), bg
}

func syntaxFg(th Theme, f cellbuf.Flag) termctl.Color {
	switch f {
	case cellbuf.FlagKeyword:
		return th.Keyword
	case cellbuf.FlagString:
		return th.String
	case cellbuf.FlagString2:
		return th.String2
	case cellbuf.FlagComment:
		return th.Comment
	case cellbuf.FlagType:
		return th.Type
	case cellbuf.FlagPragma:
		return th.Pragma
	case cellbuf.FlagNumeral:
		return th.Numeral
	case cellbuf.FlagDiffPlus:
		return th.GutterAdded
	case cellbuf.FlagDiffMinus:
		return th.GutterDeleted
	case cellbuf.FlagBold:
		return th.Bold
	case cellbuf.FlagLink:
		return th.Link
	case cellbuf.FlagEscape:
		return th.Escape
	default:
		return th.Normal
	}
}

func gutterBg(th Theme, rs cellbuf.RevStatus) (termctl.Color, bool) {
	switch rs {
	case cellbuf.RevAdded:
		return th.GutterAdded, true
	case cellbuf.RevModifiedUnsaved:
		return th.GutterModUnsaved, true
	case cellbuf.RevModifiedCommitted:
		return th.GutterModSaved, true
	case cellbuf.RevDeletedAbove:
		return th.GutterDeleted, true
	case cellbuf.RevModifiedAndDeletedAbove:
		return th.GutterModAndDel, true
	default:
		return termctl.Color{}, false
	}
}

// gutterWidth is spec §4.5's line-number field width: max(2,
// ceil(log10(lineCount))+1).
func gutterWidth(lineCount int) int {
	digits := 1
	for n := lineCount; n >= 10; n /= 10 {
		digits++
	}
	w := digits + 1
	if w < 2 {
		w = 2
	}
	return w
}
