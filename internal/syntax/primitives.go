package syntax

import (
	"unicode"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func charAt(p *Position, off int) (rune, bool) {
	idx := p.I + off
	if idx < 0 || idx >= len(p.Line.Cells) {
		return 0, false
	}
	return p.Line.Cells[idx].Codepoint, true
}

func paint(p *Position, n int, flag cellbuf.Flag) {
	for i := 0; i < n && p.I < len(p.Line.Cells); i++ {
		p.Line.Cells[p.I].Flags = flag
		p.I++
	}
}

// matchKeyword implements spec §4.3's match_keyword: if the character
// before the current word fails qualifier and the word at p.I fully
// matches an entry in keywords with no qualifier-char following, paint
// it flag and advance past it, returning true.
func matchKeyword(p *Position, keywords []string, flag cellbuf.Flag, qualifier func(rune) bool) bool {
	if qualifier == nil {
		qualifier = isWordChar
	}
	if prev, ok := charAt(p, -1); ok && qualifier(prev) {
		return false
	}
	for _, kw := range keywords {
		n := len(kw)
		if p.I+n > len(p.Line.Cells) {
			continue
		}
		matched := true
		for j := 0; j < n; j++ {
			if p.Line.Cells[p.I+j].Codepoint != rune(kw[j]) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if next, ok := charAt(p, n); ok && qualifier(next) {
			continue
		}
		paint(p, n, flag)
		return true
	}
	return false
}

// matchKeywordSet checks several keyword flag groups in order (e.g. a
// type-keyword list versus a control-keyword list), returning the flag
// actually used, or FlagNone if nothing matched.
func matchKeywordSet(p *Position, groups []keywordGroup) cellbuf.Flag {
	for _, g := range groups {
		if matchKeyword(p, g.words, g.flag, nil) {
			return g.flag
		}
	}
	return cellbuf.FlagNone
}

type keywordGroup struct {
	words []string
	flag  cellbuf.Flag
}

// paintSimpleString paints a single-line quoted string starting at the
// current quote character with no escape handling (spec §4.3).
func paintSimpleString(p *Position, quote rune) {
	paint(p, 1, cellbuf.FlagString)
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == quote {
			paint(p, 1, cellbuf.FlagString)
			return
		}
		paint(p, 1, cellbuf.FlagString)
	}
}

// paintCString paints a double-quoted C-style string honoring \xHH,
// \NNN, \n, \r, \\ and other backslash escapes, painted in FlagEscape.
func paintCString(p *Position, quote rune) {
	paint(p, 1, cellbuf.FlagString)
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == '\\' {
			n := escapeLen(p)
			paint(p, n, cellbuf.FlagEscape)
			continue
		}
		if c == quote {
			paint(p, 1, cellbuf.FlagString)
			return
		}
		paint(p, 1, cellbuf.FlagString)
	}
}

func escapeLen(p *Position) int {
	c, _ := charAt(p, 1)
	switch {
	case c == 'x':
		n := 2
		for i := 0; i < 2; i++ {
			if h, ok := charAt(p, 2+i); ok && isHexDigit(h) {
				n++
			} else {
				break
			}
		}
		return n
	case c >= '0' && c <= '7':
		n := 1
		for i := 0; i < 3; i++ {
			if o, ok := charAt(p, 1+i); ok && o >= '0' && o <= '7' {
				n++
			} else {
				break
			}
		}
		return n
	default:
		return 2
	}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// paintCChar paints a single-quoted character literal, which may itself
// be a multibyte escape.
func paintCChar(p *Position) {
	paint(p, 1, cellbuf.FlagString2)
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == '\\' {
			n := escapeLen(p)
			paint(p, n, cellbuf.FlagEscape)
			continue
		}
		if c == '\'' {
			paint(p, 1, cellbuf.FlagString2)
			return
		}
		paint(p, 1, cellbuf.FlagString2)
	}
}

// paintCComment paints a /*...*/ comment, running until */ or EOL;
// returns 1 (continuation state) if the line ended mid-comment.
func paintCComment(p *Position) int {
	for p.I < len(p.Line.Cells) {
		c, _ := charAt(p, 0)
		if c == '*' {
			if n, ok := charAt(p, 1); ok && n == '/' {
				paint(p, 2, cellbuf.FlagComment)
				return 0
			}
		}
		paint(p, 1, cellbuf.FlagComment)
	}
	return 1
}

// paintCNumeral paints hex 0x…, octal 0…, or decimal numerals with an
// optional '.' and fFuUlL suffix (spec §4.3).
func paintCNumeral(p *Position) {
	start := p.I
	if c, ok := charAt(p, 0); ok && c == '0' {
		if n, ok2 := charAt(p, 1); ok2 && (n == 'x' || n == 'X') {
			paint(p, 2, cellbuf.FlagNumeral)
			for p.I < len(p.Line.Cells) && isHexDigit(p.Line.Cells[p.I].Codepoint) {
				paint(p, 1, cellbuf.FlagNumeral)
			}
			return
		}
	}
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c >= '0' && c <= '9' {
			paint(p, 1, cellbuf.FlagNumeral)
			continue
		}
		if c == '.' {
			paint(p, 1, cellbuf.FlagNumeral)
			continue
		}
		break
	}
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		switch c {
		case 'f', 'F', 'u', 'U', 'l', 'L':
			paint(p, 1, cellbuf.FlagNumeral)
			continue
		}
		break
	}
	if p.I == start {
		paint(p, 1, cellbuf.FlagNumeral)
	}
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }
