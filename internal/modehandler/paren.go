package modehandler

import (
	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cellbuf"
)

var parenPairs = map[rune]rune{
	'(': ')', '[': ']', '{': '}', '<': '>',
}

var parenPairsRev = map[rune]rune{
	')': '(', ']': '[', '}': '{', '>': '<',
}

type parenPos struct {
	line, col int
}

// FindParenMatch implements spec §4.7's paren matching: from the cursor
// cell (or the one immediately before it), scan in the appropriate
// direction counting nested same-syntax-class brackets until the
// partner is found, so a bracket inside a string only matches brackets
// painted with that same string's flag.
func FindParenMatch(b *buffer.Buffer) (parenPos, bool) {
	line := b.LineNo - 1
	col := b.ColNo - 1
	l := b.Lines[line]
	if col >= l.Len() || !isBracket(l.Cells[col].Codepoint) {
		if col > 0 && col-1 < l.Len() && isBracket(l.Cells[col-1].Codepoint) {
			col--
		} else {
			return parenPos{}, false
		}
	}
	c := l.Cells[col]
	class := c.Flags

	if close, ok := parenPairs[c.Codepoint]; ok {
		return scanForward(b, line, col, c.Codepoint, close, class)
	}
	if open, ok := parenPairsRev[c.Codepoint]; ok {
		return scanBackward(b, line, col, open, c.Codepoint, class)
	}
	return parenPos{}, false
}

func isBracket(r rune) bool {
	_, isOpen := parenPairs[r]
	_, isClose := parenPairsRev[r]
	return isOpen || isClose
}

func scanForward(b *buffer.Buffer, line, col int, open, close rune, class cellbuf.Flag) (parenPos, bool) {
	depth := 0
	l := b.Lines[line]
	for i := col; i < l.Len(); i++ {
		c := l.Cells[i]
		if c.Flags != class {
			continue
		}
		switch c.Codepoint {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return parenPos{line: line, col: i}, true
			}
		}
	}
	for ln := line + 1; ln < len(b.Lines); ln++ {
		l = b.Lines[ln]
		for i := 0; i < l.Len(); i++ {
			c := l.Cells[i]
			if c.Flags != class {
				continue
			}
			switch c.Codepoint {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					return parenPos{line: ln, col: i}, true
				}
			}
		}
	}
	return parenPos{}, false
}

func scanBackward(b *buffer.Buffer, line, col int, open, close rune, class cellbuf.Flag) (parenPos, bool) {
	depth := 0
	l := b.Lines[line]
	for i := col; i >= 0; i-- {
		c := l.Cells[i]
		if c.Flags != class {
			continue
		}
		switch c.Codepoint {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return parenPos{line: line, col: i}, true
			}
		}
	}
	for ln := line - 1; ln >= 0; ln-- {
		l = b.Lines[ln]
		for i := l.Len() - 1; i >= 0; i-- {
			c := l.Cells[i]
			if c.Flags != class {
				continue
			}
			switch c.Codepoint {
			case close:
				depth++
			case open:
				depth--
				if depth == 0 {
					return parenPos{line: ln, col: i}, true
				}
			}
		}
	}
	return parenPos{}, false
}

// ClearParenHighlight removes the SELECT flag from a previously
// highlighted paren-match pair.
func ClearParenHighlight(b *buffer.Buffer, a, z parenPos) {
	if a.line < len(b.Lines) && a.col < b.Lines[a.line].Len() {
		b.Lines[a.line].Cells[a.col].Select = false
	}
	if z.line < len(b.Lines) && z.col < b.Lines[z.line].Len() {
		b.Lines[z.line].Cells[z.col].Select = false
	}
}
