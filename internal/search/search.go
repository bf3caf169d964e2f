// Package search implements forward/backward needle search with smart
// case, incremental highlight painting, and the `:s///[g][i]`
// substitution command (spec §4.8), generalizing the teacher's linear
// Find/FindCallback scan into a buffer-wide primitive Prompt-independent
// of any particular mode handler.
package search

import (
	"unicode"

	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cellbuf"
)

// SmartCase reports whether needle forces case-sensitive matching: spec
// §4.8 says a needle with no uppercase letter matches case-insensitively,
// any uppercase letter makes it case-sensitive.
func SmartCase(needle []rune) bool {
	for _, r := range needle {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func foldRune(r rune, caseSensitive bool) rune {
	if caseSensitive {
		return r
	}
	return unicode.ToLower(r)
}

// matchAt reports whether needle occurs in rs starting at col.
func matchAt(rs []rune, col int, needle []rune, caseSensitive bool) bool {
	if col < 0 || col+len(needle) > len(rs) {
		return false
	}
	for i, n := range needle {
		if foldRune(rs[col+i], caseSensitive) != foldRune(n, caseSensitive) {
			return false
		}
	}
	return true
}

// FindForward scans from (fromLine, fromCol) forward, wrapping past the
// end back to the start, and returns the first match (spec §4.8). Lines
// and columns are 1-based to match Buffer's cursor convention.
func FindForward(lines []*cellbuf.Line, fromLine, fromCol int, needle []rune, caseSensitive bool) (line, col int, found bool) {
	if len(needle) == 0 || len(lines) == 0 {
		return 0, 0, false
	}
	n := len(lines)
	for i := 0; i <= n; i++ {
		li := (fromLine - 1 + i) % n
		rs := lines[li].Runes()
		start := 0
		if i == 0 {
			start = fromCol
		}
		for c := start; c+len(needle) <= len(rs); c++ {
			if matchAt(rs, c, needle, caseSensitive) {
				return li + 1, c + 1, true
			}
		}
	}
	return 0, 0, false
}

// FindBackward is FindForward's mirror: scans columns descending, lines
// wrapping backward.
func FindBackward(lines []*cellbuf.Line, fromLine, fromCol int, needle []rune, caseSensitive bool) (line, col int, found bool) {
	if len(needle) == 0 || len(lines) == 0 {
		return 0, 0, false
	}
	n := len(lines)
	for i := 0; i <= n; i++ {
		li := ((fromLine-1-i)%n + n) % n
		rs := lines[li].Runes()
		start := len(rs) - len(needle)
		if i == 0 {
			start = fromCol - 2
			if start > len(rs)-len(needle) {
				start = len(rs) - len(needle)
			}
		}
		for c := start; c >= 0; c-- {
			if matchAt(rs, c, needle, caseSensitive) {
				return li + 1, c + 1, true
			}
		}
	}
	return 0, 0, false
}

// HighlightAll paints the Search flag on every occurrence of needle
// across all lines, returning the match count (spec §4.8 incremental
// search: "all occurrences are highlighted").
func HighlightAll(lines []*cellbuf.Line, needle []rune, caseSensitive bool) int {
	count := 0
	if len(needle) == 0 {
		return 0
	}
	for _, l := range lines {
		rs := l.Runes()
		for c := 0; c+len(needle) <= len(rs); c++ {
			if matchAt(rs, c, needle, caseSensitive) {
				for k := c; k < c+len(needle); k++ {
					l.Cells[k].Search = true
				}
				count++
				c += len(needle) - 1
			}
		}
	}
	return count
}

// ClearHighlights removes every Search flag, used when leaving
// incremental search or before repainting a fresh needle.
func ClearHighlights(lines []*cellbuf.Line) {
	for _, l := range lines {
		for i := range l.Cells {
			l.Cells[i].Search = false
		}
	}
}

// Substitute implements `:s/needle/repl/[g][i]` over 1-based inclusive
// line range [fromLine, toLine] (spec §4.8): each match's |needle| cells
// are deleted and |repl| cells inserted in place; with global, scanning
// resumes right after the inserted replacement so growth/shrinkage can
// never loop.
func Substitute(b *buffer.Buffer, fromLine, toLine int, needle, repl []rune, global, caseSensitive bool) int {
	if len(needle) == 0 {
		return 0
	}
	count := 0
	for lineNo := fromLine; lineNo <= toLine && lineNo <= len(b.Lines); lineNo++ {
		rs := b.Lines[lineNo-1].Runes()
		col := 0
		for col+len(needle) <= len(rs) {
			if !matchAt(rs, col, needle, caseSensitive) {
				col++
				continue
			}
			for i := 0; i < len(needle); i++ {
				b.DeleteCell(lineNo, col+1)
			}
			for i, r := range repl {
				b.InsertCell(lineNo, col+i, cellbuf.NewCell(r))
			}
			count++
			rs = b.Lines[lineNo-1].Runes()
			col += len(repl)
			if !global {
				break
			}
		}
	}
	return count
}
