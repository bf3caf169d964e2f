package modehandler

import (
	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cellbuf"
)

// leadingWhitespace returns the run of tab/space cells at the start of
// l as runes, for copying onto a newly opened line.
func leadingWhitespace(l *cellbuf.Line) []rune {
	var out []rune
	for _, c := range l.Cells {
		if c.Codepoint == ' ' || c.Codepoint == '\t' {
			out = append(out, c.Codepoint)
			continue
		}
		break
	}
	return out
}

func lastNonWhitespace(l *cellbuf.Line) (rune, bool) {
	for i := l.Len() - 1; i >= 0; i-- {
		c := l.Cells[i].Codepoint
		if c != ' ' && c != '\t' {
			return c, true
		}
	}
	return 0, false
}

// insideBlockComment approximates spec §4.7's "inside a C-style block
// comment" check: the predecessor line's last painted cell carries the
// comment syntax class, meaning the comment is still open at its end.
func insideBlockComment(l *cellbuf.Line) bool {
	if l.Len() == 0 {
		return false
	}
	return l.Cells[l.Len()-1].Flags == cellbuf.FlagComment
}

// AutoIndent computes the leading whitespace for a new line opened
// below predecessor (spec §4.7 Auto-indent): copy the predecessor's
// indent; if it ends (ignoring trailing whitespace) in `{` or `:`, add
// one more indent unit; inside a block comment, continue with " * ".
func AutoIndent(b *buffer.Buffer, predecessor *cellbuf.Line) []rune {
	indent := leadingWhitespace(predecessor)

	if insideBlockComment(predecessor) {
		return append(append([]rune{}, indent...), []rune(" * ")...)
	}

	last, ok := lastNonWhitespace(predecessor)
	if ok && (last == '{' || last == ':') {
		indent = append(indent, indentUnit(b)...)
	}
	return indent
}

func indentUnit(b *buffer.Buffer) []rune {
	if b.UseSpaces {
		out := make([]rune, b.Tabstop)
		for i := range out {
			out[i] = ' '
		}
		return out
	}
	return []rune{'\t'}
}

// ReindentClosingBrace implements spec §4.7's "typing `}` at the start
// of an otherwise-whitespace line re-aligns to its matching `{`": a
// plain bracket-depth scan backward from lineNo for the unmatched `{`
// this about-to-be-typed `}` would close (the line being edited has no
// committed syntax classification yet, so this ignores syntax class,
// unlike FindParenMatch). Returns the matching line's leading
// whitespace, or ok=false if no opener was found.
func ReindentClosingBrace(b *buffer.Buffer, lineNo int) ([]rune, bool) {
	depth := 0
	for ln := lineNo - 2; ln >= 0; ln-- {
		l := b.Lines[ln]
		for i := l.Len() - 1; i >= 0; i-- {
			switch l.Cells[i].Codepoint {
			case '}':
				depth++
			case '{':
				if depth == 0 {
					return leadingWhitespace(l), true
				}
				depth--
			}
		}
	}
	return nil, false
}

// CollapseCommentClose implements "typing `/` right after ` * ` collapses
// to `*/`": reports whether the two cells immediately before col on l
// are `*` and ` `, so the caller can drop that space before inserting
// the `/`.
func CollapseCommentClose(l *cellbuf.Line, col int) bool {
	if col < 2 {
		return false
	}
	return l.Cells[col-2].Codepoint == '*' && l.Cells[col-1].Codepoint == ' '
}
