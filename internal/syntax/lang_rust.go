package syntax

import "github.com/kobzarvs/bim/internal/cellbuf"

var rustKeywords = []keywordGroup{
	{flag: cellbuf.FlagKeyword, words: []string{
		"fn", "let", "mut", "if", "else", "match", "loop", "while", "for",
		"break", "continue", "return", "struct", "enum", "impl", "trait",
		"pub", "use", "mod", "crate", "self", "Self", "super", "as", "move",
		"ref", "where", "dyn", "async", "await", "unsafe", "const", "static",
	}},
	{flag: cellbuf.FlagType, words: []string{
		"i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64",
		"u128", "usize", "f32", "f64", "bool", "char", "str", "String", "Vec",
		"Option", "Result", "Box",
	}},
}

// rustDefinition uses nesting-depth semantics for block comments per
// spec §4.3: state is the current /* */ nesting depth, 0 meaning clean.
func rustDefinition() *Definition {
	return &Definition{
		Name:       "rust",
		Extensions: []string{".rs"},
		Calculate:  rustCalculate,
	}
}

func rustCalculate(p *Position) int {
	depth := p.State
	if depth > 0 {
		depth = rustScanComment(p, depth)
		if depth > 0 {
			return depth
		}
	}
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		switch {
		case c == '/':
			if n, ok := charAt(p, 1); ok && n == '/' {
				paint(p, len(p.Line.Cells)-p.I, cellbuf.FlagComment)
				return Clean
			}
			if n, ok := charAt(p, 1); ok && n == '*' {
				paint(p, 2, cellbuf.FlagComment)
				depth = rustScanComment(p, 1)
				if depth > 0 {
					return depth
				}
				continue
			}
			p.I++
		case c == '"':
			paintCString(p, '"')
		case c == '\'':
			// Could be a char literal or a lifetime; treat as a char
			// literal only if it closes within a couple of cells.
			if looksLikeCharLiteral(p) {
				paintCChar(p)
			} else {
				p.I++
			}
		case isDigitRune(c) && !isWordChar(prevOr(p, 0)):
			paintCNumeral(p)
		default:
			if matchKeywordSet(p, rustKeywords) != cellbuf.FlagNone {
				continue
			}
			p.I++
		}
	}
	return Clean
}

func looksLikeCharLiteral(p *Position) bool {
	for off := 1; off <= 4; off++ {
		c, ok := charAt(p, off)
		if !ok {
			return false
		}
		if c == '\'' {
			return off <= 4
		}
		if off > 1 && c != '\\' && !isHexDigit(c) {
			return false
		}
	}
	return false
}

// rustScanComment consumes a /* */ region honoring nesting, returning
// the depth remaining at EOL (0 if the comment closed).
func rustScanComment(p *Position, depth int) int {
	for p.I < len(p.Line.Cells) {
		c, _ := charAt(p, 0)
		if c == '/' {
			if n, ok := charAt(p, 1); ok && n == '*' {
				paint(p, 2, cellbuf.FlagComment)
				depth++
				continue
			}
		}
		if c == '*' {
			if n, ok := charAt(p, 1); ok && n == '/' {
				paint(p, 2, cellbuf.FlagComment)
				depth--
				if depth == 0 {
					return 0
				}
				continue
			}
		}
		paint(p, 1, cellbuf.FlagComment)
	}
	p.State = depth
	return depth
}
