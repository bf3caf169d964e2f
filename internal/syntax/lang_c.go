package syntax

import "github.com/kobzarvs/bim/internal/cellbuf"

// C-family continuation states: 0 clean, 1 inside a /* */ comment.
const cStateComment = 1

var cKeywords = []keywordGroup{
	{flag: cellbuf.FlagKeyword, words: []string{
		"switch", "if", "while", "for", "break", "continue", "return", "else",
		"struct", "union", "typedef", "static", "enum", "case", "goto", "sizeof",
		"const", "volatile", "extern", "do", "default",
	}},
	{flag: cellbuf.FlagType, words: []string{
		"int", "long", "double", "float", "char", "unsigned", "signed", "void",
		"short", "bool", "size_t",
	}},
	{flag: cellbuf.FlagPragma, words: []string{"#include", "#define", "#ifdef", "#ifndef", "#endif", "#pragma"}},
}

var javaKeywords = []keywordGroup{
	{flag: cellbuf.FlagKeyword, words: []string{
		"switch", "if", "while", "for", "break", "continue", "return", "else",
		"class", "interface", "enum", "case", "new", "extends", "implements",
		"public", "private", "protected", "static", "final", "try", "catch",
		"finally", "throw", "throws", "import", "package", "default", "do",
	}},
	{flag: cellbuf.FlagType, words: []string{
		"int", "long", "double", "float", "char", "boolean", "void", "short",
		"String", "byte",
	}},
}

// cDefinition builds the shared C-family lexer parameterized by a
// keyword table, so C, C++, and Java all share one Calculate (spec
// §4.3's "small vocabulary of primitives shared across all languages").
func cDefinition(name string, exts []string, keywords []keywordGroup) *Definition {
	return &Definition{
		Name:       name,
		Extensions: exts,
		Calculate:  func(p *Position) int { return cCalculate(p, keywords) },
	}
}

func cCalculate(p *Position, keywords []keywordGroup) int {
	if p.State == cStateComment {
		p.State = Continue
		if s := paintCComment(p); s == 1 {
			return 1
		}
	}
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		switch {
		case c == '/' :
			if n, ok := charAt(p, 1); ok && n == '/' {
				paint(p, len(p.Line.Cells)-p.I, cellbuf.FlagComment)
				return Clean
			}
			if n, ok := charAt(p, 1); ok && n == '*' {
				paint(p, 2, cellbuf.FlagComment)
				if paintCComment(p) == 1 {
					return 1
				}
				continue
			}
			p.I++
		case c == '"':
			paintCString(p, '"')
		case c == '\'':
			paintCChar(p)
		case isDigitRune(c) && !isWordChar(prevOr(p, 0)):
			paintCNumeral(p)
		default:
			if matchKeywordSet(p, keywords) != cellbuf.FlagNone {
				continue
			}
			p.I++
		}
	}
	return Clean
}

func prevOr(p *Position, def rune) rune {
	if r, ok := charAt(p, -1); ok {
		return r
	}
	return def
}
