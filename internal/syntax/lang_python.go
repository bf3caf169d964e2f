package syntax

import "github.com/kobzarvs/bim/internal/cellbuf"

const (
	pyStateTripleDouble = 1
	pyStateTripleSingle = 2
)

var pyKeywords = []keywordGroup{
	{flag: cellbuf.FlagKeyword, words: []string{
		"def", "class", "if", "elif", "else", "while", "for", "break", "continue",
		"return", "import", "from", "as", "with", "try", "except", "finally",
		"raise", "pass", "lambda", "yield", "global", "nonlocal", "assert",
		"del", "is", "in", "not", "and", "or", "async", "await",
	}},
	{flag: cellbuf.FlagType, words: []string{
		"int", "float", "str", "bool", "list", "dict", "set", "tuple", "bytes",
		"None", "True", "False",
	}},
}

func pythonDefinition() *Definition {
	return &Definition{
		Name:       "python",
		Extensions: []string{".py", ".pyw"},
		Calculate:  pyCalculate,
	}
}

func pyCalculate(p *Position) int {
	switch p.State {
	case pyStateTripleDouble:
		p.State = Continue
		if s := paintPyTripleDouble(p); s != Clean {
			return s
		}
	case pyStateTripleSingle:
		p.State = Continue
		if s := paintPyTripleSingle(p); s != Clean {
			return s
		}
	}
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		switch {
		case c == '#':
			paint(p, len(p.Line.Cells)-p.I, cellbuf.FlagComment)
			return Clean
		case c == '"':
			if n1, ok1 := charAt(p, 1); ok1 && n1 == '"' {
				if n2, ok2 := charAt(p, 2); ok2 && n2 == '"' {
					paint(p, 3, cellbuf.FlagString)
					if s := paintPyTripleDouble(p); s != Clean {
						return s
					}
					continue
				}
			}
			paintPySingleString(p, '"')
		case c == '\'':
			if n1, ok1 := charAt(p, 1); ok1 && n1 == '\'' {
				if n2, ok2 := charAt(p, 2); ok2 && n2 == '\'' {
					paint(p, 3, cellbuf.FlagString)
					if s := paintPyTripleSingle(p); s != Clean {
						return s
					}
					continue
				}
			}
			paintPySingleString(p, '\'')
		case isDigitRune(c) && !isWordChar(prevOr(p, 0)):
			paintPyNumeral(p)
		default:
			if matchKeywordSet(p, pyKeywords) != cellbuf.FlagNone {
				continue
			}
			p.I++
		}
	}
	return Clean
}

func paintPyTripleDouble(p *Position) int {
	for p.I < len(p.Line.Cells) {
		if c, _ := charAt(p, 0); c == '"' {
			if n1, ok1 := charAt(p, 1); ok1 && n1 == '"' {
				if n2, ok2 := charAt(p, 2); ok2 && n2 == '"' {
					paint(p, 3, cellbuf.FlagString)
					return Clean
				}
			}
		}
		paint(p, 1, cellbuf.FlagString)
	}
	p.State = pyStateTripleDouble
	return pyStateTripleDouble
}

func paintPyTripleSingle(p *Position) int {
	for p.I < len(p.Line.Cells) {
		if c, _ := charAt(p, 0); c == '\'' {
			if n1, ok1 := charAt(p, 1); ok1 && n1 == '\'' {
				if n2, ok2 := charAt(p, 2); ok2 && n2 == '\'' {
					paint(p, 3, cellbuf.FlagString)
					return Clean
				}
			}
		}
		paint(p, 1, cellbuf.FlagString)
	}
	p.State = pyStateTripleSingle
	return pyStateTripleSingle
}

func paintPySingleString(p *Position, quote rune) {
	paint(p, 1, cellbuf.FlagString)
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == '\\' {
			paint(p, 2, cellbuf.FlagEscape)
			continue
		}
		if c == quote {
			paint(p, 1, cellbuf.FlagString)
			return
		}
		paint(p, 1, cellbuf.FlagString)
	}
}

func paintPyNumeral(p *Position) {
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if isDigitRune(c) || c == '.' || c == 'x' || c == 'X' || isHexDigit(c) || c == '_' || c == 'j' {
			paint(p, 1, cellbuf.FlagNumeral)
			continue
		}
		break
	}
}
