package syntax

import "github.com/kobzarvs/bim/internal/cellbuf"

// JSON continuation state: 0 clean, 1 inside a double-quoted string.
const jsonStateString = 1

func jsonDefinition() *Definition {
	return &Definition{
		Name:       "json",
		Extensions: []string{".json"},
		Calculate:  jsonCalculate,
	}
}

func jsonCalculate(p *Position) int {
	if p.State == jsonStateString {
		p.State = Continue
		if s := jsonScanString(p); s != Clean {
			return s
		}
	}
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		switch {
		case c == '"':
			paint(p, 1, cellbuf.FlagString)
			if s := jsonScanString(p); s != Clean {
				return s
			}
		case isDigitRune(c) || (c == '-' && isDigitFollows(p)):
			paintCNumeral(p)
		case c == 't' || c == 'f' || c == 'n':
			if !matchKeyword(p, []string{"true", "false", "null"}, cellbuf.FlagType, isWordChar) {
				p.I++
			}
		default:
			p.I++
		}
	}
	return Clean
}

func isDigitFollows(p *Position) bool {
	n, ok := charAt(p, 1)
	return ok && isDigitRune(n)
}

func jsonScanString(p *Position) int {
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == '\\' {
			paint(p, 2, cellbuf.FlagEscape)
			continue
		}
		if c == '"' {
			paint(p, 1, cellbuf.FlagString)
			return Clean
		}
		paint(p, 1, cellbuf.FlagString)
	}
	p.State = jsonStateString
	return jsonStateString
}
