package syntax

import "github.com/kobzarvs/bim/internal/cellbuf"

// XML continuation states: 0 clean, 1 inside a <!-- --> comment, 2
// inside a tag's attribute list, 3 inside a quoted attribute value.
const (
	xmlStateComment = 1
	xmlStateTag     = 2
	xmlStateString  = 3
)

func xmlDefinition() *Definition {
	return &Definition{
		Name:       "xml",
		Extensions: []string{".xml", ".html", ".htm", ".svg", ".xhtml"},
		Calculate:  xmlCalculate,
	}
}

func xmlCalculate(p *Position) int {
	switch p.State {
	case xmlStateComment:
		p.State = Continue
		if s := xmlScanComment(p); s != Clean {
			return s
		}
	case xmlStateTag:
		p.State = Continue
		if s := xmlScanTag(p); s != Clean {
			return s
		}
	case xmlStateString:
		p.State = Continue
		if s := xmlScanString(p, '"'); s != Clean {
			return s
		}
	}
	for p.I < len(p.Line.Cells) {
		c, _ := charAt(p, 0)
		if c == '<' {
			if n1, ok1 := charAt(p, 1); ok1 && n1 == '!' {
				if n2, ok2 := charAt(p, 2); ok2 && n2 == '-' {
					paint(p, 4, cellbuf.FlagComment)
					if s := xmlScanComment(p); s != Clean {
						return s
					}
					continue
				}
			}
			paint(p, 1, cellbuf.FlagPragma)
			if s := xmlScanTag(p); s != Clean {
				return s
			}
			continue
		}
		p.I++
	}
	return Clean
}

func xmlScanComment(p *Position) int {
	for p.I < len(p.Line.Cells) {
		if c, _ := charAt(p, 0); c == '-' {
			if n1, ok1 := charAt(p, 1); ok1 && n1 == '-' {
				if n2, ok2 := charAt(p, 2); ok2 && n2 == '>' {
					paint(p, 3, cellbuf.FlagComment)
					return Clean
				}
			}
		}
		paint(p, 1, cellbuf.FlagComment)
	}
	p.State = xmlStateComment
	return xmlStateComment
}

func xmlScanTag(p *Position) int {
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		switch {
		case c == '>':
			paint(p, 1, cellbuf.FlagPragma)
			return Clean
		case c == '"':
			paint(p, 1, cellbuf.FlagString)
			if s := xmlScanString(p, '"'); s != Clean {
				return s
			}
		case isWordChar(c):
			paint(p, 1, cellbuf.FlagType)
		default:
			p.I++
		}
	}
	p.State = xmlStateTag
	return xmlStateTag
}

func xmlScanString(p *Position, quote rune) int {
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == quote {
			paint(p, 1, cellbuf.FlagString)
			return Clean
		}
		paint(p, 1, cellbuf.FlagString)
	}
	p.State = xmlStateString
	return xmlStateString
}
