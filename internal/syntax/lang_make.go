package syntax

import "github.com/kobzarvs/bim/internal/cellbuf"

// makeDefinition highlights Makefile targets, variables, and $()
// references. Stateless across lines: 0 always.
func makeDefinition() *Definition {
	return &Definition{
		Name:       "make",
		Extensions: []string{".mk", "Makefile", "makefile", "GNUmakefile"},
		Calculate:  makeCalculate,
	}
}

func makeCalculate(p *Position) int {
	lineStart := p.I == 0
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		switch {
		case c == '#':
			paint(p, len(p.Line.Cells)-p.I, cellbuf.FlagComment)
			return Clean
		case c == '$':
			makePaintVariable(p)
		case c == ':' && lineStart:
			paint(p, 1, cellbuf.FlagKeyword)
		case isWordChar(c) && lineStart:
			makePaintTarget(p)
		default:
			p.I++
		}
		lineStart = false
	}
	return Clean
}

func makePaintVariable(p *Position) {
	paint(p, 1, cellbuf.FlagType)
	if c, ok := charAt(p, 0); ok && (c == '(' || c == '{') {
		closer := rune(')')
		if c == '{' {
			closer = '}'
		}
		for p.I < len(p.Line.Cells) {
			c := p.Line.Cells[p.I].Codepoint
			paint(p, 1, cellbuf.FlagType)
			if c == closer {
				return
			}
		}
		return
	}
	if p.I < len(p.Line.Cells) {
		paint(p, 1, cellbuf.FlagType)
	}
}

// makePaintTarget paints a leading word up to the first ':' or ' ' as a
// target name, closing one of make's close-paren/close-brace helpers
// from the original source.
func makePaintTarget(p *Position) {
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == ':' || c == ' ' || c == '\t' {
			return
		}
		paint(p, 1, cellbuf.FlagKeyword)
	}
}
