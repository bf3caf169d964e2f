package syntax

import "github.com/kobzarvs/bim/internal/cellbuf"

// diffDefinition highlights unified diff output. Stateless: each line
// is classified purely from its own leading character.
func diffDefinition() *Definition {
	return &Definition{
		Name:       "diff",
		Extensions: []string{".diff", ".patch"},
		Calculate:  diffCalculate,
	}
}

func diffCalculate(p *Position) int {
	c, ok := charAt(p, 0)
	if !ok {
		return Clean
	}
	n := len(p.Line.Cells)
	switch {
	case c == '+':
		paint(p, n, cellbuf.FlagDiffPlus)
	case c == '-':
		paint(p, n, cellbuf.FlagDiffMinus)
	case c == '@':
		if n2, ok2 := charAt(p, 1); ok2 && n2 == '@' {
			paint(p, n, cellbuf.FlagType)
			break
		}
		p.I = n
	case matchesPrefix(p, "diff ") || matchesPrefix(p, "index ") ||
		matchesPrefix(p, "--- ") || matchesPrefix(p, "+++ "):
		paint(p, n, cellbuf.FlagPragma)
	default:
		p.I = n
	}
	return Clean
}

func matchesPrefix(p *Position, prefix string) bool {
	for i, r := range prefix {
		c, ok := charAt(p, i)
		if !ok || c != r {
			return false
		}
	}
	return true
}
