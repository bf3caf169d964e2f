package syntax

import "github.com/kobzarvs/bim/internal/cellbuf"

var bashKeywords = []keywordGroup{
	{flag: cellbuf.FlagKeyword, words: []string{
		"if", "then", "else", "elif", "fi", "for", "while", "do", "done",
		"case", "esac", "function", "return", "break", "continue", "in",
		"local", "export", "readonly", "shift", "exit", "trap",
	}},
}

// bashDefinition encodes quoting context as a base-10 digit-stacked
// state per spec §4.3: each decimal digit of state is one nesting
// level's context (1 single-quote, 2 backtick, 3 $(...), 4 double
// quote), pushed/popped at the low digit so nesting to any depth is
// representable in a plain int.
func bashDefinition() *Definition {
	return &Definition{
		Name:       "bash",
		Extensions: []string{".sh", ".bash", "bashrc", "bash_profile"},
		Calculate:  bashCalculate,
	}
}

const (
	bashCtxSingle = 1
	bashCtxTick   = 2
	bashCtxSubsh  = 3
	bashCtxDouble = 4
)

func bashPush(state, ctx int) int { return state*10 + ctx }
func bashPop(state int) int       { return state / 10 }
func bashTop(state int) int       { return state % 10 }

func bashCalculate(p *Position) int {
	state := p.State
	for p.I < len(p.Line.Cells) {
		top := bashTop(state)
		c, _ := charAt(p, 0)
		switch top {
		case bashCtxSingle:
			state = bashScanUntil(p, '\'', cellbuf.FlagString, state)
		case bashCtxDouble:
			state = bashScanDoubleBody(p, state)
		case bashCtxTick:
			state = bashScanUntil(p, '`', cellbuf.FlagString, state)
		case bashCtxSubsh:
			if c == ')' {
				paint(p, 1, cellbuf.FlagString)
				state = bashPop(state)
				continue
			}
			state = bashScanSubshellBody(p, state)
		default:
			switch {
			case c == '#':
				paint(p, len(p.Line.Cells)-p.I, cellbuf.FlagComment)
				return Clean
			case c == '\'':
				paint(p, 1, cellbuf.FlagString)
				state = bashPush(state, bashCtxSingle)
			case c == '`':
				paint(p, 1, cellbuf.FlagString)
				state = bashPush(state, bashCtxTick)
			case c == '"':
				paint(p, 1, cellbuf.FlagString)
				state = bashPush(state, bashCtxDouble)
			case c == '$':
				if n, ok := charAt(p, 1); ok && n == '(' {
					paint(p, 2, cellbuf.FlagString)
					state = bashPush(state, bashCtxSubsh)
					continue
				}
				bashPaintVariable(p)
			case isDigitRune(c) && !isWordChar(prevOr(p, 0)):
				paintCNumeral(p)
			default:
				if matchKeywordSet(p, bashKeywords) != cellbuf.FlagNone {
					continue
				}
				p.I++
			}
		}
	}
	if state != 0 {
		p.State = state
		return state
	}
	return Clean
}

func bashScanUntil(p *Position, closer rune, flag cellbuf.Flag, state int) int {
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == closer {
			paint(p, 1, flag)
			return bashPop(state)
		}
		paint(p, 1, flag)
	}
	return state
}

func bashScanDoubleBody(p *Position, state int) int {
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == '\\' {
			paint(p, 2, cellbuf.FlagEscape)
			continue
		}
		if c == '"' {
			paint(p, 1, cellbuf.FlagString)
			return bashPop(state)
		}
		if c == '$' {
			bashPaintVariable(p)
			continue
		}
		paint(p, 1, cellbuf.FlagString)
	}
	return state
}

func bashScanSubshellBody(p *Position, state int) int {
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == ')' {
			return state
		}
		paint(p, 1, cellbuf.FlagNone)
	}
	return state
}

func bashPaintVariable(p *Position) {
	paint(p, 1, cellbuf.FlagType)
	if c, ok := charAt(p, 0); ok && c == '{' {
		for p.I < len(p.Line.Cells) {
			c := p.Line.Cells[p.I].Codepoint
			paint(p, 1, cellbuf.FlagType)
			if c == '}' {
				return
			}
		}
		return
	}
	for p.I < len(p.Line.Cells) && isWordChar(p.Line.Cells[p.I].Codepoint) {
		paint(p, 1, cellbuf.FlagType)
	}
}
