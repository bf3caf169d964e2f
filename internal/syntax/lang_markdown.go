package syntax

import (
	"strings"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

// markdownBase maps a fenced code block's language tag to its anchor
// in the state-base table: {c:2, py:5, java:8, json:10, xml:11,
// make:16, diff:17, rust:18}. Entering a fence sets state to base;
// each re-entry subtracts base before calling the inner lexer and adds
// it back after (spec §9's nest(lang, base) convention, preserved
// exactly rather than reinterpreted).
var markdownBase = map[string]int{
	"c": 2, "cpp": 2, "h": 2,
	"py": 5, "python": 5,
	"java": 8,
	"json": 10,
	"xml": 11, "html": 11,
	"make": 16, "makefile": 16,
	"diff": 17, "patch": 17,
	"rust": 18, "rs": 18,
}

// markdownLangName maps a fence tag to the registry's lookup name,
// which for a couple of tags differs from the tag itself.
var markdownLangName = map[string]string{
	"c": "c", "cpp": "c", "h": "c",
	"py": "python", "python": "python",
	"java": "java",
	"json": "json",
	"xml": "xml", "html": "xml",
	"make": "make", "makefile": "make",
	"diff": "diff", "patch": "diff",
	"rust": "rust", "rs": "rust",
}

// markdownBases is markdownBase's distinct anchor values in ascending
// order, used to decode an inherited state back to "which language
// band is this" by floor lookup.
var markdownBases = distinctSortedBases(markdownBase)

func distinctSortedBases(m map[string]int) []int {
	seen := map[int]bool{}
	var out []int
	for _, b := range m {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// markdown's own continuation states, below the nested-lexer range:
// 0 clean, 1 inside a fence whose language tag isn't in our closed set.
const markdownStateVerbatim = 1

func markdownDefinition(r *Registry) *Definition {
	return &Definition{
		Name:       "markdown",
		Extensions: []string{".md", ".markdown"},
		Calculate: func(p *Position) int {
			return markdownCalculate(p, r)
		},
	}
}

func markdownCalculate(p *Position, r *Registry) int {
	if base := floorBase(p.State); base > 0 {
		return markdownNest(p, r, base, p.State-base)
	}
	if p.State == markdownStateVerbatim {
		if isFenceDelimiter(p.Line) {
			paint(p, len(p.Line.Cells), cellbuf.FlagString)
			return Clean
		}
		p.I = len(p.Line.Cells)
		return markdownStateVerbatim
	}

	if isFenceDelimiter(p.Line) {
		lang := fenceLanguage(p.Line)
		paint(p, len(p.Line.Cells), cellbuf.FlagString)
		base, ok := markdownBase[lang]
		if !ok {
			return markdownStateVerbatim
		}
		return base
	}

	markdownInline(p)
	return Clean
}

// floorBase returns the greatest table anchor <= state, or 0 if state
// is below every anchor (plain markdown, not nested). Spec §9 mandates
// preserving the state-base table's offsets exactly as given rather
// than reinterpreting the spacing between anchors, so a lexer whose
// own inner state outgrows the gap before the next anchor (only json,
// whose one-slot gap before xml's base 11 can't hold both its clean
// and mid-string states) is a known, accepted edge case — see DESIGN.md.
func floorBase(state int) int {
	best := 0
	for _, b := range markdownBases {
		if b <= state {
			best = b
		}
	}
	return best
}

// markdownNest runs the nested language's Calculate over the remainder
// of this line (the whole line, since a fenced line is either entirely
// code or entirely the closing delimiter), re-encoding its returned
// state back into markdown's combined state space by adding base back
// (spec §9 nest(lang, base)).
func markdownNest(p *Position, r *Registry, base, inner int) int {
	if isFenceDelimiter(p.Line) {
		paint(p, len(p.Line.Cells), cellbuf.FlagString)
		return Clean
	}
	name := baseToName(base)
	def := r.ByName(name)
	if def == nil {
		p.I = len(p.Line.Cells)
		return base
	}
	inner2 := &Position{Line: p.Line, LineNo: p.LineNo, State: inner, I: p.I}
	for inner2.I < len(inner2.Line.Cells) {
		result := def.Calculate(inner2)
		if result != Continue {
			p.I = inner2.I
			if result == Clean {
				return base
			}
			return base + result
		}
	}
	p.I = inner2.I
	return base + inner2.State
}

func baseToName(base int) string {
	for tag, b := range markdownBase {
		if b == base {
			if name, ok := markdownLangName[tag]; ok {
				return name
			}
			return tag
		}
	}
	return ""
}

func isFenceDelimiter(l *cellbuf.Line) bool {
	rs := l.Runes()
	s := strings.TrimSpace(string(rs))
	return strings.HasPrefix(s, "```")
}

func fenceLanguage(l *cellbuf.Line) string {
	rs := l.Runes()
	s := strings.TrimSpace(string(rs))
	s = strings.TrimPrefix(s, "```")
	return strings.ToLower(strings.TrimSpace(s))
}

// markdownInline paints headings, inline code spans, and emphasis on a
// plain (non-fenced) markdown line.
func markdownInline(p *Position) {
	if c, ok := charAt(p, 0); ok && c == '#' {
		paint(p, len(p.Line.Cells), cellbuf.FlagKeyword)
		return
	}
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		switch c {
		case '`':
			markdownInlineCode(p)
		case '*', '_':
			markdownEmphasis(p, c)
		case '[':
			paint(p, 1, cellbuf.FlagLink)
		default:
			p.I++
		}
	}
}

func markdownInlineCode(p *Position) {
	paint(p, 1, cellbuf.FlagString2)
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == '`' {
			paint(p, 1, cellbuf.FlagString2)
			return
		}
		paint(p, 1, cellbuf.FlagString2)
	}
}

func markdownEmphasis(p *Position, marker rune) {
	n := 1
	if c, ok := charAt(p, 1); ok && c == marker {
		n = 2
	}
	paint(p, n, cellbuf.FlagBold)
	for p.I < len(p.Line.Cells) {
		c := p.Line.Cells[p.I].Codepoint
		if c == marker {
			if n == 2 {
				if c2, ok := charAt(p, 1); ok && c2 == marker {
					paint(p, 2, cellbuf.FlagBold)
					return
				}
				p.I++
				continue
			}
			paint(p, 1, cellbuf.FlagBold)
			return
		}
		p.I++
	}
}
