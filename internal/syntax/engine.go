// Package syntax implements the line-oriented, restartable syntax
// highlighter (spec §4.3): each Definition's Calculate function is
// called repeatedly over one line's cells and returns the inherited
// state for the line that follows, cascading recomputation forward when
// that state changes.
package syntax

import (
	"path/filepath"
	"strings"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

// Continue/Clean/stateful return values for Calculate, per spec §4.3:
// 0 means "keep scanning this line", -1 means "line ends clean", any
// positive value is the inherited state for the next line.
const (
	Continue = 0
	Clean    = -1
)

// Position is the mutable cursor a Calculate function advances across
// one line.
type Position struct {
	Line   *cellbuf.Line
	LineNo int
	State  int
	I      int
}

// Definition is one closed-set language entry: (name, extensions,
// calculate, prefers_spaces) per spec §4.3.
type Definition struct {
	Name          string
	Extensions    []string
	Calculate     func(p *Position) int
	PrefersSpaces bool
}

// Registry is the flat table of known languages, a sum type over a
// fixed set rather than runtime plugin loading (spec §9).
type Registry struct {
	defs []*Definition
}

// NewRegistry returns the closed set of languages this implementation
// ships, matching the state-base table in spec §9.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(cDefinition("c", []string{".c", ".h", ".cpp", ".cc", ".hpp"}, cKeywords))
	r.Register(cDefinition("java", []string{".java"}, javaKeywords))
	r.Register(pythonDefinition())
	r.Register(rustDefinition())
	r.Register(bashDefinition())
	r.Register(xmlDefinition())
	r.Register(jsonDefinition())
	r.Register(makeDefinition())
	r.Register(diffDefinition())
	r.Register(markdownDefinition(r))
	return r
}

// Register adds a definition to the table.
func (r *Registry) Register(d *Definition) { r.defs = append(r.defs, d) }

// ByName looks up a definition by its exact name, used by the markdown
// trampoline and by :set syntax=NAME.
func (r *Registry) ByName(name string) *Definition {
	for _, d := range r.defs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Match returns the definition whose extension list matches path's
// suffix, or nil if none do.
func (r *Registry) Match(path string) *Definition {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, d := range r.defs {
		for _, e := range d.Extensions {
			if e == ext {
				return d
			}
		}
	}
	return nil
}

// Names lists every registered language name, for :set syntax completion.
func (r *Registry) Names() []string {
	out := make([]string, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Name
	}
	return out
}

// Engine drives recomputation cascades for one buffer's lines against a
// chosen Definition.
type Engine struct {
	Def *Definition
}

// RecomputeLine runs Calculate over one line starting from its inherited
// IState, clearing prior flags first, and returns the terminal state to
// feed the following line.
func (e *Engine) RecomputeLine(lineNo int, l *cellbuf.Line) int {
	for i := range l.Cells {
		l.Cells[i].Flags = cellbuf.FlagNone
	}
	if e.Def == nil || e.Def.Calculate == nil {
		return 0
	}
	p := &Position{Line: l, LineNo: lineNo, State: l.IState, I: 0}
	for p.I < len(l.Cells) {
		result := e.Def.Calculate(p)
		if result != Continue {
			if result == Clean {
				return 0
			}
			return result
		}
	}
	// End of line reached without an explicit terminal value: the
	// lexer's last Calculate call is expected to have set p.State to
	// the carry-over state already (continuation constructs do this
	// when they exhaust the line mid-construct).
	return p.State
}

// Recompute runs RecomputeLine over lines[from:], cascading into
// following lines while their inherited state keeps changing, bounded
// by line count per spec §4.3. onScreen reports whether a line index is
// currently visible, for the "redraw if next is on screen" rule; it may
// be nil to skip the redraw signal (e.g. bulk load).
func (e *Engine) Recompute(lines []*cellbuf.Line, from int, onScreen func(int) bool, redraw func(int)) {
	for i := from; i < len(lines); i++ {
		terminal := e.RecomputeLine(i, lines[i])
		if i+1 >= len(lines) {
			break
		}
		if lines[i+1].IState == terminal {
			break
		}
		lines[i+1].IState = terminal
		if onScreen != nil && onScreen(i+1) && redraw != nil {
			redraw(i + 1)
		}
	}
}
