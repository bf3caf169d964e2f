package syntax

import (
	"testing"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

func hasFlag(l *cellbuf.Line, flag cellbuf.Flag) bool {
	for _, c := range l.Cells {
		if c.Flags == flag {
			return true
		}
	}
	return false
}

func TestCKeywordsAndNumerals(t *testing.T) {
	reg := NewRegistry()
	def := reg.ByName("c")
	eng := &Engine{Def: def}
	line := cellbuf.NewLineFromRunes([]rune(`int x = 0x1F; // comment`))
	state := eng.RecomputeLine(0, line)
	if state != 0 {
		t.Fatalf("expected clean terminal state, got %d", state)
	}
	if !hasFlag(line, cellbuf.FlagType) {
		t.Errorf("expected 'int' painted FlagType")
	}
	if !hasFlag(line, cellbuf.FlagNumeral) {
		t.Errorf("expected '0x1F' painted FlagNumeral")
	}
	if !hasFlag(line, cellbuf.FlagComment) {
		t.Errorf("expected trailing comment painted FlagComment")
	}
}

func TestCBlockCommentCarriesState(t *testing.T) {
	reg := NewRegistry()
	def := reg.ByName("c")
	eng := &Engine{Def: def}
	l1 := cellbuf.NewLineFromRunes([]rune(`/* start of a comment`))
	state1 := eng.RecomputeLine(0, l1)
	if state1 != cStateComment {
		t.Fatalf("expected continuation state %d, got %d", cStateComment, state1)
	}
	l2 := cellbuf.NewLineFromRunes([]rune(`still inside */ int y;`))
	l2.IState = state1
	state2 := eng.RecomputeLine(1, l2)
	if state2 != 0 {
		t.Fatalf("expected comment to close cleanly, got state %d", state2)
	}
	if !hasFlag(l2, cellbuf.FlagType) {
		t.Errorf("expected 'int' after comment close painted FlagType")
	}
}

func TestJSONStringStateAcrossLines(t *testing.T) {
	reg := NewRegistry()
	def := reg.ByName("json")
	eng := &Engine{Def: def}
	l1 := cellbuf.NewLineFromRunes([]rune(`{"key": "unterminated`))
	state1 := eng.RecomputeLine(0, l1)
	if state1 != jsonStateString {
		t.Fatalf("expected json string continuation, got %d", state1)
	}
	l2 := cellbuf.NewLineFromRunes([]rune(`rest of string", "n": 42}`))
	l2.IState = state1
	state2 := eng.RecomputeLine(1, l2)
	if state2 != 0 {
		t.Fatalf("expected clean terminal state, got %d", state2)
	}
	if !hasFlag(l2, cellbuf.FlagNumeral) {
		t.Errorf("expected '42' painted FlagNumeral")
	}
}

func TestRustNestedBlockComment(t *testing.T) {
	reg := NewRegistry()
	def := reg.ByName("rust")
	eng := &Engine{Def: def}
	l1 := cellbuf.NewLineFromRunes([]rune(`/* outer /* inner`))
	state1 := eng.RecomputeLine(0, l1)
	if state1 != 2 {
		t.Fatalf("expected nesting depth 2, got %d", state1)
	}
	l2 := cellbuf.NewLineFromRunes([]rune(`*/ still in outer`))
	l2.IState = state1
	state2 := eng.RecomputeLine(1, l2)
	if state2 != 1 {
		t.Fatalf("expected nesting depth 1 after one close, got %d", state2)
	}
	l3 := cellbuf.NewLineFromRunes([]rune(`end */ fn main() {}`))
	l3.IState = state2
	state3 := eng.RecomputeLine(2, l3)
	if state3 != 0 {
		t.Fatalf("expected clean terminal state, got %d", state3)
	}
	if !hasFlag(l3, cellbuf.FlagKeyword) {
		t.Errorf("expected 'fn' painted FlagKeyword")
	}
}

func TestDiffPlusMinusLines(t *testing.T) {
	reg := NewRegistry()
	def := reg.ByName("diff")
	eng := &Engine{Def: def}
	plus := cellbuf.NewLineFromRunes([]rune(`+added line`))
	eng.RecomputeLine(0, plus)
	if !hasFlag(plus, cellbuf.FlagDiffPlus) {
		t.Errorf("expected '+' line painted FlagDiffPlus")
	}
	minus := cellbuf.NewLineFromRunes([]rune(`-removed line`))
	eng.RecomputeLine(1, minus)
	if !hasFlag(minus, cellbuf.FlagDiffMinus) {
		t.Errorf("expected '-' line painted FlagDiffMinus")
	}
	hunk := cellbuf.NewLineFromRunes([]rune(`@@ -1,2 +1,3 @@`))
	eng.RecomputeLine(2, hunk)
	if !hasFlag(hunk, cellbuf.FlagType) {
		t.Errorf("expected hunk header painted FlagType")
	}
}

// TestMarkdownEmbedsC is spec.md §8 scenario 4: a fenced C block inside
// markdown highlights as C while fenced, and the fence delimiters
// themselves paint as plain string markers.
func TestMarkdownEmbedsC(t *testing.T) {
	reg := NewRegistry()
	def := reg.ByName("markdown")
	eng := &Engine{Def: def}

	open := cellbuf.NewLineFromRunes([]rune("```c"))
	s0 := eng.RecomputeLine(0, open)
	if !hasFlag(open, cellbuf.FlagString) {
		t.Errorf("expected opening fence painted FlagString")
	}
	if s0 == 0 {
		t.Fatalf("expected nonzero nested state entering the c fence")
	}

	code := cellbuf.NewLineFromRunes([]rune(`int x = 0x1F;`))
	code.IState = s0
	s1 := eng.RecomputeLine(1, code)
	if !hasFlag(code, cellbuf.FlagType) {
		t.Errorf("expected 'int' inside fenced code painted FlagType")
	}
	if !hasFlag(code, cellbuf.FlagNumeral) {
		t.Errorf("expected '0x1F' inside fenced code painted FlagNumeral")
	}
	// still nested in the same fence: the floor-lookup base carries forward.
	if floorBase(s1) != floorBase(s0) {
		t.Fatalf("expected to remain nested in the same fence base, got %d vs %d", s1, s0)
	}

	close := cellbuf.NewLineFromRunes([]rune("```"))
	close.IState = s1
	s2 := eng.RecomputeLine(2, close)
	if !hasFlag(close, cellbuf.FlagString) {
		t.Errorf("expected closing fence painted FlagString")
	}
	if s2 != 0 {
		t.Fatalf("expected clean terminal state after closing fence, got %d", s2)
	}
}

func TestMakeTargetAndVariable(t *testing.T) {
	reg := NewRegistry()
	def := reg.ByName("make")
	eng := &Engine{Def: def}
	line := cellbuf.NewLineFromRunes([]rune(`build: $(SRCS)`))
	eng.RecomputeLine(0, line)
	if !hasFlag(line, cellbuf.FlagKeyword) {
		t.Errorf("expected target name painted FlagKeyword")
	}
	if !hasFlag(line, cellbuf.FlagType) {
		t.Errorf("expected $(SRCS) painted FlagType")
	}
}
