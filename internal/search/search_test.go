package search

import (
	"testing"

	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cellbuf"
)

func linesFrom(strs ...string) []*cellbuf.Line {
	out := make([]*cellbuf.Line, len(strs))
	for i, s := range strs {
		out[i] = cellbuf.NewLineFromRunes([]rune(s))
	}
	return out
}

func TestSmartCaseDetectsUppercase(t *testing.T) {
	if SmartCase([]rune("needle")) {
		t.Fatalf("expected lowercase needle to be case-insensitive")
	}
	if !SmartCase([]rune("Needle")) {
		t.Fatalf("expected uppercase needle to force case-sensitive")
	}
}

func TestFindForwardWrapsAround(t *testing.T) {
	lines := linesFrom("alpha", "beta", "gamma")
	line, col, found := FindForward(lines, 3, 5, []rune("al"), false)
	if !found || line != 1 || col != 1 {
		t.Fatalf("expected wrap to line 1 col 1, got line=%d col=%d found=%v", line, col, found)
	}
}

func TestFindBackward(t *testing.T) {
	lines := linesFrom("alpha", "beta", "alpha")
	line, _, found := FindBackward(lines, 3, 1, []rune("al"), false)
	if !found || line != 1 {
		t.Fatalf("expected backward wrap to line 1, got line=%d found=%v", line, found)
	}
}

func TestHighlightAllMarksEveryMatch(t *testing.T) {
	lines := linesFrom("foo foo", "bar")
	n := HighlightAll(lines, []rune("foo"), true)
	if n != 2 {
		t.Fatalf("expected 2 matches, got %d", n)
	}
	if !lines[0].Cells[0].Search || !lines[0].Cells[4].Search {
		t.Fatalf("expected both occurrences painted Search")
	}
}

func TestSubstituteGlobalReplacesAllOnLine(t *testing.T) {
	b := buffer.New(4)
	for _, r := range "foo foo foo" {
		b.InsertCell(1, b.CurrentLine().Len(), cellbuf.NewCell(r))
	}
	n := Substitute(b, 1, 1, []rune("foo"), []rune("x"), true, true)
	if n != 3 {
		t.Fatalf("expected 3 replacements, got %d", n)
	}
	got := string(b.Lines[0].Runes())
	if got != "x x x" {
		t.Fatalf("expected 'x x x', got %q", got)
	}
}

func TestSubstituteNonGlobalReplacesFirstOnly(t *testing.T) {
	b := buffer.New(4)
	for _, r := range "foo foo" {
		b.InsertCell(1, b.CurrentLine().Len(), cellbuf.NewCell(r))
	}
	n := Substitute(b, 1, 1, []rune("foo"), []rune("x"), false, true)
	if n != 1 {
		t.Fatalf("expected 1 replacement, got %d", n)
	}
	got := string(b.Lines[0].Runes())
	if got != "x foo" {
		t.Fatalf("expected 'x foo', got %q", got)
	}
}
