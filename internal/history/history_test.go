package history

import (
	"testing"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

// fakeApplier replays records against a plain []rune line for round-trip
// testing, independent of the full Buffer type.
type fakeApplier struct {
	line []rune
}

func (f *fakeApplier) ApplyRecord(rec Record, invert bool) {
	switch rec.Kind {
	case Insert:
		if !invert {
			f.line = insertAt(f.line, rec.Col, rec.Codepoint.Codepoint)
		} else {
			f.line = deleteAt(f.line, rec.Col)
		}
	case Delete:
		if !invert {
			f.line = deleteAt(f.line, rec.Col-1)
		} else {
			f.line = insertAt(f.line, rec.Col-1, rec.OldCodepoint.Codepoint)
		}
	}
}

func insertAt(s []rune, at int, r rune) []rune {
	out := make([]rune, 0, len(s)+1)
	out = append(out, s[:at]...)
	out = append(out, r)
	out = append(out, s[at:]...)
	return out
}

func deleteAt(s []rune, at int) []rune {
	out := make([]rune, 0, len(s)-1)
	out = append(out, s[:at]...)
	out = append(out, s[at+1:]...)
	return out
}

func TestUndoRedoRoundTrip(t *testing.T) {
	j := New()
	a := &fakeApplier{}

	type step struct {
		col int
		r   rune
	}
	steps := []step{{0, 'h'}, {1, 'e'}, {2, 'l'}, {3, 'l'}, {4, 'o'}}
	for _, st := range steps {
		a.line = insertAt(a.line, st.col, st.r)
		j.Append(Record{Kind: Insert, Col: st.col, Codepoint: cellbuf.NewCell(st.r)})
	}
	j.Break()

	if string(a.line) != "hello" {
		t.Fatalf("setup: got %q", string(a.line))
	}

	j.Undo(a)
	if len(a.line) != 0 {
		t.Fatalf("after undo: expected empty line, got %q", string(a.line))
	}

	j.Redo(a)
	if string(a.line) != "hello" {
		t.Fatalf("after redo: got %q", string(a.line))
	}
}

func TestUndoStopsAtSentinel(t *testing.T) {
	j := New()
	a := &fakeApplier{}
	a.line = insertAt(a.line, 0, 'x')
	j.Append(Record{Kind: Insert, Col: 0, Codepoint: cellbuf.NewCell('x')})

	j.Undo(a)
	if !j.AtSentinel() {
		t.Fatalf("expected journal back at sentinel")
	}
	// Second undo is a no-op.
	j.Undo(a)
	if !j.AtSentinel() {
		t.Fatalf("expected journal to remain at sentinel")
	}
}

func TestMultipleTransactionsUndoOneAtATime(t *testing.T) {
	j := New()
	a := &fakeApplier{}

	a.line = insertAt(a.line, 0, 'a')
	j.Append(Record{Kind: Insert, Col: 0, Codepoint: cellbuf.NewCell('a')})
	j.Break()

	a.line = insertAt(a.line, 1, 'b')
	j.Append(Record{Kind: Insert, Col: 1, Codepoint: cellbuf.NewCell('b')})
	j.Break()

	if string(a.line) != "ab" {
		t.Fatalf("setup: got %q", string(a.line))
	}

	j.Undo(a)
	if string(a.line) != "a" {
		t.Fatalf("after first undo: got %q", string(a.line))
	}
	j.Undo(a)
	if len(a.line) != 0 {
		t.Fatalf("after second undo: got %q", string(a.line))
	}
}

func TestAppendTruncatesRedoChain(t *testing.T) {
	j := New()
	a := &fakeApplier{}

	a.line = insertAt(a.line, 0, 'a')
	j.Append(Record{Kind: Insert, Col: 0, Codepoint: cellbuf.NewCell('a')})
	j.Break()
	a.line = insertAt(a.line, 1, 'b')
	j.Append(Record{Kind: Insert, Col: 1, Codepoint: cellbuf.NewCell('b')})
	j.Break()

	j.Undo(a) // back to "a"
	if string(a.line) != "a" {
		t.Fatalf("got %q", string(a.line))
	}

	// A fresh edit after undo truncates the forward chain: redo must not
	// resurrect the old "b" insert.
	a.line = insertAt(a.line, 1, 'c')
	j.Append(Record{Kind: Insert, Col: 1, Codepoint: cellbuf.NewCell('c')})
	j.Break()

	j.Undo(a)
	j.Redo(a)
	if string(a.line) != "ac" {
		t.Fatalf("expected redo chain truncated to %q, got %q", "ac", string(a.line))
	}
}
