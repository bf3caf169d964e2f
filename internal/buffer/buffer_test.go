package buffer

import (
	"testing"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

func lineText(b *Buffer, lineNo int) string {
	return string(b.Lines[lineNo-1].Runes())
}

func TestInsertAndUndoRoundTrip(t *testing.T) {
	b := New(4)
	for _, r := range "hi" {
		b.InsertCell(1, b.CurrentLine().Len(), cellbuf.NewCell(r))
	}
	if got := lineText(b, 1); got != "hi" {
		t.Fatalf("expected %q, got %q", "hi", got)
	}
	b.Break()
	b.Undo()
	if got := lineText(b, 1); got != "" {
		t.Fatalf("expected empty line after undo, got %q", got)
	}
	b.Redo()
	if got := lineText(b, 1); got != "hi" {
		t.Fatalf("expected %q after redo, got %q", "hi", got)
	}
}

func TestSplitAndMergeLines(t *testing.T) {
	b := New(4)
	for _, r := range "abcd" {
		b.InsertCell(1, b.CurrentLine().Len(), cellbuf.NewCell(r))
	}
	b.SplitLine(0, 2)
	if b.LineCount() != 2 {
		t.Fatalf("expected 2 lines after split, got %d", b.LineCount())
	}
	if lineText(b, 1) != "ab" || lineText(b, 2) != "cd" {
		t.Fatalf("unexpected split contents: %q / %q", lineText(b, 1), lineText(b, 2))
	}
	b.MergeLines(1)
	if b.LineCount() != 1 {
		t.Fatalf("expected 1 line after merge, got %d", b.LineCount())
	}
	if lineText(b, 1) != "abcd" {
		t.Fatalf("expected merged %q, got %q", "abcd", lineText(b, 1))
	}
}

func TestModifiedTracksSaveMarker(t *testing.T) {
	b := New(4)
	if b.Modified() {
		t.Fatalf("new buffer should not be modified")
	}
	b.InsertCell(1, 0, cellbuf.NewCell('x'))
	if !b.Modified() {
		t.Fatalf("expected modified after insert")
	}
	b.MarkSaved()
	if b.Modified() {
		t.Fatalf("expected clean after MarkSaved")
	}
}

func TestClampCursorNormalMode(t *testing.T) {
	b := New(4)
	for _, r := range "ab" {
		b.InsertCell(1, b.CurrentLine().Len(), cellbuf.NewCell(r))
	}
	b.Mode = Normal
	b.ColNo = 99
	b.ClampCursor()
	if b.ColNo != 2 {
		t.Fatalf("expected clamp to line length 2 in normal mode, got %d", b.ColNo)
	}
}
