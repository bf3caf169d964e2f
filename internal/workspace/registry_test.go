package workspace

import (
	"testing"

	"github.com/kobzarvs/bim/internal/buffer"
)

func TestCloseSelectsPreviousNeighbor(t *testing.T) {
	r := New()
	r.Add(buffer.New(4))
	r.Add(buffer.New(4))
	r.Add(buffer.New(4))
	next, ok := r.Close(1)
	if !ok {
		t.Fatalf("expected registry to remain open")
	}
	if next != 0 {
		t.Fatalf("expected previous index 0, got %d", next)
	}
	if r.Count() != 2 {
		t.Fatalf("expected 2 buffers remaining, got %d", r.Count())
	}
}

func TestCloseLastBufferSignalsExit(t *testing.T) {
	r := New()
	r.Add(buffer.New(4))
	_, ok := r.Close(0)
	if ok {
		t.Fatalf("expected closing the last buffer to signal exit")
	}
}

func TestCloseLastIndexSelectsNewLast(t *testing.T) {
	r := New()
	r.Add(buffer.New(4))
	r.Add(buffer.New(4))
	next, ok := r.Close(1)
	if !ok || next != 0 {
		t.Fatalf("expected next=0 ok=true, got next=%d ok=%v", next, ok)
	}
}

func TestLayoutSplitsByPercent(t *testing.T) {
	r := New()
	r.Add(buffer.New(4))
	r.Add(buffer.New(4))
	r.SplitActive = true
	r.LeftIdx = 0
	r.RightIdx = 1
	r.SplitPercent = 50
	r.Layout(100)
	if r.At(0).Width != 50 {
		t.Fatalf("expected left width 50, got %d", r.At(0).Width)
	}
	if r.At(1).Left != 50 || r.At(1).Width != 50 {
		t.Fatalf("expected right left=50 width=50, got left=%d width=%d", r.At(1).Left, r.At(1).Width)
	}
}
