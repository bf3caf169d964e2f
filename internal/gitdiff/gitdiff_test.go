package gitdiff

import (
	"testing"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

func TestParseHunksHeaderOnly(t *testing.T) {
	out := []byte("diff --git a/f b/f\n--- a/f\n+++ b/f\n@@ -3,2 +3,1 @@\n-old line\n-old line 2\n+new line\n")
	hunks := parseHunks(out)
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	h := hunks[0]
	if h.FromLine != 3 || h.FromCount != 2 || h.ToLine != 3 || h.ToCount != 1 {
		t.Fatalf("unexpected hunk %+v", h)
	}
}

func TestParseHunksDefaultsCountToOne(t *testing.T) {
	out := []byte("@@ -5 +5 @@\n")
	hunks := parseHunks(out)
	if len(hunks) != 1 || hunks[0].FromCount != 1 || hunks[0].ToCount != 1 {
		t.Fatalf("expected implicit count 1, got %+v", hunks)
	}
}

func newLines(n int) []*cellbuf.Line {
	lines := make([]*cellbuf.Line, n)
	for i := range lines {
		lines[i] = cellbuf.NewLine()
	}
	return lines
}

func TestAnnotatePureAddition(t *testing.T) {
	lines := newLines(5)
	Annotate(lines, []Hunk{{FromCount: 0, ToLine: 2, ToCount: 2}})
	if lines[1].RevStatus != cellbuf.RevAdded || lines[2].RevStatus != cellbuf.RevAdded {
		t.Fatalf("expected lines 2-3 marked added")
	}
}

func TestAnnotatePureDeletion(t *testing.T) {
	lines := newLines(5)
	Annotate(lines, []Hunk{{FromLine: 2, FromCount: 1, ToLine: 2, ToCount: 0}})
	if lines[2].RevStatus != cellbuf.RevDeletedAbove {
		t.Fatalf("expected line 3 marked deleted-above, got %v", lines[2].RevStatus)
	}
}

func TestAnnotateModificationWithTrailingDeletion(t *testing.T) {
	lines := newLines(5)
	Annotate(lines, []Hunk{{FromLine: 1, FromCount: 3, ToLine: 1, ToCount: 1}})
	if lines[0].RevStatus != cellbuf.RevModifiedCommitted {
		t.Fatalf("expected line 1 modified, got %v", lines[0].RevStatus)
	}
	if lines[1].RevStatus != cellbuf.RevModifiedAndDeletedAbove {
		t.Fatalf("expected line 2 combined modified+deleted, got %v", lines[1].RevStatus)
	}
}
