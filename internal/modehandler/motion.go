package modehandler

import (
	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/rivo/uniseg"
)

// moveUp and the other move* helpers apply a navigation event's
// direction to b; moveUp, moveDown, moveRight, moveEnd and the page
// moves then clamp per spec §3's position invariant (tighter bound in
// NORMAL than INSERT/REPLACE).
func moveUp(b *buffer.Buffer) {
	if b.LineNo > 1 {
		b.LineNo--
	}
	b.ColNo = b.PreferredCol
	b.ClampCursor()
}

func moveDown(b *buffer.Buffer) {
	if b.LineNo < len(b.Lines) {
		b.LineNo++
	}
	b.ColNo = b.PreferredCol
	b.ClampCursor()
}

func moveLeft(b *buffer.Buffer) {
	if b.ColNo > 1 {
		b.ColNo--
	}
	b.PreferredCol = b.ColNo
}

func moveRight(b *buffer.Buffer) {
	b.ColNo++
	b.ClampCursor()
	b.PreferredCol = b.ColNo
}

func moveHome(b *buffer.Buffer) {
	b.ColNo = 1
	b.PreferredCol = 1
}

func moveEnd(b *buffer.Buffer) {
	b.ColNo = b.CurrentLine().Len() + 1
	b.ClampCursor()
	b.PreferredCol = b.ColNo
}

func movePageUp(b *buffer.Buffer, page int) {
	b.LineNo -= page
	b.ClampCursor()
}

func movePageDown(b *buffer.Buffer, page int) {
	b.LineNo += page
	b.ClampCursor()
}

// clusterBounds returns the rune-index start of every grapheme cluster
// on the line plus a trailing sentinel equal to len(rs), so word-move
// (spec's modifier-5) steps over whole clusters — a combining accent or
// a ZWJ emoji sequence never splits mid-cluster the way plain
// rune-at-a-time scanning would.
func clusterBounds(rs []rune) []int {
	bounds := []int{0}
	g := uniseg.NewGraphemes(string(rs))
	n := 0
	for g.Next() {
		n += len(g.Runes())
		bounds = append(bounds, n)
	}
	return bounds
}

// clusterAt returns the index into bounds of the cluster containing
// rune offset col, or the final (past-the-end) index.
func clusterAt(bounds []int, col int) int {
	for i := 0; i < len(bounds)-1; i++ {
		if col < bounds[i+1] {
			return i
		}
	}
	return len(bounds) - 1
}

func isSpaceCluster(rs []rune, bounds []int, idx int) bool {
	if idx >= len(bounds)-1 {
		return true
	}
	return rs[bounds[idx]] == ' '
}

// wordForward advances to the start of the next word (space-delimited,
// spec's modifier-5 word-move).
func wordForward(b *buffer.Buffer) {
	l := b.CurrentLine()
	rs := l.Runes()
	bounds := clusterBounds(rs)
	last := len(bounds) - 1
	idx := clusterAt(bounds, b.ColNo-1)

	for idx < last && !isSpaceCluster(rs, bounds, idx) {
		idx++
	}
	for idx < last && isSpaceCluster(rs, bounds, idx) {
		idx++
	}
	if idx >= last && b.LineNo < len(b.Lines) {
		b.LineNo++
		b.ColNo = 1
		return
	}
	b.ColNo = bounds[idx] + 1
}

func wordBackward(b *buffer.Buffer) {
	l := b.CurrentLine()
	rs := l.Runes()
	bounds := clusterBounds(rs)
	idx := clusterAt(bounds, b.ColNo-1)
	if idx > 0 {
		idx--
	}
	for idx > 0 && isSpaceCluster(rs, bounds, idx) {
		idx--
	}
	for idx > 0 && !isSpaceCluster(rs, bounds, idx-1) {
		idx--
	}
	b.ColNo = bounds[idx] + 1
}
