package modehandler

import (
	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cellbuf"
)

// Paste implements spec §4.7's yank/paste: a whole-lines yank inserts
// complete new lines above (before=true, the `P` key) or below
// (before=false, `p`) the cursor line; a range yank is spliced into
// the current line at the cursor, splitting it around the inserted
// text the way typing would.
func Paste(b *buffer.Buffer, y buffer.Yank, before bool) {
	if len(y.Lines) == 0 {
		return
	}
	if y.WholeLines {
		pasteWholeLines(b, y, before)
		return
	}
	pasteRange(b, y, before)
}

func pasteWholeLines(b *buffer.Buffer, y buffer.Yank, before bool) {
	at := b.LineNo - 1
	if !before {
		at++
	}
	for i, cells := range y.Lines {
		b.AddLine(at + i)
		b.ReplaceLineContents(at+i, cellbuf.NewLineFromCells(cells))
	}
	b.LineNo = at + 1
	b.ColNo = 1
}

func pasteRange(b *buffer.Buffer, y buffer.Yank, before bool) {
	line := b.LineNo
	col := b.ColNo - 1
	if !before && b.Lines[line-1].Len() > 0 {
		col++
	}

	if len(y.Lines) == 1 {
		for i, c := range y.Lines[0] {
			b.InsertCell(line, col+i, c)
		}
		b.ColNo = col + len(y.Lines[0]) + 1
		return
	}

	b.SplitLine(line-1, col)
	for i, c := range y.Lines[0] {
		b.InsertCell(line, col+i, c)
	}
	for i := 1; i < len(y.Lines)-1; i++ {
		b.AddLine(line + i - 1)
		b.ReplaceLineContents(line+i-1, cellbuf.NewLineFromCells(y.Lines[i]))
	}
	tailLineNo := line + len(y.Lines) - 1
	b.AddLine(tailLineNo - 1)
	b.ReplaceLineContents(tailLineNo-1, cellbuf.NewLineFromCells(y.Lines[len(y.Lines)-1]))
	b.MergeLines(tailLineNo)
	b.LineNo = tailLineNo
	b.ColNo = len(y.Lines[len(y.Lines)-1]) + 1
}
