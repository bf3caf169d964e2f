package buffer

import (
	"github.com/kobzarvs/bim/internal/cellbuf"
	"github.com/kobzarvs/bim/internal/history"
)

// InsertCell inserts cell at offset on line lineNo (1-based), spec
// §4.1 insert(line, cell, offset).
func (b *Buffer) InsertCell(lineNo, offset int, cell cellbuf.Cell) {
	l := b.Lines[lineNo-1]
	l.Insert(offset, cell, b.loading)
	b.append(history.Record{Kind: history.Insert, Line: lineNo, Col: offset, Codepoint: cell})
	b.recomputeLine(lineNo)
}

// DeleteCell removes the cell before offset (canonical backspace; spec
// §4.1 delete). No-op if offset is 0.
func (b *Buffer) DeleteCell(lineNo, offset int) {
	if offset <= 0 {
		return
	}
	l := b.Lines[lineNo-1]
	at := offset - 1
	if offset >= l.Len() {
		at = l.Len() - 1
	}
	if at < 0 || at >= l.Len() {
		return
	}
	old := l.Cells[at]
	l.Delete(offset, b.loading)
	// Col records the actual removed cell index (at), not the raw
	// backspace offset, so ApplyRecord's invert can reinsert at the
	// exact position regardless of whether offset landed past len.
	b.append(history.Record{Kind: history.Delete, Line: lineNo, Col: at, OldCodepoint: old})
	b.recomputeLine(lineNo)
}

// ReplaceCell overwrites the cell at offset (spec §4.1 replace).
func (b *Buffer) ReplaceCell(lineNo, offset int, cell cellbuf.Cell) {
	l := b.Lines[lineNo-1]
	old := l.Cells[offset]
	l.Replace(offset, cell, b.loading)
	b.append(history.Record{Kind: history.Replace, Line: lineNo, Col: offset, Codepoint: cell, OldCodepoint: old})
	b.recomputeLine(lineNo)
}

// AddLine inserts a new empty line at 0-based index at (spec §4.1
// add_line).
func (b *Buffer) AddLine(at int) {
	l := cellbuf.NewLine()
	b.Lines = append(b.Lines, nil)
	copy(b.Lines[at+1:], b.Lines[at:])
	b.Lines[at] = l
	b.append(history.Record{Kind: history.AddLine, Line: at + 1})
	if !b.loading && at+1 <= len(b.Lines) {
		b.recomputeLine(at + 1)
	}
}

// RemoveLine removes line at 0-based index at; if it was the only
// line, clears it instead (spec §4.1 remove_line).
func (b *Buffer) RemoveLine(at int) {
	if len(b.Lines) == 1 {
		old := b.Lines[0]
		b.Lines[0] = cellbuf.NewLine()
		b.append(history.Record{Kind: history.ReplaceLine, Line: 1, OldLine: old, NewLine: b.Lines[0]})
		return
	}
	old := b.Lines[at]
	b.Lines = append(b.Lines[:at], b.Lines[at+1:]...)
	b.append(history.Record{Kind: history.RemoveLine, Line: at + 1, OldLine: old})
	if !b.loading && at < len(b.Lines) {
		b.recomputeLine(at + 1)
	}
}

// SplitLine splits line at 0-based index at into at ([0,col)) and at+1
// ([col,len)) (spec §4.1 split_line).
func (b *Buffer) SplitLine(at, col int) {
	l := b.Lines[at]
	tail := l.Split(col)
	b.Lines = append(b.Lines, nil)
	copy(b.Lines[at+2:], b.Lines[at+1:])
	b.Lines[at+1] = tail
	b.append(history.Record{Kind: history.SplitLine, Line: at + 1, Col: col})
	b.recomputeLine(at + 1)
	if !b.loading {
		b.recomputeLine(at + 2)
	}
}

// MergeLines concatenates at-1 <- at-1 ++ at and removes at (0-based;
// spec §4.1 merge_lines).
func (b *Buffer) MergeLines(at int) {
	preLen := b.Lines[at-1].Len()
	b.Lines[at-1].Merge(b.Lines[at])
	b.Lines = append(b.Lines[:at], b.Lines[at+1:]...)
	b.append(history.Record{Kind: history.MergeLines, Line: at + 1, Col: preLen})
	b.recomputeLine(at)
}

// ReplaceLineContents clones other's cells into line at 0-based index
// at (spec §4.1 replace_line).
func (b *Buffer) ReplaceLineContents(at int, other *cellbuf.Line) {
	old := b.Lines[at].Clone()
	b.Lines[at].ReplaceContents(other)
	b.append(history.Record{Kind: history.ReplaceLine, Line: at + 1, OldLine: old, NewLine: other.Clone()})
	b.recomputeLine(at + 1)
}

// Break inserts a transaction boundary unless the head already is one
// (spec §4.2 Append rule).
func (b *Buffer) Break() { b.History.Break() }

// ApplyRecord implements history.Applier, inverting or replaying one
// record directly against the line array with no further history
// recording (spec §4.2 Undo/Redo).
func (b *Buffer) ApplyRecord(rec history.Record, invert bool) {
	switch rec.Kind {
	case history.Insert:
		if invert {
			b.Lines[rec.Line-1].Delete(rec.Col+1, true)
		} else {
			b.Lines[rec.Line-1].Insert(rec.Col, rec.Codepoint, true)
		}
	case history.Delete:
		l := b.Lines[rec.Line-1]
		if invert {
			l.Insert(rec.Col, rec.OldCodepoint, true)
		} else {
			l.Delete(rec.Col+1, true)
		}
	case history.Replace:
		if invert {
			b.Lines[rec.Line-1].Replace(rec.Col, rec.OldCodepoint, true)
		} else {
			b.Lines[rec.Line-1].Replace(rec.Col, rec.Codepoint, true)
		}
	case history.AddLine:
		at := rec.Line - 1
		if invert {
			b.removeAt(at)
		} else {
			b.insertAt(at, cellbuf.NewLine())
		}
	case history.RemoveLine:
		at := rec.Line - 1
		if invert {
			b.insertAt(at, rec.OldLine.Clone())
		} else {
			b.removeAt(at)
		}
	case history.ReplaceLine:
		at := rec.Line - 1
		if invert {
			b.Lines[at].ReplaceContents(rec.OldLine)
		} else {
			b.Lines[at].ReplaceContents(rec.NewLine)
		}
	case history.SplitLine:
		at := rec.Line - 1
		if invert {
			b.Lines[at].Merge(b.Lines[at+1])
			b.removeAt(at + 1)
		} else {
			tail := b.Lines[at].Split(rec.Col)
			b.insertAt(at+1, tail)
		}
	case history.MergeLines:
		at := rec.Line - 1
		if invert {
			tail := b.Lines[at-1].Split(rec.Col)
			b.insertAt(at, tail)
		} else {
			b.Lines[at-1].Merge(b.Lines[at])
			b.removeAt(at)
		}
	}
}

func (b *Buffer) insertAt(at int, l *cellbuf.Line) {
	b.Lines = append(b.Lines, nil)
	copy(b.Lines[at+1:], b.Lines[at:])
	b.Lines[at] = l
}

func (b *Buffer) removeAt(at int) {
	if len(b.Lines) == 1 {
		b.Lines[0] = cellbuf.NewLine()
		return
	}
	b.Lines = append(b.Lines[:at], b.Lines[at+1:]...)
}

// Undo walks backward through the journal inverting records, then
// clamps the cursor and recomputes tabs/syntax for every line under
// the loading flag (spec §4.2 Post-operation).
func (b *Buffer) Undo() history.Stats {
	s := b.History.Undo(b)
	b.postUndoRedo()
	return s
}

// Redo walks forward applying records (spec §4.2).
func (b *Buffer) Redo() history.Stats {
	s := b.History.Redo(b)
	b.postUndoRedo()
	return s
}

func (b *Buffer) postUndoRedo() {
	b.ClampCursor()
	wasLoading := b.loading
	b.loading = true
	for i, l := range b.Lines {
		l.IState = 0
		l.RecomputeTabs(b.Tabstop)
		if b.Syntax != nil {
			b.Engine.Def = b.Syntax
			b.Engine.RecomputeLine(i, l)
		}
	}
	b.loading = wasLoading
}

// ClampCursor enforces spec §3's position invariant for the buffer's
// current mode.
func (b *Buffer) ClampCursor() {
	if b.LineNo < 1 {
		b.LineNo = 1
	}
	if b.LineNo > len(b.Lines) {
		b.LineNo = len(b.Lines)
	}
	l := b.CurrentLine()
	maxCol := l.Len() + 1
	if b.Mode != Insert && b.Mode != Replace {
		maxCol = maxInt(1, l.Len())
	}
	if b.ColNo < 1 {
		b.ColNo = 1
	}
	if b.ColNo > maxCol {
		b.ColNo = maxCol
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
