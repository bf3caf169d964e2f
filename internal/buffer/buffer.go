// Package buffer implements the editor's buffer: a resizable sequence
// of lines plus cursor state, an owned history journal, and the
// mutation wrappers that tie cellbuf, history, and syntax together
// (spec §3, §4.4).
package buffer

import (
	"github.com/kobzarvs/bim/internal/cellbuf"
	"github.com/kobzarvs/bim/internal/history"
	"github.com/kobzarvs/bim/internal/syntax"
)

type Mode int

const (
	Normal Mode = iota
	Insert
	Replace
	LineSelection
	CharSelection
	ColSelection
	ColInsert
)

// Yank is the process-global paste register's payload (spec §3's
// line-yank vs range-yank distinction).
type Yank struct {
	Lines      [][]cellbuf.Cell
	WholeLines bool
}

// Buffer owns its lines, history journal, and search term exclusively
// (spec §3 Ownership).
type Buffer struct {
	Lines []*cellbuf.Line

	LineNo, ColNo   int
	PreferredCol    int
	Offset, COffset int
	Left, Width     int

	Mode Mode

	Tabstop    int
	UseSpaces  bool
	AutoIndent bool
	ReadOnly   bool

	FileName string
	loading  bool

	SelStartLine, SelCol int

	Needle []rune

	Syntax *syntax.Definition
	Engine syntax.Engine

	History        *history.Journal
	LastSaveHeadAt int

	// savedCursor holds the pre-search cursor so ESC during incremental
	// search (spec §4.8) can restore it.
	savedLineNo, savedColNo int

	// OnScreen/Redraw let the renderer hook the syntax cascade's "redraw
	// if next is visible" rule (spec §4.3) without the buffer knowing
	// about viewports. Both may be nil (e.g. headless use, bulk load).
	OnScreen func(lineIdx int) bool
	Redraw   func(lineIdx int)
}

// New returns a one-empty-line buffer, matching the "line count >= 1"
// invariant (spec §3).
func New(tabstop int) *Buffer {
	b := &Buffer{
		Lines:   []*cellbuf.Line{cellbuf.NewLine()},
		LineNo:  1,
		ColNo:   1,
		Tabstop: tabstop,
	}
	b.History = history.New()
	return b
}

func (b *Buffer) LineCount() int { return len(b.Lines) }

func (b *Buffer) CurrentLine() *cellbuf.Line { return b.Lines[b.LineNo-1] }

// Modified reports whether the journal's head has moved past the
// position it was at when the buffer was last saved (spec §3:
// `modified ⇔ history ≠ last_save_history`).
func (b *Buffer) Modified() bool { return b.History.Head() != b.LastSaveHeadAt }

func (b *Buffer) MarkSaved() { b.LastSaveHeadAt = b.History.Head() }

// SetLoading toggles the bulk-load flag that suppresses history
// records and syntax cascades so a file load stays linear (spec §5).
func (b *Buffer) SetLoading(v bool) { b.loading = v }

func (b *Buffer) Loading() bool { return b.loading }

// recomputeLine recomputes tabs/syntax on the affected line (spec §3
// invariant), skipped while loading. History records are appended
// separately by append.
func (b *Buffer) recomputeLine(lineNo int) {
	if b.loading {
		return
	}
	l := b.Lines[lineNo-1]
	l.RecomputeTabs(b.Tabstop)
	if b.Syntax != nil {
		b.Engine.Def = b.Syntax
		b.Engine.Recompute(b.Lines, lineNo-1, b.OnScreen, b.Redraw)
	}
}

func (b *Buffer) append(rec history.Record) {
	if b.loading {
		return
	}
	b.History.Append(rec)
}
