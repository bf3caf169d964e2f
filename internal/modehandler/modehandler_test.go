package modehandler

import (
	"testing"

	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cellbuf"
	"github.com/kobzarvs/bim/internal/input"
	"github.com/kobzarvs/bim/internal/workspace"
)

func lineText(b *buffer.Buffer, lineNo int) string {
	return string(b.Lines[lineNo-1].Runes())
}

func insertString(b *buffer.Buffer, lineNo int, s string) {
	for _, r := range s {
		b.InsertCell(lineNo, b.Lines[lineNo-1].Len(), cellbuf.NewCell(r))
	}
}

func TestFindParenMatchAcrossLines(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, "func f() {")
	b.AddLine(1)
	insertString(b, 2, "}")
	b.LineNo, b.ColNo = 1, 10 // on the '{'
	pos, ok := FindParenMatch(b)
	if !ok || pos.line != 1 || pos.col != 0 {
		t.Fatalf("expected match at line 1 col 0, got %+v ok=%v", pos, ok)
	}
}

func TestFindParenMatchRespectsSyntaxClass(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, "( \"(\" )")
	// Paint the middle '(' as a string so it shouldn't match the outer parens.
	b.Lines[0].Cells[3].Flags = cellbuf.FlagString
	b.LineNo, b.ColNo = 1, 1
	pos, ok := FindParenMatch(b)
	if !ok || pos.col != 6 {
		t.Fatalf("expected outer paren match at col 6, got %+v ok=%v", pos, ok)
	}
}

func TestAutoIndentCopiesAndAddsAfterBrace(t *testing.T) {
	b := buffer.New(4)
	b.UseSpaces = true
	b.Tabstop = 2
	insertString(b, 1, "  if (x) {")
	indent := AutoIndent(b, b.Lines[0])
	if string(indent) != "    " {
		t.Fatalf("expected 4 spaces of indent, got %q", string(indent))
	}
}

func TestAutoIndentPlainCopiesLeadingWhitespace(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, "  plain line")
	indent := AutoIndent(b, b.Lines[0])
	if string(indent) != "  " {
		t.Fatalf("expected 2 spaces of indent, got %q", string(indent))
	}
}

func TestReindentClosingBraceFindsOpener(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, "if (x) {")
	b.AddLine(1)
	insertString(b, 2, "    body();")
	b.AddLine(2)
	indent, ok := ReindentClosingBrace(b, 3)
	if !ok || string(indent) != "" {
		t.Fatalf("expected empty matching indent, got %q ok=%v", string(indent), ok)
	}
}

func TestCollapseCommentClose(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, " * ")
	if !CollapseCommentClose(b.Lines[0], 3) {
		t.Fatalf("expected collapse to trigger right after ' * '")
	}
}

func TestPasteWholeLinesBefore(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, "middle")
	y := buffer.Yank{WholeLines: true, Lines: [][]cellbuf.Cell{
		{cellbuf.NewCell('t'), cellbuf.NewCell('o'), cellbuf.NewCell('p')},
	}}
	b.LineNo, b.ColNo = 1, 1
	Paste(b, y, true)
	if b.LineCount() != 2 || lineText(b, 1) != "top" || lineText(b, 2) != "middle" {
		t.Fatalf("expected top/middle lines, got %q/%q", lineText(b, 1), lineText(b, 2))
	}
}

func TestPasteRangeSingleLine(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, "ac")
	b.LineNo, b.ColNo = 1, 2 // between a and c
	y := buffer.Yank{Lines: [][]cellbuf.Cell{
		{cellbuf.NewCell('b')},
	}}
	Paste(b, y, true)
	if lineText(b, 1) != "abc" {
		t.Fatalf("expected 'abc', got %q", lineText(b, 1))
	}
}

func TestDispatcherInsertModeTypesText(t *testing.T) {
	reg := workspace.New()
	b := buffer.New(4)
	reg.Add(b)
	d := NewDispatcher(reg, nil)

	d.Handle(input.Event{Kind: input.KeyRune, Rune: 'i'})
	if b.Mode != buffer.Insert {
		t.Fatalf("expected Insert mode after 'i'")
	}
	d.Handle(input.Event{Kind: input.KeyRune, Rune: 'h'})
	d.Handle(input.Event{Kind: input.KeyRune, Rune: 'i'})
	if lineText(b, 1) != "hi" {
		t.Fatalf("expected 'hi', got %q", lineText(b, 1))
	}
	d.Handle(input.Event{Kind: input.KeyEscape})
	if b.Mode != buffer.Normal {
		t.Fatalf("expected Normal mode after ESC")
	}
}

func TestDispatcherUnknownCommandReportsError(t *testing.T) {
	reg := workspace.New()
	b := buffer.New(4)
	reg.Add(b)
	d := NewDispatcher(reg, nil)

	d.Handle(input.Event{Kind: input.KeyRune, Rune: ':'})
	for _, r := range "bogus" {
		d.Handle(input.Event{Kind: input.KeyRune, Rune: r})
	}
	out := d.Handle(input.Event{Kind: input.KeyRune, Rune: '\r'})
	if !out.View.ErrorMessage {
		t.Fatalf("expected an error message for an unknown command")
	}
}

func TestDispatcherLineSelectionDeleteYanks(t *testing.T) {
	reg := workspace.New()
	b := buffer.New(4)
	reg.Add(b)
	insertString(b, 1, "first")
	b.AddLine(1)
	insertString(b, 2, "second")
	b.LineNo, b.ColNo = 1, 1
	d := NewDispatcher(reg, nil)

	d.Handle(input.Event{Kind: input.KeyRune, Rune: 'V'})
	d.Handle(input.Event{Kind: input.KeyNav, Nav: input.NavDown})
	d.Handle(input.Event{Kind: input.KeyRune, Rune: 'd'})

	if b.LineCount() != 1 {
		t.Fatalf("expected 1 line remaining, got %d", b.LineCount())
	}
	if !reg.Yank.WholeLines || len(reg.Yank.Lines) != 2 {
		t.Fatalf("expected whole-line yank of 2 lines, got %+v", reg.Yank)
	}
}

func TestDispatcherCommandSplitTogglesSelfSplit(t *testing.T) {
	reg := workspace.New()
	reg.Add(buffer.New(4))
	d := NewDispatcher(reg, nil)

	d.Handle(input.Event{Kind: input.KeyRune, Rune: ':'})
	for _, r := range "split" {
		d.Handle(input.Event{Kind: input.KeyRune, Rune: r})
	}
	d.Handle(input.Event{Kind: input.KeyRune, Rune: '\r'})

	if !reg.SplitActive || !reg.SelfSplit {
		t.Fatalf("expected self-split active after :split, got %+v", reg)
	}
	if reg.LeftIdx != reg.RightIdx {
		t.Fatalf("expected self-split to reference the same buffer on both sides")
	}
}

func TestDispatcherCommandTabnewAddsBuffer(t *testing.T) {
	reg := workspace.New()
	reg.Add(buffer.New(4))
	d := NewDispatcher(reg, nil)

	d.Handle(input.Event{Kind: input.KeyRune, Rune: ':'})
	for _, r := range "tabnew" {
		d.Handle(input.Event{Kind: input.KeyRune, Rune: r})
	}
	d.Handle(input.Event{Kind: input.KeyRune, Rune: '\r'})

	if reg.Count() != 2 {
		t.Fatalf("expected 2 buffers after :tabnew, got %d", reg.Count())
	}
	if reg.ActiveIndex() != 1 {
		t.Fatalf("expected the new buffer to become active, got index %d", reg.ActiveIndex())
	}
}

func TestDispatcherMouseWheelScrollsViewWithoutMovingCursor(t *testing.T) {
	reg := workspace.New()
	b := buffer.New(4)
	reg.Add(b)
	for i := 0; i < 40; i++ {
		b.AddLine(i)
	}
	b.LineNo = 1
	d := NewDispatcher(reg, nil)

	d.Handle(input.Event{Kind: input.KeyMouse, MouseButton: input.MouseWheelDown, MouseX: 5, MouseY: 5})

	if b.Offset != d.ScrollAmount {
		t.Fatalf("expected offset to advance by ScrollAmount=%d, got %d", d.ScrollAmount, b.Offset)
	}
	if b.LineNo != 1 {
		t.Fatalf("expected cursor line unchanged without ShiftScrolling, got %d", b.LineNo)
	}
}

func TestWordForwardSkipsToNextWord(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, "foo  bar baz")
	b.ColNo = 1
	wordForward(b)
	if b.ColNo != 6 {
		t.Fatalf("expected cursor at col 6 (start of 'bar'), got %d", b.ColNo)
	}
	wordForward(b)
	if b.ColNo != 10 {
		t.Fatalf("expected cursor at col 10 (start of 'baz'), got %d", b.ColNo)
	}
}

func TestWordForwardDoesNotSplitGraphemeCluster(t *testing.T) {
	b := buffer.New(4)
	// "é" (e + combining acute) is one grapheme cluster, followed
	// by a space and "word" — word-move must land past the whole
	// cluster, not between the base rune and its combining mark.
	insertString(b, 1, "é word")
	b.ColNo = 1
	wordForward(b)
	if b.ColNo != 4 {
		t.Fatalf("expected cursor at col 4 (start of 'word'), got %d", b.ColNo)
	}
}

func TestWordBackwardReturnsToPriorWordStart(t *testing.T) {
	b := buffer.New(4)
	insertString(b, 1, "foo bar")
	b.ColNo = 8
	wordBackward(b)
	if b.ColNo != 5 {
		t.Fatalf("expected cursor at col 5 (start of 'bar'), got %d", b.ColNo)
	}
}

func TestDispatcherMouseWheelMovesCursorWithShiftScrolling(t *testing.T) {
	reg := workspace.New()
	b := buffer.New(4)
	reg.Add(b)
	for i := 0; i < 40; i++ {
		b.AddLine(i)
	}
	b.LineNo = 1
	d := NewDispatcher(reg, nil)
	d.ShiftScrolling = true

	d.Handle(input.Event{Kind: input.KeyMouse, MouseButton: input.MouseWheelDown, MouseX: 5, MouseY: 5})

	if b.LineNo != 1+d.ScrollAmount {
		t.Fatalf("expected cursor to advance by ScrollAmount=%d, got line %d", d.ScrollAmount, b.LineNo)
	}
}
