// Package modehandler implements spec §4.7's modal state machine and
// §4.7/§4.8's editing operations (paren matching, auto-indent, paste,
// the ":" command interpreter, incremental search), tying buffer,
// search, and workspace together the way the teacher's editor_process
// dispatch loop ties its own primitives together.
package modehandler

import (
	"strings"

	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cellbuf"
	"github.com/kobzarvs/bim/internal/input"
	"github.com/kobzarvs/bim/internal/render"
	"github.com/kobzarvs/bim/internal/search"
	"github.com/kobzarvs/bim/internal/syntax"
	"github.com/kobzarvs/bim/internal/workspace"
)

const (
	promptNone byte = 0
	promptCmd  byte = ':'
	promptFwd  byte = '/'
	promptBack byte = '?'
)

// Outcome is returned from Dispatcher.Handle after processing one
// input event, telling the caller (the main loop) what the frame
// should show and whether to exit.
type Outcome struct {
	View    render.ViewState
	Quit    bool
	QuitAll bool
}

// Dispatcher holds the ephemeral, cross-keystroke state the modal
// state machine needs beyond what lives on buffer.Buffer: the
// command/search prompt line being typed, the active paren highlight,
// and incremental-search's pre-search cursor to restore on ESC.
type Dispatcher struct {
	Reg     *workspace.Registry
	History CommandHistory
	Shell   ShellRunner
	SynReg  *syntax.Registry

	PageSize int

	// ShiftScrolling and ScrollAmount mirror the bimrc settings of the
	// same name (spec §6): a mouse wheel event moves the cursor by
	// ScrollAmount lines when ShiftScrolling is set, otherwise it only
	// shifts the viewport.
	ShiftScrolling bool
	ScrollAmount   int

	prompt     byte
	promptText []rune

	pendingReplace bool

	parenActive bool
	parenA      parenPos
	parenZ      parenPos

	searchForward              bool
	searchPreLine, searchPreCol int

	lastMessage string
	lastIsError bool
}

// NewDispatcher constructs a Dispatcher bound to reg; shell is used to
// run `:!cmd` (nil disables shell escape).
func NewDispatcher(reg *workspace.Registry, shell ShellRunner) *Dispatcher {
	return &Dispatcher{Reg: reg, Shell: shell, PageSize: 20, ScrollAmount: 5}
}

// Handle processes one decoded input event against the active buffer
// and returns the resulting view state.
func (d *Dispatcher) Handle(ev input.Event) Outcome {
	b := d.Reg.Active()

	if ev.Kind == input.KeyEscape {
		return d.handleEscape(b)
	}

	if ev.Kind == input.KeyMouse {
		return d.handleMouse(ev)
	}

	if d.prompt != promptNone {
		return d.handlePrompt(b, ev)
	}

	switch b.Mode {
	case buffer.Insert, buffer.Replace:
		d.handleInsertLike(b, ev)
	case buffer.LineSelection, buffer.CharSelection, buffer.ColSelection:
		d.handleSelection(b, ev)
	case buffer.ColInsert:
		d.handleColInsert(b, ev)
	default:
		d.handleNormal(b, ev)
	}

	d.updateParenHighlight(b)
	return d.view()
}

func (d *Dispatcher) handleEscape(b *buffer.Buffer) Outcome {
	switch d.prompt {
	case promptCmd:
		d.prompt, d.promptText = promptNone, nil
		return d.view()
	case promptFwd, promptBack:
		search.ClearHighlights(b.Lines)
		b.LineNo, b.ColNo = d.searchPreLine, d.searchPreCol
		d.prompt, d.promptText = promptNone, nil
		return d.view()
	}
	switch b.Mode {
	case buffer.Insert, buffer.Replace, buffer.ColInsert:
		b.Mode = buffer.Normal
		b.ClampCursor()
		b.Break()
	case buffer.LineSelection, buffer.CharSelection, buffer.ColSelection:
		b.Mode = buffer.Normal
	}
	d.pendingReplace = false
	return d.view()
}

// handleNormal implements spec §4.7's NORMAL-state row of the
// transition table plus cursor motion.
func (d *Dispatcher) handleNormal(b *buffer.Buffer, ev input.Event) {
	if d.pendingReplace {
		if ev.Kind == input.KeyRune {
			b.ReplaceCell(b.LineNo, b.ColNo-1, cellbuf.NewCell(ev.Rune))
			b.Break()
		}
		d.pendingReplace = false
		return
	}

	if ev.Kind == input.KeyNav {
		d.handleNav(b, ev)
		return
	}
	if ev.Kind != input.KeyRune {
		return
	}

	switch ev.Rune {
	case 'i':
		b.Mode = buffer.Insert
	case 'a':
		b.ColNo++
		b.ClampCursor()
		b.Mode = buffer.Insert
	case 'I':
		b.ColNo = 1
		b.Mode = buffer.Insert
	case 'A':
		b.ColNo = b.CurrentLine().Len() + 1
		b.Mode = buffer.Insert
	case 'o':
		b.AddLine(b.LineNo)
		b.LineNo++
		indent := AutoIndent(b, b.Lines[b.LineNo-2])
		insertRunes(b, indent)
		b.Mode = buffer.Insert
	case 'O':
		b.AddLine(b.LineNo - 1)
		b.ColNo = 1
		b.Mode = buffer.Insert
	case 'R':
		b.Mode = buffer.Replace
	case 'v':
		b.Mode = buffer.CharSelection
		b.SelStartLine, b.SelCol = b.LineNo, b.ColNo
	case 'V':
		b.Mode = buffer.LineSelection
		b.SelStartLine = b.LineNo
	case 0x16: // Ctrl-V
		b.Mode = buffer.ColSelection
		b.SelStartLine, b.SelCol = b.LineNo, b.ColNo
	case ':':
		d.prompt = promptCmd
		d.promptText = nil
	case '/':
		d.startSearch(b, true)
	case '?':
		d.startSearch(b, false)
	case 'u':
		b.Undo()
	case 0x12: // Ctrl-R
		b.Redo()
	case 'p':
		Paste(b, d.Reg.Yank, false)
	case 'P':
		Paste(b, d.Reg.Yank, true)
	case 'r':
		d.pendingReplace = true
	}
}

func (d *Dispatcher) handleNav(b *buffer.Buffer, ev input.Event) {
	switch ev.Nav {
	case input.NavUp:
		moveUp(b)
	case input.NavDown:
		moveDown(b)
	case input.NavLeft:
		switch ev.Mod {
		case input.ModWord:
			wordBackward(b)
		case input.ModSplitResize:
			d.resizeSplit(-1)
		case input.ModCrossSplitFocus:
			d.Reg.FocusSide(true)
		default:
			moveLeft(b)
		}
	case input.NavRight:
		switch ev.Mod {
		case input.ModWord:
			wordForward(b)
		case input.ModSplitResize:
			d.resizeSplit(1)
		case input.ModCrossSplitFocus:
			d.Reg.FocusSide(false)
		default:
			moveRight(b)
		}
	case input.NavHome:
		moveHome(b)
	case input.NavEnd:
		moveEnd(b)
	case input.NavPageUp:
		movePageUp(b, d.PageSize)
	case input.NavPageDown:
		movePageDown(b, d.PageSize)
	}
}

// resizeSplit nudges the split boundary when a split is active (spec
// §4.6's modifier-3 split-resize direction); it is a no-op otherwise.
func (d *Dispatcher) resizeSplit(dir int) {
	if !d.Reg.SplitActive {
		return
	}
	d.Reg.SplitPercent += dir * 2
	if d.Reg.SplitPercent < 10 {
		d.Reg.SplitPercent = 10
	}
	if d.Reg.SplitPercent > 90 {
		d.Reg.SplitPercent = 90
	}
}

// handleMouse implements spec §4.6's mouse row: wheel up/down scroll
// the view or move the cursor depending on ShiftScrolling, and button
// 3 resolves to tab selection, split focus, or cursor placement.
func (d *Dispatcher) handleMouse(ev input.Event) Outcome {
	switch ev.MouseButton {
	case input.MouseWheelUp:
		d.scrollWheel(-1)
	case input.MouseWheelDown:
		d.scrollWheel(1)
	case input.MouseClick:
		d.click(ev.MouseX, ev.MouseY)
	}
	d.updateParenHighlight(d.Reg.Active())
	return d.view()
}

func (d *Dispatcher) scrollWheel(dir int) {
	b := d.Reg.Active()
	amount := d.ScrollAmount
	if amount <= 0 {
		amount = 1
	}
	if d.ShiftScrolling {
		b.LineNo += dir * amount
		b.ClampCursor()
		return
	}
	b.Offset += dir * amount
	if b.Offset < 0 {
		b.Offset = 0
	}
	if max := len(b.Lines) - 1; b.Offset > max {
		b.Offset = max
	}
}

// click implements button 3 (spec §4.6): row 0 selects a tab, a click
// crossing the split boundary changes focus, and any other click
// places the cursor in whichever pane it landed in.
func (d *Dispatcher) click(x, y int) {
	if y == 0 {
		if idx, ok := tabAt(d.Reg, x); ok {
			d.Reg.SetActive(idx)
		}
		return
	}

	if d.Reg.SplitActive {
		onLeft := x < splitBoundary(d.Reg)
		if onLeft && d.Reg.ActiveIndex() != d.Reg.LeftIdx {
			d.Reg.FocusSide(true)
		} else if !onLeft && d.Reg.ActiveIndex() != d.Reg.RightIdx {
			d.Reg.FocusSide(false)
		}
	}

	placeCursor(d.Reg.Active(), x, y)
}

// splitBoundary returns the terminal column where the right pane
// begins, as already computed by workspace.Registry.Layout.
func splitBoundary(reg *workspace.Registry) int {
	left := reg.At(reg.LeftIdx)
	return left.Left + left.Width
}

// tabAt finds which tab-bar entry column x falls under, using the same
// "name[+]<space>" width accounting as render.drawTabBar.
func tabAt(reg *workspace.Registry, x int) (int, bool) {
	used := 0
	for i, b := range reg.All() {
		name := b.FileName
		if name == "" {
			name = "[No Name]"
		} else if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
			name = name[idx+1:]
		}
		width := len(name)
		if b.Modified() {
			width += 2
		}
		width++ // trailing separator space
		if x >= used && x < used+width {
			return i, true
		}
		used += width
	}
	return 0, false
}

// placeCursor maps a click's terminal column/row, relative to b's own
// pane offset, to a buffer line/column (spec §4.6).
func placeCursor(b *buffer.Buffer, x, y int) {
	line := b.Offset + y
	if line >= len(b.Lines) {
		line = len(b.Lines) - 1
	}
	if line < 0 {
		line = 0
	}
	b.LineNo = line + 1

	target := b.COffset + (x - b.Left)
	l := b.Lines[line]
	col := 0
	for col < l.Len() && cellbuf.VisualCol(l, col+1, b.Tabstop) <= target {
		col++
	}
	b.ColNo = col + 1
	b.PreferredCol = b.ColNo
	b.ClampCursor()
}

// handleInsertLike implements INSERT/REPLACE's typing and auto-indent
// (spec §4.7 Auto-indent paragraph).
func (d *Dispatcher) handleInsertLike(b *buffer.Buffer, ev input.Event) {
	if ev.Kind == input.KeyNav {
		d.handleNav(b, ev)
		return
	}
	if ev.Kind != input.KeyRune {
		return
	}

	switch ev.Rune {
	case '\r', '\n':
		predecessor := b.CurrentLine()
		col := b.ColNo - 1
		b.SplitLine(b.LineNo-1, col)
		b.LineNo++
		b.ColNo = 1
		if b.AutoIndent {
			indent := AutoIndent(b, predecessor)
			insertRunes(b, indent)
		}
		return
	case 0x7f: // backspace
		if b.ColNo == 1 && b.LineNo > 1 {
			prevLen := b.Lines[b.LineNo-2].Len()
			b.MergeLines(b.LineNo - 1)
			b.LineNo--
			b.ColNo = prevLen + 1
			return
		}
		b.DeleteCell(b.LineNo, b.ColNo-1)
		if b.ColNo > 1 {
			b.ColNo--
		}
		return
	case '/':
		if CollapseCommentClose(b.CurrentLine(), b.ColNo-1) {
			b.DeleteCell(b.LineNo, b.ColNo-1)
			b.ColNo--
			b.InsertCell(b.LineNo, b.ColNo-1, cellbuf.NewCell('/'))
			b.ColNo++
			return
		}
	case '}':
		l := b.CurrentLine()
		if b.ColNo-1 == l.Len() && allWhitespace(l) {
			if indent, ok := ReindentClosingBrace(b, b.LineNo); ok {
				clearLeading(b, l)
				insertRunesAt(b, 0, indent)
				b.ColNo = len(indent) + 1
			}
		}
	}

	if b.Mode == buffer.Replace && b.ColNo-1 < b.CurrentLine().Len() {
		b.ReplaceCell(b.LineNo, b.ColNo-1, cellbuf.NewCell(ev.Rune))
	} else {
		b.InsertCell(b.LineNo, b.ColNo-1, cellbuf.NewCell(ev.Rune))
	}
	b.ColNo++
}

func insertRunes(b *buffer.Buffer, rs []rune) {
	for _, r := range rs {
		b.InsertCell(b.LineNo, b.ColNo-1, cellbuf.NewCell(r))
		b.ColNo++
	}
}

func insertRunesAt(b *buffer.Buffer, col int, rs []rune) {
	for i, r := range rs {
		b.InsertCell(b.LineNo, col+i, cellbuf.NewCell(r))
	}
}

func clearLeading(b *buffer.Buffer, l *cellbuf.Line) {
	for l.Len() > 0 {
		b.DeleteCell(b.LineNo, 1)
	}
}

func allWhitespace(l *cellbuf.Line) bool {
	for _, c := range l.Cells {
		if c.Codepoint != ' ' && c.Codepoint != '\t' {
			return false
		}
	}
	return true
}

// handleSelection implements LINE_SELECTION/CHAR_SELECTION/COL_SELECTION's
// transitions (spec §4.7): d/y/V end the selection, tab/shift-tab
// indent or unindent a line-selection range in place, I/a on a column
// selection begin COL_INSERT.
func (d *Dispatcher) handleSelection(b *buffer.Buffer, ev input.Event) {
	if ev.Kind == input.KeyNav {
		if ev.Nav == input.NavShiftTab && b.Mode == buffer.LineSelection {
			indentRange(b, false)
			return
		}
		d.handleNav(b, ev)
		return
	}
	if ev.Kind != input.KeyRune {
		return
	}

	if b.Mode == buffer.ColSelection {
		switch ev.Rune {
		case 'I', 'a':
			b.Mode = buffer.ColInsert
			return
		}
	}

	switch ev.Rune {
	case 'd', 'y':
		d.yankOrDeleteSelection(b, ev.Rune == 'd')
		b.Mode = buffer.Normal
		b.Break()
	case 'V', 'v':
		b.Mode = buffer.Normal
	case '\t':
		if b.Mode == buffer.LineSelection {
			indentRange(b, true)
		}
	}
}

func (d *Dispatcher) handleColInsert(b *buffer.Buffer, ev input.Event) {
	if ev.Kind != input.KeyRune {
		return
	}
	top, bot := b.SelStartLine, b.LineNo
	if top > bot {
		top, bot = bot, top
	}
	for ln := top; ln <= bot; ln++ {
		b.InsertCell(ln, b.SelCol-1, cellbuf.NewCell(ev.Rune))
	}
}

func (d *Dispatcher) yankOrDeleteSelection(b *buffer.Buffer, remove bool) {
	top, bot := b.SelStartLine, b.LineNo
	if top > bot {
		top, bot = bot, top
	}
	var lines [][]cellbuf.Cell
	for ln := top; ln <= bot; ln++ {
		cells := append([]cellbuf.Cell{}, b.Lines[ln-1].Cells...)
		lines = append(lines, cells)
	}
	d.Reg.ReplaceYank(buffer.Yank{Lines: lines, WholeLines: b.Mode == buffer.LineSelection})
	if !remove {
		return
	}
	for i := bot; i >= top; i-- {
		b.RemoveLine(i - 1)
	}
	if b.LineNo > len(b.Lines) {
		b.LineNo = len(b.Lines)
	}
	b.ColNo = 1
}

func indentRange(b *buffer.Buffer, in bool) {
	top, bot := b.SelStartLine, b.LineNo
	if top > bot {
		top, bot = bot, top
	}
	for ln := top; ln <= bot; ln++ {
		unit := indentUnit(b)
		if in {
			insertRunesAtLine(b, ln, 0, unit)
		} else {
			removeLeadingUnit(b, ln, len(unit))
		}
	}
}

func insertRunesAtLine(b *buffer.Buffer, lineNo, col int, rs []rune) {
	for i, r := range rs {
		b.InsertCell(lineNo, col+i, cellbuf.NewCell(r))
	}
}

func removeLeadingUnit(b *buffer.Buffer, lineNo, n int) {
	for i := 0; i < n && b.Lines[lineNo-1].Len() > 0; i++ {
		c := b.Lines[lineNo-1].Cells[0]
		if c.Codepoint != ' ' && c.Codepoint != '\t' {
			break
		}
		b.DeleteCell(lineNo, 1)
	}
}

// startSearch enters incremental search (spec §4.8): the pre-search
// cursor is remembered for restoration on ESC.
func (d *Dispatcher) startSearch(b *buffer.Buffer, forward bool) {
	d.searchPreLine, d.searchPreCol = b.LineNo, b.ColNo
	d.searchForward = forward
	if forward {
		d.prompt = promptFwd
	} else {
		d.prompt = promptBack
	}
	d.promptText = nil
}

func (d *Dispatcher) handlePrompt(b *buffer.Buffer, ev input.Event) Outcome {
	if ev.Kind != input.KeyRune {
		return d.view()
	}
	switch ev.Rune {
	case '\r', '\n':
		return d.commitPrompt(b)
	case 0x7f:
		if len(d.promptText) > 0 {
			d.promptText = d.promptText[:len(d.promptText)-1]
		}
	default:
		d.promptText = append(d.promptText, ev.Rune)
	}

	if d.prompt == promptFwd || d.prompt == promptBack {
		d.liveSearch(b)
	}
	return d.view()
}

func (d *Dispatcher) liveSearch(b *buffer.Buffer) {
	search.ClearHighlights(b.Lines)
	if len(d.promptText) == 0 {
		return
	}
	cs := search.SmartCase(d.promptText)
	search.HighlightAll(b.Lines, d.promptText, cs)
	var line, col int
	var found bool
	if d.searchForward {
		line, col, found = search.FindForward(b.Lines, d.searchPreLine, d.searchPreCol-1, d.promptText, cs)
	} else {
		line, col, found = search.FindBackward(b.Lines, d.searchPreLine, d.searchPreCol, d.promptText, cs)
	}
	if found {
		b.LineNo, b.ColNo = line, col
	}
}

func (d *Dispatcher) commitPrompt(b *buffer.Buffer) Outcome {
	text := string(d.promptText)
	kind := d.prompt
	d.prompt, d.promptText = promptNone, nil

	switch kind {
	case promptCmd:
		res := ExecuteCommand(d.Reg, &d.History, d.SynReg, text)
		return d.applyCommandResult(res)
	case promptFwd, promptBack:
		b.Needle = []rune(text)
		search.ClearHighlights(b.Lines)
	}
	return d.view()
}

func (d *Dispatcher) applyCommandResult(res CommandResult) Outcome {
	d.lastMessage, d.lastIsError = res.Message, res.IsError

	if res.ShellPending != "" && d.Shell != nil {
		out, err := d.Shell(res.ShellPending)
		if err != nil {
			d.lastMessage, d.lastIsError = err.Error(), true
		} else {
			d.lastMessage, d.lastIsError = out, false
		}
	}
	if res.CloseActive {
		if _, ok := d.Reg.Close(d.Reg.ActiveIndex()); !ok {
			res.Quit = true
		}
	}
	return Outcome{View: d.view().View, Quit: res.Quit, QuitAll: res.QuitAll}
}

// updateParenHighlight clears any previous highlight and repaints the
// cursor's bracket match (spec §4.7 Paren matching): recomputed on
// every dispatch since "any subsequent cursor movement" clears it.
func (d *Dispatcher) updateParenHighlight(b *buffer.Buffer) {
	if d.parenActive {
		ClearParenHighlight(b, d.parenA, d.parenZ)
		d.parenActive = false
	}
	if b.Mode != buffer.Normal && b.Mode != buffer.Insert {
		return
	}
	pos, ok := FindParenMatch(b)
	if !ok {
		return
	}
	if pos.line < len(b.Lines) && pos.col < b.Lines[pos.line].Len() {
		b.Lines[pos.line].Cells[pos.col].Select = true
	}
	cursorLine, cursorCol := b.LineNo-1, b.ColNo-1
	if cursorCol < b.Lines[cursorLine].Len() {
		b.Lines[cursorLine].Cells[cursorCol].Select = true
	}
	d.parenActive = true
	d.parenA = parenPos{line: cursorLine, col: cursorCol}
	d.parenZ = pos
}

func (d *Dispatcher) view() Outcome {
	v := render.ViewState{Message: d.lastMessage, ErrorMessage: d.lastIsError}
	switch {
	case d.prompt == promptCmd:
		v.Prompt = ":" + string(d.promptText)
	case d.prompt == promptFwd:
		v.Prompt = "/" + string(d.promptText)
	case d.prompt == promptBack:
		v.Prompt = "?" + string(d.promptText)
	default:
		v.ModeLabel = modeLabel(d.Reg.Active().Mode)
	}
	return Outcome{View: v}
}

func modeLabel(m buffer.Mode) string {
	switch m {
	case buffer.Insert:
		return "-- INSERT --"
	case buffer.Replace:
		return "-- REPLACE --"
	case buffer.LineSelection:
		return "-- LINE SELECTION --"
	case buffer.CharSelection:
		return "-- CHAR SELECTION --"
	case buffer.ColSelection:
		return "-- COL SELECTION --"
	case buffer.ColInsert:
		return "-- COL INSERT --"
	default:
		return ""
	}
}
