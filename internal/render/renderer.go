package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cellbuf"
	"github.com/kobzarvs/bim/internal/termctl"
	"github.com/kobzarvs/bim/internal/workspace"
)

// ViewState is the text the mode handler wants on the command line,
// kept separate from Renderer so this package never needs to know
// about modehandler's state machine (spec §4.5's command line row).
type ViewState struct {
	// ModeLabel is "-- INSERT --" etc., empty in NORMAL mode.
	ModeLabel string
	// Prompt is a `:`, `/`, or `?` prompt echo, including what the user
	// has typed so far. Takes priority over ModeLabel when non-empty.
	Prompt string
	// Message is a transient status/error message; ErrorMessage reports
	// whether it paints in the error palette.
	Message      string
	ErrorMessage bool
}

// Renderer draws a Registry's active layout to Out, a single buffered
// writer, once per frame (spec §4.5). Width/Height are the full
// terminal size in columns/rows.
type Renderer struct {
	Out           io.Writer
	Caps          termctl.Capabilities
	Theme         Theme
	Width, Height int
}

// textRows is the number of rows available to the text area: total
// height minus the tab bar, status line, and command line.
func (r *Renderer) textRows() int {
	n := r.Height - 3
	if n < 0 {
		n = 0
	}
	return n
}

// Render draws a complete frame: tab bar, one or two text panes, status
// line, command line.
func (r *Renderer) Render(reg *workspace.Registry, view ViewState) {
	var o outBuf
	o.writeString(escCursorHide)
	o.writeString(escCursorHome)

	r.drawTabBar(&o, reg)

	rows := r.textRows()
	left := reg.At(reg.LeftIdx)
	leftOffset := left.Offset
	if reg.SelfSplit && reg.LeftIdx == reg.RightIdx && reg.ActiveIndex() == reg.RightIdx {
		leftOffset = reg.ViewLeftOffset
	}

	if !reg.SplitActive {
		for y := 0; y < rows; y++ {
			r.drawTextLine(&o, left, y, leftOffset, left == reg.Active())
			o.writeString(escClearLine)
			o.writeString("\r\n")
		}
	} else {
		right := reg.At(reg.RightIdx)
		rightOffset := right.Offset
		if reg.SelfSplit && reg.LeftIdx == reg.RightIdx && reg.ActiveIndex() == reg.LeftIdx {
			rightOffset = reg.ViewRightOffset
		}
		for y := 0; y < rows; y++ {
			r.drawTextLine(&o, left, y, leftOffset, left == reg.Active())
			r.drawTextLine(&o, right, y, rightOffset, right == reg.Active())
			o.writeString(escClearLine)
			o.writeString("\r\n")
		}
	}

	r.drawStatusLine(&o, reg.Active())
	o.writeString("\r\n")
	r.drawCommandLine(&o, view)

	active := reg.Active()
	cy := active.LineNo - active.Offset
	cx := VisualColOf(active) - active.COffset
	o.writeString(fmt.Sprintf(cursorPositionFmt, cy+1, cx+1))
	o.writeString(escCursorShow)

	r.Out.Write(o.b)
}

// VisualColOf returns the active buffer's cursor column converted to
// display columns (tabs/wide runes), matching the teacher's cxToRx.
func VisualColOf(b *buffer.Buffer) int {
	if b.LineNo-1 >= len(b.Lines) {
		return 0
	}
	l := b.Lines[b.LineNo-1]
	return cellbuf.VisualCol(l, b.ColNo-1, b.Tabstop)
}

func (r *Renderer) drawTabBar(o *outBuf, reg *workspace.Registry) {
	o.writeString("\x1b[0m")
	used := 0
	for i, b := range reg.All() {
		name := b.FileName
		if name == "" {
			name = "[No Name]"
		} else if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
			name = name[idx+1:]
		}
		label := name
		if b.Modified() {
			label += " +"
		}
		if used+len(label)+1 > r.Width {
			break
		}
		active := i == reg.ActiveIndex()
		if active {
			o.writeString(escBold)
		} else {
			o.writeString(escUnderln)
		}
		o.writeString(label)
		if active {
			o.writeString(escNoBold)
		} else {
			o.writeString(escNoUnderl)
		}
		o.writeString(" ")
		used += len(label) + 1
	}
	for ; used < r.Width; used++ {
		o.writeString(" ")
	}
	o.writeString(escClearLine)
	o.writeString("\r\n")
}

func (r *Renderer) drawTextLine(o *outBuf, b *buffer.Buffer, y, offset int, isActivePane bool) {
	lineIdx := y + offset
	gw := gutterWidth(b.LineCount())
	colBudget := b.Width - gw
	if colBudget < 0 {
		colBudget = 0
	}

	if lineIdx >= b.LineCount() {
		o.writeString(strings.Repeat(" ", gw))
		o.writeString("~")
		return
	}

	l := b.Lines[lineIdx]
	isCurrent := isActivePane && lineIdx == b.LineNo-1

	if bg, ok := gutterBg(r.Theme, l.RevStatus); ok {
		o.writeString("\x1b[" + sgr(r.Theme.Normal, bg) + "m")
	}
	numStr := fmt.Sprintf("%d", lineIdx+1)
	pad := gw - len(numStr) - 1
	if pad < 0 {
		pad = 0
	}
	if b.COffset > 0 {
		o.writeString(strings.Repeat(" ", pad))
		o.writeString("<")
	} else {
		o.writeString(strings.Repeat(" ", pad+1))
	}
	o.writeString(numStr)
	o.writeString(escReset)

	written := 0
	start := b.COffset
	lastNonBlank := lastNonBlankIndex(l)
	for i := start; i < l.Len() && written < colBudget; i++ {
		c := l.Cells[i]
		g := renderGlyph(c, r.Caps.Unicode)
		if c.Codepoint == ' ' && i == l.Len()-1 && i > lastNonBlank {
			o.writeString("\x1b[" + sgr(r.Theme.Dim, r.Theme.Background) + "m")
			o.writeString("·")
			o.writeString(escReset)
			written++
			continue
		}
		if written+g.width > colBudget {
			o.writeString(escReset)
			o.writeString("->")
			written += 2
			break
		}
		fg, bg := cellPalette(r.Theme, c, isCurrent)
		o.writeString("\x1b[" + sgr(fg, bg) + "m")
		o.writeString(g.text)
		written += g.width
	}
	o.writeString(escReset)
	for written < colBudget {
		o.writeString(" ")
		written++
	}
}

func lastNonBlankIndex(l *cellbuf.Line) int {
	for i := l.Len() - 1; i >= 0; i-- {
		if l.Cells[i].Codepoint != ' ' && l.Cells[i].Codepoint != '\t' {
			return i
		}
	}
	return -1
}

func (r *Renderer) drawStatusLine(o *outBuf, b *buffer.Buffer) {
	o.writeString("\x1b[7m")
	name := b.FileName
	if name == "" {
		name = "[No Name]"
	}
	maxName := r.Width / 2
	if len(name) > maxName && maxName > 1 {
		name = "<" + name[len(name)-maxName+1:]
	}
	syn := "no ft"
	if b.Syntax != nil {
		syn = b.Syntax.Name
	}
	mod := ""
	if b.Modified() {
		mod = "[+]"
	}
	ro := ""
	if b.ReadOnly {
		ro = "[ro]"
	}
	ws := "tabs"
	if b.UseSpaces {
		ws = "spaces"
	}
	left := fmt.Sprintf("%s %s %s %s %s", syn, mod, ro, ws, name)
	right := fmt.Sprintf("Line %d/%d Col %d", b.LineNo, b.LineCount(), b.ColNo)

	o.writeString(left)
	pad := r.Width - len(left) - len(right)
	for i := 0; i < pad; i++ {
		o.writeString(" ")
	}
	o.writeString(right)
	o.writeString(escReset)
	o.writeString(escClearLine)
}

func (r *Renderer) drawCommandLine(o *outBuf, v ViewState) {
	o.writeString(escClearLine)
	switch {
	case v.Prompt != "":
		o.writeString(v.Prompt)
	case v.Message != "":
		if v.ErrorMessage {
			o.writeString("\x1b[" + sgr(r.Theme.ErrorFg, r.Theme.Background) + "m")
		}
		o.writeString(v.Message)
		if v.ErrorMessage {
			o.writeString(escReset)
		}
	case v.ModeLabel != "":
		o.writeString(v.ModeLabel)
	}
}

// RedrawLine repaints a single text-area row in place. Nothing in this
// repository calls it: the main loop repaints the whole frame through
// Render after every event, so cursor moves and paren-match changes
// get no selective redraw.
func (r *Renderer) RedrawLine(b *buffer.Buffer, rowOnScreen int) {
	var o outBuf
	o.writeString(fmt.Sprintf(cursorPositionFmt, rowOnScreen+2, 1))
	r.drawTextLine(&o, b, rowOnScreen, b.Offset, true)
	o.writeString(escClearLine)
	r.Out.Write(o.b)
}
