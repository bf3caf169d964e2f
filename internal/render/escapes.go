// Package render draws the tab bar, gutter, text area, status line, and
// command line to a single buffered writer (spec §4.5), generalizing the
// teacher's DrawRows/DrawStatusBar/DrawMessageBar into a multi-buffer,
// split-aware renderer driven by a workspace.Registry.
package render

// Escape sequences the renderer emits directly, adapted from the
// teacher's ansi.go constants.
const (
	escClearScreen = "\x1b[2J"
	escClearLine   = "\x1b[K"
	escCursorHome  = "\x1b[H"

	escCursorHide = "\x1b[?25l"
	escCursorShow = "\x1b[?25h"

	escAltScreenEnter = "\x1b[?1049h"
	escAltScreenLeave = "\x1b[?1049l"

	escMouseEnter = "\x1b[?1000h\x1b[?1006h"
	escMouseLeave = "\x1b[?1000l\x1b[?1006l"

	escReset    = "\x1b[0m"
	escBold     = "\x1b[1m"
	escUnderln  = "\x1b[4m"
	escNoBold   = "\x1b[22m"
	escNoUnderl = "\x1b[24m"

	// cursorPositionFmt takes 1-based row, col.
	cursorPositionFmt = "\x1b[%d;%dH"

	// scrollUpFmt/scrollDownFmt shift the whole screen by n lines using
	// the terminal's own scroll region, letting Renderer draw only the
	// newly exposed line (spec §4.5 selective redraw).
	scrollUpFmt   = "\x1b[%dS"
	scrollDownFmt = "\x1b[%dT"
)
