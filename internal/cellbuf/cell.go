// Package cellbuf implements the line buffer model: styled cells grouped
// into variable-length lines, with the insert/delete/split/merge
// primitives every higher layer builds on.
package cellbuf

import "github.com/mattn/go-runewidth"

// Flag is the 7-bit syntax/selection flag word attached to a Cell.
type Flag uint8

const (
	FlagNone Flag = iota
	FlagKeyword
	FlagString
	FlagComment
	FlagType
	FlagPragma
	FlagNumeral
	FlagString2
	FlagDiffPlus
	FlagDiffMinus
	FlagNotice
	FlagBold
	FlagLink
	FlagEscape
)

// SyntaxClass isolates the syntax portion of a Cell's flags, ignoring the
// orthogonal Select/Search bits.
func (c Cell) SyntaxClass() Flag { return c.Flags }

// Select and Search are tracked as separate booleans on the Cell rather
// than packed into the same byte as Flags: Go has no bitfields, and a
// single byte has plenty of room split this way without needing masks
// at every call site.
type Cell struct {
	Codepoint rune
	Width     int8
	Flags     Flag
	Select    bool
	Search    bool
}

// widthOf caches the terminal-cell width of r. Tabs are always width 1
// in storage; Line.RecomputeTabs expands a tab's on-screen width
// separately using the buffer's tabstop.
func widthOf(r rune) int8 {
	if r == '\t' {
		return 1
	}
	w := runewidth.RuneWidth(r)
	if w < 0 {
		w = 0
	}
	if w > 15 {
		w = 15
	}
	return int8(w)
}

// NewCell builds a Cell for r with its cached display width and no flags.
func NewCell(r rune) Cell {
	return Cell{Codepoint: r, Width: widthOf(r)}
}
