package render

import "github.com/kobzarvs/bim/internal/termctl"

// Theme is the closed set of palette roles the renderer paints with,
// each a parsed color string per spec §6. Grounded on the teacher's
// syntaxToGraphics color choices (cyan comment, yellow/green keywords,
// magenta string, red number, blue-reverse match) re-expressed as
// `@N` ANSI indices through termctl.Color/SGR.
type Theme struct {
	Normal  termctl.Color
	Keyword termctl.Color
	String  termctl.Color
	String2 termctl.Color
	Comment termctl.Color
	Type    termctl.Color
	Pragma  termctl.Color
	Numeral termctl.Color
	Notice  termctl.Color
	Bold    termctl.Color
	Link    termctl.Color
	Escape  termctl.Color

	Background termctl.Color
	SelectBg   termctl.Color
	SearchBg   termctl.Color
	CurrentBg  termctl.Color
	Dim        termctl.Color

	GutterAdded      termctl.Color
	GutterModUnsaved termctl.Color
	GutterModSaved   termctl.Color
	GutterDeleted    termctl.Color
	GutterModAndDel  termctl.Color

	TabBarBg termctl.Color
	ErrorFg  termctl.Color
}

// DefaultTheme mirrors the teacher's built-in palette: colors 0-7 of
// the ANSI table, bright variants (10-17) for emphasis roles.
func DefaultTheme() Theme {
	c := func(n int) termctl.Color { return termctl.ParseColor(ansiIndex(n)) }
	return Theme{
		Normal:  c(7),
		Keyword: c(3),
		String:  c(5),
		String2: c(15),
		Comment: c(6),
		Type:    c(2),
		Pragma:  c(16),
		Numeral: c(1),
		Notice:  c(11),
		Bold:    c(17),
		Link:    c(14),
		Escape:  c(11),

		Background: c(0),
		SelectBg:   c(4),
		SearchBg:   c(14),
		CurrentBg:  c(10),
		Dim:        c(10),

		GutterAdded:      c(2),
		GutterModUnsaved: c(3),
		GutterModSaved:   c(4),
		GutterDeleted:    c(1),
		GutterModAndDel:  c(5),

		TabBarBg: c(0),
		ErrorFg:  c(11),
	}
}

func ansiIndex(n int) string {
	const digits = "0123456789"
	if n < 10 {
		return "@" + string(digits[n])
	}
	return "@1" + string(digits[n-10])
}

// sgr renders one combined fg/bg escape body via termctl.SGR.
func sgr(fg, bg termctl.Color) string {
	return termctl.SGR(fg, bg)
}
