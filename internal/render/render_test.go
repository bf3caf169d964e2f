package render

import (
	"testing"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

func TestGutterWidthGrowsWithLineCount(t *testing.T) {
	if w := gutterWidth(5); w != 2 {
		t.Fatalf("expected width 2 for single-digit count, got %d", w)
	}
	if w := gutterWidth(250); w != 4 {
		t.Fatalf("expected width 4 for three-digit count, got %d", w)
	}
}

func TestRenderGlyphControlChar(t *testing.T) {
	g := renderGlyph(cellbuf.NewCell(rune(1)), true)
	if g.text != "^A" || g.width != 2 {
		t.Fatalf("expected ^A width 2, got %+v", g)
	}
}

func TestRenderGlyphDelete(t *testing.T) {
	g := renderGlyph(cellbuf.NewCell(0x7F), true)
	if g.text != "^?" || g.width != 2 {
		t.Fatalf("expected ^? width 2, got %+v", g)
	}
}

func TestRenderGlyphC1Range(t *testing.T) {
	g := renderGlyph(cellbuf.NewCell(0x85), true)
	if g.text != "<85>" || g.width != 4 {
		t.Fatalf("expected <85> width 4, got %+v", g)
	}
}

func TestRenderGlyphNoBreakSpace(t *testing.T) {
	g := renderGlyph(cellbuf.NewCell(0xA0), true)
	if g.text != "_" || g.width != 1 {
		t.Fatalf("expected '_' width 1, got %+v", g)
	}
}

func TestCellPaletteSelectOverridesSyntax(t *testing.T) {
	th := DefaultTheme()
	c := cellbuf.NewCell('x')
	c.Flags = cellbuf.FlagKeyword
	c.Select = true
	fg, bg := cellPalette(th, c, false)
	if fg != th.Normal || bg != th.SelectBg {
		t.Fatalf("expected select palette to override syntax class")
	}
}

func TestCellPaletteSearchOverridesSyntax(t *testing.T) {
	th := DefaultTheme()
	c := cellbuf.NewCell('x')
	c.Flags = cellbuf.FlagString
	c.Search = true
	fg, bg := cellPalette(th, c, false)
	if fg != th.Normal || bg != th.SearchBg {
		t.Fatalf("expected search palette to override syntax class")
	}
}

func TestGutterBgMapsRevStatus(t *testing.T) {
	th := DefaultTheme()
	bg, ok := gutterBg(th, cellbuf.RevAdded)
	if !ok || bg != th.GutterAdded {
		t.Fatalf("expected RevAdded to map to GutterAdded")
	}
	if _, ok := gutterBg(th, cellbuf.RevUnchanged); ok {
		t.Fatalf("expected RevUnchanged to paint no gutter background")
	}
}
