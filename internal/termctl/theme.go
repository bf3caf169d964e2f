package termctl

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a parsed theme color string (spec §6): either an `@N` ANSI
// index (0-17, 10-17 being bright variants) or a raw SGR parameter
// tail, e.g. `5;N` for 256-color or `2;R;G;B` for direct color, with an
// optional trailing `;1` (bold) or `;4` (underline).
type Color struct {
	ANSIIndex int
	IsANSI    bool
	SGRTail   string
}

// ParseColor parses one theme color string.
func ParseColor(s string) Color {
	if strings.HasPrefix(s, "@") {
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			n = 0
		}
		return Color{ANSIIndex: n, IsANSI: true}
	}
	return Color{SGRTail: s}
}

// sgrForIndex converts an `@N` index into its `3x/9x` (foreground) or
// `4x/10x` (background) SGR parameter per spec §6: 0-7 are the normal
// palette, 10-17 are bright variants mapped to 8-15.
func sgrForIndex(n int, background bool) string {
	bright := n >= 10
	base := n % 10
	if base > 7 {
		base = 7
	}
	switch {
	case background && bright:
		return fmt.Sprintf("10%d", base)
	case background && !bright:
		return fmt.Sprintf("4%d", base)
	case !background && bright:
		return fmt.Sprintf("9%d", base)
	default:
		return fmt.Sprintf("3%d", base)
	}
}

// SGR renders fg/bg as one combined escape body (without the leading
// ESC[ and trailing m), resetting bold/underline/italic first: spec §6
// specifies `22;23;24; 48;<bg>; 38;<fg>m`.
func SGR(fg, bg Color) string {
	var b strings.Builder
	b.WriteString("22;23;24;")
	b.WriteString(colorParam(bg, true))
	b.WriteByte(';')
	b.WriteString(colorParam(fg, false))
	return b.String()
}

func colorParam(c Color, background bool) string {
	if c.IsANSI {
		return sgrForIndex(c.ANSIIndex, background)
	}
	prefix := "38;"
	if background {
		prefix = "48;"
	}
	return prefix + c.SGRTail
}
