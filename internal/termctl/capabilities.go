package termctl

// Capabilities is the set of terminal features enabled for this run,
// derived from the TERM environment variable (spec §6) and further
// narrowed by `-O` command-line flags.
type Capabilities struct {
	AltScreen  bool
	Scroll     bool
	Mouse      bool
	Unicode    bool
	Bright     bool
	HideShow   bool
	Syntax     bool
	History    bool
	Title      bool
	BCE        bool
	TrueColor  bool
	Color256   bool
	Italic     bool
	Debug      bool
}

// DefaultCapabilities returns every capability enabled, the baseline
// before TERM-specific or -O narrowing is applied.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		AltScreen: true, Scroll: true, Mouse: true, Unicode: true,
		Bright: true, HideShow: true, Syntax: true, History: true,
		Title: true, BCE: true, TrueColor: true, Color256: true, Italic: true,
	}
}

// ProbeTerm narrows caps according to the known TERM quirks named in
// spec §6.
func ProbeTerm(term string, caps Capabilities) Capabilities {
	switch term {
	case "linux":
		caps.Scroll = false
	case "cons25":
		caps.HideShow = false
		caps.AltScreen = false
		caps.Mouse = false
		caps.Unicode = false
		caps.Bright = false
	case "sortix":
		caps.Title = false
	case "tmux":
		caps.Scroll = false
		caps.BCE = false
	case "screen":
		caps.TrueColor = false
		caps.Italic = false
	case "toaru-vga":
		caps.Color256 = false
		caps.TrueColor = false
	}
	return caps
}

// ApplyOption applies one `-O NAME` flag (spec §6): "noX" disables
// capability X; the positive forms "history" and "debug" re-enable or
// raise their capability. "debug" and "nodebug" gate the structured
// logger's debug level; whichever comes last on the command line wins.
func ApplyOption(caps Capabilities, name string) Capabilities {
	switch name {
	case "debug":
		caps.Debug = true
	case "nodebug":
		caps.Debug = false
	case "noaltscreen":
		caps.AltScreen = false
	case "noscroll":
		caps.Scroll = false
	case "nomouse":
		caps.Mouse = false
	case "nounicode":
		caps.Unicode = false
	case "nobright":
		caps.Bright = false
	case "nohideshow":
		caps.HideShow = false
	case "nosyntax":
		caps.Syntax = false
	case "nohistory":
		caps.History = false
	case "notitle":
		caps.Title = false
	case "nobce":
		caps.BCE = false
	case "history":
		caps.History = true
	}
	return caps
}
