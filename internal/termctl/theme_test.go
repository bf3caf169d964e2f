package termctl

import "testing"

func TestParseANSIColor(t *testing.T) {
	c := ParseColor("@3")
	if !c.IsANSI || c.ANSIIndex != 3 {
		t.Fatalf("expected ANSI index 3, got %+v", c)
	}
}

func TestParseRawSGRColor(t *testing.T) {
	c := ParseColor("5;196")
	if c.IsANSI {
		t.Fatalf("expected raw SGR tail, got ANSI")
	}
	if c.SGRTail != "5;196" {
		t.Fatalf("expected tail '5;196', got %q", c.SGRTail)
	}
}

func TestSGRBrightIndexMapping(t *testing.T) {
	fg := ParseColor("@11")
	bg := ParseColor("@0")
	got := SGR(fg, bg)
	want := "22;23;24;40;91"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestApplyOptionDisablesCapability(t *testing.T) {
	caps := DefaultCapabilities()
	caps = ApplyOption(caps, "nomouse")
	if caps.Mouse {
		t.Fatalf("expected mouse capability disabled")
	}
}

func TestApplyOptionDebugTogglesCapability(t *testing.T) {
	caps := DefaultCapabilities()
	if caps.Debug {
		t.Fatalf("expected debug off by default")
	}
	caps = ApplyOption(caps, "debug")
	if !caps.Debug {
		t.Fatalf("expected -O debug to enable the debug capability")
	}
	caps = ApplyOption(caps, "nodebug")
	if caps.Debug {
		t.Fatalf("expected -O nodebug to override and disable it again")
	}
}

func TestProbeTermLinuxDisablesScroll(t *testing.T) {
	caps := ProbeTerm("linux", DefaultCapabilities())
	if caps.Scroll {
		t.Fatalf("expected scroll disabled for TERM=linux")
	}
}
