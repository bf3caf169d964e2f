package main

import "testing"

func TestParseArgsReadOnlyAndFile(t *testing.T) {
	o, code, handled := parseArgs([]string{"-R", "file.go"})
	if handled {
		t.Fatalf("unexpected handled=true, code=%d", code)
	}
	if !o.readOnly {
		t.Errorf("expected readOnly=true")
	}
	if len(o.files) != 1 || o.files[0] != "file.go" {
		t.Errorf("expected one file arg, got %+v", o.files)
	}
}

func TestParseArgsRcPathAndCapOption(t *testing.T) {
	o, _, handled := parseArgs([]string{"-u", "/tmp/myrc", "-O", "nomouse", "a.c", "b.c"})
	if handled {
		t.Fatalf("expected handled=false")
	}
	if o.rcPath != "/tmp/myrc" {
		t.Errorf("rcPath = %q", o.rcPath)
	}
	if len(o.capOpts) != 1 || o.capOpts[0] != "nomouse" {
		t.Errorf("capOpts = %+v", o.capOpts)
	}
	if len(o.files) != 2 {
		t.Errorf("expected two files, got %+v", o.files)
	}
}

func TestParseArgsDumpFlag(t *testing.T) {
	o, _, handled := parseArgs([]string{"-C", "README.md"})
	if handled {
		t.Fatalf("expected handled=false")
	}
	if o.dumpFile != "README.md" || !o.dumpWithNo {
		t.Errorf("expected -C dump of README.md, got %+v", o)
	}
}

func TestParseArgsVersionIsHandled(t *testing.T) {
	_, code, handled := parseArgs([]string{"--version"})
	if !handled || code != 0 {
		t.Fatalf("expected handled=true code=0, got handled=%v code=%d", handled, code)
	}
}

func TestParseArgsUnrecognizedOptionReturnsExitOne(t *testing.T) {
	_, code, handled := parseArgs([]string{"-Z"})
	if !handled || code != 1 {
		t.Fatalf("expected handled=true code=1, got handled=%v code=%d", handled, code)
	}
}

func TestParseArgsDashAfterDoubleDashReadsStdin(t *testing.T) {
	o, _, handled := parseArgs([]string{"--", "-"})
	if handled {
		t.Fatalf("expected handled=false")
	}
	if !o.fromStdin {
		t.Errorf("expected fromStdin=true")
	}
}

func TestParseArgsMissingOptionArgumentIsAnError(t *testing.T) {
	_, code, handled := parseArgs([]string{"-u"})
	if !handled || code != 1 {
		t.Fatalf("expected handled=true code=1 for dangling -u, got handled=%v code=%d", handled, code)
	}
}
