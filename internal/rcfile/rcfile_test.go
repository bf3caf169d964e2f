package rcfile

import (
	"strings"
	"testing"
)

func TestApplyParsesKeyValuePairs(t *testing.T) {
	src := strings.NewReader(strings.Join([]string{
		"# a comment",
		"",
		"theme=solarized",
		"padding=4",
		"hlparen=1",
		"splitpercent=60",
		"git=1",
	}, "\n"))

	cfg, err := apply(src, Defaults())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Theme != "solarized" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.CursorPadding != 4 {
		t.Errorf("padding = %d", cfg.CursorPadding)
	}
	if !cfg.HighlightParens {
		t.Errorf("hlparen should be true")
	}
	if cfg.SplitPercent != 60 {
		t.Errorf("splitpercent = %d", cfg.SplitPercent)
	}
	if !cfg.CheckGit {
		t.Errorf("git should be true")
	}
}

func TestApplyBareKeyEnablesBooleanFlag(t *testing.T) {
	src := strings.NewReader("history\nshiftscrolling\n")
	cfg, err := apply(src, Defaults())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !cfg.HistoryEnabled || !cfg.ShiftScrolling {
		t.Fatalf("expected both bare-key flags enabled, got %+v", cfg)
	}
}

func TestApplyZeroValueDisablesBooleanFlag(t *testing.T) {
	src := strings.NewReader("history=0\n")
	cfg, err := apply(src, Defaults())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.HistoryEnabled {
		t.Fatalf("expected history=0 to disable")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/.bimrc", Defaults())
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("expected unmodified defaults, got %+v", cfg)
	}
}

func TestApplyIndentedCommentIsIgnored(t *testing.T) {
	src := strings.NewReader(strings.Join([]string{
		"  # indented comment",
		"\t# tab-indented comment",
		"theme=gruvbox",
	}, "\n"))

	cfg, err := apply(src, Defaults())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Theme != "gruvbox" {
		t.Fatalf("expected theme applied past the indented comments, got %+v", cfg)
	}
}

func TestApplyUnknownKeyIsIgnored(t *testing.T) {
	src := strings.NewReader("bogus=123\ntheme=x\n")
	cfg, err := apply(src, Defaults())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Theme != "x" {
		t.Fatalf("expected theme still applied, got %+v", cfg)
	}
}
