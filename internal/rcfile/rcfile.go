// Package rcfile parses `~/.bimrc` (spec §6): line-oriented `key[=value]`
// pairs, `#` comments, blank lines ignored. There's no honest third-party
// home for this grammar — it isn't TOML/YAML/INI, just bare key=value
// lines the way `original_source/apps/bim.c`'s load_bimrc reads them —
// so this is deliberately a small hand-rolled scanner (DESIGN.md: a
// justified stdlib-only package).
package rcfile

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config mirrors global_config's bimrc-settable fields, with the same
// boolean-via-atoi and "bare key means true" conventions as the original.
type Config struct {
	Theme           string
	HistoryEnabled  bool
	CursorPadding   int
	HighlightParens bool
	HighlightLine   bool
	SplitPercent    int
	ShiftScrolling  bool
	ScrollAmount    int
	CheckGit        bool
	ColorGutter     bool
}

// Defaults mirrors the original's compiled-in defaults for the fields a
// bimrc can override, so Load can be called against a config already
// seeded by flags without clobbering anything a key never mentions.
func Defaults() Config {
	return Config{
		CursorPadding:  0,
		SplitPercent:   50,
		ScrollAmount:   5,
		HistoryEnabled: false,
	}
}

// Load reads path (if it exists; a missing file is not an error, matching
// the original's silent fopen-failure return) and applies any keys it
// names onto a copy of cfg.
func Load(path string, cfg Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	return apply(f, cfg)
}

func apply(r io.Reader, cfg Config) (Config, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, value, hasValue := strings.Cut(line, "=")
		switch key {
		case "theme":
			if hasValue {
				cfg.Theme = value
			}
		case "history":
			cfg.HistoryEnabled = boolFlag(value, hasValue)
		case "padding":
			if hasValue {
				cfg.CursorPadding = atoiOr(value, cfg.CursorPadding)
			}
		case "hlparen":
			if hasValue {
				cfg.HighlightParens = atoiOr(value, 0) != 0
			}
		case "hlcurrent":
			if hasValue {
				cfg.HighlightLine = atoiOr(value, 0) != 0
			}
		case "splitpercent":
			if hasValue {
				cfg.SplitPercent = atoiOr(value, cfg.SplitPercent)
			}
		case "shiftscrolling":
			cfg.ShiftScrolling = boolFlag(value, hasValue)
		case "scrollamount":
			if hasValue {
				cfg.ScrollAmount = atoiOr(value, cfg.ScrollAmount)
			}
		case "git":
			if hasValue {
				cfg.CheckGit = atoiOr(value, 0) != 0
			}
		case "colorgutter":
			if hasValue {
				cfg.ColorGutter = atoiOr(value, 0) != 0
			}
		}
	}
	return cfg, sc.Err()
}

// boolFlag implements the original's "bare key enables, key=N follows N"
// convention used by history and shiftscrolling.
func boolFlag(value string, hasValue bool) bool {
	if !hasValue {
		return true
	}
	return atoiOr(value, 1) != 0
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
