// Package gitdiff annotates a buffer's lines with their git revision
// status (spec §6 Git adapter), launching `git diff -U0` the way
// qedit's internal/gitinfo shells out to git for branch/checkout
// state, synchronously and to completion (spec §5: "the only place the
// editor blocks for external work").
package gitdiff

import (
	"bufio"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/kobzarvs/bim/internal/cellbuf"
)

// hunkHeader matches "@@ -from[,fromCount] +to[,toCount] @@" — spec §6
// says only this header line is parsed, the hunk body is ignored.
var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

type Hunk struct {
	FromLine, FromCount int
	ToLine, ToCount     int
}

// Diff runs `git diff -U0 -- path` against path's directory and
// returns the parsed hunks, or an error if git is unavailable or the
// file isn't tracked — both of which callers treat as "no annotation",
// never a fatal condition (spec §7 I/O errors are non-fatal).
func Diff(path string) ([]Hunk, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	cmd := exec.Command("git", "-C", dir, "diff", "-U0", "--", base)
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return parseHunks(out), nil
}

func parseHunks(out []byte) []Hunk {
	var hunks []Hunk
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "@@") {
			continue
		}
		m := hunkHeader.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		h := Hunk{
			FromLine:  atoiOr(m[1], 0),
			FromCount: atoiOrDefault(m[2], 1),
			ToLine:    atoiOr(m[3], 0),
			ToCount:   atoiOrDefault(m[4], 1),
		}
		hunks = append(hunks, h)
	}
	return hunks
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// atoiOrDefault implements the unified-diff convention that an absent
// count means exactly one line.
func atoiOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoiOr(s, def)
}

// Annotate paints lines' RevStatus fields from hunks (spec §6: "green
// added, blue modified, red deletion bar above next line, combined
// red+blue when a deletion and modification meet").
//
// A hunk with fromCount == 0 is a pure addition (nothing removed at
// that point); toCount == 0 is a pure deletion, flagged on the line
// that follows the deletion point. Otherwise every touched destination
// line from toLine to toLine+toCount-1 is a modification.
func Annotate(lines []*cellbuf.Line, hunks []Hunk) {
	for _, h := range hunks {
		switch {
		case h.FromCount == 0 && h.ToCount > 0:
			for i := 0; i < h.ToCount; i++ {
				setAdded(lines, h.ToLine+i)
			}
		case h.ToCount == 0:
			setDeletedAbove(lines, h.ToLine+1)
		default:
			n := h.ToCount
			if h.FromCount > n {
				n = h.FromCount
			}
			for i := 0; i < n; i++ {
				setModified(lines, h.ToLine+i)
			}
			if h.FromCount > h.ToCount {
				setDeletedAbove(lines, h.ToLine+h.ToCount)
			}
		}
	}
}

func setAdded(lines []*cellbuf.Line, lineNo int) {
	if l, ok := at(lines, lineNo); ok {
		l.RevStatus = cellbuf.RevAdded
	}
}

func setModified(lines []*cellbuf.Line, lineNo int) {
	if l, ok := at(lines, lineNo); ok {
		l.RevStatus = cellbuf.RevModifiedCommitted
	}
}

func setDeletedAbove(lines []*cellbuf.Line, lineNo int) {
	if l, ok := at(lines, lineNo); ok {
		if l.RevStatus == cellbuf.RevModifiedCommitted {
			l.RevStatus = cellbuf.RevModifiedAndDeletedAbove
		} else {
			l.RevStatus = cellbuf.RevDeletedAbove
		}
	}
}

func at(lines []*cellbuf.Line, lineNo int) (*cellbuf.Line, bool) {
	if lineNo < 1 || lineNo > len(lines) {
		return nil, false
	}
	return lines[lineNo-1], true
}
