// Package cache implements the `~/.biminfo` cursor-position cache
// (spec §6): a plain line-oriented file, one `>path line col` record
// per previously visited file — grounded on `original_source/apps/bim.c`'s
// fetch_from_biminfo/update_biminfo, adapted from its fixed-position
// fseek rewrite into a read-all/rewrite-all pass: Save rewrites the
// whole file, but entries keep their first-insertion order and the
// fixed field widths below keep every record the same byte length, so
// an updated record keeps its position and surrounding lines do not
// reflow.
package cache

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	headerLine1 = "# This is a biminfo file."
	headerLine2 = "# It was generated by bim. Do not edit it by hand!"
	headerLine3 = "# Cursor positions and other state are stored here."

	// fieldWidth matches the original's "%20d" formatting: each numeric
	// field is rewritable in place regardless of how many digits it holds.
	fieldWidth = 20
)

// Cache is the in-memory record set backing ~/.biminfo, loaded once
// and rewritten wholesale on Save (spec's "re-read and rewritten in
// place" becomes, in Go, "read once, rewrite the whole small file,"
// since there is no open-file in-place-seek primitive to mirror and
// the file is never large enough for that to matter).
type Cache struct {
	path    string
	entries map[string][2]int // absolute path -> [line, col]
	order   []string
}

// DefaultPath returns ~/.biminfo, or an error if the home directory
// can't be resolved.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".biminfo"), nil
}

// Load reads path if it exists; a missing file is not an error, it
// just yields an empty Cache (spec §7 I/O errors don't crash).
func Load(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string][2]int)}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, ">") {
			continue
		}
		p, lineNo, col, ok := parseRecord(line)
		if !ok {
			continue
		}
		if _, seen := c.entries[p]; !seen {
			c.order = append(c.order, p)
		}
		c.entries[p] = [2]int{lineNo, col}
	}
	return c, sc.Err()
}

// parseRecord splits ">path %20d %20d" back into its fields. The
// path itself may contain spaces, so the two trailing fixed-width
// fields are peeled off the end instead of split on whitespace.
func parseRecord(line string) (path string, lineNo, col int, ok bool) {
	body := strings.TrimPrefix(line, ">")
	body = strings.TrimRight(body, "\r\n")
	if len(body) < 2*fieldWidth+2 {
		return "", 0, 0, false
	}
	colField := body[len(body)-fieldWidth:]
	rest := body[:len(body)-fieldWidth]
	rest = strings.TrimSuffix(rest, " ")
	lineField := rest[len(rest)-fieldWidth:]
	rest = rest[:len(rest)-fieldWidth]
	rest = strings.TrimSuffix(rest, " ")

	ln, err1 := strconv.Atoi(strings.TrimSpace(lineField))
	cl, err2 := strconv.Atoi(strings.TrimSpace(colField))
	if err1 != nil || err2 != nil {
		return "", 0, 0, false
	}
	return rest, ln, cl, true
}

// Position returns the cached (line, col) for an absolute path, or
// ok=false if nothing is recorded for it (spec's fetch_from_biminfo).
func (c *Cache) Position(absPath string) (line, col int, ok bool) {
	v, found := c.entries[absPath]
	if !found {
		return 0, 0, false
	}
	return v[0], v[1], true
}

// Update records absPath's cursor position, moving it to the known
// slot if already present or appending a new one (spec's
// update_biminfo: "Update" in place if found, append otherwise).
func (c *Cache) Update(absPath string, line, col int) {
	if _, seen := c.entries[absPath]; !seen {
		c.order = append(c.order, absPath)
	}
	c.entries[absPath] = [2]int{line, col}
}

// Save rewrites the whole cache file: the original's three-line header
// on every write, then one fixed-width record per entry in the order
// entries were first added (Update does not reorder them).
func (c *Cache) Save() error {
	f, err := os.OpenFile(c.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, headerLine1)
	fmt.Fprintln(w, headerLine2)
	fmt.Fprintln(w, headerLine3)
	for _, p := range c.order {
		v := c.entries[p]
		fmt.Fprintf(w, ">%s %*d %*d\n", p, fieldWidth, v[0], fieldWidth, v[1])
	}
	return w.Flush()
}
