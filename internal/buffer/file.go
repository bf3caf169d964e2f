package buffer

import (
	"bufio"
	"os"

	"github.com/kobzarvs/bim/internal/cellbuf"
	"github.com/kobzarvs/bim/internal/history"
	"github.com/kobzarvs/bim/internal/utf8dfa"
)

// Load decodes path byte-at-a-time through the UTF-8 DFA (spec §6):
// invalid bytes are silently skipped, a trailing empty line produced
// by a final newline is stripped, and the whole load runs under the
// loading flag so it stays linear — no history, no syntax cascade
// until the file is fully read (spec §5).
func (b *Buffer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			b.FileName = path
			b.Lines = []*cellbuf.Line{cellbuf.NewLine()}
			b.History = history.New()
			b.MarkSaved()
			return nil
		}
		return err
	}
	defer f.Close()

	b.FileName = path
	b.SetLoading(true)
	defer b.SetLoading(false)

	lines := []*cellbuf.Line{cellbuf.NewLine()}
	cur := lines[0]
	var dec utf8dfa.Decoder

	r := bufio.NewReader(f)
	sawAnyByte := false
	for {
		byt, rerr := r.ReadByte()
		if rerr != nil {
			break
		}
		sawAnyByte = true
		rn, ok, _ := dec.Feed(byt)
		if !ok {
			continue
		}
		if rn == '\n' {
			lines = append(lines, cellbuf.NewLine())
			cur = lines[len(lines)-1]
			continue
		}
		cur.Insert(cur.Len(), cellbuf.NewCell(rn), true)
	}

	if sawAnyByte && len(lines) > 1 && lines[len(lines)-1].Len() == 0 {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		lines = []*cellbuf.Line{cellbuf.NewLine()}
	}
	b.Lines = lines
	b.LineNo, b.ColNo = 1, 1

	b.loading = true
	for i, l := range b.Lines {
		l.RecomputeTabs(b.Tabstop)
		if b.Syntax != nil {
			b.Engine.Def = b.Syntax
			b.Engine.RecomputeLine(i, l)
		}
	}

	b.History = history.New()
	b.MarkSaved()
	return nil
}

// Save writes each line's cells back to UTF-8, appending \n, per spec
// §6. A single-byte 0x00 cell round-trips as one NUL byte.
func (b *Buffer) Save() error {
	path := b.FileName
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, l := range b.Lines {
		for _, c := range l.Cells {
			if c.Codepoint == 0 {
				w.WriteByte(0)
				continue
			}
			w.WriteRune(c.Codepoint)
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return err
	}
	b.MarkSaved()
	return nil
}
