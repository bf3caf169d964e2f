// Package history implements the doubly-linked undo/redo journal: a
// flat append-only arena of nodes addressed by integer index (spec §9's
// "arena with integer indices" suggestion, avoiding Go reference
// cycles), with BREAK markers delimiting user-visible transactions.
package history

import "github.com/kobzarvs/bim/internal/cellbuf"

// Kind identifies a journal record's shape (spec §4.2).
type Kind int

const (
	Sentinel Kind = iota
	Insert
	Delete
	Replace
	AddLine
	RemoveLine
	ReplaceLine
	SplitLine
	MergeLines
	Break
)

// Record is one journal entry. Only the fields relevant to Kind are
// populated; owned line snapshots are deep copies so later mutation of
// the live buffer cannot corrupt history.
type Record struct {
	Kind Kind

	Line int
	Col  int

	Codepoint    cellbuf.Cell
	OldCodepoint cellbuf.Cell

	OldLine *cellbuf.Line
	NewLine *cellbuf.Line
}

// node is one arena slot; Prev/Next are indices into Journal.nodes, -1
// meaning "no link". This is the "owned forward list plus non-owning
// back indices" shape spec §9 asks for.
type node struct {
	rec  Record
	prev int
	next int
}

// Journal is a per-buffer undo/redo history rooted at a sentinel node at
// index 0.
type Journal struct {
	nodes []node
	head  int // current position
}

// New returns a journal positioned at its sentinel root.
func New() *Journal {
	j := &Journal{nodes: make([]node, 0, 64)}
	j.nodes = append(j.nodes, node{rec: Record{Kind: Sentinel}, prev: -1, next: -1})
	j.head = 0
	return j
}

// Head returns the index of the current position, usable as an opaque
// marker for Buffer.LastSaveHeadAt / Buffer.Modified.
func (j *Journal) Head() int { return j.head }

// AtSentinel reports whether the journal is at its root (nothing to
// undo).
func (j *Journal) AtSentinel() bool { return j.head == 0 }

// Append adds rec as the new head, truncating anything beyond the old
// head (the forward redo chain), per spec §4.2's append rule.
func (j *Journal) Append(rec Record) {
	j.nodes = j.nodes[:j.head+1]
	j.nodes = append(j.nodes, node{rec: rec, prev: j.head, next: -1})
	j.nodes[j.head].next = j.head + 1
	j.head = j.head + 1
}

// HeadIsBreak reports whether the current head is itself a BREAK,
// letting callers avoid pushing adjacent BREAKs.
func (j *Journal) HeadIsBreak() bool {
	return j.nodes[j.head].rec.Kind == Break
}

// Break inserts a transaction boundary unless the head already is one.
func (j *Journal) Break() {
	if j.head == 0 || j.HeadIsBreak() {
		return
	}
	j.Append(Record{Kind: Break})
}

// Stats reports how many lines and characters an undo/redo step touched,
// for status-line reporting per spec §4.2.
type Stats struct {
	Lines int
	Chars int
}

func statsFor(k Kind) Stats {
	switch k {
	case AddLine, RemoveLine, ReplaceLine, SplitLine, MergeLines:
		return Stats{Lines: 1}
	case Insert, Delete, Replace:
		return Stats{Chars: 1}
	default:
		return Stats{}
	}
}

// Applier performs the buffer-side effect of applying or inverting one
// record. Implemented by the buffer package so history stays ignorant
// of cursor/viewport/modified bookkeeping.
type Applier interface {
	ApplyRecord(rec Record, invert bool)
}

// Undo walks backward inverting records, stopping after the first BREAK
// encountered (exclusive), per spec §4.2. Each call unwinds exactly one
// transaction: if the journal is currently parked on a BREAK (left there
// by a previous Undo/Redo call), that boundary is stepped over first,
// then records are inverted until the next BREAK or the sentinel, and
// the journal parks there for the next call.
func (j *Journal) Undo(a Applier) Stats {
	total := Stats{}
	if j.head == 0 {
		return total
	}
	if j.nodes[j.head].rec.Kind == Break {
		j.head = j.nodes[j.head].prev
	}
	for j.head > 0 {
		rec := j.nodes[j.head].rec
		if rec.Kind == Break {
			break
		}
		a.ApplyRecord(rec, true)
		s := statsFor(rec.Kind)
		total.Lines += s.Lines
		total.Chars += s.Chars
		j.head = j.nodes[j.head].prev
	}
	return total
}

// Redo walks forward applying records, stopping at the next BREAK
// (inclusive; head lands on it), per spec §4.2.
func (j *Journal) Redo(a Applier) Stats {
	total := Stats{}
	for j.head+1 < len(j.nodes) {
		next := j.nodes[j.head].next
		if next < 0 {
			break
		}
		rec := j.nodes[next].rec
		j.head = next
		if rec.Kind == Break {
			break
		}
		a.ApplyRecord(rec, false)
		s := statsFor(rec.Kind)
		total.Lines += s.Lines
		total.Chars += s.Chars
	}
	return total
}
