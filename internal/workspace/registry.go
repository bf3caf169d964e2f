// Package workspace implements the buffer registry and the two-pane
// split layout, plus the process-global yank register (spec §4.4, §3
// Lifecycles/Ownership).
package workspace

import (
	"github.com/kobzarvs/bim/internal/buffer"
)

// Registry is an ordered, geometrically-growing list of buffers. It
// exclusively owns them (spec §3 Ownership); left/right split slots
// are weak indices into this list.
type Registry struct {
	buffers []*buffer.Buffer
	active  int

	LeftIdx, RightIdx int
	SplitActive       bool
	SelfSplit         bool
	SplitPercent      int

	ViewLeftOffset, ViewRightOffset int

	Yank buffer.Yank
}

const minRegistryCap = 8

func New() *Registry {
	return &Registry{buffers: make([]*buffer.Buffer, 0, minRegistryCap), SplitPercent: 50}
}

func (r *Registry) Add(b *buffer.Buffer) int {
	r.buffers = append(r.buffers, b)
	idx := len(r.buffers) - 1
	r.active = idx
	r.LeftIdx = idx
	return idx
}

func (r *Registry) Count() int { return len(r.buffers) }

func (r *Registry) At(idx int) *buffer.Buffer { return r.buffers[idx] }

func (r *Registry) Active() *buffer.Buffer { return r.buffers[r.active] }

func (r *Registry) ActiveIndex() int { return r.active }

func (r *Registry) SetActive(idx int) { r.active = idx }

func (r *Registry) All() []*buffer.Buffer { return r.buffers }

// Close removes the buffer at idx and returns the index that should
// become active: the previous index, or the new last if idx was the
// last (spec §4.4). The second return value is false when the final
// buffer was just closed — the caller should exit the process.
func (r *Registry) Close(idx int) (next int, ok bool) {
	r.buffers = append(r.buffers[:idx], r.buffers[idx+1:]...)
	if len(r.buffers) == 0 {
		return 0, false
	}
	if idx > 0 {
		next = idx - 1
	} else {
		next = 0
	}
	if next >= len(r.buffers) {
		next = len(r.buffers) - 1
	}
	r.active = next
	if r.LeftIdx >= len(r.buffers) {
		r.LeftIdx = len(r.buffers) - 1
	}
	if r.RightIdx >= len(r.buffers) {
		r.RightIdx = len(r.buffers) - 1
	}
	return next, true
}

// ReplaceYank frees the previous yank by simply overwriting it — Go's
// GC reclaims the old slice once unreferenced (spec §3 Lifecycles).
func (r *Registry) ReplaceYank(y buffer.Yank) { r.Yank = y }
