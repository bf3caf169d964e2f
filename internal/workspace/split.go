package workspace

// Layout recomputes each active view's Left/Width fields against a
// terminal of the given width, per spec §4.4's three configurations:
// single full-width, two distinct buffers, or a self-split of one
// buffer with two independently scrolled viewports.
func (r *Registry) Layout(termWidth int) {
	left := r.At(r.LeftIdx)
	if !r.SplitActive {
		left.Left = 0
		left.Width = termWidth
		return
	}

	boundary := termWidth * r.SplitPercent / 100
	if boundary < 1 {
		boundary = 1
	}
	if boundary > termWidth-1 {
		boundary = termWidth - 1
	}

	left.Left = 0
	left.Width = boundary

	rightBuf := r.At(r.RightIdx)
	rightBuf.Left = boundary
	rightBuf.Width = termWidth - boundary

	// Self-split's inactive viewport offset lives in ViewLeftOffset/
	// ViewRightOffset, not on the shared buffer (spec §4.4); the
	// renderer substitutes the right register in directly when
	// painting, so Layout only needs to size the two panes here.
}

// FocusSide switches the active view to whichever side's buffer is at
// the given index, parking the deactivated side's offset for a
// self-split (spec §4.4).
func (r *Registry) FocusSide(toLeft bool) {
	if r.SelfSplit {
		if toLeft {
			r.ViewRightOffset = r.At(r.RightIdx).Offset
		} else {
			r.ViewLeftOffset = r.At(r.LeftIdx).Offset
		}
	}
	if toLeft {
		r.SetActive(r.LeftIdx)
	} else {
		r.SetActive(r.RightIdx)
	}
}
