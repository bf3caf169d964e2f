package render

// outBuf accumulates one frame's escape-coded output before a single
// write to the terminal, adapted from the teacher's appendBuffer (the
// "single write, no per-cell syscall" discipline carries over
// unchanged).
type outBuf struct {
	b []byte
}

func (o *outBuf) writeString(s string) { o.b = append(o.b, s...) }

func (o *outBuf) writeByte(b byte) { o.b = append(o.b, b) }
