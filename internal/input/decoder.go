package input

import (
	"github.com/kobzarvs/bim/internal/utf8dfa"
)

// ByteSource is a blocking, timeout-bounded byte reader — the one
// point where this package touches the operating system, satisfied by
// cmd/bim's stdinSource (raw stdin) in production and by a fake in
// tests.
type ByteSource interface {
	// ReadByte blocks up to timeoutMs for one byte. ok is false on
	// timeout; err is non-nil only on a genuine I/O failure.
	ReadByte(timeoutMs int) (b byte, ok bool, err error)
}

const (
	DefaultTimeoutMs = 200
	TightTimeoutMs   = 10
)

// Decoder turns a byte stream into Events: ASCII/UTF-8 runes pass
// through the shared DFA; ESC triggers CSI/X10-mouse parsing with its
// own timeout per spec §4.6.
type Decoder struct {
	src ByteSource

	hasPushback bool
	pushback    byte

	// TimeoutMs is applied to the first byte of a read; Decoder uses
	// DefaultTimeoutMs unless the caller lowers it for the tight
	// insert-redraw loop (spec §4.6).
	TimeoutMs int
}

func NewDecoder(src ByteSource) *Decoder {
	return &Decoder{src: src, TimeoutMs: DefaultTimeoutMs}
}

func (d *Decoder) unreadByte(b byte) {
	d.pushback = b
	d.hasPushback = true
}

func (d *Decoder) nextByte(timeoutMs int) (byte, bool, error) {
	if d.hasPushback {
		d.hasPushback = false
		return d.pushback, true, nil
	}
	return d.src.ReadByte(timeoutMs)
}

// Next blocks for and decodes one input event.
func (d *Decoder) Next() (Event, error) {
	b, ok, err := d.nextByte(d.TimeoutMs)
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{}, errTimeout
	}
	if b == 0x1b {
		return d.decodeEscape()
	}
	return d.decodeUTF8(b)
}

// decodeUTF8 feeds bytes through the shared DFA until a code point
// accepts or the decoder desyncs and resets without emitting (spec
// §4.6).
func (d *Decoder) decodeUTF8(first byte) (Event, error) {
	var dec utf8dfa.Decoder
	b := first
	for {
		r, ok, done := dec.Feed(b)
		if ok {
			return Event{Kind: KeyRune, Rune: r}, nil
		}
		if done {
			// desynced without accepting: try again from a fresh byte
			nb, got, err := d.nextByte(d.TimeoutMs)
			if err != nil {
				return Event{}, err
			}
			if !got {
				return Event{}, errTimeout
			}
			b = nb
			continue
		}
		nb, got, err := d.nextByte(d.TimeoutMs)
		if err != nil {
			return Event{}, err
		}
		if !got {
			return Event{}, errTimeout
		}
		b = nb
	}
}

// decodeEscape implements spec §4.6: on ESC, the next byte is awaited
// with the standard timeout; ESC alone yields an unhandled ESC event.
func (d *Decoder) decodeEscape() (Event, error) {
	b1, ok, err := d.nextByte(DefaultTimeoutMs)
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{Kind: KeyEscape}, nil
	}
	if b1 != '[' {
		d.unreadByte(b1)
		return Event{Kind: KeyEscape}, nil
	}
	return d.decodeCSI()
}

// decodeCSI accumulates digits/';' then dispatches on the final byte
// (spec §4.6): a final byte in {A,B,C,D,H,F,Z,~,M} produces a
// navigation or mouse event.
func (d *Decoder) decodeCSI() (Event, error) {
	var params []int
	cur := -1
	for {
		b, ok, err := d.nextByte(DefaultTimeoutMs)
		if err != nil {
			return Event{}, err
		}
		if !ok {
			return Event{Kind: KeyEscape}, nil
		}
		switch {
		case b >= '0' && b <= '9':
			if cur < 0 {
				cur = 0
			}
			cur = cur*10 + int(b-'0')
		case b == ';':
			params = append(params, cur)
			cur = -1
		case b == 'M':
			return d.decodeMouse()
		case b == 'A' || b == 'B' || b == 'C' || b == 'D' || b == 'H' || b == 'F' || b == 'Z' || b == '~':
			if cur >= 0 {
				params = append(params, cur)
			}
			return csiEvent(b, params), nil
		default:
			return Event{Kind: KeyEscape}, nil
		}
	}
}

func csiEvent(final byte, params []int) Event {
	mod := ModNone
	code := -1
	if len(params) == 1 {
		code = params[0]
	} else if len(params) >= 2 {
		// CSI 1;<mod><dir> form: params[0] is usually 1, params[1] is
		// the modifier digit named in spec §4.6 (5/3/4).
		code = params[1]
	}
	switch code {
	case 5:
		mod = ModWord
	case 3:
		mod = ModSplitResize
	case 4:
		mod = ModCrossSplitFocus
	}

	switch final {
	case 'A':
		return Event{Kind: KeyNav, Nav: NavUp, Mod: mod}
	case 'B':
		return Event{Kind: KeyNav, Nav: NavDown, Mod: mod}
	case 'C':
		return Event{Kind: KeyNav, Nav: NavRight, Mod: mod}
	case 'D':
		return Event{Kind: KeyNav, Nav: NavLeft, Mod: mod}
	case 'H':
		return Event{Kind: KeyNav, Nav: NavHome, Mod: mod}
	case 'F':
		return Event{Kind: KeyNav, Nav: NavEnd, Mod: mod}
	case 'Z':
		return Event{Kind: KeyNav, Nav: NavShiftTab}
	case '~':
		if len(params) > 0 {
			switch params[0] {
			case 1, 7:
				return Event{Kind: KeyNav, Nav: NavHome}
			case 4, 8:
				return Event{Kind: KeyNav, Nav: NavEnd}
			case 5:
				return Event{Kind: KeyNav, Nav: NavPageUp}
			case 6:
				return Event{Kind: KeyNav, Nav: NavPageDown}
			}
		}
	}
	return Event{Kind: KeyEscape}
}

// decodeMouse reads a classical X10 mouse packet: three bytes
// (buttons, x, y), each offset by 32 (spec §4.6).
func (d *Decoder) decodeMouse() (Event, error) {
	var raw [3]byte
	for i := range raw {
		b, ok, err := d.nextByte(DefaultTimeoutMs)
		if err != nil {
			return Event{}, err
		}
		if !ok {
			return Event{Kind: KeyEscape}, nil
		}
		raw[i] = b
	}
	btn := int(raw[0]) - 32
	x := int(raw[1]) - 32
	y := int(raw[2]) - 32
	return Event{Kind: KeyMouse, MouseButton: MouseButton(btn), MouseX: x, MouseY: y}, nil
}

type timeoutError struct{}

func (timeoutError) Error() string { return "input: read timed out" }

var errTimeout = timeoutError{}

// IsTimeout reports whether err is the decoder's own read-timeout
// sentinel, letting the main loop distinguish "no input yet" from a
// real I/O error.
func IsTimeout(err error) bool {
	_, ok := err.(timeoutError)
	return ok
}
