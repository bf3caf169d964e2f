// Package termctl owns the terminal: entering and leaving raw mode,
// probing size via ioctl, and the SIGWINCH/SIGTSTP/SIGCONT signal path
// (spec §5). It is the one place in the program allowed to touch the
// controlling tty directly.
package termctl

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Controller owns the original terminal state so it can be restored on
// any exit path, clean or abnormal (spec §5).
type Controller struct {
	fd       int
	original *term.State
}

func New() *Controller {
	return &Controller{fd: int(os.Stdin.Fd())}
}

// EnableRaw puts the terminal into raw mode, mirroring the teacher's
// term.MakeRaw/term.Restore discipline.
func (c *Controller) EnableRaw() error {
	st, err := term.MakeRaw(c.fd)
	if err != nil {
		return err
	}
	c.original = st
	return nil
}

// Restore is best-effort and idempotent: terminal-restore errors on
// exit must never propagate (spec §7).
func (c *Controller) Restore() {
	if c.original == nil {
		return
	}
	_ = term.Restore(c.fd, c.original)
	c.original = nil
}

// Size reads the current window size via TIOCGWINSZ, falling back to
// 80x24 if the ioctl fails (e.g. stdout isn't a tty).
func (c *Controller) Size() (rows, cols int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Row == 0 || ws.Col == 0 {
		return 24, 80
	}
	return int(ws.Row), int(ws.Col)
}
