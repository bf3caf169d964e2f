package termctl

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// SignalRouter fans SIGWINCH/SIGTSTP/SIGCONT out to callbacks that the
// main loop installs between input reads, since signals in this
// single-threaded design run between events, not concurrently with
// them (spec §5).
type SignalRouter struct {
	ch chan os.Signal
	c  *Controller

	OnResize func()
	OnStop   func()
	OnCont   func()
}

func NewSignalRouter(c *Controller) *SignalRouter {
	return &SignalRouter{ch: make(chan os.Signal, 4), c: c}
}

func (s *SignalRouter) Start() {
	signal.Notify(s.ch, unix.SIGWINCH, unix.SIGTSTP, unix.SIGCONT)
	go s.drain()
}

func (s *SignalRouter) Stop() { signal.Stop(s.ch) }

func (s *SignalRouter) drain() {
	for sig := range s.ch {
		switch sig {
		case unix.SIGWINCH:
			if s.OnResize != nil {
				s.OnResize()
			}
		case unix.SIGTSTP:
			s.handleStop()
		case unix.SIGCONT:
			if s.OnCont != nil {
				s.OnCont()
			}
			if err := s.c.EnableRaw(); err != nil {
				_ = err
			}
		}
	}
}

// handleStop restores the cooked terminal, leaves the alternate screen,
// then re-raises SIGTSTP to the shell so job control behaves normally
// (spec §5): the default disposition is restored just long enough to
// actually stop the process, since our own Notify would otherwise
// swallow it. SIGCONT reverses this when the shell resumes us.
func (s *SignalRouter) handleStop() {
	s.c.Restore()
	if s.OnStop != nil {
		s.OnStop()
	}
	signal.Reset(unix.SIGTSTP)
	_ = unix.Kill(os.Getpid(), unix.SIGTSTP)
	signal.Notify(s.ch, unix.SIGTSTP)
}
