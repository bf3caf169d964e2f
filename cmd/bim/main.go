// Command bim is a terminal-based, modal text editor in the vi family
// (spec §1). This file wires the core packages — buffer, workspace,
// render, input, modehandler, termctl, gitdiff, cache, rcfile — into a
// runnable process, the way the teacher's main()/ProcessKeypress loop
// ties its own flat set of globals together, generalized to multiple
// buffers, splits, and the expanded option surface spec §6 names.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/cache"
	"github.com/kobzarvs/bim/internal/cellbuf"
	"github.com/kobzarvs/bim/internal/gitdiff"
	"github.com/kobzarvs/bim/internal/input"
	"github.com/kobzarvs/bim/internal/logging"
	"github.com/kobzarvs/bim/internal/modehandler"
	"github.com/kobzarvs/bim/internal/rcfile"
	"github.com/kobzarvs/bim/internal/render"
	"github.com/kobzarvs/bim/internal/syntax"
	"github.com/kobzarvs/bim/internal/termctl"
	"github.com/kobzarvs/bim/internal/workspace"
)

const version = "1.0.0"

const defaultTabstop = 4

// options collects the parsed command line, mirroring global_config's
// bimrc-and-flag-settable fields (spec §6).
type options struct {
	readOnly   bool
	rcPath     string
	dumpFile   string
	dumpWithNo bool
	capOpts    []string
	files      []string
	fromStdin  bool
}

func main() {
	opts, exitCode, handled := parseArgs(os.Args[1:])
	if handled {
		os.Exit(exitCode)
	}

	if opts.dumpFile != "" {
		os.Exit(runDump(opts))
	}

	os.Exit(runInteractive(opts))
}

// parseArgs implements the `-?c:C:u:RO:-:` getopt surface by hand:
// Go's flag package doesn't model single-dash-multi-letter options or
// the `--` long-option family this spec borrows straight from the
// original getopt call (spec §6).
func parseArgs(args []string) (options, int, bool) {
	var o options
	i := 0
	for ; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			i++
			goto files
		case a == "--version":
			printVersion()
			return o, 0, true
		case a == "--help":
			printUsage()
			return o, 0, true
		case a == "-?":
			printUsage()
			return o, 0, true
		case a == "-R":
			o.readOnly = true
		case a == "-u":
			i++
			if i >= len(args) {
				return o, 1, true
			}
			o.rcPath = args[i]
		case a == "-c" || a == "-C":
			i++
			if i >= len(args) {
				return o, 1, true
			}
			o.dumpFile = args[i]
			o.dumpWithNo = a == "-C"
		case a == "-O":
			i++
			if i >= len(args) {
				return o, 1, true
			}
			o.capOpts = append(o.capOpts, args[i])
		case strings.HasPrefix(a, "-") && a != "-":
			fmt.Fprintf(os.Stderr, "bim: unrecognized option: %s\n", a)
			return o, 1, true
		default:
			goto files
		}
	}
files:
	for ; i < len(args); i++ {
		if args[i] == "-" {
			o.fromStdin = true
			continue
		}
		o.files = append(o.files, args[i])
	}
	return o, 0, false
}

func printVersion() {
	fmt.Fprintf(os.Stderr, "bim %s\n", version)
	reg := syntax.NewRegistry()
	fmt.Fprint(os.Stderr, " Available syntax highlighters:")
	for _, n := range reg.Names() {
		fmt.Fprintf(os.Stderr, " %s", n)
	}
	fmt.Fprintln(os.Stderr)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: bim [-RO] [-u rcfile] [-c|-C file] [file ...]")
	fmt.Fprintln(os.Stderr, " -R     open read-only")
	fmt.Fprintln(os.Stderr, " -u     override bimrc file")
	fmt.Fprintln(os.Stderr, " -c     dump file with syntax highlighting to stdout")
	fmt.Fprintln(os.Stderr, " -C     as -c, with line numbers")
	fmt.Fprintln(os.Stderr, " -O opt disable a display capability")
	fmt.Fprintln(os.Stderr, " --version, --help")
}

func rcPath(o options) string {
	if o.rcPath != "" {
		return o.rcPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bimrc")
}

func loadBuffer(b *buffer.Buffer, path string, synReg *syntax.Registry) {
	if def := synReg.Match(path); def != nil {
		b.Syntax = def
	}
	_ = b.Load(path)
}

// runDump implements `-c`/`-C`: load one file, highlight it, print it,
// exit, never touching the terminal's raw mode (spec §6).
func runDump(o options) int {
	synReg := syntax.NewRegistry()
	b := buffer.New(defaultTabstop)
	loadBuffer(b, o.dumpFile, synReg)

	r := &render.Renderer{
		Out:   os.Stdout,
		Caps:  termctl.DefaultCapabilities(),
		Theme: render.DefaultTheme(),
	}
	r.Dump(os.Stdout, b.Lines, o.dumpWithNo)
	return 0
}

// runInteractive sets up the terminal, opens the initial buffers, and
// drives the read-decode-dispatch-render loop until the last buffer
// closes (spec §5 main loop).
func runInteractive(o options) int {
	cfg, _ := rcfile.Load(rcPath(o), rcfile.Defaults())

	caps := termctl.DefaultCapabilities()
	caps = termctl.ProbeTerm(os.Getenv("TERM"), caps)
	if !cfg.HistoryEnabled {
		caps.History = false
	}
	for _, name := range o.capOpts {
		caps = termctl.ApplyOption(caps, name)
	}

	if err := logging.Init(caps.Debug); err != nil {
		// Logging failure must never stop the editor (spec §7).
		_ = err
	} else {
		defer logging.Close()
	}

	ctl := termctl.New()
	if err := ctl.EnableRaw(); err != nil {
		fmt.Fprintln(os.Stderr, "bim: failed to enter raw mode:", err)
		return 1
	}
	defer ctl.Restore()

	if caps.AltScreen {
		fmt.Fprint(os.Stdout, "\x1b[?1049h")
		defer fmt.Fprint(os.Stdout, "\x1b[?1049l")
	}
	if caps.Mouse {
		fmt.Fprint(os.Stdout, "\x1b[?1000h")
		defer fmt.Fprint(os.Stdout, "\x1b[?1000l")
	}

	synReg := syntax.NewRegistry()
	reg := workspace.New()
	reg.SplitPercent = cfg.SplitPercent

	posCache, err := cache.Load(mustCachePath())
	if err != nil {
		posCache, _ = cache.Load("")
	}

	openInitialBuffers(o, reg, synReg, posCache, cfg.CheckGit)

	rows, cols := ctl.Size()
	r := &render.Renderer{Out: os.Stdout, Caps: caps, Theme: render.DefaultTheme(), Width: cols, Height: rows}
	layoutPanes(reg, rows, cols)

	shell := func(cmdline string) (string, error) {
		ctl.Restore()
		fmt.Print("\x1b[?1049l\r\n")
		cmd := exec.Command("/bin/sh", "-c", cmdline)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		err := cmd.Run()
		fmt.Print("\r\n[press Enter to continue]")
		bufio.NewReader(os.Stdin).ReadString('\n')
		fmt.Print("\x1b[?1049h")
		ctl.EnableRaw()
		if err != nil {
			return "", err
		}
		return "shell command exited", nil
	}

	disp := modehandler.NewDispatcher(reg, shell)
	disp.SynReg = synReg
	disp.ShiftScrolling = cfg.ShiftScrolling
	if cfg.ScrollAmount > 0 {
		disp.ScrollAmount = cfg.ScrollAmount
	}
	if o.readOnly {
		reg.Active().ReadOnly = true
	}

	dec := input.NewDecoder(&stdinSource{fd: int(os.Stdin.Fd())})

	router := termctl.NewSignalRouter(ctl)
	router.OnResize = func() {
		rows, cols = ctl.Size()
		r.Width, r.Height = cols, rows
		layoutPanes(reg, rows, cols)
	}
	router.Start()
	defer router.Stop()

	r.Render(reg, render.ViewState{})
	for {
		ev, err := dec.Next()
		if err != nil {
			if input.IsTimeout(err) {
				continue
			}
			break
		}
		out := disp.Handle(ev)
		if out.Quit || out.QuitAll {
			break
		}
		active := reg.Active()
		render.ScrollIntoView(active, r.Height-3, active.Width, cfg.CursorPadding)
		r.Render(reg, out.View)
	}

	savePositions(reg, posCache)
	return 0
}

func openInitialBuffers(o options, reg *workspace.Registry, synReg *syntax.Registry, posCache *cache.Cache, checkGit bool) {
	if o.fromStdin {
		b := buffer.New(defaultTabstop)
		scanStdin(b)
		reg.Add(b)
		return
	}
	if len(o.files) == 0 {
		reg.Add(buffer.New(defaultTabstop))
		return
	}
	for _, f := range o.files {
		b := buffer.New(defaultTabstop)
		loadBuffer(b, f, synReg)
		if abs, err := filepath.Abs(f); err == nil {
			if line, col, ok := posCache.Position(abs); ok {
				b.LineNo, b.ColNo = line, col
				b.ClampCursor()
			}
		}
		if checkGit {
			annotateGit(b)
		}
		reg.Add(b)
	}
}

// scanStdin reads the controlling-TTY-is-stderr case (spec §6 `-`):
// the initial buffer's content comes from stdin since stdin itself is
// about to be repurposed as the raw keyboard source.
func scanStdin(b *buffer.Buffer) {
	b.SetLoading(true)
	sc := bufio.NewScanner(os.Stdin)
	first := true
	for sc.Scan() {
		if !first {
			b.AddLine(b.LineCount() - 1)
		}
		first = false
		line := b.Lines[b.LineCount()-1]
		for _, r := range sc.Text() {
			line.Insert(line.Len(), cellbuf.NewCell(r), true)
		}
	}
	b.SetLoading(false)
}

func layoutPanes(reg *workspace.Registry, rows, cols int) {
	reg.Layout(cols)
}

func mustCachePath() string {
	p, err := cache.DefaultPath()
	if err != nil {
		return ""
	}
	return p
}

func savePositions(reg *workspace.Registry, c *cache.Cache) {
	for _, b := range reg.All() {
		if b.FileName == "" {
			continue
		}
		if abs, err := filepath.Abs(b.FileName); err == nil {
			c.Update(abs, b.LineNo, b.ColNo)
		}
	}
	_ = c.Save()
}

// annotateGit refreshes a buffer's gutter from `git diff -U0` when the
// `git` bimrc option is enabled (spec §6's optional collaborator).
func annotateGit(b *buffer.Buffer) {
	if b.FileName == "" {
		return
	}
	hunks, err := gitdiff.Diff(b.FileName)
	if err != nil {
		return
	}
	gitdiff.Annotate(b.Lines, hunks)
}

// stdinSource satisfies input.ByteSource over the raw terminal's stdin
// fd using a poll-based timeout (spec §4.6), the Go analogue of the
// teacher's single blocking read plus the tight-loop escape timeout.
type stdinSource struct {
	fd int
}

func (s *stdinSource) ReadByte(timeoutMs int) (byte, bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	var buf [1]byte
	nr, err := unix.Read(s.fd, buf[:])
	if err != nil {
		return 0, false, err
	}
	if nr == 0 {
		return 0, false, fmt.Errorf("bim: stdin closed")
	}
	return buf[0], true, nil
}
