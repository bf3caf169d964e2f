package modehandler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kobzarvs/bim/internal/buffer"
	"github.com/kobzarvs/bim/internal/search"
	"github.com/kobzarvs/bim/internal/syntax"
	"github.com/kobzarvs/bim/internal/workspace"
)

// commandHistoryMax mirrors the original editor's fixed-size ring
// buffer of previously entered ":" commands.
const commandHistoryMax = 255

// CommandHistory is a move-to-front ring buffer of past command-line
// entries: re-entering a command already in history moves it to the
// front instead of duplicating it.
type CommandHistory struct {
	entries []string
}

// Add records cmd at the front of history, removing any earlier
// occurrence of the same text first.
func (h *CommandHistory) Add(cmd string) {
	for i, e := range h.entries {
		if e == cmd {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append([]string{cmd}, h.entries...)
	if len(h.entries) > commandHistoryMax {
		h.entries = h.entries[:commandHistoryMax]
	}
}

// At returns the history entry n steps back from the most recent (0 is
// the most recent command), or "" and false past the end.
func (h *CommandHistory) At(n int) (string, bool) {
	if n < 0 || n >= len(h.entries) {
		return "", false
	}
	return h.entries[n], true
}

// Len reports how many commands are recorded.
func (h *CommandHistory) Len() int { return len(h.entries) }

// ShellRunner executes a `:!cmd` shell escape. It is injected rather
// than called directly so internal/modehandler never imports os/exec
// or internal/termctl, matching the callback-based decoupling already
// used between internal/buffer and its renderer.
type ShellRunner func(cmd string) (output string, err error)

// CommandResult carries the outcome of executing a command-line entry
// back to the caller, to be folded into a render.ViewState.
type CommandResult struct {
	Message      string
	IsError      bool
	Quit         bool
	QuitAll      bool
	CloseActive  bool
	ShellPending string // non-empty: caller must run this through its own terminal/shell plumbing
}

// ExecuteCommand parses and runs a single ":"-prompt command line
// (without its leading ':') against the active buffer/workspace, per
// spec §4.8's command grammar: w/q/wq/x/q!/wq!, a bare line number as
// goto, %s or s substitution, split and tabnew for window/buffer
// management (spec §4.4). history records the entry as typed, including
// any leading '!', before shell dispatch. synReg
// may be nil, in which case `:tabnew` opens its file unhighlighted.
func ExecuteCommand(reg *workspace.Registry, history *CommandHistory, synReg *syntax.Registry, line string) CommandResult {
	history.Add(line)

	if strings.HasPrefix(line, "!") {
		return CommandResult{ShellPending: line[1:]}
	}

	if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
		return gotoLine(reg.Active(), n)
	}

	all := false
	rest := line
	if strings.HasPrefix(rest, "%") {
		all = true
		rest = rest[1:]
	}

	name, arg, _ := strings.Cut(rest, " ")

	switch name {
	case "s":
		return runSubstitute(reg.Active(), arg, all)
	case "w":
		return writeBuffer(reg.Active(), arg)
	case "wq", "x":
		res := writeBuffer(reg.Active(), arg)
		if res.IsError {
			return res
		}
		res.CloseActive = true
		return res
	case "wq!":
		res := writeBuffer(reg.Active(), arg)
		res.CloseActive = true
		return res
	case "q":
		b := reg.Active()
		if b.Modified() {
			return CommandResult{Message: "No write since last change. Use :q! to force exit.", IsError: true}
		}
		return CommandResult{CloseActive: true}
	case "q!":
		return CommandResult{CloseActive: true}
	case "qa", "qa!":
		return CommandResult{QuitAll: true}
	case "split":
		return toggleSplit(reg)
	case "tabnew":
		return tabNew(reg, synReg, arg)
	default:
		return CommandResult{Message: fmt.Sprintf("Not a command: %s", name), IsError: true}
	}
}

// toggleSplit opens or closes the self-split view (spec §4.4 scenario
// 5): both panes start out referencing the same buffer, with the
// inactive side's offset parked in ViewLeftOffset/ViewRightOffset by
// Registry.FocusSide as the user moves between them.
func toggleSplit(reg *workspace.Registry) CommandResult {
	if reg.SplitActive {
		reg.SplitActive = false
		reg.SelfSplit = false
		return CommandResult{}
	}
	idx := reg.ActiveIndex()
	reg.LeftIdx, reg.RightIdx = idx, idx
	reg.ViewLeftOffset, reg.ViewRightOffset = reg.At(idx).Offset, reg.At(idx).Offset
	reg.SplitActive = true
	reg.SelfSplit = true
	return CommandResult{}
}

// tabNew opens a new buffer (spec §3: "Buffers are created by file
// open or by :tabnew"). With no argument it opens an empty buffer;
// with one, it loads that path and applies syntax detection the same
// way the initial command-line file arguments do.
func tabNew(reg *workspace.Registry, synReg *syntax.Registry, arg string) CommandResult {
	b := buffer.New(reg.Active().Tabstop)
	if arg != "" {
		if synReg != nil {
			if def := synReg.Match(arg); def != nil {
				b.Syntax = def
			}
		}
		if err := b.Load(arg); err != nil {
			return CommandResult{Message: err.Error(), IsError: true}
		}
	}
	reg.Add(b)
	return CommandResult{}
}

func gotoLine(b *buffer.Buffer, n int) CommandResult {
	if n < 1 {
		n = 1
	}
	if n > len(b.Lines) {
		n = len(b.Lines)
	}
	b.LineNo = n
	b.ColNo = 1
	return CommandResult{}
}

func writeBuffer(b *buffer.Buffer, arg string) CommandResult {
	if arg != "" {
		b.FileName = arg
	}
	if b.FileName == "" {
		return CommandResult{Message: "No file name", IsError: true}
	}
	if err := b.Save(); err != nil {
		return CommandResult{Message: err.Error(), IsError: true}
	}
	return CommandResult{Message: fmt.Sprintf("\"%s\" written", b.FileName)}
}

// runSubstitute parses `s/needle/repl/[g][i]`, honoring the active
// buffer's current selection range when one exists (spec §4.8: a line
// selection scopes the substitution to its span; % scopes it to the
// whole buffer; otherwise only the cursor's line is affected).
func runSubstitute(b *buffer.Buffer, arg string, all bool) CommandResult {
	if arg == "" {
		return CommandResult{Message: "expected substitution argument", IsError: true}
	}
	divider := rune(arg[0])
	body := arg[1:]
	parts := strings.SplitN(body, string(divider), 3)
	if len(parts) < 2 {
		return CommandResult{Message: "nothing to replace with", IsError: true}
	}
	needle := []rune(parts[0])
	repl := []rune(parts[1])
	options := ""
	if len(parts) == 3 {
		options = parts[2]
	}
	global := strings.ContainsRune(options, 'g')
	caseInsensitive := strings.ContainsRune(options, 'i')

	top, bot := b.LineNo, b.LineNo
	switch {
	case b.Mode == buffer.LineSelection:
		top, bot = b.SelStartLine, b.LineNo
		if top > bot {
			top, bot = bot, top
		}
	case all:
		top, bot = 1, len(b.Lines)
	}

	n := search.Substitute(b, top, bot, needle, repl, global, !caseInsensitive)
	if n == 0 {
		return CommandResult{Message: fmt.Sprintf("Pattern not found: %s", string(needle)), IsError: true}
	}
	plural := "s"
	if n == 1 {
		plural = ""
	}
	return CommandResult{Message: fmt.Sprintf("replaced %d instance%s of %s", n, plural, string(needle))}
}
