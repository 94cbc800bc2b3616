// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package repl runs an interactive session against a single bf.State.
//
// Each complete line is parsed and executed on the same tape, so cells and
// the pointer carry over between lines. A line that leaves a loop open is
// held, and the next line continues it. After a line has run, the session
// clears the state's Outted flag; if it was set, a newline is written so
// the next prompt starts on a fresh line.
package repl

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/bfi/bf"
	"github.com/ezrec/bfi/translate"
)

var f = translate.From

const (
	PROMPT   = "bf> " // Default prompt.
	CONTINUE = "... " // Prompt while a loop is open.
	WINDOW   = 8      // Cells shown either side of the pointer by :mem.
)

// Session is an interactive interpreter.
//
// Lines are always parsed strictly, whatever the config's strict setting:
// an open loop waits for the next line, and a stray ']' discards the line.
// Commands are taken even while a loop is open; :reset also drops the
// unfinished lines.
type Session struct {
	State       *bf.State     // Tape shared by every line.
	Prompt      string        // Shown before each new line.
	Continue    string        // Shown while a loop is open.
	Interactive bool          // If set, prompts are written.
	Input       *bufio.Reader // Lines, and the program's own input.
	Output      io.Writer     // Program output and session messages.

	pending strings.Builder
}

// IsTerminal reports whether file is a terminal.
func IsTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewSession creates a session on a fresh state. The program's ',' reads
// from the same input as the session lines.
func NewSession(input io.Reader, output io.Writer) (sess *Session) {
	sess = &Session{
		State:    bf.NewState(),
		Prompt:   PROMPT,
		Continue: CONTINUE,
		Input:    bufio.NewReader(input),
		Output:   output,
	}

	sess.State.Input = sess.Input
	sess.State.Output = output

	return
}

func (sess *Session) printf(format string, args ...any) {
	translate.Fprintf(sess.Output, format, args...)
}

func (sess *Session) prompt() {
	if !sess.Interactive {
		return
	}

	if sess.pending.Len() == 0 {
		io.WriteString(sess.Output, sess.Prompt)
	} else {
		io.WriteString(sess.Output, sess.Continue)
	}
}

// Run reads and evaluates lines until end of input or :quit.
func (sess *Session) Run() (err error) {
	for {
		sess.prompt()

		line, rerr := sess.Input.ReadString('\n')
		if len(line) > 0 {
			var done bool
			done, err = sess.Eval(strings.TrimRight(line, "\r\n"))
			if done || err != nil {
				return
			}
		}

		if errors.Is(rerr, io.EOF) {
			if sess.pending.Len() > 0 {
				sess.printf("error: %v\n", bf.ErrUnclosedLoop)
				sess.pending.Reset()
			}
			return
		}
		if rerr != nil {
			err = rerr
			return
		}
	}
}

// Eval evaluates a single line. Done is set when the session should end.
// Parse errors are reported on Output, and do not end the session.
func (sess *Session) Eval(line string) (done bool, err error) {
	if strings.HasPrefix(strings.TrimSpace(line), ":") {
		return sess.command(strings.Fields(line))
	}

	sess.pending.WriteString(line)
	sess.pending.WriteByte('\n')

	p := &bf.Parser{Strict: true, Verbose: sess.State.Verbose}
	prog, perr := p.Parse(strings.NewReader(sess.pending.String()))
	if errors.Is(perr, bf.ErrUnclosedLoop) {
		return
	}
	sess.pending.Reset()
	if perr != nil {
		sess.printf("error: %v\n", perr)
		return
	}

	sess.State.Execute(prog)
	if sess.State.ResetOutted() {
		io.WriteString(sess.Output, "\n")
	}

	return
}

func (sess *Session) command(words []string) (done bool, err error) {
	switch words[0] {
	case ":quit", ":exit", ":q":
		done = true
	case ":reset":
		sess.pending.Reset()
		sess.State.Reset()
	case ":mem":
		sess.mem()
	case ":dump":
		err = sess.dump()
	case ":help":
		sess.printf(":mem    show the cells around the pointer\n")
		sess.printf(":dump   write the state as YAML\n")
		sess.printf(":reset  start over with an empty tape\n")
		sess.printf(":quit   leave\n")
	default:
		sess.printf("unknown command %v, try :help\n", words[0])
	}

	return
}

// mem shows WINDOW cells either side of the pointer, the current one in brackets.
func (sess *Session) mem() {
	s := sess.State
	lo := max(s.Pointer-WINDOW, 0)
	hi := min(s.Pointer+WINDOW+1, len(s.Mem))

	var sb strings.Builder
	for n := lo; n < hi; n++ {
		if n == s.Pointer {
			sb.WriteString(f("[%3d]", s.Mem[n]))
		} else {
			sb.WriteString(f(" %3d ", s.Mem[n]))
		}
	}
	sess.printf("%v\n", strings.TrimRight(sb.String(), " "))
	sess.printf("ptr %d of %d\n", s.Pointer, len(s.Mem))
}

// Snapshot is the YAML form of a state.
type Snapshot struct {
	Pointer int   `yaml:"pointer"`
	Outted  bool  `yaml:"outted"`
	Mem     []int `yaml:"mem,flow"`
}

// NewSnapshot copies the tape of s.
func NewSnapshot(s *bf.State) (snap Snapshot) {
	snap.Pointer = s.Pointer
	snap.Outted = s.Outted
	snap.Mem = make([]int, len(s.Mem))
	for n, cell := range s.Mem {
		snap.Mem[n] = int(cell)
	}
	return
}

func (sess *Session) dump() (err error) {
	enc := yaml.NewEncoder(sess.Output)
	enc.SetIndent(2)
	err = enc.Encode(NewSnapshot(sess.State))
	if err != nil {
		return
	}
	err = enc.Close()
	return
}
