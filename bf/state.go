// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bf

import (
	"io"
	"log"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/ezrec/bfi/codec"
)

// State is the interpreter context: tape, pointer and I/O.
type State struct {
	Mem     []byte // Tape cells. Never shrinks while running.
	Pointer int    // Index of the current cell.
	Outted  bool   // Set by OP_OUT and by a successful OP_IN.

	Input   io.Reader    // Source for OP_IN. Nil reads as end of input.
	Output  io.Writer    // Sink for OP_OUT. Nil discards.
	Codec   *codec.Codec // Character table. Nil uses codec.Default.
	Verbose bool         // If set, logs each executed instruction.

	unread []byte // Input bytes read ahead of the current character.
}

// NewState creates a state with a single zero cell, wired to stdin and stdout.
func NewState() (s *State) {
	s = &State{
		Mem:    []byte{0},
		Input:  os.Stdin,
		Output: os.Stdout,
		Codec:  codec.Default,
	}

	return
}

// Run parses source and executes it on a new state.
func Run(source string) (s *State) {
	s = NewState()
	s.Run(source)
	return
}

// Run parses source and executes it on this state.
func (s *State) Run(source string) {
	s.Execute(Parse(source))
}

// Reset discards the tape and starts over with a single zero cell.
// I/O settings are kept.
func (s *State) Reset() {
	s.Mem = []byte{0}
	s.Pointer = 0
	s.Outted = false
}

// ResetOutted clears the output flag, returning its previous value.
func (s *State) ResetOutted() (outted bool) {
	outted = s.Outted
	s.Outted = false
	return
}

// Cell returns the value of the current cell.
func (s *State) Cell() byte {
	s.ready()
	return s.Mem[s.Pointer]
}

// ready makes a zero State usable.
func (s *State) ready() {
	if len(s.Mem) == 0 {
		s.Mem = []byte{0}
	}
}

func (s *State) table() *codec.Codec {
	if s.Codec == nil {
		return codec.Default
	}
	return s.Codec
}

// Execute runs each instruction of prog in order.
func (s *State) Execute(prog Program) {
	for _, ins := range prog {
		s.Step(ins)
	}
}

// Step executes a single instruction; for a loop, the whole loop.
func (s *State) Step(ins Instruction) {
	s.ready()

	switch ins.Op {
	case OP_INCREMENT:
		s.Mem[s.Pointer]++
	case OP_DECREMENT:
		s.Mem[s.Pointer]--
	case OP_FORWARD:
		if s.Pointer+1 >= len(s.Mem) {
			s.Mem = append(s.Mem, 0)
		}
		s.Pointer++
	case OP_BACKWARD:
		if s.Pointer != 0 {
			s.Pointer--
		}
	case OP_LOOP:
		for {
			s.Execute(ins.Body)
			if s.Mem[s.Pointer] == 0 {
				break
			}
		}
	case OP_OUT:
		s.out()
	case OP_IN:
		s.in()
	}

	if s.Verbose && ins.Op != OP_LOOP {
		log.Printf("%v: ptr %d cell %d\n", ins.Op, s.Pointer, s.Mem[s.Pointer])
	}
}

type flusher interface {
	Flush() error
}

func (s *State) out() {
	s.Outted = true

	if s.Output == nil {
		return
	}

	char := s.table().ToChar(s.Mem[s.Pointer])
	s.Output.Write(utf8.AppendRune(nil, char))
	if fl, ok := s.Output.(flusher); ok {
		fl.Flush()
	}
}

func (s *State) in() {
	cell, ok := s.readCell()
	if !ok {
		return
	}

	s.Mem[s.Pointer] = cell
	s.Outted = true
}

// fromRaw converts a byte that is not UTF-8 by reading it in the codec's
// own charset.
func (s *State) fromRaw(b byte) byte {
	return s.table().FromChar(s.table().Decode(b))
}

// byteScanner can give back the byte under an invalid rune.
type byteScanner interface {
	io.RuneScanner
	io.ByteReader
}

// readCell reads exactly one character from Input and converts it to a cell.
// Valid UTF-8 is read as a character; any other byte is read as a single
// byte in the codec's charset.
func (s *State) readCell() (cell byte, ok bool) {
	if s.Input == nil {
		return
	}

	if rr, is := s.Input.(io.RuneReader); is && len(s.unread) == 0 {
		char, size, err := rr.ReadRune()
		if err != nil {
			return
		}
		ok = true
		if char == utf8.RuneError && size == 1 {
			if bs, is := rr.(byteScanner); is && bs.UnreadRune() == nil {
				b, err := bs.ReadByte()
				if err == nil {
					cell = s.fromRaw(b)
					return
				}
			}
		}
		cell = s.table().FromChar(char)
		return
	}

	// Byte at a time, so nothing past this character is consumed.
	var buff [utf8.UTFMax]byte
	n := copy(buff[:], s.unread)
	s.unread = s.unread[n:]
	for n < len(buff) && !utf8.FullRune(buff[:n]) {
		_, err := io.ReadFull(s.Input, buff[n:n+1])
		if err != nil {
			break
		}
		n++
	}
	if n == 0 {
		return
	}

	char, size := utf8.DecodeRune(buff[:n])
	// Bytes read past an invalid lead byte belong to the next character.
	s.unread = append(slices.Clone(buff[size:n]), s.unread...)
	ok = true
	if char == utf8.RuneError && size == 1 {
		cell = s.fromRaw(buff[0])
		return
	}
	cell = s.table().FromChar(char)
	return
}
