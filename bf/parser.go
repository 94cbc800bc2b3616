// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bf

import (
	"io"
	"log"
	"strings"

	"github.com/ezrec/bfi/internal"
)

// Parser converts source text into a Program.
//
// Characters that are not instructions are comments, and are skipped.
// By default unbalanced brackets are tolerated: a ']' with no open loop is
// dropped, and loops still open at the end of input are closed there,
// innermost first. In Strict mode either case fails with an ErrSyntax.
type Parser struct {
	Verbose bool // If set, logs each instruction as it is parsed.
	Strict  bool // If set, unbalanced brackets are an error.
}

// closeLoop pops the innermost open sequence and appends it, as a loop,
// to its parent.
func closeLoop(stack []Program) []Program {
	top := len(stack) - 1
	body := stack[top]
	stack = stack[:top]
	stack[top-1] = append(stack[top-1], Instruction{Op: OP_LOOP, Body: body})
	return stack
}

// Parse reads input to the end and returns the parsed program.
func (p *Parser) Parse(input io.Reader) (prog Program, err error) {
	// stack[0] is the top level; each open '[' pushes a sequence.
	stack := []Program{nil}
	// opens holds the offset of each open '['.
	var opens []int

	var readErr error
	for offset, c := range internal.Runes(input, &readErr) {
		ins, cerr := InstructionOf(c)
		if cerr != nil {
			continue
		}

		if p.Verbose {
			log.Printf("%v: %v depth %d\n", offset, ins.Op, len(opens))
		}

		switch ins.Op {
		case OP_LOOP:
			stack = append(stack, nil)
			opens = append(opens, offset)
		case OP_LOOP_END:
			if len(opens) == 0 {
				if p.Strict {
					err = &ErrSyntax{Offset: offset, Err: ErrUnmatchedClose}
					return
				}
				continue
			}
			stack = closeLoop(stack)
			opens = opens[:len(opens)-1]
		default:
			top := len(stack) - 1
			stack[top] = append(stack[top], ins)
		}
	}

	if readErr != nil {
		err = readErr
		return
	}

	if len(opens) > 0 && p.Strict {
		err = &ErrSyntax{Offset: opens[len(opens)-1], Err: ErrUnclosedLoop}
		return
	}

	for len(stack) > 1 {
		stack = closeLoop(stack)
	}

	prog = stack[0]

	if p.Verbose {
		log.Printf("parsed %d instructions, depth %d\n", len(prog), prog.Depth())
	}

	return
}

// Parse parses source text with a default Parser.
// Unbalanced brackets are tolerated, so no error is possible.
func Parse(source string) Program {
	p := &Parser{}
	prog, _ := p.Parse(strings.NewReader(source))
	return prog
}
