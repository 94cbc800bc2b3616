package bf

import (
	"fmt"
	"strings"
)

// Op is the instruction kind.
type Op int

const (
	OP_INCREMENT = Op(0) // +
	OP_DECREMENT = Op(1) // -
	OP_FORWARD   = Op(2) // >
	OP_BACKWARD  = Op(3) // <
	OP_LOOP      = Op(4) // [
	OP_LOOP_END  = Op(5) // ]
	OP_OUT       = Op(6) // .
	OP_IN        = Op(7) // ,
)

// opChar is indexed by Op.
var opChar = [...]rune{'+', '-', '>', '<', '[', ']', '.', ','}

// String returns the source character of the op.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opChar) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return string(opChar[op])
}

// Instruction is a single node of a program tree.
//
// Only OP_LOOP has a Body. OP_LOOP_END is produced by InstructionOf, and
// never appears in a parsed Program.
type Instruction struct {
	Op   Op
	Body Program
}

// InstructionOf classifies a single character. Anything outside the
// eight instruction characters fails with an ErrUnrecognized.
func InstructionOf(c rune) (ins Instruction, err error) {
	for n, char := range opChar {
		if char == c {
			ins.Op = Op(n)
			return
		}
	}

	err = ErrUnrecognized(c)
	return
}

func (ins Instruction) String() string {
	if ins.Op == OP_LOOP {
		return "[" + ins.Body.String() + "]"
	}
	return ins.Op.String()
}

// Program is an ordered sequence of instructions.
type Program []Instruction

// String renders the program as canonical source text.
func (prog Program) String() string {
	var sb strings.Builder
	for _, ins := range prog {
		sb.WriteString(ins.String())
	}
	return sb.String()
}

// Depth returns the deepest loop nesting in the program.
func (prog Program) Depth() (depth int) {
	for _, ins := range prog {
		if ins.Op != OP_LOOP {
			continue
		}
		depth = max(depth, 1+ins.Body.Depth())
	}
	return
}
