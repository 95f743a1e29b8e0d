package xcvm

import (
	"fmt"
	"strings"
)

// Instruction is one XCVM instruction: an op mnemonic, a flat operand
// list, a debug annotation, and the scheduling rank of the node it was
// lowered from (-1 for housekeeping instructions).
type Instruction struct {
	Op        string
	Inputs    []Operand
	DebugInfo string
	ID        int64
}

func (i Instruction) String() string {
	parts := make([]string, len(i.Inputs))
	for j, op := range i.Inputs {
		parts[j] = op.String()
	}
	return fmt.Sprintf("%s %s", i.Op, strings.Join(parts, ", "))
}

// Program is a linear XCVM instruction list. Builders append one
// instruction each; the emitter stamps debug info afterwards.
type Program struct {
	Instructions []Instruction
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{}
}

// Len returns the number of instructions, which is also the absolute
// index the next emitted instruction will occupy.
func (p *Program) Len() int { return len(p.Instructions) }

// Last returns the most recently emitted instruction for stamping or
// jump patching.
func (p *Program) Last() *Instruction {
	return &p.Instructions[len(p.Instructions)-1]
}

// At returns the instruction at an absolute index.
func (p *Program) At(i int) *Instruction {
	return &p.Instructions[i]
}

func (p *Program) emit(op string, inputs ...Operand) {
	p.Instructions = append(p.Instructions, Instruction{Op: op, Inputs: inputs, ID: -1})
}

func (p *Program) String() string {
	var b strings.Builder
	for i := range p.Instructions {
		fmt.Fprintf(&b, "%4d %s\n", i, p.Instructions[i].String())
	}
	return b.String()
}
