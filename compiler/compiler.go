package compiler

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

// Compiler owns the program under construction and the state counter.
// Operations are reached through the embedded layers.
type Compiler struct {
	*PatternLayer
	next    machine.State
	program machine.Program
}

var _ Builder = new(Compiler)

func New() *Compiler {
	c := new(Compiler)
	c.PatternLayer = NewPatternLayer(
		NewBaseLayer(
			NewPrimitiveLayer(builder{c}),
		),
	)
	return c
}

// builder hides the compiler's layers from the primitive layer, which only
// needs the Builder methods.
type builder struct {
	c *Compiler
}

func (b builder) AllocateState() machine.State {
	return b.c.AllocateState()
}

func (b builder) HaltState() machine.State {
	return b.c.HaltState()
}

func (b builder) AddInstruction(instructions ...machine.Instruction) {
	b.c.AddInstruction(instructions...)
}

// AllocateState returns states in order starting at machine.Start, so the
// first allocation is where execution begins.
func (c *Compiler) AllocateState() machine.State {
	if c.next == machine.Halt {
		panic("state space exhausted")
	}
	s := c.next
	c.next++
	return s
}

func (c *Compiler) HaltState() machine.State {
	return machine.Halt
}

func (c *Compiler) AddInstruction(instructions ...machine.Instruction) {
	c.program.Add(instructions...)
}

// Program returns a snapshot; later compiler calls don't change it.
func (c *Compiler) Program() machine.Program {
	return c.program.Clone()
}
