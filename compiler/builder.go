package compiler

import "github.com/Zitronenjoghurt/simple-turing-machine/machine"

// Builder is the capability every layer is ultimately built on.
type Builder interface {
	// AllocateState returns a fresh state, never reused and never machine.Halt.
	AllocateState() machine.State
	HaltState() machine.State
	// AddInstruction appends entries, overwriting any with the same (state, bit).
	AddInstruction(instructions ...machine.Instruction)
}

// Anchor is an optional state handle. Operations resolve a Free anchor by
// allocating a fresh state and return the concrete states they used.
type Anchor struct {
	state machine.State
	set   bool
}

// Free lets the operation allocate.
var Free Anchor

// At pins an operation boundary to s.
func At(s machine.State) Anchor {
	return Anchor{
		state: s,
		set:   true,
	}
}

func (a Anchor) State() (machine.State, bool) {
	return a.state, a.set
}

func (a Anchor) resolve(allocate func() machine.State) machine.State {
	if a.set {
		return a.state
	}
	return allocate()
}
