package compiler

import "github.com/Zitronenjoghurt/simple-turing-machine/machine"

type truthTable func(a, b bool) bool

var (
	orTable  truthTable = func(a, b bool) bool { return a || b }
	andTable truthTable = func(a, b bool) bool { return a && b }
	xorTable truthTable = func(a, b bool) bool { return a != b }
)

// Or reads A under the head and B one cell further along move, writes A|B to
// the cell after B, then applies finalMove. Inputs are left untouched.
func (b *BaseLayer) Or(move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State) {
	return b.gate(orTable, move, finalMove, current, next)
}

// And is Or with A&B.
func (b *BaseLayer) And(move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State) {
	return b.gate(andTable, move, finalMove, current, next)
}

// Xor is Or with A^B.
func (b *BaseLayer) Xor(move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State) {
	return b.gate(xorTable, move, finalMove, current, next)
}

// gate wires the shared topology: branch on A into read[a], branch on B into
// result[table(a, b)], write the result.
func (b *BaseLayer) gate(table truthTable, move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State) {
	start := b.Resolve(current)
	end := b.Resolve(next)
	read := [2]machine.State{b.AllocateState(), b.AllocateState()}
	result := [2]machine.State{b.AllocateState(), b.AllocateState()}

	b.Branch(At(start), At(read[1]), At(read[0]), move, move)
	for _, a := range bits {
		b.Branch(
			At(read[index(a)]),
			At(result[index(table(a, true))]),
			At(result[index(table(a, false))]),
			move, move,
		)
	}
	for _, r := range bits {
		b.WriteAndMove(r, finalMove, At(result[index(r)]), At(end))
	}

	return start, end
}

var bits = [2]bool{false, true}

func index(bit bool) int {
	if bit {
		return 1
	}
	return 0
}
