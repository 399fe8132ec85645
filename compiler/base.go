package compiler

import (
	"fmt"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

// IterationBuilder builds iteration i of a chained loop between start and end
// and returns the states it actually used.
type IterationBuilder func(i int, start, end Anchor) (machine.State, machine.State)

// Base is what the pattern layer sees.
type Base interface {
	Primitives

	ChainedLoop(n int, start, end Anchor, build IterationBuilder) (machine.State, machine.State)
	MoveRightX(n int, current, next Anchor) (machine.State, machine.State)
	MoveLeftX(n int, current, next Anchor) (machine.State, machine.State)
	ScanSingle(target bool, scanMove, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State)
	BranchWhen(target bool, nextMove, elseMove machine.Movement, current, next, els Anchor) (machine.State, machine.State, machine.State)
	WriteAndMove(bit bool, move machine.Movement, current, next Anchor) (machine.State, machine.State)

	Or(move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State)
	And(move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State)
	Xor(move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State)
	Add(move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State)
}

type BaseLayer struct {
	Primitives
}

var _ Base = new(BaseLayer)

func NewBaseLayer(primitives Primitives) *BaseLayer {
	return &BaseLayer{
		Primitives: primitives,
	}
}

// ChainedLoop calls build n times, threading each iteration's end state into
// the next iteration's start. The first iteration is anchored at start and the
// last at end; the boundaries in between are left Free for build to allocate.
func (b *BaseLayer) ChainedLoop(n int, start, end Anchor, build IterationBuilder) (machine.State, machine.State) {
	if n < 1 {
		panic(fmt.Errorf("chained loop needs at least one iteration, got %d", n))
	}
	if n == 1 {
		return build(0, start, end)
	}

	var loopStart, loopEnd machine.State
	iterStart := start
	for i := range n {
		iterEnd := Free
		if i == n-1 {
			iterEnd = end
		}
		s, e := build(i, iterStart, iterEnd)
		if i == 0 {
			loopStart = s
		}
		loopEnd = e
		iterStart = At(e)
	}
	return loopStart, loopEnd
}

func (b *BaseLayer) MoveRightX(n int, current, next Anchor) (machine.State, machine.State) {
	return b.ChainedLoop(n, At(b.Resolve(current)), At(b.Resolve(next)), func(_ int, start, end Anchor) (machine.State, machine.State) {
		return b.MoveRight(start, end)
	})
}

func (b *BaseLayer) MoveLeftX(n int, current, next Anchor) (machine.State, machine.State) {
	return b.ChainedLoop(n, At(b.Resolve(current)), At(b.Resolve(next)), func(_ int, start, end Anchor) (machine.State, machine.State) {
		return b.MoveLeft(start, end)
	})
}

// ScanSingle moves with scanMove while the bit read differs from target,
// staying in the same state. On a match it applies finalMove and goes to next.
// A target that never shows up keeps the machine scanning forever.
func (b *BaseLayer) ScanSingle(target bool, scanMove, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State) {
	start := b.Resolve(current)
	end := b.Resolve(next)
	b.BranchWhen(target, finalMove, scanMove, At(start), At(end), At(start))
	return start, end
}

// BranchWhen goes to next with nextMove when the bit read equals target,
// and to els with elseMove otherwise.
func (b *BaseLayer) BranchWhen(target bool, nextMove, elseMove machine.Movement, current, next, els Anchor) (machine.State, machine.State, machine.State) {
	if target {
		return b.Branch(current, next, els, nextMove, elseMove)
	}
	from, toElse, toNext := b.Branch(current, els, next, elseMove, nextMove)
	return from, toNext, toElse
}

func (b *BaseLayer) WriteAndMove(bit bool, move machine.Movement, current, next Anchor) (machine.State, machine.State) {
	switch move {
	case machine.Left:
		if bit {
			return b.MarkAndMoveLeft(current, next)
		}
		return b.UnmarkAndMoveLeft(current, next)
	case machine.Right:
		if bit {
			return b.MarkAndMoveRight(current, next)
		}
		return b.UnmarkAndMoveRight(current, next)
	}
	if bit {
		return b.Mark(current, next)
	}
	return b.Unmark(current, next)
}
