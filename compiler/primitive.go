package compiler

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

// Primitives is what the base layer sees: allocation plus the eight
// two-instruction operations. The program itself is not reachable from here.
type Primitives interface {
	AllocateState() machine.State
	HaltState() machine.State
	Resolve(a Anchor) machine.State

	MoveLeft(current, next Anchor) (machine.State, machine.State)
	MoveRight(current, next Anchor) (machine.State, machine.State)
	Mark(current, next Anchor) (machine.State, machine.State)
	Unmark(current, next Anchor) (machine.State, machine.State)
	MarkAndMoveLeft(current, next Anchor) (machine.State, machine.State)
	MarkAndMoveRight(current, next Anchor) (machine.State, machine.State)
	UnmarkAndMoveLeft(current, next Anchor) (machine.State, machine.State)
	UnmarkAndMoveRight(current, next Anchor) (machine.State, machine.State)
	Branch(current, ifOne, ifZero Anchor, moveOne, moveZero machine.Movement) (machine.State, machine.State, machine.State)
	Halt(current Anchor) machine.State
}

type PrimitiveLayer struct {
	builder Builder
}

var _ Primitives = new(PrimitiveLayer)

func NewPrimitiveLayer(builder Builder) *PrimitiveLayer {
	return &PrimitiveLayer{
		builder: builder,
	}
}

func (p *PrimitiveLayer) AllocateState() machine.State {
	return p.builder.AllocateState()
}

func (p *PrimitiveLayer) HaltState() machine.State {
	return p.builder.HaltState()
}

// Resolve returns the anchored state or a freshly allocated one.
func (p *PrimitiveLayer) Resolve(a Anchor) machine.State {
	return a.resolve(p.builder.AllocateState)
}

type writeOp uint8

const (
	keep writeOp = iota
	writeZero
	writeOne
)

// emit adds one instruction per read bit, both going to next.
func (p *PrimitiveLayer) emit(current, next Anchor, write writeOp, move machine.Movement) (machine.State, machine.State) {
	from := p.Resolve(current)
	to := p.Resolve(next)
	for _, read := range []bool{false, true} {
		bit := read
		switch write {
		case writeZero:
			bit = false
		case writeOne:
			bit = true
		}
		p.builder.AddInstruction(machine.Instruction{
			State: from,
			Read:  read,
			Write: bit,
			Move:  move,
			Next:  to,
		})
	}
	return from, to
}

func (p *PrimitiveLayer) MoveLeft(current, next Anchor) (machine.State, machine.State) {
	return p.emit(current, next, keep, machine.Left)
}

func (p *PrimitiveLayer) MoveRight(current, next Anchor) (machine.State, machine.State) {
	return p.emit(current, next, keep, machine.Right)
}

func (p *PrimitiveLayer) Mark(current, next Anchor) (machine.State, machine.State) {
	return p.emit(current, next, writeOne, machine.Stay)
}

func (p *PrimitiveLayer) Unmark(current, next Anchor) (machine.State, machine.State) {
	return p.emit(current, next, writeZero, machine.Stay)
}

func (p *PrimitiveLayer) MarkAndMoveLeft(current, next Anchor) (machine.State, machine.State) {
	return p.emit(current, next, writeOne, machine.Left)
}

func (p *PrimitiveLayer) MarkAndMoveRight(current, next Anchor) (machine.State, machine.State) {
	return p.emit(current, next, writeOne, machine.Right)
}

func (p *PrimitiveLayer) UnmarkAndMoveLeft(current, next Anchor) (machine.State, machine.State) {
	return p.emit(current, next, writeZero, machine.Left)
}

func (p *PrimitiveLayer) UnmarkAndMoveRight(current, next Anchor) (machine.State, machine.State) {
	return p.emit(current, next, writeZero, machine.Right)
}

// Branch goes to ifOne or ifZero depending on the bit read, which is kept.
// It is the only primitive whose next state depends on the tape.
func (p *PrimitiveLayer) Branch(current, ifOne, ifZero Anchor, moveOne, moveZero machine.Movement) (machine.State, machine.State, machine.State) {
	from := p.Resolve(current)
	toOne := p.Resolve(ifOne)
	toZero := p.Resolve(ifZero)
	p.builder.AddInstruction(
		machine.Instruction{
			State: from,
			Read:  false,
			Write: false,
			Move:  moveZero,
			Next:  toZero,
		},
		machine.Instruction{
			State: from,
			Read:  true,
			Write: true,
			Move:  moveOne,
			Next:  toOne,
		},
	)
	return from, toOne, toZero
}

func (p *PrimitiveLayer) Halt(current Anchor) machine.State {
	from, _ := p.emit(current, At(p.builder.HaltState()), keep, machine.Stay)
	return from
}
