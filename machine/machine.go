package machine

import "fmt"

// DefaultMaxIdle bounds consecutive steps that stay in the same state.
const DefaultMaxIdle = 1 << 20

type Machine struct {
	Program Program
	Tape    Tape
	Head    int
	State   State

	// Steps counts applied instructions since the last reset.
	Steps int
	// Idle counts consecutive steps whose next state equals the current one.
	Idle    int
	MaxIdle int

	// WindowRadius is how many cells on each side of the head go into Event.Window.
	WindowRadius int
	Tracer       Tracer
}

func New(program Program, tape Tape, head int) *Machine {
	if IsNilTape(tape) {
		tape = new(Unbounded)
	}
	return &Machine{
		Program: program,
		Tape:    tape,
		Head:    head,
		State:   Start,
		MaxIdle: DefaultMaxIdle,
	}
}

// Run executes program on tape from head until it halts or faults.
func Run(program Program, tape Tape, head int) (*Machine, error) {
	m := New(program, tape, head)
	return m, m.Run()
}

// Reset loads the next program of a chain. The tape is kept.
func (m *Machine) Reset(program Program) {
	m.Program = program
	m.State = Start
	m.Head = 0
	m.Steps = 0
	m.Idle = 0
}

func (m *Machine) Read() (bool, error) {
	return m.Tape.Read(m.Head)
}

// Step applies one instruction. It reports true once the machine has halted.
func (m *Machine) Step() (halted bool, err error) {
	_, halted, err = m.step(false)
	return
}

func (m *Machine) step(observe bool) (ev Event, halted bool, err error) {
	bit, err := m.Tape.Read(m.Head)
	if err != nil {
		return ev, false, err
	}

	inst, ok := m.Program.Get(m.State, bit)
	if !ok {
		if m.State == Halt {
			return ev, true, nil
		}
		return ev, false, fmt.Errorf("%w: %s σ=%d at head %d", ErrDanglingState, m.State, bitNumber(bit), m.Head)
	}

	if observe {
		ev = m.event(inst)
	}

	if err := m.Tape.Write(m.Head, inst.Write); err != nil {
		return ev, false, err
	}
	m.Head += inst.Move.Offset()

	m.Steps++
	if inst.Next == m.State {
		m.Idle++
		if m.MaxIdle > 0 && m.Idle >= m.MaxIdle {
			return ev, false, fmt.Errorf("%w: %s made no progress for %d steps", ErrNonTermination, m.State, m.Idle)
		}
	} else {
		m.Idle = 0
	}
	m.State = inst.Next

	return ev, false, nil
}

// All yields an event per applied instruction. Iteration ends on halt or
// after yielding the first error.
func (m *Machine) All(yield func(Event, error) bool) {
	for {
		ev, halted, err := m.step(true)
		if err != nil {
			yield(ev, err)
			return
		}
		if halted {
			return
		}
		if !yield(ev, nil) {
			return
		}
	}
}

func (m *Machine) Run() error {
	if m.Tracer == nil {
		for {
			halted, err := m.Step()
			if err != nil {
				return err
			}
			if halted {
				return nil
			}
		}
	}
	for ev, err := range m.All {
		if err != nil {
			return err
		}
		m.Tracer(ev)
	}
	return nil
}
