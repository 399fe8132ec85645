package tmconfigs

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

// NewMachine builds a machine with the configured failsafe and tracing.
// A nil tape comes from NewTape.
type NewMachine func(program machine.Program, tape machine.Tape, head int) *machine.Machine

func (Module) NewMachine(
	maxIdle MaxIdleSteps,
	window TraceWindow,
	tracer Tracer,
	newTape NewTape,
) NewMachine {
	return func(program machine.Program, tape machine.Tape, head int) *machine.Machine {
		if machine.IsNilTape(tape) {
			tape = newTape()
		}
		m := machine.New(program, tape, head)
		m.MaxIdle = max(0, int(maxIdle))
		if tracer != nil {
			m.Tracer = machine.Tracer(tracer)
			m.WindowRadius = int(window)
		}
		return m
	}
}
