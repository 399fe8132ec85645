package debugs

import (
	"context"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

// MachineGlobals is what a tap over m sees.
func MachineGlobals(m *machine.Machine, err error) map[string]any {
	globals := map[string]any{
		"head":         m.Head,
		"state":        m.State.String(),
		"steps":        m.Steps,
		"idle":         m.Idle,
		"instructions": m.Program.Instructions(),
		"read":         func(pos int) (bool, error) { return m.Tape.Read(pos) },
	}
	lo, hi := m.Tape.Bounds()
	globals["bounds"] = []int{lo, hi}
	if tape, ok := m.Tape.(*machine.Unbounded); ok {
		globals["ones"] = tape.Ones()
	}
	if err != nil {
		globals["error"] = err.Error()
	}
	return globals
}

// InspectFault taps into a machine whose run returned err. It does nothing
// unless tapping is enabled or err is nil.
type InspectFault func(ctx context.Context, m *machine.Machine, err error)

func (Module) InspectFault(
	enabled TapEnabled,
	tap Tap,
) InspectFault {
	return func(ctx context.Context, m *machine.Machine, err error) {
		if !enabled || err == nil {
			return
		}
		tap(ctx, "fault", MachineGlobals(m, err))
	}
}
