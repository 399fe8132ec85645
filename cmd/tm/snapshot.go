package main

import (
	"context"
	"os"

	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/debugs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
	"github.com/reusee/dscope"
)

var snapshotFlag = cmds.Var[string]("-snapshot", "write the final machine to a file, also on faults")

func init() {
	command("resume", "continue a machine from a snapshot file with the configured failsafe", func(path string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			resume(ctx, scope, path)
		}
	})
}

func writeSnapshot(m *machine.Machine) {
	path := *snapshotFlag
	if path == "" {
		return
	}
	f, err := os.Create(path)
	ce(err)
	ce(m.Snapshot(f))
	ce(f.Close())
}

func resume(ctx context.Context, scope dscope.Scope, path string) {
	scope.Call(func(
		newMachine tmconfigs.NewMachine,
		maxIdle tmconfigs.MaxIdleSteps,
		inspect debugs.InspectFault,
	) {
		f, err := os.Open(path)
		ce(err)
		m := newMachine(machine.Program{}, nil, 0)
		ce(m.Restore(f))
		ce(f.Close())
		m.MaxIdle = max(0, int(maxIdle))
		m.Idle = 0

		err = m.Run()
		if err != nil {
			inspect(ctx, m, err)
		}
		report(m, err)
		writeSnapshot(m)
		saveTape(scope, m)
		if err != nil {
			os.Exit(1)
		}
	})
}
