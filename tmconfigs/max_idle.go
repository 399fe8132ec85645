package tmconfigs

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/configs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/vars"
)

// MaxIdleSteps is how many consecutive steps may stay in one state before a
// run fails with machine.ErrNonTermination. Negative disables the check.
type MaxIdleSteps int

var _ configs.Configurable = MaxIdleSteps(0)

func (MaxIdleSteps) ConfigKey() string {
	return "max_idle_steps"
}

var maxIdleFlag = cmds.Var[int]("-max-idle", "steps in one state before giving up")

func (Module) MaxIdleSteps(
	loader configs.Loader,
) MaxIdleSteps {
	return MaxIdleSteps(vars.FirstNonZero(
		*maxIdleFlag,
		configs.First[int](loader, "max_idle_steps"),
		machine.DefaultMaxIdle,
	))
}
