package tmconfigs

import (
	"runtime"

	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/configs"
	"github.com/Zitronenjoghurt/simple-turing-machine/vars"
)

// Concurrency bounds how many catalog entries run at once.
type Concurrency int

var _ configs.Configurable = Concurrency(0)

func (Concurrency) ConfigKey() string {
	return "concurrency"
}

var jobsFlag = cmds.Var[int]("-jobs", "catalog entries run at once")

func (Module) Concurrency(
	loader configs.Loader,
) Concurrency {
	return Concurrency(max(1, vars.FirstNonZero(
		*jobsFlag,
		configs.First[int](loader, "concurrency"),
		runtime.NumCPU(),
	)))
}
