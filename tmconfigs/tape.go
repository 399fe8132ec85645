package tmconfigs

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/configs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/vars"
)

// TapeBytes selects a fixed capacity tape of that many bytes. Zero means
// an unbounded tape.
type TapeBytes int

var _ configs.Configurable = TapeBytes(0)

func (TapeBytes) ConfigKey() string {
	return "tape_bytes"
}

var tapeBytesFlag = cmds.Var[int]("-tape-bytes", "use a fixed tape of this many bytes")

func (Module) TapeBytes(
	loader configs.Loader,
) TapeBytes {
	return TapeBytes(max(0, vars.FirstNonZero(
		*tapeBytesFlag,
		configs.First[int](loader, "tape_bytes"),
	)))
}

type NewTape func() machine.Tape

func (Module) NewTape(
	bytes TapeBytes,
) NewTape {
	return func() machine.Tape {
		if bytes > 0 {
			return machine.NewBounded(int(bytes))
		}
		return machine.NewUnbounded()
	}
}
