package machine

import (
	"math"
	"strconv"
)

// State is a control location. Only equality matters.
type State uint64

const (
	// Start is the state every machine begins in. Compilers hand it out first.
	Start State = 0
	// Halt is reserved and never allocated as an ordinary state.
	Halt State = math.MaxUint64
)

func (s State) String() string {
	if s == Halt {
		return "halt"
	}
	return "q" + strconv.FormatUint(uint64(s), 10)
}
