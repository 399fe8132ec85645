package machine

import "fmt"

// Instruction maps (State, Read) to (Write, Move, Next).
type Instruction struct {
	State State    `json:"current_state"`
	Read  bool     `json:"read_bit"`
	Write bool     `json:"write_bit"`
	Move  Movement `json:"movement"`
	Next  State    `json:"next_state"`
}

func (i Instruction) Key() Key {
	return Key{
		State: i.State,
		Bit:   i.Read,
	}
}

// String renders the formal transition, e.g. (q0, 1) -> (0, R, q1).
func (i Instruction) String() string {
	return fmt.Sprintf("(%s, %d) -> (%d, %s, %s)",
		i.State, bitNumber(i.Read), bitNumber(i.Write), i.Move, i.Next)
}

func bitNumber(b bool) int {
	if b {
		return 1
	}
	return 0
}
