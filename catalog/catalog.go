package catalog

import (
	"fmt"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

const (
	adderWidth = 8
	adderA     = 13
	adderB     = 5
)

func init() {
	register(Entry{
		Name:        "mark-start-find-start",
		Description: "write a start marker, write another pattern, scan back to the marker",
		Build:       single(MarkStartFindStart),
		Check:       headAt(0),
	})

	register(Entry{
		Name:        "set-bit-x",
		Description: "set cell 53 and return to cell 0",
		Build: single(func() machine.Program {
			return SetBitX(53)
		}),
		Check: func(m *machine.Machine) error {
			if err := headAt(0)(m); err != nil {
				return err
			}
			return cellSet(m, 53)
		},
	})

	register(Entry{
		Name:        "set-bit-x-backwards",
		Description: "set-bit-x built from the end, allocating states on the way",
		Build: single(func() machine.Program {
			return SetBitXBackwards(53)
		}),
		Check: func(m *machine.Machine) error {
			if err := headAt(0)(m); err != nil {
				return err
			}
			return cellSet(m, 53)
		},
	})

	register(Entry{
		Name:        "set-bit-x-and-find-again",
		Description: "set cell 2763, return to cell 0, scan right for it",
		Build: single(func() machine.Program {
			return SetBitXAndFindAgain(2763)
		}),
		Check: headAt(2763),
	})

	register(Entry{
		Name:        "move-right-till-one",
		Description: "stop on the first set cell right of the head",
		Build:       single(MoveRightTillOne),
		Ones:        []int{17},
		Check:       headAt(17),
	})

	register(Entry{
		Name:        "chained-set-and-find",
		Description: "set cell 40 with one program, find it with a second over the same tape",
		Build: func() []machine.Program {
			return []machine.Program{
				SetBitX(40),
				MoveRightTillOne(),
			}
		},
		Check: headAt(40),
	})

	register(Entry{
		Name:        "adder",
		Description: fmt.Sprintf("add %d and %d as %d-bit numbers", adderA, adderB, adderWidth),
		Build: single(func() machine.Program {
			return Adder(adderWidth)
		}),
		Ones: AdderOnes(adderWidth, adderA, adderB),
		Check: func(m *machine.Machine) error {
			sum, err := AdderSum(m.Tape, adderWidth)
			if err != nil {
				return err
			}
			if sum != adderA+adderB {
				return fmt.Errorf("sum %d, want %d", sum, adderA+adderB)
			}
			return nil
		},
	})

	register(Entry{
		Name:        "gates",
		Description: "or, and, xor of 1 and 0",
		Build:       Gates,
		Ones:        []int{0, 3, 6},
		Check: func(m *machine.Machine) error {
			for _, pos := range []int{2, 8} {
				if err := cellSet(m, pos); err != nil {
					return err
				}
			}
			if bit, err := m.Tape.Read(5); err != nil || bit {
				return fmt.Errorf("and of 1 and 0 should be 0")
			}
			return nil
		},
	})
}

func cellSet(m *machine.Machine, pos int) error {
	bit, err := m.Tape.Read(pos)
	if err != nil {
		return err
	}
	if !bit {
		return fmt.Errorf("cell %d not set", pos)
	}
	return nil
}
