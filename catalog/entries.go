package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Zitronenjoghurt/simple-turing-machine/compiler"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

// Entry is a runnable example. Its programs run one after another over a
// single tape, each starting from head 0 in the start state.
type Entry struct {
	Name        string
	Description string
	Build       func() []machine.Program
	// Ones are the cells set before the first program runs.
	Ones []int
	// Check verifies the final machine, for tests and the check command.
	Check func(m *machine.Machine) error
}

var entries = map[string]Entry{}

func register(entry Entry) {
	if _, ok := entries[entry.Name]; ok {
		panic(fmt.Errorf("duplicated entry %s", entry.Name))
	}
	entries[entry.Name] = entry
}

// Entries returns all entries sorted by name.
func Entries() []Entry {
	ret := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, entry)
	}
	slices.SortFunc(ret, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return ret
}

func Get(name string) (Entry, bool) {
	entry, ok := entries[name]
	return entry, ok
}

func single(build func() machine.Program) func() []machine.Program {
	return func() []machine.Program {
		return []machine.Program{build()}
	}
}

func headAt(want int) func(*machine.Machine) error {
	return func(m *machine.Machine) error {
		if m.Head != want {
			return fmt.Errorf("head at %d, want %d", m.Head, want)
		}
		return nil
	}
}

var startPattern = compiler.MustParsePattern("11011011011")

// MarkStartFindStart writes a start marker, writes a second pattern further
// right, then scans back left for the marker.
func MarkStartFindStart() machine.Program {
	c := compiler.New()

	markStart := c.AllocateState()
	moveAway := c.AllocateState()
	markOther := c.AllocateState()
	findStart := c.AllocateState()
	done := c.Halt(compiler.Free)

	c.WritePattern(startPattern, machine.Right, machine.Right, compiler.At(markStart), compiler.At(moveAway))
	c.MoveRightX(4, compiler.At(moveAway), compiler.At(markOther))
	c.WritePattern(compiler.MustParsePattern("1101"), machine.Right, machine.Stay, compiler.At(markOther), compiler.At(findStart))
	c.ScanPattern(startPattern, machine.Left, machine.Stay, compiler.At(findStart), compiler.At(done))

	return c.Program()
}

// SetBitX sets cell x and returns to cell 0.
func SetBitX(x int) machine.Program {
	c := compiler.New()

	moveRight := c.AllocateState()
	setOne := c.AllocateState()
	moveLeft := c.AllocateState()
	done := c.AllocateState()

	c.MoveRightX(x, compiler.At(moveRight), compiler.At(setOne))
	c.Mark(compiler.At(setOne), compiler.At(moveLeft))
	c.MoveLeftX(x, compiler.At(moveLeft), compiler.At(done))
	c.Halt(compiler.At(done))

	return c.Program()
}

// SetBitXBackwards is SetBitX written end to start, letting every operation
// allocate its own entry state. Only the start state is allocated up front.
func SetBitXBackwards(x int) machine.Program {
	c := compiler.New()

	start := c.AllocateState()
	done := c.Halt(compiler.Free)
	moveLeft, _ := c.MoveLeftX(x, compiler.Free, compiler.At(done))
	setOne, _ := c.Mark(compiler.Free, compiler.At(moveLeft))
	c.MoveRightX(x, compiler.At(start), compiler.At(setOne))

	return c.Program()
}

// SetBitXAndFindAgain sets cell x, returns to 0 and scans for the set cell.
func SetBitXAndFindAgain(x int) machine.Program {
	c := compiler.New()

	moveRight := c.AllocateState()
	setOne := c.AllocateState()
	moveLeft := c.AllocateState()
	scanStart := c.AllocateState()
	done := c.AllocateState()

	c.MoveRightX(x, compiler.At(moveRight), compiler.At(setOne))
	c.Mark(compiler.At(setOne), compiler.At(moveLeft))
	c.MoveLeftX(x, compiler.At(moveLeft), compiler.At(scanStart))
	c.ScanSingle(true, machine.Right, machine.Stay, compiler.At(scanStart), compiler.At(done))
	c.Halt(compiler.At(done))

	return c.Program()
}

// MoveRightTillOne stops on the first 1 at or right of the head.
func MoveRightTillOne() machine.Program {
	c := compiler.New()

	check := c.AllocateState()
	done := c.Halt(compiler.Free)

	c.Branch(compiler.At(check), compiler.At(done), compiler.At(check), machine.Stay, machine.Right)

	return c.Program()
}

// Adder adds two width-bit numbers laid out as [carry][a][b][sum] per digit,
// least significant digit first, leaving the carry out after the last digit.
func Adder(width int) machine.Program {
	c := compiler.New()

	start := c.AllocateState()
	done := c.Halt(compiler.Free)

	c.ChainedLoop(width, compiler.At(start), compiler.At(done), func(_ int, from, to compiler.Anchor) (machine.State, machine.State) {
		return c.Add(machine.Right, machine.Stay, from, to)
	})

	return c.Program()
}

// AdderOnes lays out a and b for Adder.
func AdderOnes(width int, a, b uint64) (ones []int) {
	for i := range width {
		if a&(1<<i) != 0 {
			ones = append(ones, 4*i+1)
		}
		if b&(1<<i) != 0 {
			ones = append(ones, 4*i+2)
		}
	}
	return
}

// AdderSum reads the sum, including the carry out, back from a tape.
func AdderSum(tape machine.Tape, width int) (uint64, error) {
	var sum uint64
	for i := range width + 1 {
		pos := 4*i + 3
		if i == width {
			pos = 4 * width
		}
		bit, err := tape.Read(pos)
		if err != nil {
			return 0, err
		}
		if bit {
			sum |= 1 << i
		}
	}
	return sum, nil
}

type gateFunc func(c *compiler.Compiler, move, finalMove machine.Movement, current, next compiler.Anchor) (machine.State, machine.State)

// Gates builds one program per gate. Gate i reads cells 3i and 3i+1 and
// writes its result to 3i+2.
func Gates() []machine.Program {
	var programs []machine.Program
	for i, gate := range []gateFunc{
		(*compiler.Compiler).Or,
		(*compiler.Compiler).And,
		(*compiler.Compiler).Xor,
	} {
		c := compiler.New()
		start := c.AllocateState()
		done := c.Halt(compiler.Free)
		gateStart := start
		if i > 0 {
			_, gateStart = c.MoveRightX(3*i, compiler.At(start), compiler.Free)
		}
		gate(c, machine.Right, machine.Stay, compiler.At(gateStart), compiler.At(done))
		programs = append(programs, c.Program())
	}
	return programs
}
