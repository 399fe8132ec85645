package tmscript

import (
	"strings"
	"testing"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"go.starlark.net/starlark"
)

func run(t *testing.T, src string, tape *machine.Unbounded, head int) *machine.Machine {
	t.Helper()
	result, err := Exec(nil, "test.star", src)
	if err != nil {
		t.Fatal(err)
	}
	if tape == nil {
		tape = machine.NewUnbounded()
	}
	m, err := machine.Run(result.Program, tape, head)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSetBitAndFindAgain(t *testing.T) {
	m := run(t, `
x = 100
move_right = allocate()
set_one = allocate()
move_left = allocate()
scan = allocate()
done = allocate()
move_right_x(x, move_right, set_one)
mark(set_one, move_left)
move_left_x(x, move_left, scan)
scan_single(1, R, S, scan, done)
halt(done)
`, nil, 0)
	if m.Head != 100 {
		t.Fatalf("got %d", m.Head)
	}
}

func TestWriteAndScanPattern(t *testing.T) {
	m := run(t, `
start = allocate()
done = halt()
_, back = write_pattern("11000101", R, R, current = start)
_, scan = move_right_x(3, back)
scan_pattern([1, 1, 0, 0, 0, 1, 0, 1], L, S, scan, done)
`, nil, 0)
	if m.Head != 0 {
		t.Fatalf("got %d", m.Head)
	}
}

func TestChainedLoop(t *testing.T) {
	m := run(t, `
start = allocate()
done = halt()

def digit(i, start, end):
    return add(R, S, start, end)

chained_loop(4, start, done, digit)
`, func() *machine.Unbounded {
		// 3 + 6
		tape := machine.NewUnbounded()
		tape.Set(1)
		tape.Set(5)
		tape.Set(4 + 2)
		tape.Set(8 + 2)
		return tape
	}(), 0)
	tape := m.Tape.(*machine.Unbounded)
	var sum int
	for i := range 4 {
		if tape.Get(4*i + 3) {
			sum |= 1 << i
		}
	}
	if sum != 9 {
		t.Fatalf("got %d", sum)
	}
}

func TestGates(t *testing.T) {
	for _, name := range []string{"or_gate", "and_gate", "xor_gate"} {
		m := run(t, `
start = allocate()
`+name+`(R, S, start, halt())
`, machine.NewUnbounded(0), 0)
		got := m.Tape.(*machine.Unbounded).Get(2)
		want := name != "and_gate"
		if got != want {
			t.Fatalf("%s: got %v", name, got)
		}
	}
}

func TestBranch(t *testing.T) {
	m := run(t, `
start = allocate()
done = halt()
cur, one, zero = branch(start, move_one = R, move_zero = L)
mark(one, done)
unmark(zero, done)
`, machine.NewUnbounded(0), 0)
	if m.Head != 1 || !m.Tape.(*machine.Unbounded).Get(1) {
		t.Fatalf("got %d", m.Head)
	}
}

func TestAddInstruction(t *testing.T) {
	m := run(t, `
add_instruction(0, 0, 1, R, HALT)
add_instruction(0, 1, 0, L, HALT)
`, nil, 0)
	if m.Head != 1 || !m.Tape.(*machine.Unbounded).Get(0) {
		t.Fatalf("got %d", m.Head)
	}
}

func TestGlobals(t *testing.T) {
	result, err := Exec(nil, "test.star", `
max_idle_steps = 42
mark(allocate(), halt())
`)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := result.Globals["max_idle_steps"].(starlark.Int); !ok || v.String() != "42" {
		t.Fatalf("got %v", result.Globals["max_idle_steps"])
	}
	if result.Program.Len() != 4 {
		t.Fatalf("got %d", result.Program.Len())
	}
}

func TestErrors(t *testing.T) {
	cases := map[string]string{
		"bad movement":   `mark_and_move_left(allocate(), halt()); scan_single(1, "X", S)`,
		"bad bit":        `write_and_move(2, R)`,
		"bad pattern":    `write_pattern("10a", R, S)`,
		"zero loop":      `chained_loop(0, None, None, lambda i, s, e: (0, 0))`,
		"bad body":       `chained_loop(2, None, None, lambda i, s, e: 1)`,
		"negative state": `mark(-1)`,
	}
	for name, src := range cases {
		if _, err := Exec(nil, "test.star", src); err == nil {
			t.Fatalf("%s: should fail", name)
		}
	}
}

func TestPanicBecomesError(t *testing.T) {
	_, err := Exec(nil, "test.star", `move_right_x(0)`)
	if err == nil || !strings.Contains(err.Error(), "move_right_x") {
		t.Fatalf("got %v", err)
	}
}
