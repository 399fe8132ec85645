package compiler

import (
	"testing"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("1100_0101")
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 8 {
		t.Fatalf("got %d", p.Len())
	}
	if p.String() != "11000101" {
		t.Fatalf("got %s", p)
	}
	if _, err := ParsePattern("10x"); err == nil {
		t.Fatal("should fail")
	}
	if _, err := ParsePattern(""); err == nil {
		t.Fatal("should fail")
	}
}

func TestPatternAtOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	MustParsePattern("101").At(3)
}

func TestWritePatternRight(t *testing.T) {
	p := MustParsePattern("11000101")
	c := New()
	start := c.AllocateState()
	done := c.Halt(Free)
	c.WritePattern(p, machine.Right, machine.Stay, At(start), At(done))

	m := run(t, c, nil, 0)
	if m.Head != 7 {
		t.Fatalf("got %d", m.Head)
	}
	tape := m.Tape.(*machine.Unbounded)
	for i := range p.Len() {
		if tape.Get(i) != p.At(i) {
			t.Fatalf("cell %d: got %v", i, tape.Get(i))
		}
	}
}

func TestWritePatternLeft(t *testing.T) {
	p := MustParsePattern("11000101")
	c := New()
	start := c.AllocateState()
	done := c.Halt(Free)
	c.WritePattern(p, machine.Left, machine.Stay, At(start), At(done))

	m := run(t, c, nil, 0)
	if m.Head != -7 {
		t.Fatalf("got %d", m.Head)
	}
	tape := m.Tape.(*machine.Unbounded)
	// reads left to right the same as writing rightwards
	for i := range p.Len() {
		if tape.Get(m.Head+i) != p.At(i) {
			t.Fatalf("cell %d: got %v", m.Head+i, tape.Get(m.Head+i))
		}
	}
}

func TestWritePatternFinalMove(t *testing.T) {
	c := New()
	start := c.AllocateState()
	done := c.Halt(Free)
	c.WritePattern(MustParsePattern("101"), machine.Right, machine.Right, At(start), At(done))
	m := run(t, c, nil, 0)
	if m.Head != 3 {
		t.Fatalf("got %d", m.Head)
	}
}

func TestScanPattern(t *testing.T) {
	p := MustParsePattern("11000101")

	c := New()
	start := c.AllocateState()
	done := c.Halt(Free)
	c.ScanPattern(p, machine.Right, machine.Stay, At(start), At(done))
	m := run(t, c, machine.NewUnbounded(4, 5, 9, 11), 0)
	if m.Head != 11 {
		t.Fatalf("got %d", m.Head)
	}

	c = New()
	start = c.AllocateState()
	done = c.Halt(Free)
	c.ScanPattern(p, machine.Left, machine.Stay, At(start), At(done))
	m = run(t, c, machine.NewUnbounded(4, 5, 9, 11), 15)
	if m.Head != 4 {
		t.Fatalf("got %d", m.Head)
	}
}

func TestScanPatternReturnsAnchors(t *testing.T) {
	c := New()
	start := c.AllocateState()
	done := c.AllocateState()
	s, e := c.ScanPattern(MustParsePattern("10"), machine.Right, machine.Stay, At(start), At(done))
	if s != start || e != done {
		t.Fatalf("got %v %v", s, e)
	}
}

func TestWriteThenScan(t *testing.T) {
	for _, text := range []string{"1", "10", "1101", "11011011011", "100000001"} {
		p := MustParsePattern(text)
		c := New()
		write := c.AllocateState()
		away := c.AllocateState()
		back := c.AllocateState()
		scan := c.AllocateState()
		done := c.Halt(Free)
		c.MoveRightX(5, At(write), At(away))
		c.WritePattern(p, machine.Right, machine.Right, At(away), At(back))
		c.MoveRightX(3, At(back), At(scan))
		c.ScanPattern(p, machine.Left, machine.Stay, At(scan), At(done))

		m := run(t, c, nil, 0)
		if m.Head != 5 {
			t.Fatalf("%s: got %d", text, m.Head)
		}
	}
}

func TestMarkStartFindStart(t *testing.T) {
	startPattern := MustParsePattern("11011011011")
	c := New()
	markStart := c.AllocateState()
	moveAway := c.AllocateState()
	markOther := c.AllocateState()
	findStart := c.AllocateState()
	done := c.Halt(Free)
	c.WritePattern(startPattern, machine.Right, machine.Right, At(markStart), At(moveAway))
	c.MoveRightX(4, At(moveAway), At(markOther))
	c.WritePattern(MustParsePattern("1101"), machine.Right, machine.Stay, At(markOther), At(findStart))
	c.ScanPattern(startPattern, machine.Left, machine.Stay, At(findStart), At(done))

	m := run(t, c, nil, 0)
	if m.Head != 0 {
		t.Fatalf("got %d", m.Head)
	}
}
