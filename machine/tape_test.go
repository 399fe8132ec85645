package machine

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestUnboundedSetUnsetRead(t *testing.T) {
	tape := NewUnbounded(7, 13, 19)
	for i := 0; i <= 31; i++ {
		want := i == 7 || i == 13 || i == 19
		if got := tape.Get(i); got != want {
			t.Fatalf("cell %d: got %v", i, got)
		}
	}
	tape.Set(3)
	tape.Unset(3)
	if tape.Get(3) {
		t.Fatal("cell 3 should be unset")
	}
}

func TestUnboundedGrowLeftKeepsPositions(t *testing.T) {
	tape := NewUnbounded(0, 5)
	if err := tape.Write(-9, true); err != nil {
		t.Fatal(err)
	}
	if !tape.Get(0) || !tape.Get(5) || !tape.Get(-9) {
		t.Fatal("positions renumbered")
	}
	if tape.Get(-1) || tape.Get(-8) {
		t.Fatal("default must be 0")
	}
	lo, hi := tape.Bounds()
	if lo != -9 || hi != 5 {
		t.Fatalf("got %d %d", lo, hi)
	}
	if ones := tape.Ones(); !slices.Equal(ones, []int{-9, 0, 5}) {
		t.Fatalf("got %v", ones)
	}
}

func TestUnboundedReadGrowsBounds(t *testing.T) {
	var tape Unbounded
	if lo, hi := tape.Bounds(); lo != 0 || hi != 0 {
		t.Fatalf("got %d %d", lo, hi)
	}
	bit, err := tape.Read(100)
	if err != nil {
		t.Fatal(err)
	}
	if bit {
		t.Fatal("should be 0")
	}
	if _, hi := tape.Bounds(); hi != 100 {
		t.Fatalf("got %d", hi)
	}
}

func TestUnboundedJSON(t *testing.T) {
	tape := NewUnbounded(-3, 2, 64, 65)
	data, err := json.Marshal(tape)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Unbounded
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", decoded.Ones()); str != "[-3 2 64 65]" {
		t.Fatalf("got %s", str)
	}
	lo, hi := decoded.Bounds()
	if lo != -3 || hi != 65 {
		t.Fatalf("got %d %d", lo, hi)
	}
}

func TestUnboundedClone(t *testing.T) {
	tape := NewUnbounded(1)
	clone := tape.Clone()
	clone.Set(2)
	if tape.Get(2) {
		t.Fatal("clone shares storage")
	}
	if !clone.Get(1) {
		t.Fatal("clone lost cell")
	}
}

func TestBoundedSetUnsetRead(t *testing.T) {
	tape := NewBounded(4)
	for _, pos := range []int{7, 13, 19} {
		if err := tape.Write(pos, true); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i <= 31; i++ {
		bit, err := tape.Read(i)
		if err != nil {
			t.Fatal(err)
		}
		if want := i == 7 || i == 13 || i == 19; bit != want {
			t.Fatalf("cell %d: got %v", i, bit)
		}
	}
}

func TestNegativeBoundedSize(t *testing.T) {
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("should panic")
		}
		if !strings.Contains(fmt.Sprint(p), "negative tape size") {
			t.Fatalf("got %v", p)
		}
	}()
	NewBounded(-1)
}

func TestIsNilTape(t *testing.T) {
	if !IsNilTape(nil) || !IsNilTape((*Unbounded)(nil)) || !IsNilTape((*Bounded)(nil)) {
		t.Fatal("should be nil")
	}
	if IsNilTape(new(Unbounded)) || IsNilTape(NewBounded(1)) {
		t.Fatal("should not be nil")
	}
}

func TestBoundedOutOfRange(t *testing.T) {
	tape := NewBounded(4)

	if _, err := tape.Read(31); err != nil {
		t.Fatal(err)
	}
	_, err := tape.Read(32)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v", err)
	}
	if err.Error() != "tape out of range: bit index 32 out of range for 4 bytes" {
		t.Fatalf("got %q", err.Error())
	}

	err = tape.Write(37, true)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v", err)
	}
	err = tape.Write(-1, false)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v", err)
	}
}
