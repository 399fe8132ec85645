package debugs

import (
	"context"
	"errors"
	"testing"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/modes"
	"github.com/reusee/dscope"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"foo": 42,
		})
	})
}

func TestInspectFaultDisabled(t *testing.T) {
	var tapped bool
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() Tap {
			return func(context.Context, string, map[string]any) {
				tapped = true
			}
		},
	).Call(func(
		inspect InspectFault,
	) {
		inspect(t.Context(), machine.New(machine.Program{}, nil, 0), errors.New("x"))
	})
	if tapped {
		t.Fatal("should not tap")
	}
}

func TestInspectFault(t *testing.T) {
	var got map[string]any
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() TapEnabled {
			return true
		},
		func() Tap {
			return func(_ context.Context, what string, globals map[string]any) {
				got = globals
			}
		},
	).Call(func(
		inspect InspectFault,
	) {
		m := machine.New(machine.Program{}, machine.NewUnbounded(3), 2)
		err := m.Run()
		if !errors.Is(err, machine.ErrDanglingState) {
			t.Fatalf("got %v", err)
		}
		inspect(t.Context(), m, nil)
		if got != nil {
			t.Fatal("should skip nil error")
		}
		inspect(t.Context(), m, err)
	})
	if got == nil {
		t.Fatal("should tap")
	}
	if got["head"] != 2 || got["state"] != "q0" {
		t.Fatalf("got %v", got)
	}
	if ones := got["ones"].([]int); len(ones) != 1 || ones[0] != 3 {
		t.Fatalf("got %v", ones)
	}
	if _, ok := got["error"]; !ok {
		t.Fatal("missing error")
	}
}
