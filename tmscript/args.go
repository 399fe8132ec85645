package tmscript

import (
	"fmt"

	"github.com/Zitronenjoghurt/simple-turing-machine/compiler"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"go.starlark.net/starlark"
)

func toState(v starlark.Value) (machine.State, error) {
	i, ok := v.(starlark.Int)
	if !ok {
		return 0, fmt.Errorf("want state int, got %s", v.Type())
	}
	u, ok := i.Uint64()
	if !ok {
		return 0, fmt.Errorf("state out of range: %s", i)
	}
	return machine.State(u), nil
}

func stateValue(s machine.State) starlark.Value {
	return starlark.MakeUint64(uint64(s))
}

func anchorValue(a compiler.Anchor) starlark.Value {
	s, ok := a.State()
	if !ok {
		return starlark.None
	}
	return stateValue(s)
}

func states(ss ...machine.State) starlark.Tuple {
	ret := make(starlark.Tuple, len(ss))
	for i, s := range ss {
		ret[i] = stateValue(s)
	}
	return ret
}

// anchorArg is an optional state argument; None or absent means free.
type anchorArg struct {
	compiler.Anchor
}

var _ starlark.Unpacker = new(anchorArg)

func (a *anchorArg) Unpack(v starlark.Value) error {
	if v == starlark.None {
		a.Anchor = compiler.Free
		return nil
	}
	s, err := toState(v)
	if err != nil {
		return err
	}
	a.Anchor = compiler.At(s)
	return nil
}

type movementArg struct {
	machine.Movement
}

var _ starlark.Unpacker = new(movementArg)

func (m *movementArg) Unpack(v starlark.Value) error {
	s, ok := starlark.AsString(v)
	if !ok {
		return fmt.Errorf("want movement string, got %s", v.Type())
	}
	mv, err := machine.ParseMovement(s)
	if err != nil {
		return err
	}
	m.Movement = mv
	return nil
}

type bitArg bool

var _ starlark.Unpacker = new(bitArg)

func (b *bitArg) Unpack(v starlark.Value) error {
	bit, err := toBit(v)
	if err != nil {
		return err
	}
	*b = bitArg(bit)
	return nil
}

func toBit(v starlark.Value) (bool, error) {
	switch v := v.(type) {
	case starlark.Bool:
		return bool(v), nil
	case starlark.Int:
		n, ok := v.Int64()
		if ok && (n == 0 || n == 1) {
			return n == 1, nil
		}
	}
	return false, fmt.Errorf("want bit, got %s", v)
}

// patternArg takes "1101" or a list of bits.
type patternArg struct {
	compiler.Pattern
}

var _ starlark.Unpacker = new(patternArg)

func (p *patternArg) Unpack(v starlark.Value) error {
	if s, ok := starlark.AsString(v); ok {
		pattern, err := compiler.ParsePattern(s)
		if err != nil {
			return err
		}
		p.Pattern = pattern
		return nil
	}
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return fmt.Errorf("want pattern, got %s", v.Type())
	}
	iter := iterable.Iterate()
	defer iter.Done()
	var elem starlark.Value
	var pattern compiler.Pattern
	for iter.Next(&elem) {
		bit, err := toBit(elem)
		if err != nil {
			return err
		}
		pattern = append(pattern, bit)
	}
	if len(pattern) == 0 {
		return fmt.Errorf("empty pattern")
	}
	p.Pattern = pattern
	return nil
}
