package configs

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/reusee/dscope"
	"go.starlark.net/starlark"
)

// StarlarkFork overrides every Configurable type in scope whose ConfigKey is
// bound in globals.
func StarlarkFork(scope dscope.Scope, globals starlark.StringDict) (dscope.Scope, error) {
	var defs []any
	for t := range scope.AllTypes() {
		if !t.Implements(configurableType) {
			continue
		}
		key := reflect.Zero(t).Interface().(Configurable).ConfigKey()
		v, ok := globals[key]
		if !ok {
			continue
		}
		value, err := fromStarlark(t, v)
		if err != nil {
			return scope, fmt.Errorf("%s: %w", key, err)
		}
		defs = append(defs, value.Addr().Interface())
	}
	if len(defs) == 0 {
		return scope, nil
	}
	return scope.Fork(defs...), nil
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

func fromStarlark(t reflect.Type, v starlark.Value) (reflect.Value, error) {
	ret := reflect.New(t).Elem()

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		s, ok := starlark.AsString(v)
		if !ok {
			return ret, fmt.Errorf("want string, got %s", v.Type())
		}
		if err := ret.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return ret, err
		}
		return ret, nil
	}

	switch t.Kind() {

	case reflect.Bool:
		b, ok := v.(starlark.Bool)
		if !ok {
			return ret, fmt.Errorf("want bool, got %s", v.Type())
		}
		ret.SetBool(bool(b))
		return ret, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := v.(starlark.Int)
		if !ok {
			return ret, fmt.Errorf("want int, got %s", v.Type())
		}
		n, ok := i.Int64()
		if !ok || ret.OverflowInt(n) {
			return ret, fmt.Errorf("int out of range: %s", i)
		}
		ret.SetInt(n)
		return ret, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := v.(starlark.Int)
		if !ok {
			return ret, fmt.Errorf("want int, got %s", v.Type())
		}
		n, ok := i.Uint64()
		if !ok || ret.OverflowUint(n) {
			return ret, fmt.Errorf("uint out of range: %s", i)
		}
		ret.SetUint(n)
		return ret, nil

	case reflect.Float32, reflect.Float64:
		f, ok := starlark.AsFloat(v)
		if !ok {
			return ret, fmt.Errorf("want float, got %s", v.Type())
		}
		ret.SetFloat(f)
		return ret, nil

	case reflect.String:
		s, ok := starlark.AsString(v)
		if !ok {
			return ret, fmt.Errorf("want string, got %s", v.Type())
		}
		ret.SetString(s)
		return ret, nil

	}

	return ret, fmt.Errorf("unsupported config type %v", t)
}
