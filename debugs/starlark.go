package debugs

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toStarlarkValue converts Go values for a tap. States, movements and
// instructions show as their text form, tapes as a dict of bounds and set
// cells, structs as dicts of exported fields.
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case *machine.Unbounded:
		if v == nil {
			return starlark.None
		}
		return tapeDict(v, toStarlarkValue(v.Ones()))

	case *machine.Bounded:
		if v == nil {
			return starlark.None
		}
		return tapeDict(v, starlark.MakeInt(v.Size()))

	case machine.Program:
		return toStarlarkValue(v.Instructions())

	case encoding.TextMarshaler:
		if value := reflect.ValueOf(v); value.Kind() == reflect.Pointer && value.IsNil() {
			return starlark.None
		}
		text, err := v.MarshalText()
		if err != nil {
			return starlark.String(fmt.Sprint(v))
		}
		return starlark.String(text)

	case fmt.Stringer:
		// pointers fall through to their element
		if reflect.ValueOf(v).Kind() != reflect.Pointer {
			return starlark.String(v.String())
		}

	case error:
		return starlark.String(v.Error())

	case []byte:
		return starlark.Bytes(v)

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(typ.NumField())
		for i := range typ.NumField() {
			if field := typ.Field(i); field.IsExported() {
				d.SetKey(
					starlark.String(field.Name),
					toStarlarkValue(value.Field(i).Interface()),
				)
			}
		}
		return d

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return starlark.None
		}
		return toStarlarkValue(value.Elem().Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

func tapeDict(tape machine.Tape, extra starlark.Value) *starlark.Dict {
	lo, hi := tape.Bounds()
	d := starlark.NewDict(3)
	d.SetKey(starlark.String("lo"), starlark.MakeInt(lo))
	d.SetKey(starlark.String("hi"), starlark.MakeInt(hi))
	switch tape.(type) {
	case *machine.Unbounded:
		d.SetKey(starlark.String("ones"), extra)
	case *machine.Bounded:
		d.SetKey(starlark.String("size"), extra)
	}
	return d
}
