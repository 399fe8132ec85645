package configs

import (
	"fmt"
	"testing"

	"github.com/reusee/dscope"
	"go.starlark.net/starlark"
)

type testSteps int

func (testSteps) ConfigKey() string {
	return "max_idle_steps"
}

type testName string

func (testName) ConfigKey() string {
	return "name"
}

type testLevel uint8

func (testLevel) ConfigKey() string {
	return "level"
}

func (l *testLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*l = 1
	case "high":
		*l = 2
	default:
		return fmt.Errorf("bad level %q", text)
	}
	return nil
}

func TestStarlarkFork(t *testing.T) {
	scope := dscope.New(
		dscope.Provide(testSteps(1)),
		dscope.Provide(testName("a")),
		dscope.Provide(testLevel(0)),
	)

	scope, err := StarlarkFork(scope, starlark.StringDict{
		"max_idle_steps": starlark.MakeInt(42),
		"level":          starlark.String("high"),
		"unrelated":      starlark.True,
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := dscope.Get[testSteps](scope); n != 42 {
		t.Fatalf("got %v", n)
	}
	if l := dscope.Get[testLevel](scope); l != 2 {
		t.Fatalf("got %v", l)
	}
	if s := dscope.Get[testName](scope); s != "a" {
		t.Fatalf("got %v", s)
	}
}

func TestStarlarkForkTypeMismatch(t *testing.T) {
	scope := dscope.New(
		dscope.Provide(testSteps(1)),
	)
	_, err := StarlarkFork(scope, starlark.StringDict{
		"max_idle_steps": starlark.String("many"),
	})
	if err == nil {
		t.Fatal("should fail")
	}
}
