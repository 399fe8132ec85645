package tmconfigs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zitronenjoghurt/simple-turing-machine/configs"
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/modes"
	"github.com/reusee/dscope"
	"go.starlark.net/starlark"
)

func testScope(t *testing.T, cue string) dscope.Scope {
	scope := dscope.New(new(Module), modes.ForTest(t))
	if cue == "" {
		return scope
	}
	path := filepath.Join(t.TempDir(), "tm.cue")
	if err := os.WriteFile(path, []byte(cue), 0644); err != nil {
		t.Fatal(err)
	}
	return scope.Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{path}, schema)
		},
	)
}

func TestDefaults(t *testing.T) {
	testScope(t, "").Call(func(
		maxIdle MaxIdleSteps,
		style TraceStyle,
		window TraceWindow,
		delay TraceDelay,
		tapeBytes TapeBytes,
		storeDir StoreDir,
		concurrency Concurrency,
		tracer Tracer,
	) {
		if maxIdle != machine.DefaultMaxIdle {
			t.Fatalf("got %v", maxIdle)
		}
		if machine.Style(style) != machine.StyleNone {
			t.Fatalf("got %v", style)
		}
		if window != defaultTraceWindow {
			t.Fatalf("got %v", window)
		}
		if delay != 0 {
			t.Fatalf("got %v", delay)
		}
		if tapeBytes != 0 {
			t.Fatalf("got %v", tapeBytes)
		}
		if !strings.HasSuffix(string(storeDir), filepath.Join("simple-turing-machine", "store")) {
			t.Fatalf("got %v", storeDir)
		}
		if concurrency < 1 {
			t.Fatalf("got %v", concurrency)
		}
		if tracer != nil {
			t.Fatal("should not trace")
		}
	})
}

func TestFromFile(t *testing.T) {
	testScope(t, `
max_idle_steps: 50
trace_style: "formal"
trace_window: 2
trace_delay_ms: 1
tape_bytes: 4
store_dir: "/tmp/tm-store"
concurrency: 3
`).Call(func(
		maxIdle MaxIdleSteps,
		style TraceStyle,
		window TraceWindow,
		delay TraceDelay,
		tapeBytes TapeBytes,
		storeDir StoreDir,
		concurrency Concurrency,
		newTape NewTape,
	) {
		if maxIdle != 50 {
			t.Fatalf("got %v", maxIdle)
		}
		if machine.Style(style) != machine.StyleFormal {
			t.Fatalf("got %v", style)
		}
		if window != 2 {
			t.Fatalf("got %v", window)
		}
		if time.Duration(delay) != time.Millisecond {
			t.Fatalf("got %v", delay)
		}
		if tapeBytes != 4 {
			t.Fatalf("got %v", tapeBytes)
		}
		if storeDir != "/tmp/tm-store" {
			t.Fatalf("got %v", storeDir)
		}
		if concurrency != 3 {
			t.Fatalf("got %v", concurrency)
		}
		bounded, ok := newTape().(*machine.Bounded)
		if !ok {
			t.Fatal("should be bounded")
		}
		if _, hi := bounded.Bounds(); hi != 31 {
			t.Fatalf("got %d", hi)
		}
	})
}

func TestNewMachine(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, `
max_idle_steps: 10
trace_style: "formal"
trace_window: 1
`).Fork(
		func() logs.Writer {
			return buf
		},
	).Call(func(
		newMachine NewMachine,
	) {
		// spins in place forever
		program := machine.NewProgram(
			machine.Instruction{State: 0, Read: false, Write: false, Move: machine.Stay, Next: 0},
		)
		m := newMachine(program, nil, 0)
		if m.MaxIdle != 10 || m.WindowRadius != 1 || m.Tracer == nil {
			t.Fatalf("got %+v", m)
		}
		if _, ok := m.Tape.(*machine.Unbounded); !ok {
			t.Fatal("should be unbounded")
		}
		err := m.Run()
		if !errors.Is(err, machine.ErrNonTermination) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestNewMachineTypedNilTape(t *testing.T) {
	testScope(t, `
tape_bytes: 2
`).Call(func(
		newMachine NewMachine,
	) {
		m := newMachine(machine.NewProgram(
			machine.Instruction{State: 0, Read: false, Write: true, Move: machine.Stay, Next: machine.Halt},
		), (*machine.Unbounded)(nil), 0)
		tape, ok := m.Tape.(*machine.Bounded)
		if !ok {
			t.Fatalf("got %T", m.Tape)
		}
		if tape.Size() != 2 {
			t.Fatalf("got %v", tape.Size())
		}
		if err := m.Run(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestTracerLogsAtDebug(t *testing.T) {
	testScope(t, `trace_style: "visual"`).Call(func(
		tracer Tracer,
	) {
		if tracer == nil {
			t.Fatal("should trace")
		}
		tracer(machine.Event{})
	})
}

func TestBadConfigFile(t *testing.T) {
	testScope(t, `unknown: 1`).Call(func(
		loader configs.Loader,
	) {
		if loader.Err() == nil {
			t.Fatal("should reject unknown keys")
		}
	})
}

func TestScriptOverrides(t *testing.T) {
	scope := testScope(t, `max_idle_steps: 50`)
	scope, err := configs.StarlarkFork(scope, starlark.StringDict{
		"max_idle_steps": starlark.MakeInt(7),
		"trace_style":    starlark.String("visual-formal"),
	})
	if err != nil {
		t.Fatal(err)
	}
	scope.Call(func(
		maxIdle MaxIdleSteps,
		style TraceStyle,
		newMachine NewMachine,
	) {
		if maxIdle != 7 {
			t.Fatalf("got %v", maxIdle)
		}
		if machine.Style(style) != machine.StyleVisualFormal {
			t.Fatalf("got %v", style)
		}
		if m := newMachine(machine.Program{}, nil, 0); m.MaxIdle != 7 || m.Tracer == nil {
			t.Fatalf("got %+v", m)
		}
	})
}
