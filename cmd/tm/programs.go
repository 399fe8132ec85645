package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Zitronenjoghurt/simple-turing-machine/catalog"
	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/configs"
	"github.com/Zitronenjoghurt/simple-turing-machine/debugs"
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/store"
	"github.com/Zitronenjoghurt/simple-turing-machine/tapes"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmscript"
	"github.com/Zitronenjoghurt/simple-turing-machine/vars"
	"github.com/kr/pretty"
	"github.com/reusee/dscope"
)

var (
	onesFlag     = cmds.Collect[int]("-one", "set a cell before running, may repeat")
	headFlag     = cmds.Var[int]("-head", "start position of the head")
	loadTapeFlag = cmds.Var[string]("-load-tape", "start from a stored tape")
	saveTapeFlag = cmds.Var[string]("-save-tape", "store the final tape under a name")
	saveFlag     = cmds.Var[string]("-save", "store the program built by a script under a name")
	descFlag     = cmds.Var[string]("-desc", "description for -save")
)

func init() {
	command("list", "list catalog entries, stored programs and stored tapes", func() {
		job = list
	})
	command("run", "run a catalog entry or a stored program", func(name string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			run(ctx, scope, name)
		}
	})
	command("check", "run every catalog entry and verify the results", func() {
		job = check
	})
	command("script", "build a program with a starlark script and run it", func(path string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			script(ctx, scope, path)
		}
	})
	command("delete", "delete a stored program", func(name string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			scope.Call(func(openStore store.OpenStore) {
				withStore(openStore, func(s *store.Store) {
					ce(s.DeleteProgram(name))
				})
			})
		}
	})
	command("dump", "pretty print the programs of a name", func(name string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			pretty.Println(resolve(ctx, scope, name))
		}
	})
	command("print", "print the instructions of a name in formal notation", func(name string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			for i, program := range resolve(ctx, scope, name) {
				fmt.Printf("# program %d: %d states, %d instructions\n", i, len(program.States()), program.Len())
				for _, inst := range program.Instructions() {
					fmt.Println(inst)
				}
			}
		}
	})
	command("json", "print the programs of a name as json", func(name string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			data, err := json.MarshalIndent(resolve(ctx, scope, name), "", "  ")
			ce(err)
			fmt.Printf("%s\n", data)
		}
	})
	command("tape", "print the set cells of a stored tape", func(name string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			scope.Call(func(openStore store.OpenStore) {
				withStore(openStore, func(s *store.Store) {
					tape, err := s.GetTape(name)
					ce(err)
					fmt.Println(tape.Ones())
				})
			})
		}
	})
}

func withStore(openStore store.OpenStore, fn func(*store.Store)) {
	s, err := openStore()
	ce(err)
	defer func() {
		ce(s.Close())
	}()
	fn(s)
}

func resolve(ctx context.Context, scope dscope.Scope, name string) (programs []machine.Program) {
	scope.Call(func(resolve tapes.Resolve) {
		var err error
		programs, err = resolve(ctx, name)
		ce(err)
	})
	return
}

func list(ctx context.Context, scope dscope.Scope) {
	fmt.Println("catalog:")
	for _, entry := range catalog.Entries() {
		fmt.Printf("  %-28s %s\n", entry.Name, entry.Description)
	}
	scope.Call(func(openStore store.OpenStore) {
		withStore(openStore, func(s *store.Store) {
			names, err := s.Programs()
			ce(err)
			fmt.Println("programs:")
			for _, name := range names {
				entry, err := s.GetProgram(name)
				ce(err)
				fmt.Printf("  %-28s %s (%d instructions, saved %s)\n",
					name, entry.Description, entry.Program.Len(), entry.Saved.Format("2006-01-02 15:04"))
			}
			names, err = s.Tapes()
			ce(err)
			fmt.Println("tapes:")
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
		})
	})
}

func run(ctx context.Context, scope dscope.Scope, name string) {
	if entry, ok := catalog.Get(name); ok && len(*onesFlag) == 0 && *loadTapeFlag == "" {
		scope.Call(func(run catalog.Run) {
			result := run(ctx, entry)
			report(result.Machine, result.Err)
			writeSnapshot(result.Machine)
			saveTape(scope, result.Machine)
			if result.Err != nil {
				os.Exit(1)
			}
		})
		return
	}
	runPrograms(ctx, scope, resolve(ctx, scope, name))
}

// runPrograms chains programs over one tape built from the tape flags.
func runPrograms(ctx context.Context, scope dscope.Scope, programs []machine.Program) {
	scope.Call(func(
		newMachine tmconfigs.NewMachine,
		openStore store.OpenStore,
		inspect debugs.InspectFault,
		logger logs.Logger,
	) {
		var tape machine.Tape
		if name := *loadTapeFlag; name != "" {
			withStore(openStore, func(s *store.Store) {
				t, err := s.GetTape(name)
				ce(err)
				tape = t
			})
		}

		m := newMachine(machine.Program{}, tape, *headFlag)
		for _, pos := range *onesFlag {
			ce(m.Tape.Write(pos, true))
		}

		for i, program := range programs {
			if i == 0 {
				m.Program = program
			} else {
				m.Reset(program)
			}
			if err := m.Run(); err != nil {
				inspect(ctx, m, err)
				report(m, logs.WrapSpan(ctx, err))
				writeSnapshot(m)
				os.Exit(1)
			}
			logger.DebugContext(ctx, "program halted", "index", i, "steps", m.Steps)
		}
		report(m, nil)
		writeSnapshot(m)
		saveTape(scope, m)
	})
}

func report(m *machine.Machine, err error) {
	if err != nil {
		fmt.Printf("fault: %v\n", err)
	} else {
		fmt.Println("halted")
	}
	fmt.Printf("steps: %d\nhead: %d\nstate: %s\n", m.Steps, m.Head, m.State)
	lo, hi := m.Tape.Bounds()
	fmt.Printf("tape bounds: [%d, %d]\n", lo, hi)
	if tape, ok := m.Tape.(*machine.Unbounded); ok {
		fmt.Printf("ones: %v\n", tape.Ones())
	}
}

func saveTape(scope dscope.Scope, m *machine.Machine) {
	name := vars.DerefOrZero(saveTapeFlag)
	if name == "" {
		return
	}
	tape, ok := m.Tape.(*machine.Unbounded)
	if !ok {
		ce(fmt.Errorf("only unbounded tapes can be stored, unset tape_bytes"))
	}
	scope.Call(func(openStore store.OpenStore) {
		withStore(openStore, func(s *store.Store) {
			ce(s.PutTape(name, tape))
		})
	})
}

func check(ctx context.Context, scope dscope.Scope) {
	scope.Call(func(runAll catalog.RunAll) {
		results, err := runAll(ctx, catalog.Entries())
		ce(err)
		failed := 0
		for _, result := range results {
			if result.Err != nil {
				failed++
				fmt.Printf("FAIL %-28s %v\n", result.Entry.Name, result.Err)
				continue
			}
			fmt.Printf("ok   %-28s %d steps\n", result.Entry.Name, result.Machine.Steps)
		}
		if failed > 0 {
			os.Exit(1)
		}
	})
}

// script runs a script file. Top level bindings named like config keys,
// such as max_idle_steps, override the configuration for this run.
func script(ctx context.Context, scope dscope.Scope, path string) {
	var result *tmscript.Result
	scope.Call(func(logger logs.Logger) {
		var err error
		result, err = tmscript.Exec(logger, path, nil)
		ce(err)
	})

	scope, err := configs.StarlarkFork(scope, result.Globals)
	ce(err)

	if name := *saveFlag; name != "" {
		scope.Call(func(openStore store.OpenStore) {
			withStore(openStore, func(s *store.Store) {
				ce(s.PutProgram(store.Entry{
					Name:        name,
					Description: vars.DerefOrZero(descFlag),
					Program:     result.Program,
				}))
			})
		})
	}

	runPrograms(ctx, scope, []machine.Program{result.Program})
}
