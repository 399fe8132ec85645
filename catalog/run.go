package catalog

import (
	"context"
	"fmt"

	"github.com/Zitronenjoghurt/simple-turing-machine/debugs"
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/syncs"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
	"gopkg.in/tomb.v2"
)

type Result struct {
	Entry   Entry
	Machine *machine.Machine
	// Err is a fault or a failed check.
	Err error
}

// Run executes one entry's programs in order over a single tape.
type Run func(ctx context.Context, entry Entry) Result

func (Module) Run(
	newMachine tmconfigs.NewMachine,
	newSpan logs.NewSpan,
	logger logs.Logger,
	inspect debugs.InspectFault,
) Run {
	return func(ctx context.Context, entry Entry) (result Result) {
		ctx, _ = newSpan(ctx, "", entry.Name)
		result.Entry = entry

		m := newMachine(machine.Program{}, nil, 0)
		result.Machine = m
		for _, pos := range entry.Ones {
			if err := m.Tape.Write(pos, true); err != nil {
				result.Err = logs.WrapSpan(ctx, err)
				return
			}
		}

		programs := entry.Build()
		for i, program := range programs {
			m.Reset(program)
			if err := m.Run(); err != nil {
				inspect(ctx, m, err)
				result.Err = logs.WrapSpan(ctx, fmt.Errorf("program %d of %s: %w", i, entry.Name, err))
				logger.WarnContext(ctx, "run failed",
					"entry", entry.Name,
					"program", i,
					"error", err,
				)
				return
			}
			logger.InfoContext(ctx, "program halted",
				"entry", entry.Name,
				"program", i,
				"states", len(program.States()),
				"instructions", program.Len(),
				"steps", m.Steps,
				"head", m.Head,
			)
		}

		if entry.Check != nil {
			if err := entry.Check(m); err != nil {
				result.Err = logs.WrapSpan(ctx, fmt.Errorf("check %s: %w", entry.Name, err))
			}
		}
		return
	}
}

// RunAll runs entries concurrently, bounded by the configured concurrency.
// Results keep the order of entries. Entry failures are reported in their
// results; the returned error is only for cancellation.
type RunAll func(ctx context.Context, entries []Entry) ([]Result, error)

func (Module) RunAll(
	run Run,
	concurrency tmconfigs.Concurrency,
	newSpan logs.NewSpan,
) RunAll {
	return func(ctx context.Context, entries []Entry) ([]Result, error) {
		ctx, _ = newSpan(ctx, "", "run all")
		results := make([]Result, len(entries))
		sem := syncs.NewSemaphore(int(concurrency))

		t, ctx := tomb.WithContext(ctx)
		t.Go(func() error {
			for i, entry := range entries {
				t.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := sem.AcquireContext(ctx); err != nil {
						return err
					}
					defer sem.Release()
					results[i] = run(ctx, entry)
					return nil
				})
			}
			return nil
		})
		if err := t.Wait(); err != nil {
			return results, err
		}
		return results, nil
	}
}
