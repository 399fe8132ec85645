package tapes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zitronenjoghurt/simple-turing-machine/catalog"
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/store"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Catalog catalog.Module
	Store   store.Module
}

var ErrProgramNotFound = errors.New("program not found")

// Resolve looks in the catalog first, then in the store.
func (Module) Resolve(
	openStore store.OpenStore,
) Resolve {
	return func(ctx context.Context, name string) ([]machine.Program, error) {
		if entry, ok := catalog.Get(name); ok {
			return entry.Build(), nil
		}
		s, err := openStore()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		entry, err := s.GetProgram(name)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, name)
		} else if err != nil {
			return nil, err
		}
		return []machine.Program{entry.Program}, nil
	}
}

type NewRunner func(path string) *Runner

func (Module) NewRunner(
	logger logs.Logger,
	newMachine tmconfigs.NewMachine,
	resolve Resolve,
) NewRunner {
	return func(path string) *Runner {
		return &Runner{
			FilePath:   path,
			Logger:     logger,
			NewMachine: newMachine,
			Resolve:    resolve,
			Interval:   200 * time.Millisecond,
		}
	}
}
