package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a Starlark REPL over globals on stdin.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}

var tapOnFault = cmds.Switch("-tap", "open a REPL over the machine when a run fails")

// TapEnabled reports whether faults should be inspected.
type TapEnabled bool

func (Module) TapEnabled() TapEnabled {
	return TapEnabled(*tapOnFault)
}
