package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/modes"
	"github.com/reusee/dscope"
)

type Job func(ctx context.Context, scope dscope.Scope)

// job is set by the command given on the command line.
var job Job

func command(name, desc string, fn any) {
	cmds.Define(name, cmds.Func(fn).Desc(desc))
}

func main() {
	cmds.Execute(os.Args[1:])
	if job == nil {
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(2)
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	).Fork(
		printTracer,
	)

	var ctx context.Context
	scope.Call(func(
		newSpan logs.NewSpan,
	) {
		ctx, _ = newSpan(context.Background(), "", "tm")
	})

	job(ctx, scope)
}

func ce(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
