package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Zitronenjoghurt/simple-turing-machine/tapes"
	"github.com/reusee/dscope"
)

func init() {
	command("session", "run a session file until it completes, creating it if missing", func(path string) {
		job = func(ctx context.Context, scope dscope.Scope) {
			session(ctx, scope, path)
		}
	})
}

func session(ctx context.Context, scope dscope.Scope, path string) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		data, err := json.MarshalIndent(tapes.Session{
			Steps: []*tapes.Step{},
		}, "", "  ")
		ce(err)
		ce(os.WriteFile(path, data, 0644))
		fmt.Printf("created session file %s\n", path)
	}

	scope.Call(func(newRunner tapes.NewRunner) {
		if err := newRunner(path).Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "session halted: %v\n", err)
			os.Exit(1)
		}
	})
}
