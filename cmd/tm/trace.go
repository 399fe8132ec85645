package main

import (
	"fmt"
	"time"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
)

// printTracer writes steps to stdout instead of the debug log.
func printTracer(
	style tmconfigs.TraceStyle,
	delay tmconfigs.TraceDelay,
) tmconfigs.Tracer {
	if machine.Style(style) == machine.StyleNone {
		return nil
	}
	return func(ev machine.Event) {
		fmt.Printf("%6d  %s\n", ev.Step, ev.Format(machine.Style(style)))
		if delay > 0 {
			time.Sleep(time.Duration(delay))
		}
	}
}
