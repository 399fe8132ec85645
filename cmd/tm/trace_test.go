package main

import (
	"testing"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
)

func TestPrintTracerOff(t *testing.T) {
	if tracer := printTracer(tmconfigs.TraceStyle(machine.StyleNone), 0); tracer != nil {
		t.Fatal("should be nil")
	}
	if tracer := printTracer(tmconfigs.TraceStyle(machine.StyleFormal), 0); tracer == nil {
		t.Fatal("should not be nil")
	}
}
