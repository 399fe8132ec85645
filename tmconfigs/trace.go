package tmconfigs

import (
	"time"

	"github.com/Zitronenjoghurt/simple-turing-machine/cmds"
	"github.com/Zitronenjoghurt/simple-turing-machine/configs"
	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/vars"
)

// TraceStyle selects how executed steps are logged.
type TraceStyle machine.Style

var _ configs.Configurable = TraceStyle(0)

func (TraceStyle) ConfigKey() string {
	return "trace_style"
}

func (t *TraceStyle) UnmarshalText(text []byte) error {
	return (*machine.Style)(t).UnmarshalText(text)
}

var traceFlag = cmds.Var[machine.Style]("-trace", "trace style: formal, visual or visual-formal")

func (Module) TraceStyle(
	loader configs.Loader,
) TraceStyle {
	if *traceFlag != machine.StyleNone {
		return TraceStyle(*traceFlag)
	}
	var style machine.Style
	if str := configs.First[string](loader, "trace_style"); str != "" {
		if err := style.UnmarshalText([]byte(str)); err != nil {
			panic(err)
		}
	}
	return TraceStyle(style)
}

// TraceWindow is the number of cells shown on each side of the head.
type TraceWindow int

var _ configs.Configurable = TraceWindow(0)

func (TraceWindow) ConfigKey() string {
	return "trace_window"
}

var traceWindowFlag = cmds.Var[int]("-trace-window", "cells shown on each side of the head")

const defaultTraceWindow = 8

func (Module) TraceWindow(
	loader configs.Loader,
) TraceWindow {
	return TraceWindow(vars.FirstNonZero(
		*traceWindowFlag,
		configs.First[int](loader, "trace_window"),
		defaultTraceWindow,
	))
}

// TraceDelay pauses after every traced step so runs can be watched.
// It is read from trace_delay_ms.
type TraceDelay time.Duration

var traceDelayFlag = cmds.Var[time.Duration]("-trace-delay", "pause after each traced step, like 100ms")

func (Module) TraceDelay(
	loader configs.Loader,
) TraceDelay {
	return TraceDelay(vars.FirstNonZero(
		*traceDelayFlag,
		time.Duration(configs.First[int](loader, "trace_delay_ms"))*time.Millisecond,
	))
}

// Tracer is nil when tracing is off.
type Tracer machine.Tracer

func (Module) Tracer(
	logger logs.Logger,
	style TraceStyle,
	delay TraceDelay,
) Tracer {
	if machine.Style(style) == machine.StyleNone {
		return nil
	}
	tracer := machine.LogTracer(logger, machine.Style(style))
	if delay <= 0 {
		return Tracer(tracer)
	}
	return func(ev machine.Event) {
		tracer(ev)
		time.Sleep(time.Duration(delay))
	}
}
