package tmscript

import (
	"fmt"
	"log/slog"

	"github.com/Zitronenjoghurt/simple-turing-machine/compiler"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Result is what a script built.
type Result struct {
	Program machine.Program
	// Globals are the script's top level bindings after execution.
	Globals starlark.StringDict
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Exec runs a script against a fresh compiler. src is anything
// starlark.ExecFile accepts: string, []byte, io.Reader or nil to read filename.
func Exec(logger *slog.Logger, filename string, src any) (*Result, error) {
	c := compiler.New()
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if logger != nil {
				logger.Info(msg, "script", filename)
			}
		},
	}
	globals, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, Builtins(c))
	if err != nil {
		return nil, err
	}
	return &Result{
		Program: c.Program(),
		Globals: globals,
	}, nil
}

// Builtins exposes the operations of c to a script.
func Builtins(c *compiler.Compiler) starlark.StringDict {
	dict := starlark.StringDict{
		"L":    starlark.String("L"),
		"R":    starlark.String("R"),
		"S":    starlark.String("S"),
		"HALT": stateValue(machine.Halt),
	}

	def := func(name string, fn func(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)) {
		dict[name] = starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (ret starlark.Value, err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("%s: %v", name, p)
				}
			}()
			return fn(b, args, kwargs)
		})
	}

	def("allocate", func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
			return nil, err
		}
		return stateValue(c.AllocateState()), nil
	})

	def("halt", func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var current anchorArg
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "current?", &current); err != nil {
			return nil, err
		}
		return stateValue(c.Halt(current.Anchor)), nil
	})

	type pairOp func(current, next compiler.Anchor) (machine.State, machine.State)
	for name, op := range map[string]pairOp{
		"move_left":             c.MoveLeft,
		"move_right":            c.MoveRight,
		"mark":                  c.Mark,
		"unmark":                c.Unmark,
		"mark_and_move_left":    c.MarkAndMoveLeft,
		"mark_and_move_right":   c.MarkAndMoveRight,
		"unmark_and_move_left":  c.UnmarkAndMoveLeft,
		"unmark_and_move_right": c.UnmarkAndMoveRight,
	} {
		def(name, func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var current, next anchorArg
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "current?", &current, "next?", &next); err != nil {
				return nil, err
			}
			return states(op(current.Anchor, next.Anchor)), nil
		})
	}

	def("branch", func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var current, ifOne, ifZero anchorArg
		var moveOne, moveZero movementArg
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"current?", &current,
			"if_one?", &ifOne,
			"if_zero?", &ifZero,
			"move_one?", &moveOne,
			"move_zero?", &moveZero,
		); err != nil {
			return nil, err
		}
		return states(c.Branch(current.Anchor, ifOne.Anchor, ifZero.Anchor, moveOne.Movement, moveZero.Movement)), nil
	})

	def("branch_when", func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target bitArg
		var nextMove, elseMove movementArg
		var current, next, els anchorArg
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"target", &target,
			"next_move", &nextMove,
			"else_move", &elseMove,
			"current?", &current,
			"next?", &next,
			"els?", &els,
		); err != nil {
			return nil, err
		}
		return states(c.BranchWhen(bool(target), nextMove.Movement, elseMove.Movement, current.Anchor, next.Anchor, els.Anchor)), nil
	})

	moveX := func(op func(int, compiler.Anchor, compiler.Anchor) (machine.State, machine.State)) func(*starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
		return func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var n int
			var current, next anchorArg
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n", &n, "current?", &current, "next?", &next); err != nil {
				return nil, err
			}
			return states(op(n, current.Anchor, next.Anchor)), nil
		}
	}
	def("move_right_x", moveX(c.MoveRightX))
	def("move_left_x", moveX(c.MoveLeftX))

	def("scan_single", func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target bitArg
		var scanMove, finalMove movementArg
		var current, next anchorArg
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"target", &target,
			"scan_move", &scanMove,
			"final_move", &finalMove,
			"current?", &current,
			"next?", &next,
		); err != nil {
			return nil, err
		}
		return states(c.ScanSingle(bool(target), scanMove.Movement, finalMove.Movement, current.Anchor, next.Anchor)), nil
	})

	def("write_and_move", func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var bit bitArg
		var move movementArg
		var current, next anchorArg
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"bit", &bit,
			"move", &move,
			"current?", &current,
			"next?", &next,
		); err != nil {
			return nil, err
		}
		return states(c.WriteAndMove(bool(bit), move.Movement, current.Anchor, next.Anchor)), nil
	})

	type circuitOp func(move, finalMove machine.Movement, current, next compiler.Anchor) (machine.State, machine.State)
	for name, op := range map[string]circuitOp{
		// or and and are keywords
		"or_gate":  c.Or,
		"and_gate": c.And,
		"xor_gate": c.Xor,
		"add":      c.Add,
	} {
		def(name, func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var move, finalMove movementArg
			var current, next anchorArg
			if err := starlark.UnpackArgs(b.Name(), args, kwargs,
				"move", &move,
				"final_move", &finalMove,
				"current?", &current,
				"next?", &next,
			); err != nil {
				return nil, err
			}
			return states(op(move.Movement, finalMove.Movement, current.Anchor, next.Anchor)), nil
		})
	}

	type patternOp func(p compiler.Pattern, move, finalMove machine.Movement, current, next compiler.Anchor) (machine.State, machine.State)
	for name, op := range map[string]patternOp{
		"write_pattern": c.WritePattern,
		"scan_pattern":  c.ScanPattern,
	} {
		def(name, func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var pattern patternArg
			var move, finalMove movementArg
			var current, next anchorArg
			if err := starlark.UnpackArgs(b.Name(), args, kwargs,
				"pattern", &pattern,
				"move", &move,
				"final_move", &finalMove,
				"current?", &current,
				"next?", &next,
			); err != nil {
				return nil, err
			}
			return states(op(pattern.Pattern, move.Movement, finalMove.Movement, current.Anchor, next.Anchor)), nil
		})
	}

	dict["chained_loop"] = starlark.NewBuiltin("chained_loop", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (ret starlark.Value, err error) {
		var n int
		var start, end anchorArg
		var body starlark.Callable
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"n", &n,
			"start", &start,
			"end", &end,
			"body", &body,
		); err != nil {
			return nil, err
		}
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("chained_loop: %v", p)
			}
		}()
		var bodyErr error
		s, e := c.ChainedLoop(n, start.Anchor, end.Anchor, func(i int, from, to compiler.Anchor) (machine.State, machine.State) {
			if bodyErr != nil {
				return 0, 0
			}
			var from2, to2 machine.State
			from2, to2, bodyErr = callBody(thread, body, i, from, to)
			return from2, to2
		})
		if bodyErr != nil {
			return nil, bodyErr
		}
		return states(s, e), nil
	})

	def("add_instruction", func(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var state, next starlark.Value
		var read, write bitArg
		var move movementArg
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"state", &state,
			"read", &read,
			"write", &write,
			"move", &move,
			"next", &next,
		); err != nil {
			return nil, err
		}
		from, err := toState(state)
		if err != nil {
			return nil, err
		}
		to, err := toState(next)
		if err != nil {
			return nil, err
		}
		c.AddInstruction(machine.Instruction{
			State: from,
			Read:  bool(read),
			Write: bool(write),
			Move:  move.Movement,
			Next:  to,
		})
		return starlark.None, nil
	})

	return dict
}

func callBody(thread *starlark.Thread, body starlark.Callable, i int, from, to compiler.Anchor) (machine.State, machine.State, error) {
	ret, err := starlark.Call(thread, body, starlark.Tuple{
		starlark.MakeInt(i),
		anchorValue(from),
		anchorValue(to),
	}, nil)
	if err != nil {
		return 0, 0, err
	}
	pair, ok := ret.(starlark.Tuple)
	if !ok || pair.Len() != 2 {
		return 0, 0, fmt.Errorf("chained_loop body must return (start, end), got %s", ret)
	}
	s, err := toState(pair[0])
	if err != nil {
		return 0, 0, err
	}
	e, err := toState(pair[1])
	if err != nil {
		return 0, 0, err
	}
	return s, e, nil
}
