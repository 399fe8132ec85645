package tapes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Zitronenjoghurt/simple-turing-machine/logs"
	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmscript"
)

const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusPaused    = "paused"
)

type Step struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Action string `json:"action"` // "kind: argument"
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

type LogEntry struct {
	Time    time.Time `json:"time"`
	Step    string    `json:"step"`
	Message string    `json:"message"`
}

// Session is a file holding a list of steps and the tape they work on.
// Programs run by the steps share the tape, so a session chains programs
// across runner invocations.
type Session struct {
	PC    int                `json:"pc"`
	Steps []*Step            `json:"steps"`
	Tape  *machine.Unbounded `json:"tape"`
	// Head is where the last program halted.
	Head int        `json:"head"`
	Logs []LogEntry `json:"logs"`
}

const maxLogs = 500

// Resolve finds the programs stored under name.
type Resolve func(ctx context.Context, name string) ([]machine.Program, error)

type Runner struct {
	FilePath   string
	Logger     logs.Logger
	NewMachine tmconfigs.NewMachine
	Resolve    Resolve
	// Interval is the pause between steps in Run.
	Interval time.Duration
}

func (r *Runner) Run(ctx context.Context) error {
	lastStatus := ""
	lastStepID := ""
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		done, err := r.RunStep(ctx, &lastStatus, &lastStepID)
		if err != nil {
			r.Logger.Error("step failed", "error", err)
			return err
		}
		if done {
			r.Logger.Info("session completed", "path", r.FilePath)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.Interval):
		}
	}
}

// RunStep executes the step at the program counter. It reports true once
// the counter is past the last step. Paused and failed steps are left alone
// until the file is edited; lastStatus and lastStepID suppress repeated
// logging of the same wait.
func (r *Runner) RunStep(ctx context.Context, lastStatus, lastStepID *string) (bool, error) {
	lockFile := r.FilePath + ".lock"
	if f, err := os.OpenFile(lockFile, os.O_CREATE|os.O_EXCL, 0600); err != nil {
		if os.IsExist(err) {
			// another runner
			return false, nil
		}
		return false, err
	} else {
		f.Close()
	}
	defer os.Remove(lockFile)

	session, err := r.load()
	if err != nil {
		return false, err
	}

	if session.PC < 0 || session.PC >= len(session.Steps) {
		return true, nil
	}
	step := session.Steps[session.PC]

	switch step.Status {
	case StatusCompleted:
		session.PC++
		return r.saveAndContinue(session)

	case StatusPaused, StatusFailed:
		if *lastStatus != step.Status || *lastStepID != step.ID {
			r.Logger.Info("waiting for intervention", "status", step.Status, "name", step.Name, "id", step.ID)
			*lastStatus = step.Status
			*lastStepID = step.ID
		}
		return false, nil

	case StatusRunning:
		r.Logger.Warn("resuming interrupted step", "name", step.Name)

	default:
		*lastStatus = ""
		*lastStepID = ""
	}

	r.Logger.Info("executing step", "name", step.Name, "pc", session.PC, "action", step.Action)
	step.Status = StatusRunning
	if err := r.save(session); err != nil {
		return false, err
	}

	output, nextPC, execErr := r.execute(ctx, step, session)
	step.Output = output
	if execErr != nil {
		step.Status = StatusFailed
		step.Error = execErr.Error()
		session.Logs = append(session.Logs, LogEntry{
			Time:    time.Now(),
			Step:    step.Name,
			Message: "error: " + execErr.Error(),
		})
		if err := r.save(session); err != nil {
			r.Logger.Error("save session", "error", err)
		}
		*lastStatus = StatusFailed
		*lastStepID = step.ID
		return false, execErr
	}

	// wait sets its own status
	if step.Status == StatusRunning {
		step.Status = StatusCompleted
		step.Error = ""
	}
	if nextPC != -1 {
		session.PC = nextPC
	} else if step.Status == StatusCompleted {
		session.PC++
	}
	session.Logs = append(session.Logs, LogEntry{
		Time:    time.Now(),
		Step:    step.Name,
		Message: output,
	})
	if step.Status == StatusPaused {
		*lastStatus = step.Status
		*lastStepID = step.ID
	}

	return r.saveAndContinue(session)
}

func (r *Runner) load() (*Session, error) {
	data, err := os.ReadFile(r.FilePath)
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%s: %w", r.FilePath, err)
	}
	if session.Tape == nil {
		session.Tape = new(machine.Unbounded)
	}
	return &session, nil
}

func (r *Runner) saveAndContinue(session *Session) (bool, error) {
	if err := r.save(session); err != nil {
		return false, err
	}
	return session.PC >= len(session.Steps), nil
}

func (r *Runner) save(session *Session) error {
	if len(session.Logs) > maxLogs {
		session.Logs = session.Logs[len(session.Logs)-maxLogs:]
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, r.FilePath)
}

// execute returns the step output and the next program counter, or -1 to
// advance by one.
func (r *Runner) execute(ctx context.Context, step *Step, session *Session) (string, int, error) {
	kind, arg, _ := strings.Cut(step.Action, ":")
	kind = strings.TrimSpace(kind)
	arg = strings.TrimSpace(arg)

	switch kind {

	case "nop":
		return "nop", -1, nil

	case "ones":
		for field := range strings.FieldsFuncSeq(arg, func(r rune) bool {
			return r == ',' || r == ' '
		}) {
			pos, err := strconv.Atoi(field)
			if err != nil {
				return "", -1, fmt.Errorf("bad cell %q: %w", field, err)
			}
			session.Tape.Set(pos)
		}
		return fmt.Sprintf("%d ones on tape", len(session.Tape.Ones())), -1, nil

	case "clear":
		session.Tape = new(machine.Unbounded)
		session.Head = 0
		return "tape cleared", -1, nil

	case "program":
		if r.Resolve == nil {
			return "", -1, fmt.Errorf("no program resolver")
		}
		programs, err := r.Resolve(ctx, arg)
		if err != nil {
			return "", -1, err
		}
		return r.runPrograms(session, programs)

	case "script":
		result, err := tmscript.Exec(r.Logger, step.Name, arg)
		if err != nil {
			return "", -1, err
		}
		return r.runPrograms(session, []machine.Program{result.Program})

	case "jump":
		for i, s := range session.Steps {
			if s.Name == arg || s.ID == arg {
				return "jumped to " + arg, i, nil
			}
		}
		if idx, err := strconv.Atoi(arg); err == nil {
			return "jumped to index", idx, nil
		}
		return "", -1, fmt.Errorf("jump target not found: %s", arg)

	case "wait":
		step.Status = StatusPaused
		return "waiting for intervention", -1, nil

	case "exit":
		return "exiting", len(session.Steps), nil

	}

	return "", -1, fmt.Errorf("unknown action: %s", kind)
}

// runPrograms runs programs in order over the session tape. Each starts at
// cell 0, like a chained catalog entry.
func (r *Runner) runPrograms(session *Session, programs []machine.Program) (string, int, error) {
	m := r.NewMachine(machine.Program{}, session.Tape, 0)
	steps := 0
	for i, program := range programs {
		m.Reset(program)
		if err := m.Run(); err != nil {
			return "", -1, fmt.Errorf("program %d: %w", i, err)
		}
		steps += m.Steps
	}
	session.Head = m.Head
	return fmt.Sprintf("halted after %d steps at %d", steps, m.Head), -1, nil
}
