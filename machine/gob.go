package machine

import (
	"encoding/gob"
	"io"
)

func init() {
	gob.Register(&Unbounded{})
	gob.Register(&Bounded{})
	gob.Register(Program{})
}

type snapshot struct {
	Program Program
	Tape    Tape
	Head    int
	State   State
	Steps   int
	Idle    int
	MaxIdle int
}

// Snapshot encodes everything but the tracer.
func (m *Machine) Snapshot(w io.Writer) error {
	return gob.NewEncoder(w).Encode(snapshot{
		Program: m.Program,
		Tape:    m.Tape,
		Head:    m.Head,
		State:   m.State,
		Steps:   m.Steps,
		Idle:    m.Idle,
		MaxIdle: m.MaxIdle,
	})
}

func (m *Machine) Restore(r io.Reader) error {
	var s snapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return err
	}
	m.Program = s.Program
	m.Tape = s.Tape
	m.Head = s.Head
	m.State = s.State
	m.Steps = s.Steps
	m.Idle = s.Idle
	m.MaxIdle = s.MaxIdle
	return nil
}
