package machine

import (
	"bytes"
	"cmp"
	"encoding/gob"
	"encoding/json"
	"maps"
	"slices"
)

type Key struct {
	State State
	Bit   bool
}

// Program is a sparse transition table. A missing (state, bit) entry is
// meaningful: it halts at Halt and faults everywhere else.
// The zero value is an empty program.
type Program struct {
	table map[Key]Instruction
}

func NewProgram(instructions ...Instruction) Program {
	var p Program
	p.Add(instructions...)
	return p
}

func (p Program) Get(state State, bit bool) (Instruction, bool) {
	inst, ok := p.table[Key{
		State: state,
		Bit:   bit,
	}]
	return inst, ok
}

// Add inserts instructions, overwriting any entry with the same key.
func (p *Program) Add(instructions ...Instruction) {
	if p.table == nil {
		p.table = make(map[Key]Instruction, len(instructions))
	}
	for _, inst := range instructions {
		p.table[inst.Key()] = inst
	}
}

func (p Program) Len() int {
	return len(p.table)
}

// Clone returns a copy sharing nothing with p.
func (p Program) Clone() Program {
	return Program{
		table: maps.Clone(p.table),
	}
}

// Instructions returns all entries ordered by state, then read bit.
func (p Program) Instructions() []Instruction {
	ret := slices.Collect(maps.Values(p.table))
	slices.SortFunc(ret, func(a, b Instruction) int {
		if c := cmp.Compare(a.State, b.State); c != 0 {
			return c
		}
		return cmp.Compare(bitNumber(a.Read), bitNumber(b.Read))
	})
	return ret
}

// States returns every state that has at least one entry, ascending.
func (p Program) States() []State {
	seen := make(map[State]bool)
	for key := range p.table {
		seen[key.State] = true
	}
	ret := slices.Collect(maps.Keys(seen))
	slices.Sort(ret)
	return ret
}

type programJSON struct {
	Instructions []Instruction `json:"instructions"`
}

func (p Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(programJSON{
		Instructions: p.Instructions(),
	})
}

func (p *Program) UnmarshalJSON(data []byte) error {
	var v programJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = NewProgram(v.Instructions...)
	return nil
}

var _ gob.GobEncoder = Program{}

var _ gob.GobDecoder = new(Program)

func (p Program) GobEncode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(p.Instructions()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Program) GobDecode(data []byte) error {
	var instructions []Instruction
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&instructions); err != nil {
		return err
	}
	*p = NewProgram(instructions...)
	return nil
}
