package machine

import (
	"bytes"
	"encoding/gob"
	"encoding/json"

	"github.com/bits-and-blooms/bitset"
)

// Tape is the machine's bit storage, addressed in the head's coordinate frame.
type Tape interface {
	Read(pos int) (bool, error)
	Write(pos int, bit bool) error
	// Bounds returns the inclusive range of cells materialized so far.
	Bounds() (lo, hi int)
}

// IsNilTape reports whether tape is absent, including a nil *Unbounded or
// *Bounded held in the interface.
func IsNilTape(tape Tape) bool {
	switch tape := tape.(type) {
	case nil:
		return true
	case *Unbounded:
		return tape == nil
	case *Bounded:
		return tape == nil
	}
	return false
}

// Unbounded grows lazily in both directions and never fails.
// Growing at the low end never renumbers existing cells.
// The zero value is an empty tape.
type Unbounded struct {
	right *bitset.BitSet // pos >= 0 at index pos
	left  *bitset.BitSet // pos < 0 at index -pos-1
	lo    int
	hi    int
}

var _ Tape = new(Unbounded)

func NewUnbounded(ones ...int) *Unbounded {
	t := new(Unbounded)
	for _, pos := range ones {
		t.Set(pos)
	}
	return t
}

func (t *Unbounded) locate(pos int) (*bitset.BitSet, uint) {
	t.lo = min(t.lo, pos)
	t.hi = max(t.hi, pos)
	if pos >= 0 {
		if t.right == nil {
			t.right = bitset.New(64)
		}
		return t.right, uint(pos)
	}
	if t.left == nil {
		t.left = bitset.New(64)
	}
	return t.left, uint(-pos - 1)
}

func (t *Unbounded) Read(pos int) (bool, error) {
	return t.Get(pos), nil
}

func (t *Unbounded) Write(pos int, bit bool) error {
	if bit {
		t.Set(pos)
	} else {
		t.Unset(pos)
	}
	return nil
}

func (t *Unbounded) Get(pos int) bool {
	set, i := t.locate(pos)
	return set.Test(i)
}

func (t *Unbounded) Set(pos int) {
	set, i := t.locate(pos)
	set.Set(i)
}

func (t *Unbounded) Unset(pos int) {
	set, i := t.locate(pos)
	set.Clear(i)
}

func (t *Unbounded) Bounds() (lo, hi int) {
	return t.lo, t.hi
}

// Ones returns the positions of all set cells, ascending.
func (t *Unbounded) Ones() []int {
	var ret []int
	if t.left != nil {
		var neg []int
		for i, ok := t.left.NextSet(0); ok; i, ok = t.left.NextSet(i + 1) {
			neg = append(neg, -int(i)-1)
		}
		for j := len(neg) - 1; j >= 0; j-- {
			ret = append(ret, neg[j])
		}
	}
	if t.right != nil {
		for i, ok := t.right.NextSet(0); ok; i, ok = t.right.NextSet(i + 1) {
			ret = append(ret, int(i))
		}
	}
	return ret
}

// Clone returns an independent copy.
func (t *Unbounded) Clone() *Unbounded {
	ret := &Unbounded{
		lo: t.lo,
		hi: t.hi,
	}
	if t.right != nil {
		ret.right = t.right.Clone()
	}
	if t.left != nil {
		ret.left = t.left.Clone()
	}
	return ret
}

type tapeData struct {
	Lo   int   `json:"lo"`
	Hi   int   `json:"hi"`
	Ones []int `json:"ones"`
}

func (t *Unbounded) data() tapeData {
	return tapeData{
		Lo:   t.lo,
		Hi:   t.hi,
		Ones: t.Ones(),
	}
}

func (t *Unbounded) load(d tapeData) {
	*t = Unbounded{}
	for _, pos := range d.Ones {
		t.Set(pos)
	}
	t.lo = min(t.lo, d.Lo)
	t.hi = max(t.hi, d.Hi)
}

func (t *Unbounded) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.data())
}

func (t *Unbounded) UnmarshalJSON(data []byte) error {
	var d tapeData
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	t.load(d)
	return nil
}

func (t *Unbounded) GobEncode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(t.data()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Unbounded) GobDecode(data []byte) error {
	var d tapeData
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&d); err != nil {
		return err
	}
	t.load(d)
	return nil
}
