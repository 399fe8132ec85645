package machine

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Bounded is a fixed-capacity tape covering cells [0, 8*size).
// Accesses outside that range fail with ErrOutOfRange.
type Bounded struct {
	bits *bitset.BitSet
	size int
}

var _ Tape = new(Bounded)

func NewBounded(sizeBytes int) *Bounded {
	if sizeBytes < 0 {
		panic(fmt.Errorf("negative tape size: %d bytes", sizeBytes))
	}
	return &Bounded{
		bits: bitset.New(uint(sizeBytes * 8)),
		size: sizeBytes,
	}
}

func (t *Bounded) check(pos int) error {
	if pos < 0 || pos >= t.size*8 {
		return fmt.Errorf("%w: bit index %d out of range for %d bytes", ErrOutOfRange, pos, t.size)
	}
	return nil
}

func (t *Bounded) Read(pos int) (bool, error) {
	if err := t.check(pos); err != nil {
		return false, err
	}
	return t.bits.Test(uint(pos)), nil
}

func (t *Bounded) Write(pos int, bit bool) error {
	if err := t.check(pos); err != nil {
		return err
	}
	t.bits.SetTo(uint(pos), bit)
	return nil
}

func (t *Bounded) Bounds() (lo, hi int) {
	return 0, t.size*8 - 1
}

func (t *Bounded) Size() int {
	return t.size
}

type boundedData struct {
	Size int
	Bits []byte
}

func (t *Bounded) GobEncode() ([]byte, error) {
	bits, err := t.bits.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(boundedData{
		Size: t.size,
		Bits: bits,
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Bounded) GobDecode(data []byte) error {
	var d boundedData
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&d); err != nil {
		return err
	}
	bits := new(bitset.BitSet)
	if err := bits.UnmarshalBinary(d.Bits); err != nil {
		return err
	}
	t.bits = bits
	t.size = d.Size
	return nil
}
