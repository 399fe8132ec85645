package compiler

import (
	"fmt"
	"strings"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
)

// Pattern is a fixed bit sequence, index 0 first.
type Pattern []bool

// ParsePattern reads a string of '0' and '1'. Spaces and underscores are
// ignored so long patterns can be grouped.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	for i, r := range s {
		switch r {
		case '0':
			p = append(p, false)
		case '1':
			p = append(p, true)
		case ' ', '_':
		default:
			return nil, fmt.Errorf("bad pattern %q: unexpected %q at %d", s, r, i)
		}
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("bad pattern %q: empty", s)
	}
	return p, nil
}

func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) Len() int {
	return len(p)
}

func (p Pattern) At(i int) bool {
	if i < 0 || i >= len(p) {
		panic(fmt.Errorf("pattern index %d out of range for length %d", i, len(p)))
	}
	return p[i]
}

func (p Pattern) String() string {
	var b strings.Builder
	for _, bit := range p {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// along returns the bit visited at step i when walking with move. Walking
// left visits the pattern back to front, so it reads correctly left to right
// on the tape either way.
func (p Pattern) along(move machine.Movement, i int) bool {
	if move == machine.Left {
		return p.At(p.Len() - i - 1)
	}
	return p.At(i)
}

type PatternLayer struct {
	Base
}

func NewPatternLayer(base Base) *PatternLayer {
	return &PatternLayer{
		Base: base,
	}
}

// WritePattern writes p cell by cell moving with writeMove, and applies
// finalMove instead after the last cell.
func (l *PatternLayer) WritePattern(p Pattern, writeMove, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State) {
	start := l.Resolve(current)
	end := l.Resolve(next)
	last := p.Len() - 1
	return l.ChainedLoop(p.Len(), At(start), At(end), func(i int, iterStart, iterEnd Anchor) (machine.State, machine.State) {
		move := writeMove
		if i == last {
			move = finalMove
		}
		return l.WriteAndMove(p.along(writeMove, i), move, iterStart, iterEnd)
	})
}

// ScanPattern moves with scanMove until the cells just passed match p, then
// applies finalMove on the last matched cell and goes to next. A mismatch
// restarts matching at the first bit from the following cell, so occurrences
// overlapping a partial match can be missed.
func (l *PatternLayer) ScanPattern(p Pattern, scanMove, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State) {
	start := l.Resolve(current)
	end := l.Resolve(next)
	last := p.Len() - 1
	l.ChainedLoop(p.Len(), At(start), At(end), func(i int, iterStart, iterEnd Anchor) (machine.State, machine.State) {
		move := scanMove
		if i == last {
			move = finalMove
		}
		from, matched, _ := l.BranchWhen(p.along(scanMove, i), move, scanMove, iterStart, iterEnd, At(start))
		return from, matched
	})
	return start, end
}
