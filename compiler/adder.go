package compiler

import "github.com/Zitronenjoghurt/simple-turing-machine/machine"

// Add computes one digit of binary addition on the cells
//
//	[carry in][a][b][result][carry out]
//
// laid out along move, starting with the head on carry in. The result and
// carry out cells are written, then finalMove is applied. With finalMove
// Stay the head ends on carry out, which is the carry in of the next digit,
// so ChainedLoop over Add adds whole words.
func (b *BaseLayer) Add(move, finalMove machine.Movement, current, next Anchor) (machine.State, machine.State) {
	start := b.Resolve(current)
	end := b.Resolve(next)

	var (
		carried     [2]machine.State    // [carry in]
		withA       [2][2]machine.State // [carry in][a]
		writeResult [2][2]machine.State // [result][carry out]
		writeCarry  [2]machine.State    // [carry out]
	)
	for c := range 2 {
		carried[c] = b.AllocateState()
		writeCarry[c] = b.AllocateState()
		for x := range 2 {
			withA[c][x] = b.AllocateState()
			writeResult[c][x] = b.AllocateState()
		}
	}

	b.Branch(At(start), At(carried[1]), At(carried[0]), move, move)

	for c := range 2 {
		b.Branch(At(carried[c]), At(withA[c][1]), At(withA[c][0]), move, move)
	}

	for c := range 2 {
		for a := range 2 {
			sum0 := c + a
			sum1 := c + a + 1
			b.Branch(
				At(withA[c][a]),
				At(writeResult[sum1&1][sum1>>1]),
				At(writeResult[sum0&1][sum0>>1]),
				move, move,
			)
		}
	}

	for r := range 2 {
		for k := range 2 {
			b.WriteAndMove(r == 1, move, At(writeResult[r][k]), At(writeCarry[k]))
		}
	}

	for k := range 2 {
		b.WriteAndMove(k == 1, finalMove, At(writeCarry[k]), At(end))
	}

	return start, end
}
