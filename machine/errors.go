package machine

import "errors"

var (
	// ErrDanglingState means a live, non-halt state has no instruction for the bit read.
	ErrDanglingState = errors.New("dangling state")
	// ErrNonTermination means the no-progress counter reached its bound.
	ErrNonTermination = errors.New("non-termination")
	// ErrOutOfRange is returned by bounded tapes.
	ErrOutOfRange = errors.New("tape out of range")
)
