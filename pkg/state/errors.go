package state

import "errors"

var (
	// ErrCorruptState indicates a stored document that cannot be decoded.
	ErrCorruptState = errors.New("corrupt game state")

	// ErrInvalidStrategy indicates a strategy with unknown colors or negative pump counts.
	ErrInvalidStrategy = errors.New("invalid strategy")

	// ErrNilState indicates an attempt to persist a nil state.
	ErrNilState = errors.New("state cannot be nil")
)
