package game

import "errors"

var (
	// ErrLevelLocked indicates an operation on a level the player has not unlocked.
	ErrLevelLocked = errors.New("level is locked")

	// ErrNotRunning indicates an operation that needs a running simulation.
	ErrNotRunning = errors.New("simulation is not running")

	// ErrRunning indicates an operation that is not allowed while the simulation runs.
	ErrRunning = errors.New("simulation is running")

	// ErrInvalidInput indicates a malformed player ID, level or step.
	ErrInvalidInput = errors.New("invalid input")

	// ErrClosed indicates the manager has been shut down.
	ErrClosed = errors.New("game manager closed")
)
