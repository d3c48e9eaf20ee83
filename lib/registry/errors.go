package registry

import "errors"

var (
	// ErrEventNotFound is returned for ids outside [0, count).
	ErrEventNotFound = errors.New("event not found")

	// ErrOverflow is returned when a vote counter or the id sequence would
	// leave the int64 range.
	ErrOverflow = errors.New("counter overflow")

	ErrInvalidBudget = errors.New("invalid budget")
	ErrInvalidEvent  = errors.New("invalid event")

	// ErrCorruptState is returned when loaded state breaks the registry invariants.
	ErrCorruptState = errors.New("corrupt registry state")
)
