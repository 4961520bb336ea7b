package engine

import "errors"

var (
	// ErrInvalidConfig marks a malformed tick configuration, fatal for the call
	ErrInvalidConfig = errors.New("invalid engine config")

	// ErrStopped is returned by a simulation that reached its terminal state
	ErrStopped = errors.New("simulation stopped")

	// ErrInvalidTransition is returned for lifecycle moves the state machine does not allow
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrNumericClamp flags a body whose runaway state was clamped after resolution
	ErrNumericClamp = errors.New("non-finite or runaway state clamped")
)
