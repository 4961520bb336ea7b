package physics

import "errors"

// Validation errors, reported per body and never fatal for a batch
var (
	ErrInvalidExtent = errors.New("non-positive extent")
	ErrInvalidMass   = errors.New("dynamic body needs finite positive mass")
	ErrNonFinite     = errors.New("non-finite position or velocity")
)
