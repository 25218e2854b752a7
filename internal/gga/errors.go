package gga

import "errors"

var (
	// ErrInvalidConfig is returned when the algorithm parameters are out of range.
	ErrInvalidConfig = errors.New("invalid GGA configuration")
	// ErrAlreadyRun is returned when Run is called on an engine that has left the initializing state.
	ErrAlreadyRun = errors.New("engine has already run")
	// ErrNilRand is returned when no random stream is supplied.
	ErrNilRand = errors.New("random stream is required")
)
