package dynamo

import "errors"

// Domain errors for simulation and sweep operations.
var (
	// ErrConfig indicates an invalid configuration value, detected before
	// any simulation work is dispatched.
	ErrConfig = errors.New("dynamo: invalid configuration")

	// ErrShortSeries indicates a series too short for extrema detection.
	ErrShortSeries = errors.New("dynamo: series too short for extrema detection")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep fell below its floor.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")
)
