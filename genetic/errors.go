package genetic

import "errors"

// ErrInvalidArgument marks construction-time and parameter contract violations
// Callers match with errors.Is; the wrapped message names the offending value
var ErrInvalidArgument = errors.New("invalid argument")

// ErrTerminated is returned when Run is called on a solver that already finished
var ErrTerminated = errors.New("solver already terminated")
