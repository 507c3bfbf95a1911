package domain

import "errors"

// ErrNotConverged is returned when value iteration reaches its iteration cap before the
// per-sweep delta drops below the tolerance.
var ErrNotConverged = errors.New("value iteration did not converge")

// ErrInvalidConfig is returned when solver parameters are outside their valid range.
var ErrInvalidConfig = errors.New("invalid solver configuration")

// ErrSolutionNotFound is returned when a solution cannot be found in the store.
var ErrSolutionNotFound = errors.New("solution not found")

// ErrUnknownProblem is returned when a problem name is not registered in a catalog.
var ErrUnknownProblem = errors.New("unknown problem")

// ErrStateLimit is the panic value raised when graph construction discovers more states than
// the configured limit allows.
var ErrStateLimit = errors.New("state limit exceeded")
