package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation stepping.
var (
	// ErrInvalidState indicates a node position became NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrBadTimestep indicates a non-positive or non-finite dt.
	ErrBadTimestep = errors.New("sim: timestep must be positive and finite")
)

// StepError wraps a stage failure with tick context.
type StepError struct {
	Tick    uint64
	Stage   string
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("tick %d, stage %s: %v", e.Tick, e.Stage, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
