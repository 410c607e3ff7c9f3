package controller

import (
	"errors"
	"fmt"
)

// ErrPreconditionViolated is matched by every PreconditionError
var ErrPreconditionViolated = errors.New("precondition violated")

// PreconditionError is returned when an operation is called in a state
// that does not allow it. The controller state is left unchanged.
type PreconditionError struct {
	Turbine   string
	Operation string
	Reason    string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("turbine %s: %s: %s", e.Turbine, e.Operation, e.Reason)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionViolated
}
