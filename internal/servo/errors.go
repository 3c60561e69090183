// internal/servo/errors.go
package servo

import (
	"errors"
	"fmt"
)

var (
	// ErrFaultNotCleared means the reset attempts were exhausted; the motor is left disabled.
	ErrFaultNotCleared = errors.New("servo: unable to reset alarm or fault")

	// ErrHomingTimeout means homing did not finish before the homing deadline.
	ErrHomingTimeout = errors.New("servo: homing deadline exceeded")

	// ErrMoveTimeout means motion did not finish before the move deadline.
	ErrMoveTimeout = errors.New("servo: move deadline exceeded")

	// ErrOutOfTolerance means the final encoder position is outside the tolerance window.
	ErrOutOfTolerance = errors.New("servo: position out of tolerance")
)

// ToleranceError reports where a move actually ended.
type ToleranceError struct {
	Requested uint32
	Actual    uint32
	Tolerance uint32
}

func (e *ToleranceError) Error() string {
	return fmt.Sprintf("servo: unable to reach requested position %d (actual: %d, tolerance: %d)",
		e.Requested, e.Actual, e.Tolerance)
}

func (e *ToleranceError) Is(target error) bool {
	return target == ErrOutOfTolerance
}

// Outcome classifies an operation result for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrHomingTimeout), errors.Is(err, ErrMoveTimeout):
		return "timeout"
	case errors.Is(err, ErrFaultNotCleared):
		return "fault"
	case errors.Is(err, ErrOutOfTolerance):
		return "out_of_tolerance"
	default:
		return "error"
	}
}
