package measurement

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is matched by every *ValidationError
	ErrInvalidLength = errors.New("enter a valid number")

	// ErrDegenerateReference is matched by every *DegenerateReferenceError
	ErrDegenerateReference = errors.New("reference points are too close")

	// ErrNoPendingReference is returned when a length is submitted while no
	// reference pair is waiting for one
	ErrNoPendingReference = errors.New("no reference pair awaiting a length")
)

// ValidationError reports reference-length text that is not a finite number
type ValidationError struct {
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reference length %q: %v", e.Input, ErrInvalidLength)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidLength }

// DegenerateReferenceError reports a reference pair shorter than the
// minimum pixel distance
type DegenerateReferenceError struct {
	Distance float64
	Min      float64
}

func (e *DegenerateReferenceError) Error() string {
	return fmt.Sprintf("%v: %.2f px apart, need at least %.2f px", ErrDegenerateReference, e.Distance, e.Min)
}

func (e *DegenerateReferenceError) Is(target error) bool { return target == ErrDegenerateReference }
