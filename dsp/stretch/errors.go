package stretch

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by ComputeBlock for an empty recording.
	ErrEmptyInput = errors.New("stretch: input must not be empty")

	// ErrInvalidStretch is returned for non-positive or non-finite stretch factors.
	ErrInvalidStretch = errors.New("stretch: factor must be finite and > 0")

	errDstLength = errors.New("stretch: destination length must equal Half()")
)

func invalidStretch(s float64) error {
	return fmt.Errorf("%w: %v", ErrInvalidStretch, s)
}
