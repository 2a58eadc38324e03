package window

import (
	"errors"
	"fmt"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")

	// ErrTableSize is returned when a stretch table size is not a power of
	// two of at least 4 samples.
	ErrTableSize = errors.New("window: table size must be a power of two >= 4")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateTableSize(size int) error {
	if size < 4 || size&(size-1) != 0 {
		return fmt.Errorf("%w: %d", ErrTableSize, size)
	}
	return nil
}
