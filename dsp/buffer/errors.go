package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrFull is returned when a write does not fit in the remaining space.
	ErrFull = errors.New("buffer: not enough room")

	errCapacity = errors.New("buffer: capacity must be > 0")
)

func validateCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: %d", errCapacity, capacity)
	}
	return nil
}
