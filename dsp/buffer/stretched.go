package buffer

import (
	"fmt"
	"sync/atomic"
)

// Stretched is the fixed-capacity store filled block by block by the
// background loop. Writes never overwrite published samples; once the
// buffer is full further blocks are refused with ErrFull.
type Stretched struct {
	samples []float32
	written atomic.Int64
}

// NewStretched allocates a zero-filled output buffer of the given capacity.
func NewStretched(capacity int) (*Stretched, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	return &Stretched{samples: make([]float32, capacity)}, nil
}

// Cap returns the fixed capacity in samples.
func (s *Stretched) Cap() int { return len(s.samples) }

// Len returns the published write length.
func (s *Stretched) Len() int { return int(s.written.Load()) }

// Room returns the number of samples that can still be written.
func (s *Stretched) Room() int { return len(s.samples) - s.Len() }

// AppendBlock stores block in full or not at all.
func (s *Stretched) AppendBlock(block []float32) error {
	w := int(s.written.Load())
	if len(block) > len(s.samples)-w {
		return fmt.Errorf("%w: need %d, have %d", ErrFull, len(block), len(s.samples)-w)
	}
	copy(s.samples[w:], block)
	s.written.Store(int64(w + len(block)))
	return nil
}

// AppendSilence publishes n zero samples, e.g. to offset playback against
// the recording.
func (s *Stretched) AppendSilence(n int) error {
	w := int(s.written.Load())
	if n < 0 || n > len(s.samples)-w {
		return fmt.Errorf("%w: need %d, have %d", ErrFull, n, len(s.samples)-w)
	}
	clear(s.samples[w : w+n])
	s.written.Store(int64(w + n))
	return nil
}

// Reset sets the write length to zero.
func (s *Stretched) Reset() {
	s.written.Store(0)
}

// Samples returns the published prefix.
func (s *Stretched) Samples() []float32 {
	return s.samples[:s.Len()]
}

// View returns the first n samples. Callers pass a length they previously
// observed through Len.
func (s *Stretched) View(n int) []float32 {
	return s.samples[:n]
}
