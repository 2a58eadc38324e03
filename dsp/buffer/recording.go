package buffer

import "sync/atomic"

// Recording is the fixed-capacity store filled by the capture path.
//
// Only the capture context may call Append and Reset. Len, Samples and View
// may be called from any goroutine: every sample below the returned length
// was written before the length was published.
type Recording struct {
	samples []float32
	fill    atomic.Int64
}

// NewRecording allocates a zero-filled recording of the given capacity.
func NewRecording(capacity int) (*Recording, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	return &Recording{samples: make([]float32, capacity)}, nil
}

// Cap returns the fixed capacity in samples.
func (r *Recording) Cap() int { return len(r.samples) }

// Len returns the published fill length.
func (r *Recording) Len() int { return int(r.fill.Load()) }

// Remaining returns how many samples can still be appended.
func (r *Recording) Remaining() int { return len(r.samples) - r.Len() }

// Full reports whether the recording has reached capacity.
func (r *Recording) Full() bool { return r.Len() == len(r.samples) }

// Append copies as much of src as fits and publishes the new length.
// It returns the number of samples stored and whether the recording is now
// full. Samples beyond capacity are dropped.
func (r *Recording) Append(src []float32) (n int, full bool) {
	fill := int(r.fill.Load())
	n = copy(r.samples[fill:], src)
	fill += n
	r.fill.Store(int64(fill))
	return n, fill == len(r.samples)
}

// Reset sets the fill length to zero. Old contents stay in memory but are
// never exposed again because readers are bounded by Len.
func (r *Recording) Reset() {
	r.fill.Store(0)
}

// Samples returns the published prefix of the recording.
func (r *Recording) Samples() []float32 {
	return r.samples[:r.Len()]
}

// View returns the first n samples. Callers pass a length they previously
// observed through Len.
func (r *Recording) View(n int) []float32 {
	return r.samples[:n]
}
