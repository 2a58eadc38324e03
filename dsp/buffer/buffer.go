package buffer

import "github.com/cwbudde/algo-stretch/dsp/core"

// Buffer wraps a sample slice with reuse-friendly semantics.
type Buffer[T core.Float] struct {
	samples []T
}

// FromSlice wraps an existing slice without copying.
func FromSlice[T core.Float](s []T) *Buffer[T] {
	return &Buffer[T]{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer[T]) Samples() []T { return b.samples }

// Len returns the current number of samples.
func (b *Buffer[T]) Len() int { return len(b.samples) }

// WithCapacity returns an empty Buffer that can hold n samples without
// reallocating.
func WithCapacity[T core.Float](n int) *Buffer[T] {
	return &Buffer[T]{samples: make([]T, 0, max(n, 0))}
}

// Cap returns the number of samples the Buffer holds before AppendBounded
// starts dropping input.
func (b *Buffer[T]) Cap() int { return cap(b.samples) }

// AppendBounded copies as much of s as fits in the remaining capacity and
// returns the number of samples stored. It never allocates.
func (b *Buffer[T]) AppendBounded(s ...T) int {
	n := len(b.samples)
	m := copy(b.samples[n:cap(b.samples)], s)
	b.samples = b.samples[:n+m]
	return m
}

// Chunks calls fn with consecutive slices of at most size samples. The last
// chunk may be shorter. It stops early when fn returns false.
func (b *Buffer[T]) Chunks(size int, fn func([]T) bool) {
	if size <= 0 {
		return
	}
	for start := 0; start < len(b.samples); start += size {
		end := min(start+size, len(b.samples))
		if !fn(b.samples[start:end]) {
			return
		}
	}
}
