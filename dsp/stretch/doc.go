// Package stretch implements the block-wise spectral time-stretch engine.
//
// Each call to ComputeBlock reads one Hann-windowed frame from the recording
// at the current read position, keeps every frequency bin's magnitude while
// replacing its phase with a random one, transforms back, windows again and
// overlap-adds the first half of the frame against the second half of the
// previous frame. The result is one half-window block of output; the read
// position then advances by Displacement() input samples, so the output is
// Stretch() times as long as the input it consumes.
//
// Engine is real-time safe after construction (ComputeBlock and Reset do not
// allocate) and not thread-safe.
package stretch
