package host

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"time"
)

// Source supplies capture input one callback at a time.
type Source interface {
	Fill(dst []float32)
}

// LoopSource repeats a clip forever. An empty clip yields silence.
type LoopSource struct {
	clip []float32
	pos  int
}

// NewLoopSource returns a source looping clip. The clip is not copied.
func NewLoopSource(clip []float32) *LoopSource {
	return &LoopSource{clip: clip}
}

// Fill implements Source.
func (l *LoopSource) Fill(dst []float32) {
	if len(l.clip) == 0 {
		clear(dst)
		return
	}
	for i := range dst {
		dst[i] = l.clip[l.pos]
		l.pos++
		if l.pos == len(l.clip) {
			l.pos = 0
		}
	}
}

// Stream runs the Processor in fixed-size callbacks on behalf of a pull
// based driver. Read delivers mono float32 little-endian PCM.
type Stream struct {
	proc   *Processor
	src    Source
	in     []float32
	out    []float32
	outPos int
}

// NewStream allocates the callback buffers.
func NewStream(proc *Processor, src Source, blockSize int) *Stream {
	if blockSize <= 0 {
		blockSize = 1
	}
	return &Stream{
		proc:   proc,
		src:    src,
		in:     make([]float32, blockSize),
		out:    make([]float32, blockSize),
		outPos: blockSize,
	}
}

// Tick runs one callback and returns its output, valid until the next call.
func (s *Stream) Tick() []float32 {
	s.src.Fill(s.in)
	s.proc.AudioCallback(s.in, s.out)
	s.outPos = 0
	return s.out
}

// Read implements io.Reader. It never returns io.EOF.
func (s *Stream) Read(p []byte) (int, error) {
	n := len(p) / 4
	if n == 0 {
		return 0, io.ErrShortBuffer
	}
	for i := range n {
		if s.outPos == len(s.out) {
			s.Tick()
		}
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s.out[s.outPos]))
		s.outPos++
	}
	return 4 * n, nil
}

// RunClocked calls Tick at the block rate of sampleRate until ctx is done,
// handing each output block to sink when it is non-nil.
func (s *Stream) RunClocked(ctx context.Context, sampleRate int, sink func([]float32)) error {
	period := time.Duration(len(s.in)) * time.Second / time.Duration(sampleRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			out := s.Tick()
			if sink != nil {
				sink(out)
			}
		}
	}
}
