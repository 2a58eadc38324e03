// Package time computes time-domain level statistics of sample blocks.
package time

import "math"

// FloorDB is reported instead of -Inf for silent input.
const FloorDB = -120.0

// Stats holds level statistics of a block.
//
//nolint:revive
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMS_dB        float64
	Peak          float64 // max |x|
	Peak_dB       float64
	CrestFactor   float64 // peak / RMS (linear), 0 for silence
	ZeroCrossings int
}

func toDB(amp float64) float64 {
	if amp <= 0 {
		return FloorDB
	}
	return max(FloorDB, 20*math.Log10(amp))
}

// Calculate computes Stats for one block.
func Calculate(block []float32) Stats {
	var s Streaming
	s.Update(block)
	return s.Result()
}

// Streaming accumulates Stats over successive blocks. The zero value is
// ready to use.
type Streaming struct {
	n             int
	sum           float64
	sumSq         float64
	peak          float64
	zeroCrossings int
	last          float32
}

// Update adds a block to the running statistics.
func (s *Streaming) Update(block []float32) {
	for _, v := range block {
		x := float64(v)
		s.sum += x
		s.sumSq += x * x
		s.peak = max(s.peak, math.Abs(x))
		if s.n > 0 && s.last*v < 0 {
			s.zeroCrossings++
		}
		s.last = v
		s.n++
	}
}

// Result returns the statistics of everything passed to Update.
func (s *Streaming) Result() Stats {
	if s.n == 0 {
		return Stats{RMS_dB: FloorDB, Peak_dB: FloorDB}
	}
	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)
	var crest float64
	if rms > 0 {
		crest = s.peak / rms
	}
	return Stats{
		Length:        s.n,
		DC:            s.sum / nf,
		RMS:           rms,
		RMS_dB:        toDB(rms),
		Peak:          s.peak,
		Peak_dB:       toDB(s.peak),
		CrestFactor:   crest,
		ZeroCrossings: s.zeroCrossings,
	}
}

// Reset clears the accumulator.
func (s *Streaming) Reset() {
	*s = Streaming{}
}
