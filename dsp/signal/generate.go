// Package signal generates test signals for driving the pedal without an
// input device.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var errSampleRate = errors.New("signal: sample rate must be > 0")

// Generator creates deterministic float32 signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed (default 1).
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// New returns a Generator for sampleRate.
func New(sampleRate int, opts ...Option) (*Generator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", errSampleRate, sampleRate)
	}
	g := &Generator{sampleRate: float64(sampleRate), seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// SampleRate returns the generator rate in Hz.
func (g *Generator) SampleRate() int { return int(g.sampleRate) }

// Sine generates samples of a sine at freqHz.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}
	if freqHz <= 0 || freqHz >= g.sampleRate/2 {
		return nil, fmt.Errorf("signal: sine frequency must be in (0, %g): %g", g.sampleRate/2, freqHz)
	}
	out := make([]float32, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out, nil
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude]. The same
// seed always yields the same samples.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %g", amplitude)
	}
	rng := rand.New(rand.NewPCG(g.seed, 0))
	out := make([]float32, samples)
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out, nil
}

// Normalize scales data in place so its peak magnitude is targetPeak.
// All-zero input is left untouched.
func Normalize(data []float32, targetPeak float64) error {
	if targetPeak < 0 {
		return fmt.Errorf("signal: target peak must be >= 0: %g", targetPeak)
	}
	var peak float64
	for _, v := range data {
		peak = max(peak, math.Abs(float64(v)))
	}
	if peak == 0 {
		return nil
	}
	scale := targetPeak / peak
	for i, v := range data {
		data[i] = float32(float64(v) * scale)
	}
	return nil
}
