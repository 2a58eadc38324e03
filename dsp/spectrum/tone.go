package spectrum

import (
	"errors"
	"fmt"
	"math"
)

var (
	errToneSampleRate = errors.New("tone: sample rate must be > 0")
	errToneFrequency  = errors.New("tone: frequency must be in [0, sampleRate/2]")
)

// Tone measures the energy of a single frequency with the Goertzel
// recurrence. It accumulates over every Process call since the last Reset.
type Tone struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewTone returns a meter for frequency at sampleRate.
func NewTone(frequency, sampleRate float64) (*Tone, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", errToneSampleRate, sampleRate)
	}
	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("%w: %v", errToneFrequency, frequency)
	}
	return &Tone{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (t *Tone) Reset() {
	t.s0, t.s1 = 0, 0
}

// Process feeds a block of samples.
func (t *Tone) Process(input []float32) {
	s0, s1 := t.s0, t.s1
	for _, x := range input {
		s := float64(x) + t.coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	t.s0, t.s1 = s0, s1
}

// Power returns |X(f)|^2 over everything processed so far.
func (t *Tone) Power() float64 {
	return t.s0*t.s0 + t.s1*t.s1 - t.coeff*t.s0*t.s1
}

// PowerDB returns Power in dB, floored at -300.
func (t *Tone) PowerDB() float64 {
	p := t.Power()
	if p <= 1e-30 {
		return -300
	}
	return 10 * math.Log10(p)
}

// Frequency returns the measured frequency.
func (t *Tone) Frequency() float64 { return t.frequency }

// TonePower measures frequency over input in one shot.
func TonePower(input []float32, frequency, sampleRate float64) (float64, error) {
	t, err := NewTone(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	t.Process(input)
	return t.Power(), nil
}
