package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Hann returns Hann window coefficients w[n] = 0.5 - 0.5*cos(2*pi*n/D),
// where D is size-1 for the symmetric form and size for the periodic form.
func Hann(size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}

	den := float64(size - 1)
	if cfg.periodic {
		den = float64(size)
	}

	for i := range out {
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/den)
	}

	return out, nil
}

// InverseHann returns the amplitude correction curve applied after
// overlap-adding two Hann-windowed frames at 50% overlap:
//
//	h = (1 + sqrt(0.5)) / 2
//	c[n] = h - (1-h)*cos(2*pi*n/size)
//
// size is the overlap length, i.e. half the analysis window.
func InverseHann(size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	h := (1 + math.Sqrt(0.5)) * 0.5
	out := make([]float64, size)
	for i := range out {
		out[i] = h - (1-h)*math.Cos(2*math.Pi*float64(i)/float64(size))
	}

	return out, nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}
