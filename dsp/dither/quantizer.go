package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] to signed integers of a fixed bit depth.
type Quantizer struct {
	bitDepth   int
	ditherType DitherType
	limit      bool
	rng        *rand.Rand

	bitMul  float64
	limitLo int
	limitHi int
}

// NewQuantizer returns a 16-bit TPDF quantizer unless options say otherwise.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := config{
		bitDepth:   defaultBitDepth,
		ditherType: DitherTriangular,
		limit:      true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q := &Quantizer{
		bitDepth:   cfg.bitDepth,
		ditherType: cfg.ditherType,
		limit:      cfg.limit,
		rng:        cfg.rng,
	}
	q.bitMul = math.Exp2(float64(q.bitDepth-1)) - 0.5
	q.limitLo = -int(math.Round(q.bitMul + 0.5))
	q.limitHi = int(math.Round(q.bitMul - 0.5))
	return q, nil
}

// ProcessInteger quantizes one sample.
func (q *Quantizer) ProcessInteger(input float32) int {
	scaled := q.bitMul * float64(input)

	var noise float64
	switch q.ditherType {
	case DitherRectangular:
		noise = q.rng.Float64()*2 - 1
	case DitherTriangular:
		noise = q.rng.Float64() - q.rng.Float64()
	}

	result := int(math.Floor(scaled + noise))
	if q.limit {
		result = max(q.limitLo, min(q.limitHi, result))
	}
	return result
}

// ProcessBlock quantizes src into dst, which must be at least as long.
func (q *Quantizer) ProcessBlock(dst []int, src []float32) {
	for i, v := range src {
		dst[i] = q.ProcessInteger(v)
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither PDF.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }
