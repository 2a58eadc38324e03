package random

import "math"

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345

	// Modulus is the period bound of the generator, 2^31.
	Modulus = 1 << 31
)

// PhaseSource yields phase angles in [0, 2*pi).
type PhaseSource interface {
	Phase() float64
}

// LCG is the linear congruential generator r = (1103515245*r + 12345) mod 2^31.
//
// The zero value is ready to use and starts from seed 0. LCG is not safe for
// concurrent use; each engine owns its own stream.
type LCG struct {
	seed  uint32
	state uint32
}

// NewLCG returns a generator starting from seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{seed: seed, state: seed}
}

// Next advances the generator and returns the new state, in [0, 2^31).
func (g *LCG) Next() uint32 {
	// uint32 arithmetic wraps mod 2^32; 2^31 divides 2^32 so masking the low
	// 31 bits gives the mod 2^31 result.
	g.state = (lcgMultiplier*g.state + lcgIncrement) & (Modulus - 1)
	return g.state
}

// Phase returns Next() mapped to an angle in [0, 2*pi).
func (g *LCG) Phase() float64 {
	return float64(g.Next()) / Modulus * 2 * math.Pi
}

// Seed returns the seed the generator was created or last reseeded with.
func (g *LCG) Seed() uint32 { return g.seed }

// State returns the current generator state.
func (g *LCG) State() uint32 { return g.state }

// Reseed restarts the stream from seed.
func (g *LCG) Reseed(seed uint32) {
	g.seed = seed
	g.state = seed
}
