package stretch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-stretch/dsp/random"
	"github.com/cwbudde/algo-stretch/dsp/spectrum"
	"github.com/cwbudde/algo-stretch/dsp/window"
)

// Stage identifies where a SpectrumHook is invoked.
type Stage int

const (
	// StageAnalyzed is the packed spectrum straight after the forward transform.
	StageAnalyzed Stage = iota
	// StageRandomized is the packed spectrum after phase randomization.
	StageRandomized
)

// SpectrumHook observes the packed spectrum during ComputeBlock. The slice is
// engine scratch and only valid for the duration of the call.
type SpectrumHook func(stage Stage, packed []float32)

// Option configures an Engine.
type Option func(*options)

type options struct {
	tables *window.Tables
	phases random.PhaseSource
	wrap   bool
	hook   SpectrumHook
}

// WithTables uses t instead of the shared 128-point stretch tables.
func WithTables(t *window.Tables) Option {
	return func(o *options) {
		if t != nil {
			o.tables = t
		}
	}
}

// WithPhaseSource injects the random phase stream.
func WithPhaseSource(p random.PhaseSource) Option {
	return func(o *options) {
		if p != nil {
			o.phases = p
		}
	}
}

// WithSeed seeds the default LCG phase stream.
func WithSeed(seed uint32) Option {
	return func(o *options) {
		o.phases = random.NewLCG(seed)
	}
}

// WithWrap selects wraparound addressing: frame positions past the end of
// the input wrap to its start instead of reading as silence.
func WithWrap(wrap bool) Option {
	return func(o *options) {
		o.wrap = wrap
	}
}

// WithSpectrumHook installs a hook called twice per block.
func WithSpectrumHook(h SpectrumHook) Option {
	return func(o *options) {
		o.hook = h
	}
}

// Engine is one running stretch computation.
type Engine struct {
	tables *window.Tables
	phases random.PhaseSource
	plan   *algofft.Plan[complex128]
	hook   SpectrumHook
	wrap   bool

	size int
	half int

	stretch  float64
	displace float64
	startPos float64

	frame  []float32
	tail   []float32
	out    []float32
	packed []float32
	bins   []complex128

	mags   []float64
	magsRe []float64
	magsIm []float64
}

// New creates an engine for stretch factor s > 0. The read position advances
// by Half()/s input samples per output block.
func New(s float64, opts ...Option) (*Engine, error) {
	o := options{
		tables: window.StretchTables(),
		wrap:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.phases == nil {
		o.phases = random.NewLCG(0)
	}

	size := o.tables.Size()
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("stretch: failed to create FFT plan: %w", err)
	}

	e := &Engine{
		tables: o.tables,
		phases: o.phases,
		plan:   plan,
		hook:   o.hook,
		wrap:   o.wrap,
		size:   size,
		half:   size / 2,
		frame:  make([]float32, size),
		tail:   make([]float32, size),
		out:    make([]float32, size/2),
		packed: make([]float32, size),
		bins:   make([]complex128, size),
		mags:   make([]float64, size/2+1),
		magsRe: make([]float64, size/2-1),
		magsIm: make([]float64, size/2-1),
	}

	if err := e.SetStretch(s); err != nil {
		return nil, err
	}

	return e, nil
}

// SetStretch changes the stretch factor. Callers apply it between sessions;
// changing it mid-stream alters the hop of the next block only.
func (e *Engine) SetStretch(s float64) error {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return invalidStretch(s)
	}
	e.stretch = s
	e.displace = float64(e.half) / s
	return nil
}

// Stretch returns the stretch factor.
func (e *Engine) Stretch() float64 { return e.stretch }

// Displacement returns the read-position advance per block in samples.
func (e *Engine) Displacement() float64 { return e.displace }

// StartPos returns the fractional read position into the input.
func (e *Engine) StartPos() float64 { return e.startPos }

// ReadIndex returns floor(StartPos()), the first input index of the next frame.
func (e *Engine) ReadIndex() int { return int(e.startPos) }

// Size returns the frame length.
func (e *Engine) Size() int { return e.size }

// Half returns the output block length.
func (e *Engine) Half() int { return e.half }

// Wrap reports whether wraparound addressing is enabled.
func (e *Engine) Wrap() bool { return e.wrap }

// Reset rewinds the read position and clears all frame history.
func (e *Engine) Reset() {
	e.startPos = 0
	clear(e.frame)
	clear(e.tail)
	clear(e.out)
	clear(e.packed)
	clear(e.bins)
	clear(e.mags)
}

// ComputeBlock synthesizes the next Half() output samples from input, the
// recorded samples available so far. The returned slice is owned by the
// engine and overwritten by the next call.
func (e *Engine) ComputeBlock(input []float32) ([]float32, error) {
	n := len(input)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	w := e.tables.Analysis()
	istart := int(e.startPos)
	for i := range e.size {
		pos := istart + i
		if e.wrap {
			pos %= n
		}
		if pos < n {
			e.frame[i] = input[pos] * w[i]
		} else {
			e.frame[i] = 0
		}
	}

	for i, v := range e.frame {
		e.bins[i] = complex(float64(v), 0)
	}
	if err := e.plan.Forward(e.bins, e.bins); err != nil {
		return nil, fmt.Errorf("stretch: forward FFT failed: %w", err)
	}
	if err := spectrum.Pack(e.packed, e.bins); err != nil {
		return nil, err
	}

	if e.hook != nil {
		e.hook(StageAnalyzed, e.packed)
	}
	if err := e.randomizePhases(); err != nil {
		return nil, err
	}
	if e.hook != nil {
		e.hook(StageRandomized, e.packed)
	}

	if err := spectrum.Unpack(e.bins, e.packed); err != nil {
		return nil, err
	}
	if err := e.plan.Inverse(e.bins, e.bins); err != nil {
		return nil, fmt.Errorf("stretch: inverse FFT failed: %w", err)
	}

	c := e.tables.Correction()
	for i := range e.size {
		e.frame[i] = float32(real(e.bins[i])) * w[i]
	}
	for i := range e.half {
		e.out[i] = (e.frame[i] + e.tail[e.half+i]) * c[i]
	}
	copy(e.tail, e.frame)

	e.startPos += e.displace

	return e.out, nil
}

// ComputeBlockInto is ComputeBlock writing into dst, which must hold Half()
// samples.
func (e *Engine) ComputeBlockInto(dst, input []float32) error {
	if len(dst) != e.half {
		return fmt.Errorf("%w: got %d, want %d", errDstLength, len(dst), e.half)
	}
	out, err := e.ComputeBlock(input)
	if err != nil {
		return err
	}
	copy(dst, out)
	return nil
}

// randomizePhases keeps every bin's magnitude and draws a new phase for it.
// DC and Nyquist must stay real, so they are projected onto the real axis
// at the drawn angle.
func (e *Engine) randomizePhases() error {
	p := e.packed
	if err := spectrum.PackedMagnitudes(e.mags, p, e.magsRe, e.magsIm); err != nil {
		return err
	}

	p[0] = float32(float64(p[0]) * math.Cos(e.phases.Phase()))
	p[1] = float32(float64(p[1]) * math.Cos(e.phases.Phase()))

	for k := 1; k < e.half; k++ {
		sin, cos := math.Sincos(e.phases.Phase())
		p[2*k] = float32(e.mags[k] * cos)
		p[2*k+1] = float32(e.mags[k] * sin)
	}
	return nil
}
