package host

import (
	"math"
	"sync/atomic"
)

// Indicator names a status light on the control surface.
type Indicator int

const (
	IndicatorBypass Indicator = iota
	IndicatorRecord
	numIndicators
)

// Events holds the control edges collected since the previous Poll.
type Events struct {
	ToggleBypass bool
	ToggleRecord bool
}

// ControlSurface is the physical or emulated pedal front panel. The audio
// callback calls every method, so implementations must not block or
// allocate.
type ControlSurface interface {
	// Poll returns and clears the pending edges.
	Poll() Events
	// SetIndicator sets a status light to a level in [0, 1].
	SetIndicator(id Indicator, level float32)
	// StretchControl returns the stretch factor to use for the next
	// session. It is read once per session start.
	StretchControl() float64
	// SetBypass drives the bypass relay.
	SetBypass(bypass bool)
}

// SoftwareSurface is a ControlSurface driven from other goroutines, e.g.
// HTTP handlers or a terminal. Presses are latched until the next Poll.
type SoftwareSurface struct {
	bypassPresses atomic.Uint32
	recordPresses atomic.Uint32

	stretch    atomic.Uint64
	bypass     atomic.Bool
	indicators [numIndicators]atomic.Uint32
}

// NewSoftwareSurface returns a surface whose stretch control reads factor.
func NewSoftwareSurface(factor float64) *SoftwareSurface {
	s := &SoftwareSurface{}
	s.SetStretchControl(factor)
	return s
}

// PressBypass latches a bypass toggle.
func (s *SoftwareSurface) PressBypass() { s.bypassPresses.Add(1) }

// PressRecord latches a record toggle.
func (s *SoftwareSurface) PressRecord() { s.recordPresses.Add(1) }

// SetStretchControl sets the value StretchControl reports.
func (s *SoftwareSurface) SetStretchControl(factor float64) {
	s.stretch.Store(math.Float64bits(factor))
}

// Poll implements ControlSurface. Presses collapse pairwise: two presses
// between polls cancel out.
func (s *SoftwareSurface) Poll() Events {
	return Events{
		ToggleBypass: s.bypassPresses.Swap(0)%2 == 1,
		ToggleRecord: s.recordPresses.Swap(0)%2 == 1,
	}
}

// SetIndicator implements ControlSurface.
func (s *SoftwareSurface) SetIndicator(id Indicator, level float32) {
	if id < 0 || id >= numIndicators {
		return
	}
	s.indicators[id].Store(math.Float32bits(level))
}

// StretchControl implements ControlSurface.
func (s *SoftwareSurface) StretchControl() float64 {
	return math.Float64frombits(s.stretch.Load())
}

// SetBypass implements ControlSurface.
func (s *SoftwareSurface) SetBypass(bypass bool) { s.bypass.Store(bypass) }

// Indicator returns the last level set for id.
func (s *SoftwareSurface) Indicator(id Indicator) float32 {
	if id < 0 || id >= numIndicators {
		return 0
	}
	return math.Float32frombits(s.indicators[id].Load())
}

// Bypassed reports the last bypass relay state.
func (s *SoftwareSurface) Bypassed() bool { return s.bypass.Load() }
