package random

// Fixed is a PhaseSource that cycles through a fixed list of phases. It
// returns 0 forever when the list is empty.
type Fixed struct {
	phases []float64
	next   int
}

// NewFixed returns a Fixed source over phases.
func NewFixed(phases ...float64) *Fixed {
	return &Fixed{phases: append([]float64(nil), phases...)}
}

// Phase returns the next phase in the list, wrapping at the end.
func (f *Fixed) Phase() float64 {
	if len(f.phases) == 0 {
		return 0
	}
	p := f.phases[f.next]
	f.next++
	if f.next == len(f.phases) {
		f.next = 0
	}
	return p
}
