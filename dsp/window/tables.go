package window

import (
	"fmt"

	"github.com/cwbudde/algo-stretch/dsp/core"
)

// Tables holds the coefficient tables of one stretch window size: the
// symmetric Hann analysis window and the inverse-Hann correction applied to
// the overlap-added half frame.
//
// Tables are computed once by NewTables and never modified afterwards, so a
// single value can be shared by any number of engines.
type Tables struct {
	size       int
	analysis   []float32
	correction []float32
}

var stretchTables = mustTables(core.WindowSize)

// StretchTables returns the process-wide tables for core.WindowSize. They are
// built during package initialization.
func StretchTables() *Tables {
	return stretchTables
}

// NewTables computes the analysis and correction tables for size.
// size must be a power of two >= 4.
func NewTables(size int) (*Tables, error) {
	if err := validateTableSize(size); err != nil {
		return nil, err
	}

	hann, err := Hann(size)
	if err != nil {
		return nil, fmt.Errorf("window: analysis table: %w", err)
	}

	inv, err := InverseHann(size / 2)
	if err != nil {
		return nil, fmt.Errorf("window: correction table: %w", err)
	}

	t := &Tables{
		size:       size,
		analysis:   make([]float32, size),
		correction: make([]float32, size/2),
	}
	for i, v := range hann {
		t.analysis[i] = float32(v)
	}
	for i, v := range inv {
		t.correction[i] = float32(v)
	}

	return t, nil
}

func mustTables(size int) *Tables {
	t, err := NewTables(size)
	if err != nil {
		panic(err)
	}
	return t
}

// Size returns the analysis window length.
func (t *Tables) Size() int { return t.size }

// Half returns the hop and synthesis block length, Size()/2.
func (t *Tables) Half() int { return t.size / 2 }

// Analysis returns the Hann coefficients. The slice is shared and must not
// be modified.
func (t *Tables) Analysis() []float32 { return t.analysis }

// Correction returns the inverse-Hann coefficients. The slice is shared and
// must not be modified.
func (t *Tables) Correction() []float32 { return t.correction }
