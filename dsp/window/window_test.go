package window

import (
	"errors"
	"math"
	"testing"
)

func TestHannSymmetricEndpointsAndPeak(t *testing.T) {
	w, err := Hann(128)
	if err != nil {
		t.Fatalf("Hann() error = %v", err)
	}

	if w[0] != 0 {
		t.Fatalf("w[0] = %v, want 0", w[0])
	}
	if math.Abs(w[127]) > 1e-12 {
		t.Fatalf("w[127] = %v, want 0", w[127])
	}

	// 128 has no centre sample; both neighbours sit within cos(pi/127) of 1.
	for _, i := range []int{63, 64} {
		if math.Abs(w[i]-1) > 1e-3 {
			t.Fatalf("w[%d] = %v, want ~1", i, w[i])
		}
	}

	for i := range 64 {
		if math.Abs(w[i]-w[127-i]) > 1e-12 {
			t.Fatalf("window not symmetric at %d: %v vs %v", i, w[i], w[127-i])
		}
	}
}

func TestHannPeriodic(t *testing.T) {
	w, err := Hann(8, WithPeriodic())
	if err != nil {
		t.Fatalf("Hann() error = %v", err)
	}
	if math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("periodic w[4] = %v, want 1", w[4])
	}
}

func TestHannRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		if _, err := Hann(size); err == nil {
			t.Fatalf("Hann(%d) expected error", size)
		}
	}
}

func TestInverseHann(t *testing.T) {
	c, err := InverseHann(64)
	if err != nil {
		t.Fatalf("InverseHann() error = %v", err)
	}

	if math.Abs(c[0]-math.Sqrt(0.5)) > 1e-12 {
		t.Fatalf("c[0] = %v, want sqrt(0.5)", c[0])
	}
	if math.Abs(c[32]-1) > 1e-12 {
		t.Fatalf("c[32] = %v, want 1", c[32])
	}
	for i, v := range c {
		if v < math.Sqrt(0.5)-1e-12 || v > 1+1e-12 {
			t.Fatalf("c[%d] = %v outside [sqrt(0.5), 1]", i, v)
		}
	}
}

func TestEquivalentNoiseBandwidthHann(t *testing.T) {
	w, _ := Hann(1024, WithPeriodic())
	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil {
		t.Fatalf("EquivalentNoiseBandwidth() error = %v", err)
	}
	if math.Abs(enbw-1.5) > 1e-9 {
		t.Fatalf("ENBW = %v, want 1.5", enbw)
	}

	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
	if _, err := EquivalentNoiseBandwidth([]float64{0, 0}); err == nil {
		t.Fatal("expected error for zero coherent gain")
	}
}

func TestApplyCoefficientsInPlace(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	if err := ApplyCoefficientsInPlace(samples, []float64{0, 0.5, 1, 2}); err != nil {
		t.Fatalf("ApplyCoefficientsInPlace() error = %v", err)
	}
	want := []float64{0, 1, 3, 8}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}

	if err := ApplyCoefficientsInPlace(samples, []float64{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestAnalyzeHann(t *testing.T) {
	w, _ := Hann(256, WithPeriodic())
	a := Analyze(w)

	if math.Abs(a.CoherentGain-0.5) > 1e-9 {
		t.Fatalf("coherent gain = %v, want 0.5", a.CoherentGain)
	}
	if math.Abs(a.ENBW-1.5) > 1e-9 {
		t.Fatalf("ENBW = %v, want 1.5", a.ENBW)
	}
	if math.Abs(a.ScallopLossdB+1.42) > 0.05 {
		t.Fatalf("scallop loss = %v dB, want about -1.42", a.ScallopLossdB)
	}
	if a.Bandwidth3dB < 1.3 || a.Bandwidth3dB > 1.6 {
		t.Fatalf("3dB bandwidth = %v bins, want about 1.44", a.Bandwidth3dB)
	}

	if got := Analyze(nil); got != (Analysis{}) {
		t.Fatalf("Analyze(nil) = %+v, want zero", got)
	}
}

func TestOverlapGain(t *testing.T) {
	w, _ := Hann(128)
	c, _ := InverseHann(64)

	g := OverlapGain(w, c)
	if len(g) != 64 {
		t.Fatalf("len = %d, want 64", len(g))
	}
	for i, v := range g {
		if v <= 0 || v > 1.01 {
			t.Fatalf("g[%d] = %v out of (0, 1]", i, v)
		}
	}

	for i, v := range g {
		a, b := w[i], w[i+64]
		if want := (a*a + b*b) * c[i]; math.Abs(v-want) > 1e-12 {
			t.Fatalf("g[%d] = %v, want %v", i, v, want)
		}
	}

	if OverlapGain(w, c[:10]) != nil {
		t.Fatal("expected nil for mismatched lengths")
	}
}

func TestNewTables(t *testing.T) {
	tables, err := NewTables(128)
	if err != nil {
		t.Fatalf("NewTables() error = %v", err)
	}

	if tables.Size() != 128 || tables.Half() != 64 {
		t.Fatalf("size=%d half=%d", tables.Size(), tables.Half())
	}
	if len(tables.Analysis()) != 128 || len(tables.Correction()) != 64 {
		t.Fatalf("table lengths %d/%d", len(tables.Analysis()), len(tables.Correction()))
	}

	a := tables.Analysis()
	if a[0] != 0 || math.Abs(float64(a[127])) > 1e-6 {
		t.Fatalf("analysis endpoints = %v, %v", a[0], a[127])
	}
	if math.Abs(float64(a[64])-1) > 1e-3 {
		t.Fatalf("analysis midpoint = %v", a[64])
	}
}

func TestNewTablesRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, 2, 100, -128} {
		_, err := NewTables(size)
		if !errors.Is(err, ErrTableSize) {
			t.Fatalf("NewTables(%d) error = %v, want ErrTableSize", size, err)
		}
	}
}

func TestStretchTablesShared(t *testing.T) {
	a := StretchTables()
	b := StretchTables()
	if a != b {
		t.Fatal("StretchTables returned different instances")
	}
	if a.Size() != 128 {
		t.Fatalf("size = %d, want 128", a.Size())
	}
}
