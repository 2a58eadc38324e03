package signal

import (
	"math"
	"testing"
)

func TestNewRejectsBadRate(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestSine(t *testing.T) {
	g, err := New(8000)
	if err != nil {
		t.Fatal(err)
	}
	// 2 kHz at 8 kHz: 0, 1, 0, -1 ...
	out, err := g.Sine(2000, 0.5, 8)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	want := []float32{0, 0.5, 0, -0.5, 0, 0.5, 0, -0.5}
	for i := range want {
		if math.Abs(float64(out[i]-want[i])) > 1e-6 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	if _, err := g.Sine(4000, 1, 8); err == nil {
		t.Fatal("accepted Nyquist frequency")
	}
	if _, err := g.Sine(440, 1, 0); err == nil {
		t.Fatal("accepted zero length")
	}
}

func TestWhiteNoiseIsSeeded(t *testing.T) {
	a, _ := New(8000, WithSeed(3))
	b, _ := New(8000, WithSeed(3))
	c, _ := New(8000, WithSeed(4))

	na, _ := a.WhiteNoise(0.25, 256)
	nb, _ := b.WhiteNoise(0.25, 256)
	nc, _ := c.WhiteNoise(0.25, 256)

	same := true
	for i := range na {
		if na[i] != nb[i] {
			t.Fatalf("sample %d differs for equal seeds", i)
		}
		if na[i] != nc[i] {
			same = false
		}
		if math.Abs(float64(na[i])) > 0.25 {
			t.Fatalf("sample %d = %v exceeds amplitude", i, na[i])
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}

	if _, err := a.WhiteNoise(-1, 4); err == nil {
		t.Fatal("accepted negative amplitude")
	}
}

func TestNormalize(t *testing.T) {
	data := []float32{0.1, -0.4, 0.2}
	if err := Normalize(data, 0.8); err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(data[1])+0.8) > 1e-6 || math.Abs(float64(data[0])-0.2) > 1e-6 {
		t.Fatalf("Normalize() = %v", data)
	}

	zero := []float32{0, 0}
	if err := Normalize(zero, 1); err != nil || zero[0] != 0 {
		t.Fatalf("zero input: %v %v", zero, err)
	}
	if err := Normalize(data, -1); err == nil {
		t.Fatal("accepted negative peak")
	}
}
