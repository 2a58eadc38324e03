package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrPackedLength is returned when a packed or full spectrum has an odd or
// mismatched length.
var ErrPackedLength = errors.New("spectrum: packed length must be even and match the spectrum")

// Pack writes the first N/2+1 bins of the full complex spectrum full
// (len N) into the packed layout dst (len N).
func Pack(dst []float32, full []complex128) error {
	n := len(full)
	if n < 2 || n%2 != 0 || len(dst) != n {
		return fmt.Errorf("%w: packed=%d full=%d", ErrPackedLength, len(dst), n)
	}

	dst[0] = float32(real(full[0]))
	dst[1] = float32(real(full[n/2]))
	for k := 1; k < n/2; k++ {
		dst[2*k] = float32(real(full[k]))
		dst[2*k+1] = float32(imag(full[k]))
	}

	return nil
}

// Unpack expands the packed spectrum src (len N) into the Hermitian full
// spectrum dst (len N) so that an inverse complex FFT yields a real signal.
func Unpack(dst []complex128, src []float32) error {
	n := len(src)
	if n < 2 || n%2 != 0 || len(dst) != n {
		return fmt.Errorf("%w: packed=%d full=%d", ErrPackedLength, n, len(dst))
	}

	dst[0] = complex(float64(src[0]), 0)
	dst[n/2] = complex(float64(src[1]), 0)
	for k := 1; k < n/2; k++ {
		re := float64(src[2*k])
		im := float64(src[2*k+1])
		dst[k] = complex(re, im)
		dst[n-k] = complex(re, -im)
	}

	return nil
}

// PackedMagnitudes writes the N/2+1 bin magnitudes of the packed spectrum p
// into dst. re and im are caller-provided scratch of at least N/2-1 values so
// the call does not allocate; the interior bins go through algo-vecmath.
func PackedMagnitudes(dst []float64, p []float32, re, im []float64) error {
	n := len(p)
	if n < 2 || n%2 != 0 || len(dst) != n/2+1 {
		return fmt.Errorf("%w: packed=%d magnitudes=%d", ErrPackedLength, n, len(dst))
	}

	inner := n/2 - 1
	if len(re) < inner || len(im) < inner {
		return fmt.Errorf("spectrum: scratch too short: need %d", inner)
	}

	dst[0] = math.Abs(float64(p[0]))
	dst[n/2] = math.Abs(float64(p[1]))
	if inner == 0 {
		return nil
	}

	re = re[:inner]
	im = im[:inner]
	for k := 1; k < n/2; k++ {
		re[k-1] = float64(p[2*k])
		im[k-1] = float64(p[2*k+1])
	}
	vecmath.Magnitude(dst[1:n/2], re, im)

	return nil
}
