// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package does not implement an FFT. It converts between full complex
// spectra produced by an external FFT backend and the packed real-signal
// layout used by the stretch engine, and offers magnitude and power helpers
// on top of SIMD kernels from algo-vecmath.
//
// Packed layout for an N-point real signal (N even):
//
//	p[0]      real part of bin 0 (DC)
//	p[1]      real part of bin N/2 (Nyquist)
//	p[2k]     real part of bin k, 1 <= k < N/2
//	p[2k+1]   imaginary part of bin k
//
// Bins 0 and N/2 of a real signal are purely real, so N values describe all
// N/2+1 bins.
package spectrum
