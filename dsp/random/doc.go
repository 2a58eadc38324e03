// Package random provides the deterministic phase source used for spectral
// phase randomization.
//
// The generator is a 31-bit linear congruential generator. It is a spectral
// dithering source, not a statistical or cryptographic one: it is cheap,
// allocation-free and reproducible from its seed, which is what the
// real-time stretch path and its tests need.
package random
