// Package session coordinates one recording-and-stretch cycle.
//
// A Session owns the recording buffer, the stretched output buffer and the
// stretch engine. Two goroutines drive it: the capture side calls
// RequestStart, StopSession and OnCaptureTick once per audio callback, and
// the background side calls MaybeAdvance in a loop. All state shared between
// the two is published through sync/atomic values, so neither side ever
// blocks the other.
package session
