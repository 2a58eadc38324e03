// Package buffer provides the sample stores of the stretch pipeline.
//
// Recording and Stretched are fixed-capacity, allocate only in their
// constructors and are shared between exactly one writer and any number of
// readers. The writer stores samples first and publishes the new length
// afterwards through an atomic counter; readers load the counter and only
// touch indices below it. Neither type takes a lock.
//
// Buffer is a single-goroutine slice wrapper. It chunks offline input and,
// created WithCapacity, collects callback output into preallocated space.
package buffer
