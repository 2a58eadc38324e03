package core

// Sample is a single mono audio amplitude. Values are conventionally in
// [-1, 1] but nothing in the stretch path clamps them.
type Sample = float32

// Fixed sizes of the stretch pipeline.
const (
	WindowSize     = 128
	HalfWindowSize = WindowSize / 2

	MaxRecordSeconds = 16
	MaxStretchFactor = 16

	// DefaultStretch is the stretch factor used when no control value is
	// supplied. The read cursor advances HalfWindowSize/DefaultStretch input
	// samples per synthesized block.
	DefaultStretch = 0.25

	DefaultSampleRate = 48000
	DefaultBlockSize  = 48
)

// RecordingCapacity returns the number of samples the recording buffer holds
// at the given sample rate.
func RecordingCapacity(sampleRate int) int {
	if sampleRate <= 0 {
		return 0
	}
	return sampleRate * MaxRecordSeconds
}

// StretchedCapacity returns the number of samples the stretched output
// buffer holds at the given sample rate.
func StretchedCapacity(sampleRate int) int {
	return RecordingCapacity(sampleRate) * MaxStretchFactor
}
