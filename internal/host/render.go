package host

import (
	"errors"

	"github.com/cwbudde/algo-stretch/dsp/buffer"
	"github.com/cwbudde/algo-stretch/dsp/session"
)

var errBlockSize = errors.New("host: block size must be > 0")

// Render runs one complete session offline: input is fed in callbacks of
// blockSize samples with the engine advanced between callbacks, exactly as
// the live loop would if it never fell behind. Input past the recording
// capacity is ignored. The returned slice is a copy of the stretched output.
func Render(sess *session.Session, input []float32, blockSize int) ([]float32, error) {
	if blockSize <= 0 {
		return nil, errBlockSize
	}

	sess.StartSession()
	buffer.FromSlice(input).Chunks(blockSize, func(block []float32) bool {
		sess.OnCaptureTick(block)
		for sess.MaybeAdvance() {
		}
		return sess.IsRecording()
	})
	sess.StopSession()
	for sess.MaybeAdvance() {
	}

	return append([]float32(nil), sess.Stretched()...), nil
}
