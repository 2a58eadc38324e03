package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-stretch/dsp/dither"
)

var (
	// ErrInvalidWAV is returned for files the decoder does not accept.
	ErrInvalidWAV = errors.New("wavio: not a valid WAV file")

	errNoChannels = errors.New("wavio: file has no channels")
)

// Mono is a decoded single-channel signal.
type Mono struct {
	SampleRate int
	Samples    []float32
}

// ReadMono decodes path and downmixes every channel to mono by averaging.
func ReadMono(path string) (*Mono, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wavio: %s: %w", path, err)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: %s", errNoChannels, path)
	}
	bitDepth := int(dec.SampleBitDepth())
	if bitDepth == 0 {
		return nil, fmt.Errorf("%w: unknown bit depth in %s", ErrInvalidWAV, path)
	}

	bytesPerSample := (bitDepth-1)/8 + 1
	nsamples := int(dec.PCMLen()) / bytesPerSample
	buf := &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, nsamples),
		SourceBitDepth: bitDepth,
	}
	n, err := dec.PCMBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("wavio: %s: %w", path, err)
	}
	buf.Data = buf.Data[:n]

	channels := format.NumChannels
	scale := 1 / math.Pow(2, float64(bitDepth-1))
	frames := len(buf.Data) / channels
	out := make([]float32, frames)
	for i := range out {
		var sum float64
		for c := range channels {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = float32(sum / float64(channels) * scale)
	}

	return &Mono{SampleRate: format.SampleRate, Samples: out}, nil
}

// WriteMono16 encodes samples as 16-bit mono PCM through a TPDF-dithered
// quantizer. Out-of-range samples are clipped. opts adjust the quantizer;
// the bit depth is always 16.
func WriteMono16(path string, sampleRate int, samples []float32, opts ...dither.Option) error {
	q, err := dither.NewQuantizer(append(opts, dither.WithBitDepth(16), dither.WithLimit(true))...)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	q.ProcessBlock(buf.Data, samples)

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("wavio: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("wavio: finalize %s: %w", path, err)
	}
	return f.Close()
}
