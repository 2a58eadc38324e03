package core

import (
	"errors"
	"fmt"
	"math"
)

var errInvalidStretch = errors.New("stretch factor must be in (0, 16]")

// ProcessorConfig defines the settings fixed at session configuration time.
type ProcessorConfig struct {
	SampleRate int
	BlockSize  int
	Stretch    float64
	Wrap       bool
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the pedal defaults: 48 kHz, 48-sample
// callbacks, a stretch factor of 0.25 and wraparound frame addressing.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		BlockSize:  DefaultBlockSize,
		Stretch:    DefaultStretch,
		Wrap:       true,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithStretch sets the stretch factor. Invalid values are kept so that
// Validate can reject them instead of silently falling back.
func WithStretch(stretch float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Stretch = stretch
	}
}

// WithWrap selects wraparound frame addressing.
func WithWrap(wrap bool) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Wrap = wrap
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ValidateStretch checks that s is a usable stretch factor.
func ValidateStretch(s float64) error {
	if s <= 0 || s > MaxStretchFactor || math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: %v", errInvalidStretch, s)
	}
	return nil
}

// Validate reports the first invalid field of cfg.
func (cfg ProcessorConfig) Validate() error {
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return fmt.Errorf("block size must be > 0: %d", cfg.BlockSize)
	}
	if RecordingCapacity(cfg.SampleRate) < WindowSize {
		return fmt.Errorf("sample rate %d leaves less than one window of recording", cfg.SampleRate)
	}
	return ValidateStretch(cfg.Stretch)
}
