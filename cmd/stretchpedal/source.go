package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-stretch/dsp/signal"
	"github.com/cwbudde/algo-stretch/internal/host"
	"github.com/cwbudde/algo-stretch/internal/wavio"
)

// loadSource builds the looped capture source. input is a WAV path,
// "tone:<hz>" for a one-second sine, "noise" for one second of white noise,
// or empty for silence. WAV files must match the configured sample rate.
func loadSource(input string, sampleRate int) (host.Source, error) {
	switch {
	case input == "":
		return host.NewLoopSource(nil), nil
	case input == "noise":
		g, err := signal.New(sampleRate)
		if err != nil {
			return nil, err
		}
		clip, err := g.WhiteNoise(0.25, sampleRate)
		if err != nil {
			return nil, err
		}
		return host.NewLoopSource(clip), nil
	case strings.HasPrefix(input, "tone:"):
		hz, err := strconv.ParseFloat(strings.TrimPrefix(input, "tone:"), 64)
		if err != nil {
			return nil, fmt.Errorf("bad tone frequency in %q: %w", input, err)
		}
		g, err := signal.New(sampleRate)
		if err != nil {
			return nil, err
		}
		clip, err := g.Sine(hz, 0.5, sampleRate)
		if err != nil {
			return nil, err
		}
		return host.NewLoopSource(clip), nil
	}

	in, err := wavio.ReadMono(input)
	if err != nil {
		return nil, err
	}
	if in.SampleRate != sampleRate {
		return nil, fmt.Errorf("%s is %d Hz, pedal runs at %d Hz", input, in.SampleRate, sampleRate)
	}
	return host.NewLoopSource(in.Samples), nil
}
