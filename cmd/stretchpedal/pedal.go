package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-stretch/dsp/session"
	"github.com/cwbudde/algo-stretch/dsp/stretch"
	"github.com/cwbudde/algo-stretch/internal/config"
	"github.com/cwbudde/algo-stretch/internal/control"
	"github.com/cwbudde/algo-stretch/internal/host"
	"github.com/cwbudde/algo-stretch/internal/metrics"
)

// pedal is everything a real-time run needs.
type pedal struct {
	sess     *session.Session
	surface  *host.SoftwareSurface
	proc     *host.Processor
	bg       *host.Background
	registry *prometheus.Registry
	control  *control.Server
}

func newPedal(cfg *config.Config, log *zap.Logger) (*pedal, error) {
	sess, err := session.New(cfg.ProcessorConfig(), stretch.WithSeed(cfg.Stretch.Seed))
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg, sess)

	surface := host.NewSoftwareSurface(cfg.Stretch.Factor)
	proc, err := host.NewProcessor(sess, surface,
		host.WithPlaybackPolicy(cfg.PlaybackPolicy()),
		host.WithObserver(m),
	)
	if err != nil {
		return nil, err
	}

	log.Info("pedal ready",
		zap.Int("sampleRate", cfg.Audio.SampleRate),
		zap.Int("blockSize", cfg.Audio.BlockSize),
		zap.Float64("stretch", cfg.Stretch.Factor),
		zap.Bool("wrap", cfg.Stretch.Wrap),
		zap.Stringer("playback", proc.Policy()),
		zap.Int("recordingCap", sess.RecordingCap()),
		zap.Int("stretchedCap", sess.StretchedCap()),
	)

	return &pedal{
		sess:     sess,
		surface:  surface,
		proc:     proc,
		bg:       host.NewBackground(sess, log, host.DefaultIdleInterval),
		registry: reg,
		control:  control.New(sess, surface, reg, log),
	}, nil
}
