package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cwbudde/algo-stretch/dsp/session"
	timestats "github.com/cwbudde/algo-stretch/stats/time"
)

const namespace = "stretchpedal"

// Metrics exports session progress and audio callback timing.
type Metrics struct {
	CallbacksTotal   prometheus.Counter
	StarvedTotal     prometheus.Counter
	CallbackDuration prometheus.Histogram
	InputPeak        prometheus.Gauge
	OutputPeak       prometheus.Gauge
	OutputRMS        prometheus.Gauge
}

// New registers all collectors on reg. Session values are read on scrape.
func New(reg prometheus.Registerer, sess *session.Session) *Metrics {
	f := promauto.With(reg)

	// Counters
	f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocks_total",
		Help:      "Stretched blocks produced",
	}, func() float64 { return float64(sess.Stats().Blocks) })
	f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "output_stalls_total",
		Help:      "Engine invocations skipped because the output buffer was full",
	}, func() float64 { return float64(sess.Stats().Stalls) })
	f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dropped_samples_total",
		Help:      "Capture samples discarded while arming or past capacity",
	}, func() float64 { return float64(sess.Stats().Dropped) })
	f.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Sessions started",
	}, func() float64 { return float64(sess.Generation()) })

	// Gauges
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_state",
		Help:      "Session state (0=idle, 1=arming, 2=recording, 3=draining)",
	}, func() float64 { return float64(sess.State()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recorded_samples",
		Help:      "Samples in the recording buffer",
	}, func() float64 { return float64(sess.FillLen()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stretched_samples",
		Help:      "Samples in the stretched output buffer",
	}, func() float64 { return float64(sess.WriteLen()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "read_cursor",
		Help:      "Recording index of the next analysis frame",
	}, func() float64 { return float64(sess.ReadCursor()) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stretch_factor",
		Help:      "Stretch factor of the current session",
	}, func() float64 { return sess.Stretch() })

	return &Metrics{
		CallbacksTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_total",
			Help:      "Audio callbacks processed",
		}),
		StarvedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "starved_callbacks_total",
			Help:      "Callbacks where playback fell back to the dry input",
		}),
		CallbackDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "callback_duration_seconds",
			Help:      "Audio callback processing time",
			Buckets:   []float64{10e-6, 25e-6, 50e-6, 100e-6, 250e-6, 500e-6, 1e-3},
		}),
		InputPeak: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "input_peak_dbfs",
			Help:      "Peak level of the last captured block",
		}),
		OutputPeak: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_peak_dbfs",
			Help:      "Peak level of the last output block",
		}),
		OutputRMS: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_rms_dbfs",
			Help:      "RMS level of the last output block",
		}),
	}
}

// ObserveCallback records one audio callback.
func (m *Metrics) ObserveCallback(elapsed time.Duration, starved bool) {
	m.CallbacksTotal.Inc()
	if starved {
		m.StarvedTotal.Inc()
	}
	m.CallbackDuration.Observe(elapsed.Seconds())
}

// ObserveLevels records input and output levels of one callback.
func (m *Metrics) ObserveLevels(in, out []float32) {
	m.InputPeak.Set(timestats.Calculate(in).Peak_dB)
	st := timestats.Calculate(out)
	m.OutputPeak.Set(st.Peak_dB)
	m.OutputRMS.Set(st.RMS_dB)
}
