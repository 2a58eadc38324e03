package host

import (
	"errors"
	"time"

	"github.com/cwbudde/algo-stretch/dsp/session"
)

var errNilDependency = errors.New("host: session and surface are required")

// Observer receives per-callback measurements. Implementations are called
// from the audio callback and must not block.
type Observer interface {
	ObserveCallback(elapsed time.Duration, starved bool)
}

// LevelObserver is an Observer that also wants the callback's input and
// output blocks. The slices are only valid during the call.
type LevelObserver interface {
	Observer
	ObserveLevels(in, out []float32)
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithPlaybackPolicy selects the output policy.
func WithPlaybackPolicy(p PlaybackPolicy) ProcessorOption {
	return func(pr *Processor) { pr.policy = p }
}

// WithObserver installs a callback observer.
func WithObserver(o Observer) ProcessorOption {
	return func(pr *Processor) { pr.observer = o }
}

// Processor is the audio-callback side of the pedal. All of its state is
// owned by the goroutine calling AudioCallback.
type Processor struct {
	sess     *session.Session
	surface  ControlSurface
	policy   PlaybackPolicy
	observer Observer

	bypass  bool
	playPos int
}

// NewProcessor binds a session to a control surface.
func NewProcessor(sess *session.Session, surface ControlSurface, opts ...ProcessorOption) (*Processor, error) {
	if sess == nil || surface == nil {
		return nil, errNilDependency
	}
	p := &Processor{sess: sess, surface: surface}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	surface.SetBypass(false)
	return p, nil
}

// Policy returns the playback policy.
func (p *Processor) Policy() PlaybackPolicy { return p.policy }

// Bypassed reports whether bypass is engaged.
func (p *Processor) Bypassed() bool { return p.bypass }

// AudioCallback handles one block: control edges, capture, output and
// indicators. in and out must have the same length.
func (p *Processor) AudioCallback(in, out []float32) {
	var start time.Time
	if p.observer != nil {
		start = time.Now()
	}

	ev := p.surface.Poll()
	if ev.ToggleBypass {
		p.bypass = !p.bypass
		p.surface.SetBypass(p.bypass)
	}
	if ev.ToggleRecord {
		p.toggleRecord()
	}

	p.sess.OnCaptureTick(in)
	starved := p.render(in, out)

	p.surface.SetIndicator(IndicatorBypass, level(p.bypass))
	p.surface.SetIndicator(IndicatorRecord, level(p.sess.IsRecording()))

	if p.observer != nil {
		p.observer.ObserveCallback(time.Since(start), starved)
		if lo, ok := p.observer.(LevelObserver); ok {
			lo.ObserveLevels(in, out)
		}
	}
}

func (p *Processor) toggleRecord() {
	switch p.sess.State() {
	case session.StateRecording, session.StateArming:
		p.sess.StopSession()
	default:
		// An unusable control value keeps the previous factor.
		_ = p.sess.SetStretch(p.surface.StretchControl())
		p.sess.RequestStart()
		p.playPos = 0
	}
}

// render writes out and reports whether a wet policy had to fall back to
// the dry input.
func (p *Processor) render(in, out []float32) bool {
	n := copy(out, in)
	clear(out[n:])

	if p.bypass {
		return false
	}

	switch p.policy {
	case PlaybackStream:
		wet := p.sess.PlaybackView()
		if p.playPos >= len(wet) {
			return true
		}
		m := copy(out, wet[p.playPos:])
		p.playPos += m
		return m < len(out)

	case PlaybackLoop:
		if st := p.sess.State(); st != session.StateDraining && st != session.StateIdle {
			return false
		}
		wet := p.sess.PlaybackView()
		if len(wet) == 0 {
			return true
		}
		for i := range out {
			if p.playPos >= len(wet) {
				p.playPos = 0
			}
			out[i] = wet[p.playPos]
			p.playPos++
		}
	}
	return false
}

func level(on bool) float32 {
	if on {
		return 1
	}
	return 0
}
