package session

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-stretch/dsp/buffer"
	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/dsp/stretch"
)

// Session wires the capture path, the stretch engine and both buffers.
type Session struct {
	cfg core.ProcessorConfig

	rec    *buffer.Recording
	out    *buffer.Stretched
	engine *stretch.Engine

	state      atomic.Int32
	generation atomic.Uint64
	acked      atomic.Uint64

	pendingStretch atomic.Uint64
	activeStretch  atomic.Uint64

	readCursor atomic.Int64

	blocks  atomic.Uint64
	stalls  atomic.Uint64
	dropped atomic.Uint64
}

// Stats is a point-in-time view of a Session. Fields are loaded one by one,
// so they may straddle a concurrent update.
type Stats struct {
	State      State
	Generation uint64
	Stretch    float64
	FillLen    int
	WriteLen   int
	ReadCursor int
	Blocks     uint64
	Stalls     uint64
	Dropped    uint64
}

// New validates cfg and allocates everything the session will ever use.
// Engine options are applied after the ones derived from cfg.
func New(cfg core.ProcessorConfig, opts ...stretch.Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	rec, err := buffer.NewRecording(core.RecordingCapacity(cfg.SampleRate))
	if err != nil {
		return nil, fmt.Errorf("session: recording buffer: %w", err)
	}
	out, err := buffer.NewStretched(core.StretchedCapacity(cfg.SampleRate))
	if err != nil {
		return nil, fmt.Errorf("session: output buffer: %w", err)
	}

	engineOpts := append([]stretch.Option{stretch.WithWrap(cfg.Wrap)}, opts...)
	engine, err := stretch.New(cfg.Stretch, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		rec:    rec,
		out:    out,
		engine: engine,
	}
	s.pendingStretch.Store(math.Float64bits(cfg.Stretch))
	s.activeStretch.Store(math.Float64bits(cfg.Stretch))
	return s, nil
}

// Config returns the configuration the session was built with.
func (s *Session) Config() core.ProcessorConfig { return s.cfg }

// SetStretch records the factor for the next session start. The running
// session keeps its factor.
func (s *Session) SetStretch(factor float64) error {
	if err := core.ValidateStretch(factor); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.pendingStretch.Store(math.Float64bits(factor))
	return nil
}

// Stretch returns the factor of the current or last session.
func (s *Session) Stretch() float64 {
	return math.Float64frombits(s.activeStretch.Load())
}

// StartSession resets every buffer, cursor and the engine and starts
// recording. It touches state owned by both sides and must only be used
// when the background loop is not running concurrently, e.g. in offline
// rendering. Live hosts use RequestStart.
func (s *Session) StartSession() {
	s.rec.Reset()
	g := s.generation.Add(1)
	s.resetBackground(g)
	s.state.Store(int32(StateRecording))
}

// RequestStart begins a new session from the capture side. The recording
// is cleared at once; the background side resets the engine and output on
// its next MaybeAdvance and only then does capture input get recorded.
func (s *Session) RequestStart() {
	s.state.Store(int32(StateArming))
	s.rec.Reset()
	s.generation.Add(1)
}

// StopSession stops recording. The engine keeps draining the recorded
// material. Stopping before the background side acknowledged a start
// cancels it.
func (s *Session) StopSession() {
	if s.state.CompareAndSwap(int32(StateRecording), int32(StateDraining)) {
		return
	}
	s.state.CompareAndSwap(int32(StateArming), int32(StateIdle))
}

// OnCaptureTick appends one callback's worth of input and returns how many
// samples were stored. Reaching capacity stops the session; the excess is
// dropped.
func (s *Session) OnCaptureTick(samples []float32) int {
	switch s.State() {
	case StateRecording:
	case StateArming:
		s.dropped.Add(uint64(len(samples)))
		return 0
	default:
		return 0
	}

	n, full := s.rec.Append(samples)
	if n < len(samples) {
		s.dropped.Add(uint64(len(samples) - n))
	}
	if full {
		s.StopSession()
	}
	return n
}

// MaybeAdvance runs the engine once if a full frame is recorded ahead of
// the read cursor and the output has room for one block. It reports
// whether a block was appended. Only the background goroutine may call it.
func (s *Session) MaybeAdvance() bool {
	if g := s.generation.Load(); g != s.acked.Load() {
		s.resetBackground(g)
		s.state.CompareAndSwap(int32(StateArming), int32(StateRecording))
	}

	state := s.State()
	if state != StateRecording && state != StateDraining {
		return false
	}

	// Draining stays put after the last block; only the next start leaves it.
	return s.advance()
}

func (s *Session) advance() bool {
	fill := s.rec.Len()
	size := s.engine.Size()
	if fill < size {
		return false
	}
	if s.engine.ReadIndex() > fill-size {
		return false
	}
	if s.out.Room() < s.engine.Half() {
		s.stalls.Add(1)
		return false
	}

	block, err := s.engine.ComputeBlock(s.rec.View(fill))
	if err != nil {
		return false
	}
	if err := s.out.AppendBlock(block); err != nil {
		if errors.Is(err, buffer.ErrFull) {
			s.stalls.Add(1)
		}
		return false
	}

	s.readCursor.Store(int64(s.engine.ReadIndex()))
	s.blocks.Add(1)
	return true
}

// resetBackground clears the state owned by the background side and applies
// the pending stretch factor.
func (s *Session) resetBackground(generation uint64) {
	factor := math.Float64frombits(s.pendingStretch.Load())
	if err := s.engine.SetStretch(factor); err == nil {
		s.activeStretch.Store(math.Float64bits(factor))
	}
	s.engine.Reset()
	s.out.Reset()
	s.readCursor.Store(0)
	s.acked.Store(generation)
}

// State returns the lifecycle phase.
func (s *Session) State() State { return State(s.state.Load()) }

// IsRecording reports whether capture input is currently being recorded.
func (s *Session) IsRecording() bool { return s.State() == StateRecording }

// Generation counts session starts.
func (s *Session) Generation() uint64 { return s.generation.Load() }

// FillLen returns the number of recorded samples.
func (s *Session) FillLen() int { return s.rec.Len() }

// WriteLen returns the number of stretched samples produced.
func (s *Session) WriteLen() int { return s.out.Len() }

// ReadCursor returns the recording index the next frame starts at.
func (s *Session) ReadCursor() int { return int(s.readCursor.Load()) }

// Recorded returns the recorded prefix.
func (s *Session) Recorded() []float32 { return s.rec.Samples() }

// Stretched returns the produced output prefix.
func (s *Session) Stretched() []float32 { return s.out.Samples() }

// RecordingCap returns the recording capacity in samples.
func (s *Session) RecordingCap() int { return s.rec.Cap() }

// StretchedCap returns the output capacity in samples.
func (s *Session) StretchedCap() int { return s.out.Cap() }

// Stats loads all counters.
func (s *Session) Stats() Stats {
	return Stats{
		State:      s.State(),
		Generation: s.Generation(),
		Stretch:    s.Stretch(),
		FillLen:    s.FillLen(),
		WriteLen:   s.WriteLen(),
		ReadCursor: s.ReadCursor(),
		Blocks:     s.blocks.Load(),
		Stalls:     s.stalls.Load(),
		Dropped:    s.dropped.Load(),
	}
}

// PrefillOutput publishes n silent samples ahead of the first stretched
// block. Background side only.
func (s *Session) PrefillOutput(n int) error {
	return s.out.AppendSilence(n)
}

// PlaybackView returns the produced output for readers on the capture side.
// It returns nil while a requested start has not been acknowledged, because
// the background side is about to rewrite the buffer from the beginning.
func (s *Session) PlaybackView() []float32 {
	if s.State() == StateArming {
		return nil
	}
	return s.out.Samples()
}
