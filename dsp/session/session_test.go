package session

import (
	"sync"
	"testing"

	"github.com/cwbudde/algo-stretch/dsp/core"
	"github.com/cwbudde/algo-stretch/dsp/stretch"
	"github.com/cwbudde/algo-stretch/internal/testutil"
)

const testRate = 1000

func newTestSession(t *testing.T, stretchFactor float64) *Session {
	t.Helper()
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(testRate),
		core.WithStretch(stretchFactor),
	)
	s, err := New(cfg, stretch.WithSeed(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  core.ProcessorConfig
	}{
		{"zero stretch", core.ApplyProcessorOptions(core.WithStretch(0))},
		{"too much stretch", core.ApplyProcessorOptions(core.WithStretch(17))},
		{"tiny rate", core.ProcessorConfig{SampleRate: 4, BlockSize: 48, Stretch: 1}},
		{"no block size", core.ProcessorConfig{SampleRate: 1000, Stretch: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCapacities(t *testing.T) {
	s := newTestSession(t, 1)
	if s.RecordingCap() != 16000 {
		t.Fatalf("RecordingCap() = %d, want 16000", s.RecordingCap())
	}
	if s.StretchedCap() != 256000 {
		t.Fatalf("StretchedCap() = %d, want 256000", s.StretchedCap())
	}
}

func TestRecordingStopsAtCapacity(t *testing.T) {
	s := newTestSession(t, 1)
	s.StartSession()

	capRec := s.RecordingCap()
	in := testutil.DeterministicNoise(3, 0.5, capRec+1000)

	accepted := 0
	for off := 0; off < len(in); off += core.DefaultBlockSize {
		end := min(off+core.DefaultBlockSize, len(in))
		accepted += s.OnCaptureTick(in[off:end])
	}

	if s.FillLen() != capRec {
		t.Fatalf("FillLen() = %d, want %d", s.FillLen(), capRec)
	}
	if accepted != capRec {
		t.Fatalf("accepted %d samples, want %d", accepted, capRec)
	}
	if s.IsRecording() {
		t.Fatal("still recording after reaching capacity")
	}
	if s.State() != StateDraining {
		t.Fatalf("State() = %v, want draining", s.State())
	}
	testutil.RequireSliceNearlyEqual(t, s.Recorded(), in[:capRec], 0)
}

func TestOverflowingTickIsTruncated(t *testing.T) {
	s := newTestSession(t, 1)
	s.StartSession()

	capRec := s.RecordingCap()
	if n := s.OnCaptureTick(make([]float32, capRec-10)); n != capRec-10 {
		t.Fatalf("first tick accepted %d", n)
	}
	if n := s.OnCaptureTick(make([]float32, 48)); n != 10 {
		t.Fatalf("overflow tick accepted %d, want 10", n)
	}
	if got := s.Stats().Dropped; got != 38 {
		t.Fatalf("Dropped = %d, want 38", got)
	}
	if n := s.OnCaptureTick(make([]float32, 48)); n != 0 {
		t.Fatalf("tick after stop accepted %d", n)
	}
}

func TestTriggerGating(t *testing.T) {
	s := newTestSession(t, 1)
	s.StartSession()

	s.OnCaptureTick(testutil.DeterministicNoise(1, 0.5, 127))
	if s.MaybeAdvance() {
		t.Fatal("advanced with 127 recorded samples")
	}

	s.OnCaptureTick([]float32{0.25})
	if !s.MaybeAdvance() {
		t.Fatal("did not advance with 128 recorded samples")
	}
	if s.MaybeAdvance() {
		t.Fatal("advanced twice on a single frame")
	}
	if s.WriteLen() != core.HalfWindowSize {
		t.Fatalf("WriteLen() = %d, want %d", s.WriteLen(), core.HalfWindowSize)
	}
	if s.ReadCursor() != 64 {
		t.Fatalf("ReadCursor() = %d, want 64", s.ReadCursor())
	}
}

func TestOutputBackpressure(t *testing.T) {
	s := newTestSession(t, 1)
	s.StartSession()
	s.OnCaptureTick(testutil.DeterministicNoise(1, 0.5, 512))

	if err := s.PrefillOutput(s.StretchedCap() - 32); err != nil {
		t.Fatalf("PrefillOutput() error = %v", err)
	}
	if s.MaybeAdvance() {
		t.Fatal("advanced with only 32 samples of output room")
	}
	if s.WriteLen() != s.StretchedCap()-32 {
		t.Fatalf("WriteLen() = %d changed", s.WriteLen())
	}
	if s.Stats().Stalls == 0 {
		t.Fatal("stall not counted")
	}
}

func TestDrainStaysUntilNextStart(t *testing.T) {
	s := newTestSession(t, 1)
	s.StartSession()
	s.OnCaptureTick(testutil.DeterministicNoise(2, 0.5, 1024))
	s.StopSession()

	if s.State() != StateDraining {
		t.Fatalf("State() = %v, want draining", s.State())
	}

	blocks := 0
	for s.MaybeAdvance() {
		blocks++
	}

	// Read positions 0, 64, ..., 896 cover a 1024-sample recording.
	if blocks != 15 {
		t.Fatalf("drained %d blocks, want 15", blocks)
	}
	if s.WriteLen() != blocks*core.HalfWindowSize {
		t.Fatalf("WriteLen() = %d", s.WriteLen())
	}
	for range 3 {
		if s.MaybeAdvance() {
			t.Fatal("advanced after the recording was exhausted")
		}
		if s.State() != StateDraining {
			t.Fatalf("State() = %v after drain, want draining", s.State())
		}
	}
	if got := s.Stats().Blocks; got != 15 {
		t.Fatalf("Blocks = %d, want 15", got)
	}

	s.RequestStart()
	if s.State() != StateArming {
		t.Fatalf("State() = %v after RequestStart, want arming", s.State())
	}
	s.MaybeAdvance()
	if s.State() != StateRecording || s.WriteLen() != 0 {
		t.Fatalf("State() = %v WriteLen() = %d, want recording with empty output", s.State(), s.WriteLen())
	}
}

func TestCursorsMonotonicWithinSession(t *testing.T) {
	s := newTestSession(t, 0.5)
	s.StartSession()

	in := testutil.DeterministicSine(50, testRate, 0.5, 4000)
	lastRead, lastWrite := 0, 0
	for off := 0; off < len(in); off += 48 {
		s.OnCaptureTick(in[off:min(off+48, len(in))])
		for s.MaybeAdvance() {
			if s.ReadCursor() < lastRead || s.WriteLen() <= lastWrite {
				t.Fatalf("cursor moved backwards: read %d->%d write %d->%d",
					lastRead, s.ReadCursor(), lastWrite, s.WriteLen())
			}
			lastRead, lastWrite = s.ReadCursor(), s.WriteLen()
		}
	}
	if lastWrite == 0 {
		t.Fatal("no blocks produced")
	}
	if s.ReadCursor() > s.FillLen()-core.WindowSize+int(s.engine.Displacement()) {
		t.Fatalf("read cursor %d ran past the recording", s.ReadCursor())
	}
}

func TestStartSessionResets(t *testing.T) {
	s := newTestSession(t, 1)
	s.StartSession()
	s.OnCaptureTick(testutil.DeterministicNoise(1, 0.5, 1000))
	for s.MaybeAdvance() {
	}
	first := append([]float32(nil), s.Stretched()...)

	if err := s.SetStretch(2); err != nil {
		t.Fatalf("SetStretch() error = %v", err)
	}
	if s.Stretch() != 1 {
		t.Fatalf("Stretch() = %v changed mid-session", s.Stretch())
	}

	s.StartSession()
	if s.FillLen() != 0 || s.WriteLen() != 0 || s.ReadCursor() != 0 {
		t.Fatalf("not reset: fill=%d write=%d read=%d", s.FillLen(), s.WriteLen(), s.ReadCursor())
	}
	if s.Stretch() != 2 {
		t.Fatalf("Stretch() = %v, want 2", s.Stretch())
	}
	if s.Generation() != 2 {
		t.Fatalf("Generation() = %d, want 2", s.Generation())
	}
	if len(first) == 0 {
		t.Fatal("first session produced nothing")
	}
}

func TestSetStretchRejectsInvalid(t *testing.T) {
	s := newTestSession(t, 1)
	for _, v := range []float64{0, -1, 16.5} {
		if err := s.SetStretch(v); err == nil {
			t.Fatalf("SetStretch(%v) accepted", v)
		}
	}
}

func TestRequestStartHandshake(t *testing.T) {
	s := newTestSession(t, 1)

	s.RequestStart()
	if s.State() != StateArming {
		t.Fatalf("State() = %v, want arming", s.State())
	}
	if n := s.OnCaptureTick(make([]float32, 48)); n != 0 {
		t.Fatalf("recorded %d samples before acknowledgement", n)
	}

	if s.MaybeAdvance() {
		t.Fatal("advanced without recorded input")
	}
	if s.State() != StateRecording {
		t.Fatalf("State() = %v, want recording", s.State())
	}
	if n := s.OnCaptureTick(make([]float32, 48)); n != 48 {
		t.Fatalf("recorded %d samples, want 48", n)
	}
}

func TestStopWhileArmingCancels(t *testing.T) {
	s := newTestSession(t, 1)
	s.RequestStart()
	s.StopSession()
	if s.State() != StateIdle {
		t.Fatalf("State() = %v, want idle", s.State())
	}
	s.MaybeAdvance()
	if s.State() != StateIdle {
		t.Fatalf("State() = %v after acknowledgement, want idle", s.State())
	}
}

func TestConcurrentCaptureAndAdvance(t *testing.T) {
	s := newTestSession(t, 0.25)
	in := testutil.DeterministicNoise(7, 0.5, s.RecordingCap())

	s.RequestStart()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				for s.MaybeAdvance() {
				}
				return
			default:
				s.MaybeAdvance()
			}
		}
	}()

	for s.State() == StateArming {
		s.OnCaptureTick(in[:48])
	}
	for off := 0; off < len(in) && s.IsRecording(); off += 48 {
		s.OnCaptureTick(in[off:min(off+48, len(in))])
	}
	s.StopSession()
	close(done)
	wg.Wait()

	st := s.Stats()
	if st.WriteLen != int(st.Blocks)*core.HalfWindowSize {
		t.Fatalf("WriteLen %d does not match %d blocks", st.WriteLen, st.Blocks)
	}
	// The cursor may sit one hop past the last legal frame start.
	if limit := st.FillLen - core.WindowSize + int(s.engine.Displacement()); st.ReadCursor > limit {
		t.Fatalf("read cursor %d past %d (fill %d)", st.ReadCursor, limit, st.FillLen)
	}
	if s.State() != StateDraining {
		t.Fatalf("State() = %v, want draining", s.State())
	}
	testutil.RequireFinite(t, s.Stretched())
}

func TestStateString(t *testing.T) {
	for st, want := range map[State]string{
		StateIdle:      "idle",
		StateArming:    "arming",
		StateRecording: "recording",
		StateDraining:  "draining",
		State(9):       "unknown",
	} {
		if st.String() != want {
			t.Fatalf("%d.String() = %q, want %q", st, st.String(), want)
		}
	}
}

func TestPlaybackViewHiddenWhileArming(t *testing.T) {
	s := newTestSession(t, 1)
	s.StartSession()
	s.OnCaptureTick(testutil.DeterministicNoise(1, 0.5, 256))
	for s.MaybeAdvance() {
	}
	if len(s.PlaybackView()) == 0 {
		t.Fatal("no output visible")
	}

	s.RequestStart()
	if s.PlaybackView() != nil {
		t.Fatal("output visible while arming")
	}
	s.MaybeAdvance()
	if got := len(s.PlaybackView()); got != 0 {
		t.Fatalf("PlaybackView() has %d samples after restart", got)
	}
}
