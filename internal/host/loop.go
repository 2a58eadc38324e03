package host

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-stretch/dsp/session"
)

// DefaultIdleInterval is how long the background loop sleeps when no block
// could be produced.
const DefaultIdleInterval = time.Millisecond

// Background drives Session.MaybeAdvance outside the audio callback.
type Background struct {
	sess *session.Session
	log  *zap.Logger
	idle time.Duration
}

// NewBackground returns a loop for sess. A nil logger discards output.
func NewBackground(sess *session.Session, log *zap.Logger, idle time.Duration) *Background {
	if log == nil {
		log = zap.NewNop()
	}
	if idle <= 0 {
		idle = DefaultIdleInterval
	}
	return &Background{sess: sess, log: log, idle: idle}
}

// Run advances the session until ctx is cancelled. It always returns nil
// on cancellation so that errgroup reports the real failure.
func (b *Background) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.idle)
	defer ticker.Stop()

	last := b.sess.State()
	for {
		if b.sess.MaybeAdvance() {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		if st := b.sess.State(); st != last {
			stats := b.sess.Stats()
			b.log.Info("session state changed",
				zap.Stringer("from", last),
				zap.Stringer("to", st),
				zap.Uint64("generation", stats.Generation),
				zap.Float64("stretch", stats.Stretch),
				zap.Int("recorded", stats.FillLen),
				zap.Int("stretched", stats.WriteLen),
			)
			last = st
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Run starts the background loop and every extra task in one errgroup and
// waits for all of them. The first task error cancels the others.
func Run(ctx context.Context, bg *Background, tasks ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bg.Run(ctx) })
	for _, task := range tasks {
		g.Go(func() error { return task(ctx) })
	}
	return g.Wait()
}
