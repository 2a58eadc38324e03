package host

import (
	"errors"
	"fmt"
	"strings"
)

// PlaybackPolicy selects what the audio callback writes to its output.
type PlaybackPolicy int

const (
	// PlaybackPassthrough always outputs the dry input.
	PlaybackPassthrough PlaybackPolicy = iota
	// PlaybackStream plays the stretched output as it is produced and falls
	// back to the dry input while starved.
	PlaybackStream
	// PlaybackLoop plays the dry input while recording and loops the
	// stretched output once recording stops.
	PlaybackLoop
)

var errUnknownPolicy = errors.New("unknown playback policy")

// ParsePlaybackPolicy parses "passthrough", "stream" or "loop".
func ParsePlaybackPolicy(name string) (PlaybackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "passthrough":
		return PlaybackPassthrough, nil
	case "stream":
		return PlaybackStream, nil
	case "loop":
		return PlaybackLoop, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownPolicy, name)
	}
}

func (p PlaybackPolicy) String() string {
	switch p {
	case PlaybackPassthrough:
		return "passthrough"
	case PlaybackStream:
		return "stream"
	case PlaybackLoop:
		return "loop"
	default:
		return fmt.Sprintf("PlaybackPolicy(%d)", int(p))
	}
}
