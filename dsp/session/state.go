package session

// State is the lifecycle phase of a Session.
type State int32

const (
	// StateIdle means no session has run since construction, or a start was
	// cancelled while arming.
	StateIdle State = iota
	// StateArming means a start was requested from the capture side and the
	// background side has not reset the engine yet. Capture input is dropped.
	StateArming
	// StateRecording means capture input is appended to the recording.
	StateRecording
	// StateDraining means recording stopped. The engine keeps consuming what
	// was recorded until it reaches the end or the output is full, and the
	// session then stays here until the next start.
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArming:
		return "arming"
	case StateRecording:
		return "recording"
	case StateDraining:
		return "draining"
	default:
		return "unknown"
	}
}
