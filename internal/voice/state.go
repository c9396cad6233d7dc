package voice

type State int

const (
	StateIdle State = iota
	StateConnecting
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

func (s State) canMoveTo(next State) bool {
	switch s {
	case StateIdle:
		return next == StateConnecting
	case StateConnecting:
		return next == StateActive || next == StateEnded
	case StateActive:
		return next == StateEnded
	default:
		return false
	}
}
