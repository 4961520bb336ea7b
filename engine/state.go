package engine

// State is the simulation lifecycle state
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStopped // terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// transitions lists the allowed targets per source state
var transitions = map[State][]State{
	StateIdle:    {StateRunning, StateStopped},
	StateRunning: {StatePaused, StateStopped},
	StatePaused:  {StateRunning, StateStopped},
}

// CanTransition reports whether from -> to is a legal lifecycle move
func CanTransition(from, to State) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
