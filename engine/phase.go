package engine

// RoomPhase is the room's top-level screen state
type RoomPhase int

const (
	PhaseStart RoomPhase = iota
	PhasePlaying
	PhaseSuccess
)

// String returns the phase name
func (p RoomPhase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseSuccess:
		return "success"
	default:
		return "unknown"
	}
}

var validTransitions = map[RoomPhase][]RoomPhase{
	PhaseStart:   {PhasePlaying},
	PhasePlaying: {PhaseSuccess},
	PhaseSuccess: {PhasePlaying},
}

// CanTransition reports whether from -> to is allowed
func CanTransition(from, to RoomPhase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
