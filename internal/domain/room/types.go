package room

// State is the operational state of a room. A room is always in exactly
// one state; transitions happen on reservation approval/cancellation and
// through administrative override.
type State string

const (
	StateAvailable   State = "available"
	StateOccupied    State = "occupied"
	StateMaintenance State = "maintenance"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateAvailable, StateOccupied, StateMaintenance:
		return true
	default:
		return false
	}
}

func NewState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", ErrInvalidState
	}
	return state, nil
}
