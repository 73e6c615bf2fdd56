package reminder

import "errors"

var ErrParseState = errors.New("invalid state")

// State is the derived scheduling state of an event. Only Dismissed is
// persisted; the other states are computed from the event and the active
// queue on every observation.
type State struct {
	v string
}

func (s State) String() string {
	return s.v
}

func ParseState(value string) (State, error) {
	switch value {
	case "pending":
		return StatePending, nil
	case "due_unseen":
		return StateDueUnseen, nil
	case "due_active":
		return StateDueActive, nil
	case "dismissed":
		return StateDismissed, nil
	default:
		return StateUnknown, ErrParseState
	}
}

var (
	StateUnknown   = State{}
	StatePending   = State{v: "pending"}
	StateDueUnseen = State{v: "due_unseen"}
	StateDueActive = State{v: "due_active"}
	StateDismissed = State{v: "dismissed"}
)
