package launcher

// State is a dispatcher state.
type State int

const (
	StateMenu        State = iota // Rendering the menu
	StateListening                // Waiting for a trigger key
	StateEditing                  // Reading text for a placeholder
	StateDispatching              // Running a resolved command
	StateTerminated               // Session over
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateListening:
		return "listening"
	case StateEditing:
		return "editing"
	case StateDispatching:
		return "dispatching"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
