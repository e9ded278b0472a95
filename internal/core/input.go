package core

// Action is a semantic input, abstracted from physical keys or gestures.
// The engine only ever sees actions; the platform owns the key bindings.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Steer up
	ActionDown           // Steer down
	ActionLeft           // Steer left
	ActionRight          // Steer right
	ActionPause          // Toggle pause
	ActionRestart        // Restart with the same difficulty
	ActionMenu           // Leave the game for the menu
	ActionConfirm        // Confirm a menu selection
	ActionQuit           // Exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsSteering reports whether the action is one of the four directions.
func (a Action) IsSteering() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame collects the actions delivered between two ticks.
// Arrival order is preserved: when several direction changes arrive in one
// frame, the engine applies them in order and the last legal one wins.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to the frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the actions in arrival order.
func (f InputFrame) Actions() []Action {
	out := make([]Action, len(f.actions))
	copy(out, f.actions)
	return out
}

// Len returns the number of actions in the frame.
func (f InputFrame) Len() int {
	return len(f.actions)
}
