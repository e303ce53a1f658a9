package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left arrow, A - walk left
	ActionRight           // Right arrow, D - walk right
	ActionUp              // Up arrow, W - menu navigation
	ActionDown            // Down arrow, S - menu navigation
	ActionJump            // Space - jump
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // Escape, B - go back
	ActionPause           // P - pause/unpause game
	ActionSettings        // O - open settings overlay
	ActionRestart         // R - restart level after death
	ActionDigit           // 1-9 - level shortcut, payload in Event.Digit
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionSettings:
		return "Settings"
	case ActionRestart:
		return "Restart"
	case ActionDigit:
		return "Digit"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// EventKind distinguishes the discrete input transitions the platform reports.
type EventKind int

const (
	EventPress          EventKind = iota // Action went down
	EventRelease                         // Action went up
	EventPointerPress                    // Primary pointer button went down at (X, Y)
	EventPointerRelease                  // Primary pointer button went up at (X, Y)
)

// Event is a single input transition. Consumers react to transitions rather
// than re-deriving edges from polled state.
type Event struct {
	Kind   EventKind
	Action Action
	Digit  int // Valid for ActionDigit
	X, Y   int // Screen cell, valid for pointer events
}

// InputFrame represents the input for a single simulation tick: the ordered
// transitions that happened since the previous tick plus the set of actions
// currently held down.
type InputFrame struct {
	Events []Event

	// Held maps actions to whether they are down at the end of this frame.
	Held map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held: make(map[Action]bool),
	}
}

// Press records a press transition and marks the action held.
func (f *InputFrame) Press(a Action) {
	f.Events = append(f.Events, Event{Kind: EventPress, Action: a})
	f.setHeld(a, true)
}

// Release records a release transition and clears the held flag.
func (f *InputFrame) Release(a Action) {
	f.Events = append(f.Events, Event{Kind: EventRelease, Action: a})
	f.setHeld(a, false)
}

// PressDigit records a digit key press (level shortcuts).
func (f *InputFrame) PressDigit(d int) {
	f.Events = append(f.Events, Event{Kind: EventPress, Action: ActionDigit, Digit: d})
}

// PointerPress records a primary button press at screen cell (x, y).
func (f *InputFrame) PointerPress(x, y int) {
	f.Events = append(f.Events, Event{Kind: EventPointerPress, X: x, Y: y})
}

// PointerRelease records a primary button release at screen cell (x, y).
func (f *InputFrame) PointerRelease(x, y int) {
	f.Events = append(f.Events, Event{Kind: EventPointerRelease, X: x, Y: y})
}

func (f *InputFrame) setHeld(a Action, down bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if down {
		f.Held[a] = true
	} else {
		delete(f.Held, a)
	}
}

// Has returns true if the action was pressed during this frame.
func (f InputFrame) Has(a Action) bool {
	for _, ev := range f.Events {
		if ev.Kind == EventPress && ev.Action == a {
			return true
		}
	}
	return false
}

// Released returns true if the action was released during this frame.
func (f InputFrame) Released(a Action) bool {
	for _, ev := range f.Events {
		if ev.Kind == EventRelease && ev.Action == a {
			return true
		}
	}
	return false
}

// IsHeld returns true if the action is down at the end of this frame.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Clear drops this frame's transitions. Held actions carry over to the next
// frame until a release is recorded.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	clone.Events = append([]Event(nil), f.Events...)
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
