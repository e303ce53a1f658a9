package platformer

// State is the active screen of a session. Exactly one is active at a time.
type State int

const (
	StateMainMenu State = iota
	StateNameInput
	StateLevelSelect
	StateSettings
	StatePlaying
	StatePaused
	StateDead
	StateWon
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main-menu"
	case StateNameInput:
		return "name-input"
	case StateLevelSelect:
		return "level-select"
	case StateSettings:
		return "settings"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateDead:
		return "dead"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Overlay reports whether the state freezes the simulation underneath.
func (s State) Overlay() bool {
	return s == StateSettings || s == StatePaused
}
