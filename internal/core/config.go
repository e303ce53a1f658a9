package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for alert shake jitter
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes the session for the platform layer.
type GameState struct {
	Score    int    // Current score
	Level    int    // Current level index (0 outside a level)
	Screen   string // Name of the active session state
	GameOver bool   // Whether the player is dead or has won
	Paused   bool   // Whether the simulation is frozen by an overlay
	Quit     bool   // Whether the player asked to leave the game
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
}
