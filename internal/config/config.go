// Package config provides YAML-based game configuration loading and
// difficulty presets for the platformer.
package config

// PlatformerConfig contains all tunables of the platformer.
// Distances are world pixels, times are milliseconds unless named otherwise.
type PlatformerConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Timer   TimerConfig   `yaml:"timer"`
	Alerts  AlertConfig   `yaml:"alerts"`
	Hints   HintConfig    `yaml:"hints"`
	Audio   AudioConfig   `yaml:"audio"`
	Input   InputConfig   `yaml:"input"`
	Display DisplayConfig `yaml:"display"`
}

// PhysicsConfig defines the per-frame motion rules.
type PhysicsConfig struct {
	Gravity           int `yaml:"gravity"`            // Added to vertical velocity every frame
	MaxFallSpeed      int `yaml:"max_fall_speed"`     // Cap on downward velocity
	JumpPower         int `yaml:"jump_power"`         // Initial velocity of a jump (negative is up)
	HardJumpPower     int `yaml:"hard_jump_power"`    // Jump velocity from HardFromLevel onwards
	HardFromLevel     int `yaml:"hard_from_level"`    // First level using HardJumpPower
	MoveSpeed         int `yaml:"move_speed"`         // Horizontal pixels per frame while walking
	PlatformThreshold int `yaml:"platform_threshold"` // Tolerance band for platform landings
	WalkCooldown      int `yaml:"walk_cooldown"`      // Frames per walk animation step
	PatrolBound       int `yaml:"patrol_bound"`       // Half cycle of enemy/platform ping-pong
	GhostRise         int `yaml:"ghost_rise"`         // Pixels per frame the ghost rises after death
	GhostCeiling      int `yaml:"ghost_ceiling"`      // The ghost stops rising at this y
}

// PlayerConfig defines the player body and spawn point.
type PlayerConfig struct {
	SpawnX int `yaml:"spawn_x"`
	SpawnY int `yaml:"spawn_y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimerConfig defines the countdown and per-level time budgets.
type TimerConfig struct {
	CountdownSeconds int         `yaml:"countdown_seconds"`
	Durations        map[int]int `yaml:"durations"` // level -> seconds
	DefaultDuration  int         `yaml:"default_duration"`
	WarningSeconds   int         `yaml:"warning_seconds"` // HUD turns red below this
}

// AlertConfig defines the floating message styles.
type AlertConfig struct {
	DurationMS     int `yaml:"duration_ms"`
	CoinDurationMS int `yaml:"coin_duration_ms"`
	Shake          int `yaml:"shake"`
	CoinShake      int `yaml:"coin_shake"`
}

// HintConfig defines timings of on-screen guidance.
type HintConfig struct {
	DisplayMS    int `yaml:"display_ms"`     // How long the controls hint stays up
	IdleMS       int `yaml:"idle_ms"`        // Inactivity before the hint comes back
	ScoreFlashMS int `yaml:"score_flash_ms"` // Score highlight after a pickup
	TitleFadeMS  int `yaml:"title_fade_ms"`  // Main menu title animation
}

// AudioConfig defines procedural audio and proximity warnings.
type AudioConfig struct {
	SampleRate        int `yaml:"sample_rate"`
	PlatformProximity int `yaml:"platform_proximity"`
	EnemyProximity    int `yaml:"enemy_proximity"`
	WarningCooldownMS int `yaml:"warning_cooldown_ms"`
}

// InputConfig defines terminal input handling.
type InputConfig struct {
	// HoldTimeoutMS is how long a key counts as held after its last repeat.
	// Terminals report presses only, so releases are synthesized.
	HoldTimeoutMS int `yaml:"hold_timeout_ms"`
}

// DisplayConfig defines the pixel to terminal cell projection.
type DisplayConfig struct {
	CellWidth  int `yaml:"cell_width"`  // World pixels per terminal column
	CellHeight int `yaml:"cell_height"` // World pixels per terminal row
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string into a preset. Unknown values map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// LevelDuration returns the time budget in seconds for a level.
func (c TimerConfig) LevelDuration(level int) int {
	if d, ok := c.Durations[level]; ok {
		return d
	}
	return c.DefaultDuration
}
