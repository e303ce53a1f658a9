// Package world holds the platformer simulation: static terrain built from a
// tile grid, the moving entities and the player's collision resolver.
// All geometry is in integer world pixels.
package world

// Rules are the physics constants of a run.
type Rules struct {
	Gravity           int
	MaxFallSpeed      int
	JumpPower         int
	HardJumpPower     int
	HardFromLevel     int
	MoveSpeed         int
	PlatformThreshold int
	WalkCooldown      int
	WalkFrames        int
	PatrolBound       int
	GhostRise         int
	GhostCeiling      int

	SpawnX, SpawnY   int
	PlayerW, PlayerH int
}

// DefaultRules returns the stock physics.
func DefaultRules() Rules {
	return Rules{
		Gravity:           1,
		MaxFallSpeed:      10,
		JumpPower:         -15,
		HardJumpPower:     -14,
		HardFromLevel:     5,
		MoveSpeed:         5,
		PlatformThreshold: 20,
		WalkCooldown:      5,
		WalkFrames:        4,
		PatrolBound:       50,
		GhostRise:         5,
		GhostCeiling:      200,
		SpawnX:            100,
		SpawnY:            726,
		PlayerW:           40,
		PlayerH:           80,
	}
}

// JumpPowerFor returns the initial jump velocity on a level.
func (r Rules) JumpPowerFor(level int) int {
	if level >= r.HardFromLevel {
		return r.HardJumpPower
	}
	return r.JumpPower
}
