package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hardcoded platformer configuration.
// It matches defaults/platformer.yaml and is used when the embed fails to parse.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:           1,
			MaxFallSpeed:      10,
			JumpPower:         -15,
			HardJumpPower:     -14,
			HardFromLevel:     5,
			MoveSpeed:         5,
			PlatformThreshold: 20,
			WalkCooldown:      5,
			PatrolBound:       50,
			GhostRise:         5,
			GhostCeiling:      200,
		},
		Player: PlayerConfig{
			SpawnX: 100,
			SpawnY: 726,
			Width:  40,
			Height: 80,
		},
		Timer: TimerConfig{
			CountdownSeconds: 3,
			Durations: map[int]int{
				1: 15, 2: 25, 3: 35, 4: 45,
				5: 55, 6: 65, 7: 75, 8: 85,
			},
			DefaultDuration: 60,
			WarningSeconds:  10,
		},
		Alerts: AlertConfig{
			DurationMS:     1500,
			CoinDurationMS: 3000,
			Shake:          3,
			CoinShake:      8,
		},
		Hints: HintConfig{
			DisplayMS:    5000,
			IdleMS:       10000,
			ScoreFlashMS: 1000,
			TitleFadeMS:  2000,
		},
		Audio: AudioConfig{
			SampleRate:        44100,
			PlatformProximity: 70,
			EnemyProximity:    100,
			WarningCooldownMS: 1000,
		},
		Input: InputConfig{
			HoldTimeoutMS: 140,
		},
		Display: DisplayConfig{
			CellWidth:  20,
			CellHeight: 40,
		},
	}
}
