package config

import "math"

// TimeScaleForPreset returns the multiplier applied to level time budgets.
func TimeScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.75
	default:
		return 1.0
	}
}

// ApplyPlatformerPreset scales the level time budgets for a difficulty preset.
// Durations never drop below one second.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	scale := TimeScaleForPreset(preset)
	if scale == 1.0 {
		return
	}

	scaled := make(map[int]int, len(cfg.Timer.Durations))
	for level, secs := range cfg.Timer.Durations {
		scaled[level] = scaleSeconds(secs, scale)
	}
	cfg.Timer.Durations = scaled
	cfg.Timer.DefaultDuration = scaleSeconds(cfg.Timer.DefaultDuration, scale)
}

func scaleSeconds(secs int, scale float64) int {
	return int(math.Max(1, math.Round(float64(secs)*scale)))
}
