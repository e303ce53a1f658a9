package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.arcade/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
// Files are decoded over the defaults, so partial files only override what they name.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("platformer.yaml"); userCfgPath != "" {
		if loaded, ok := decodeOver(userCfgPath, cfg); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := decodeOver(filepath.Join("configs", "platformer.yaml"), cfg); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeOver reads a YAML file on top of base. Unreadable or invalid files are skipped.
func decodeOver(path string, base PlatformerConfig) (PlatformerConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base.clone()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if cfg.Validate() != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate reports values the game cannot run with.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.Physics.MaxFallSpeed <= 0:
		return fmt.Errorf("config: physics.max_fall_speed must be positive, got %d", c.Physics.MaxFallSpeed)
	case c.Physics.JumpPower >= 0 || c.Physics.HardJumpPower >= 0:
		return fmt.Errorf("config: jump powers must be negative")
	case c.Physics.PatrolBound <= 0:
		return fmt.Errorf("config: physics.patrol_bound must be positive, got %d", c.Physics.PatrolBound)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: player size must be positive, got %dx%d", c.Player.Width, c.Player.Height)
	case c.Timer.DefaultDuration <= 0:
		return fmt.Errorf("config: timer.default_duration must be positive, got %d", c.Timer.DefaultDuration)
	case c.Timer.CountdownSeconds < 0:
		return fmt.Errorf("config: timer.countdown_seconds must not be negative")
	case c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0:
		return fmt.Errorf("config: display cell size must be positive")
	}
	return nil
}

// clone copies the config including its duration table.
func (c PlatformerConfig) clone() PlatformerConfig {
	out := c
	out.Timer.Durations = make(map[int]int, len(c.Timer.Durations))
	for k, v := range c.Timer.Durations {
		out.Timer.Durations[k] = v
	}
	return out
}
