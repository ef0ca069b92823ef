package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration cannot drive a round.
var ErrInvalidConfig = errors.New("config: invalid invaders config")

// LoadInvaders loads Space Invaders configuration.
// Search order: customPath -> ~/.arcade/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseInvaders(data)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("invaders.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseInvaders(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "invaders.yaml")); err == nil {
		if cfg, err := parseInvaders(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseInvaders(defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseInvaders(data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot produce a playable round.
func (c InvadersConfig) Validate() error {
	switch {
	case c.Formation.Rows <= 0 || c.Formation.Cols <= 0:
		return fmt.Errorf("%w: formation must have at least one row and column", ErrInvalidConfig)
	case len(c.Formation.RowTypes) != c.Formation.Rows:
		return fmt.Errorf("%w: row_types has %d entries for %d rows", ErrInvalidConfig, len(c.Formation.RowTypes), c.Formation.Rows)
	case c.Formation.MoveStep <= 0 || c.Formation.DropStep <= 0 || c.Formation.ShotSpeed <= 0:
		return fmt.Errorf("%w: formation steps and shot speed must be positive", ErrInvalidConfig)
	case c.Ship.Lives < 0:
		return fmt.Errorf("%w: ship lives cannot be negative", ErrInvalidConfig)
	case c.Ship.Width <= 0 || c.Ship.Step <= 0 || c.Ship.ShotSpeed <= 0:
		return fmt.Errorf("%w: ship width, step and shot speed must be positive", ErrInvalidConfig)
	case c.Blocks.Count < 0 || c.Blocks.Rows <= 0 || c.Blocks.Cols <= 0:
		return fmt.Errorf("%w: block field dimensions must be positive", ErrInvalidConfig)
	case c.Pacing.MoveInterval <= 0 || c.Pacing.ShootBase <= 0 || c.Pacing.TickDelayMS <= 0:
		return fmt.Errorf("%w: pacing intervals must be positive", ErrInvalidConfig)
	}
	for _, t := range c.Formation.RowTypes {
		if t < 0 || t > 2 {
			return fmt.Errorf("%w: enemy type %d out of range 0..2", ErrInvalidConfig, t)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	cfg.Pacing.Progression = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Ship.Lives = 4
		cfg.Pacing.MoveInterval = 20
		cfg.Pacing.ShootBase = 30
	case DifficultyHard:
		cfg.Ship.Lives = 1
		cfg.Pacing.MoveInterval = 10
		cfg.Pacing.ShootBase = 12
		cfg.Pacing.TickDelayMS = 25
	}
}
