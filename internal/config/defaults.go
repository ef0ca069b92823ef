package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default Space Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Formation: FormationConfig{
			Rows:       5,
			Cols:       11,
			RowTypes:   []int{0, 1, 1, 2, 2},
			TopOffset:  3,
			MoveStep:   1,
			DropStep:   1,
			ShotSpeed:  0.5,
			EnemyWidth: 3,
		},
		Ship: ShipConfig{
			Lives:      2,
			Width:      5,
			Step:       1,
			FastScale:  2.3,
			CooldownMS: 350,
			ShotSpeed:  1,
		},
		Blocks: BlocksConfig{
			Count: 4,
			Rows:  4,
			Cols:  8,
			Gap:   3,
		},
		Pacing: PacingConfig{
			Progression:     true,
			MoveInterval:    15,
			MinMoveInterval: 1,
			ShootBase:       20,
			ShootStep:       2,
			MinShootBase:    4,
			TickDelayMS:     33,
			MinTickDelayMS:  10,
			TickDelayFactor: 0.8,
		},
		Scoring: ScoringConfig{
			PointsPerEnemy: 1,
		},
		Banner: BannerConfig{
			PauseMS:       5000,
			LoadingSteps:  15,
			LoadingStepMS: 200,
		},
		Colors: ColorsConfig{
			Ship:       "bright_green",
			Enemies:    [3]string{"bright_magenta", "bright_cyan", "bright_yellow"},
			PlayerShot: "bright_white",
			EnemyShot:  "bright_red",
			Block:      "green",
			Life:       "bright_green",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "invaders":
		return defaultInvadersYAML
	default:
		return nil
	}
}
