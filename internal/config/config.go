// Package config provides YAML-based game configuration loading and
// level pacing for the invaders game.
package config

// InvadersConfig contains all configuration for the Space Invaders game.
type InvadersConfig struct {
	Formation FormationConfig `yaml:"formation"`
	Ship      ShipConfig      `yaml:"ship"`
	Blocks    BlocksConfig    `yaml:"blocks"`
	Pacing    PacingConfig    `yaml:"pacing"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Banner    BannerConfig    `yaml:"banner"`
	Colors    ColorsConfig    `yaml:"colors"`
}

// FormationConfig defines the enemy grid layout and movement.
type FormationConfig struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	RowTypes   []int   `yaml:"row_types"` // Enemy type per row, top to bottom
	SpacingX   float64 `yaml:"spacing_x"` // 0 = derived from screen width
	SpacingY   float64 `yaml:"spacing_y"` // 0 = derived from screen height
	TopOffset  float64 `yaml:"top_offset"`
	MoveStep   float64 `yaml:"move_step"`
	DropStep   float64 `yaml:"drop_step"`
	ShotSpeed  float64 `yaml:"shot_speed"`
	EnemyWidth float64 `yaml:"enemy_width"`
}

// ShipConfig defines player ship parameters.
type ShipConfig struct {
	Lives      int     `yaml:"lives"`
	Width      float64 `yaml:"width"`
	Step       float64 `yaml:"step"`
	FastScale  float64 `yaml:"fast_scale"`
	CooldownMS int     `yaml:"cooldown_ms"`
	ShotSpeed  float64 `yaml:"shot_speed"`
}

// BlocksConfig defines the destructible shield field.
type BlocksConfig struct {
	Count int `yaml:"count"`
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Gap   int `yaml:"gap"` // Rows between the bottom of the shields and the ship
}

// PacingConfig defines tick timing and how it tightens per level.
type PacingConfig struct {
	Progression     bool    `yaml:"progression"` // false keeps level 1 pacing forever
	MoveInterval    int     `yaml:"move_interval"`
	MinMoveInterval int     `yaml:"min_move_interval"`
	ShootBase       int     `yaml:"shoot_base"`
	ShootStep       int     `yaml:"shoot_step"`
	MinShootBase    int     `yaml:"min_shoot_base"`
	TickDelayMS     int     `yaml:"tick_delay_ms"`
	MinTickDelayMS  int     `yaml:"min_tick_delay_ms"`
	TickDelayFactor float64 `yaml:"tick_delay_factor"`
}

// ScoringConfig defines points awarded.
type ScoringConfig struct {
	PointsPerEnemy int `yaml:"points_per_enemy"`
}

// BannerConfig defines the loading screen and transition banners.
type BannerConfig struct {
	PauseMS       int `yaml:"pause_ms"`
	LoadingSteps  int `yaml:"loading_steps"`
	LoadingStepMS int `yaml:"loading_step_ms"`
}

// ColorsConfig names the palette color of each sprite group.
type ColorsConfig struct {
	Ship       string    `yaml:"ship"`
	Enemies    [3]string `yaml:"enemies"`
	PlayerShot string    `yaml:"player_shot"`
	EnemyShot  string    `yaml:"enemy_shot"`
	Block      string    `yaml:"block"`
	Life       string    `yaml:"life"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown names report false.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return DifficultyNormal, false
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
