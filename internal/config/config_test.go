package config

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parseInvaders(GetDefaultYAML("invaders"))
	if err != nil {
		t.Fatalf("embedded default should parse: %v", err)
	}

	def := DefaultInvadersConfig()
	if cfg.Formation.Rows != def.Formation.Rows || cfg.Formation.Cols != def.Formation.Cols {
		t.Errorf("formation = %dx%d, expected %dx%d", cfg.Formation.Rows, cfg.Formation.Cols, def.Formation.Rows, def.Formation.Cols)
	}
	if cfg.Ship.Lives != def.Ship.Lives {
		t.Errorf("Ship.Lives = %d, expected %d", cfg.Ship.Lives, def.Ship.Lives)
	}
	if cfg.Ship.CooldownMS != 350 {
		t.Errorf("Ship.CooldownMS = %d, expected 350", cfg.Ship.CooldownMS)
	}
	if cfg.Colors.Enemies != def.Colors.Enemies {
		t.Errorf("Colors.Enemies = %v, expected %v", cfg.Colors.Enemies, def.Colors.Enemies)
	}
}

func TestGetDefaultYAMLUnknownGame(t *testing.T) {
	if GetDefaultYAML("flappy") != nil {
		t.Error("unknown game should have no embedded config")
	}
}

func TestLoadInvadersCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invaders.yaml")
	data := []byte("ship:\n  lives: 7\nblocks:\n  count: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadInvaders(path)
	if err != nil {
		t.Fatalf("LoadInvaders() error: %v", err)
	}
	if cfg.Ship.Lives != 7 {
		t.Errorf("Ship.Lives = %d, expected 7", cfg.Ship.Lives)
	}
	if cfg.Blocks.Count != 3 {
		t.Errorf("Blocks.Count = %d, expected 3", cfg.Blocks.Count)
	}
	// Keys absent from the file keep their defaults
	if cfg.Formation.Cols != 11 {
		t.Errorf("Formation.Cols = %d, expected default 11", cfg.Formation.Cols)
	}
}

func TestLoadInvadersErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadInvaders(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("formation:\n  rows: 3\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	_, err := LoadInvaders(bad)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("mismatched row_types should be ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvadersConfig)
		valid  bool
	}{
		{"defaults", func(*InvadersConfig) {}, true},
		{"zero rows", func(c *InvadersConfig) { c.Formation.Rows = 0; c.Formation.RowTypes = nil }, false},
		{"bad enemy type", func(c *InvadersConfig) { c.Formation.RowTypes[0] = 5 }, false},
		{"negative lives", func(c *InvadersConfig) { c.Ship.Lives = -1 }, false},
		{"zero shoot base", func(c *InvadersConfig) { c.Pacing.ShootBase = 0 }, false},
		{"no shields", func(c *InvadersConfig) { c.Blocks.Count = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.valid {
				t.Errorf("Validate() = %v, expected valid=%v", err, tc.valid)
			}
		})
	}
}

func TestApplyInvadersPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		lives       int
		progression bool
	}{
		{DifficultyEasy, 4, true},
		{DifficultyNormal, 2, true},
		{DifficultyHard, 1, true},
		{DifficultyFixed, 2, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			ApplyInvadersPreset(&cfg, tc.preset)
			if cfg.Ship.Lives != tc.lives {
				t.Errorf("Ship.Lives = %d, expected %d", cfg.Ship.Lives, tc.lives)
			}
			if cfg.Pacing.Progression != tc.progression {
				t.Errorf("Pacing.Progression = %v, expected %v", cfg.Pacing.Progression, tc.progression)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = (%v, %v)", p, ok)
	}
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = (%v, %v), expected normal", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("unknown preset should not parse")
	}
}

func TestPacingPerLevel(t *testing.T) {
	p := NewPacing(DefaultInvadersConfig().Pacing)

	tests := []struct {
		level        int
		moveInterval int
		shootBase    int
		tickDelay    time.Duration
	}{
		{1, 15, 20, 33 * time.Millisecond},
		{2, 14, 18, time.Duration(33 * 0.8 * float64(time.Millisecond))},
		{9, 7, 4, 10 * time.Millisecond},
		{30, 1, 4, 10 * time.Millisecond},
	}

	for _, tc := range tests {
		if got := p.MoveInterval(tc.level); got != tc.moveInterval {
			t.Errorf("MoveInterval(%d) = %d, expected %d", tc.level, got, tc.moveInterval)
		}
		if got := p.ShootBase(tc.level); got != tc.shootBase {
			t.Errorf("ShootBase(%d) = %d, expected %d", tc.level, got, tc.shootBase)
		}
		if got := p.TickDelay(tc.level); absDuration(got-tc.tickDelay) > time.Microsecond {
			t.Errorf("TickDelay(%d) = %v, expected %v", tc.level, got, tc.tickDelay)
		}
	}
}

func TestPacingFixed(t *testing.T) {
	cfg := DefaultInvadersConfig().Pacing
	cfg.Progression = false
	p := NewPacing(cfg)

	if p.IsEnabled() {
		t.Error("fixed pacing should report disabled")
	}
	if p.MoveInterval(5) != p.MoveInterval(1) || p.TickDelay(5) != p.TickDelay(1) {
		t.Error("fixed pacing should not change with level")
	}
}

func TestPacingShootIntervalRange(t *testing.T) {
	p := NewPacing(DefaultInvadersConfig().Pacing)
	rng := rand.New(rand.NewSource(42))

	for range 200 {
		got := p.ShootInterval(20, rng)
		if got < 20 || got > 40 {
			t.Fatalf("ShootInterval(20) = %d, expected within [20, 40]", got)
		}
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
