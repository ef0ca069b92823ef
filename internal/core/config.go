package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	TickRate  int   // Fallback ticks per second when a game does not pace itself
	Seed      int64 // RNG seed for deterministic gameplay
	HighScore int   // Best score loaded from storage, shown in the HUD
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current game state.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score known to the game
	Level     int  // Current level, 1-based
	GameOver  bool // Whether the round has ended
	Paused    bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// NextTick is how long the platform waits before the next Step.
	// Zero means the platform default derived from TickRate.
	NextTick time.Duration
}
