package config

import "time"

// Intner is the slice of *rand.Rand that pacing needs.
type Intner interface {
	Intn(n int) int
}

// Pacing calculates per-level timing parameters for a round.
// Level numbers are 1-based; level 1 uses the configured base values.
type Pacing struct {
	cfg PacingConfig
}

// NewPacing creates a pacing calculator.
func NewPacing(cfg PacingConfig) *Pacing {
	if cfg.MinMoveInterval < 1 {
		cfg.MinMoveInterval = 1
	}
	if cfg.MinShootBase < 1 {
		cfg.MinShootBase = 1
	}
	if cfg.MinTickDelayMS < 1 {
		cfg.MinTickDelayMS = 1
	}
	if cfg.TickDelayFactor <= 0 || cfg.TickDelayFactor > 1 {
		cfg.TickDelayFactor = 1
	}
	return &Pacing{cfg: cfg}
}

// IsEnabled returns whether pacing tightens as levels advance.
func (p *Pacing) IsEnabled() bool {
	return p.cfg.Progression
}

func (p *Pacing) steps(level int) int {
	if !p.cfg.Progression || level <= 1 {
		return 0
	}
	return level - 1
}

// MoveInterval returns the number of ticks between formation moves at the
// start of a level. Each level removes one tick.
func (p *Pacing) MoveInterval(level int) int {
	return max(p.cfg.MinMoveInterval, p.cfg.MoveInterval-p.steps(level))
}

// MinMoveInterval returns the fastest allowed move interval.
func (p *Pacing) MinMoveInterval() int {
	return p.cfg.MinMoveInterval
}

// ShootBase returns the lower bound of the enemy shoot interval for a level.
func (p *Pacing) ShootBase(level int) int {
	return max(p.cfg.MinShootBase, p.cfg.ShootBase-p.cfg.ShootStep*p.steps(level))
}

// ShootInterval draws an enemy shoot interval from [base, 2*base].
func (p *Pacing) ShootInterval(base int, rng Intner) int {
	if base < 1 {
		base = 1
	}
	return base + rng.Intn(base+1)
}

// TickDelay returns the delay between ticks for a level.
func (p *Pacing) TickDelay(level int) time.Duration {
	delay := float64(p.cfg.TickDelayMS)
	for range p.steps(level) {
		delay *= p.cfg.TickDelayFactor
	}
	floor := float64(p.cfg.MinTickDelayMS)
	if delay < floor {
		delay = floor
	}
	return time.Duration(delay * float64(time.Millisecond))
}
