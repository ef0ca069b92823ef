package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/assets"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// ShipLayout configures the player ship.
type ShipLayout struct {
	ScreenW  int
	Y        float64 // Center row of the ship
	Width    float64
	Step     float64 // Distance per move at scale 1
	Lives    int     // Lives restored by a full reset
	Cooldown time.Duration
}

// Ship is the player's ship. The fire cooldown state lives with the ship
// from construction, so firing never sees an uninitialized timer.
type Ship struct {
	X, Y float64

	layout ShipLayout
	sprite assets.Handle
	lives  int

	cooldownActive bool
	lastFire       time.Time
	now            func() time.Time
}

// NewShip creates a centered ship with full lives. A nil clock uses time.Now.
func NewShip(layout ShipLayout, sprite assets.Handle, now func() time.Time) *Ship {
	if now == nil {
		now = time.Now
	}
	s := &Ship{layout: layout, sprite: sprite, now: now}
	s.Reset(true)
	return s
}

// Reset recenters the ship; a full reset also restores the lives.
func (s *Ship) Reset(full bool) {
	s.X = float64(s.layout.ScreenW) / 2
	s.Y = s.layout.Y
	if full {
		s.lives = s.layout.Lives
		s.cooldownActive = false
		s.lastFire = time.Time{}
	}
}

// MoveLeft moves the ship left by Step*scale. The move is rejected when the
// hull would cross the left screen edge.
func (s *Ship) MoveLeft(scale float64) bool {
	dx := s.layout.Step * scale
	if s.X-s.layout.Width/2-dx < 0 {
		return false
	}
	s.X -= dx
	return true
}

// MoveRight moves the ship right by Step*scale. The move is rejected when
// the hull would cross the right screen edge.
func (s *Ship) MoveRight(scale float64) bool {
	dx := s.layout.Step * scale
	if s.X+s.layout.Width/2+dx > float64(s.layout.ScreenW) {
		return false
	}
	s.X += dx
	return true
}

// Fire spawns a shot at the ship's top-center. It is rejected while a shot
// is still in flight and the previous one was fired within the cooldown.
func (s *Ship) Fire(shots *ProjectileSet) (*Projectile, bool) {
	now := s.now()
	if s.cooldownActive && shots.Len() > 0 && now.Sub(s.lastFire) < s.layout.Cooldown {
		return nil, false
	}
	p := shots.Spawn(s.X, s.Y-1)
	s.cooldownActive = true
	s.lastFire = now
	return p, true
}

// ReceiveHit takes a life. It reports false, changing nothing, when no
// lives were left; otherwise the ship loses a life and recenters.
func (s *Ship) ReceiveHit() bool {
	if s.lives == 0 {
		return false
	}
	s.lives--
	s.Reset(false)
	return true
}

// Lives returns the remaining spare lives.
func (s *Ship) Lives() int {
	return s.lives
}

// Box returns the ship hull.
func (s *Ship) Box() core.Box {
	return core.NewBox(s.X, s.Y, s.layout.Width, 1)
}

// Top returns the y of the hull's top edge.
func (s *Ship) Top() float64 {
	return s.Y - 0.5
}

// Sprite returns the ship's sprite handle.
func (s *Ship) Sprite() assets.Handle {
	return s.sprite
}
