package invaders

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testShip(lives int, clock *fakeClock) *Ship {
	layout := ShipLayout{
		ScreenW:  20,
		Y:        21,
		Width:    5,
		Step:     1,
		Lives:    lives,
		Cooldown: 350 * time.Millisecond,
	}
	return NewShip(layout, 1, clock.Now)
}

func TestShipStartsCentered(t *testing.T) {
	s := testShip(2, &fakeClock{})

	if s.X != 10 || s.Y != 21 {
		t.Errorf("ship at (%v, %v), expected (10, 21)", s.X, s.Y)
	}
	if s.Lives() != 2 {
		t.Errorf("Lives() = %d, expected 2", s.Lives())
	}
	if s.Top() != 20.5 {
		t.Errorf("Top() = %v, expected 20.5", s.Top())
	}
}

func TestShipMoveLeftFixedPoint(t *testing.T) {
	s := testShip(2, &fakeClock{})

	for range 20 {
		s.MoveLeft(1)
	}
	// x=3 puts the hull edge at 0.5; one more step would cross 0
	if s.X != 3 {
		t.Fatalf("X = %v, expected 3", s.X)
	}
	if s.MoveLeft(1) {
		t.Error("MoveLeft() at the edge should be rejected")
	}
	if s.X != 3 {
		t.Errorf("X = %v after rejected move, expected 3", s.X)
	}
}

func TestShipMoveRightEdge(t *testing.T) {
	s := testShip(2, &fakeClock{})

	for range 20 {
		s.MoveRight(1)
	}
	if s.X != 17 {
		t.Fatalf("X = %v, expected 17", s.X)
	}
	if s.MoveRight(2.3) {
		t.Error("fast move past the edge should be rejected")
	}
}

func TestShipFastMove(t *testing.T) {
	s := testShip(2, &fakeClock{})

	if !s.MoveLeft(2.3) {
		t.Fatal("MoveLeft(2.3) should succeed from the center")
	}
	if s.X < 7.69 || s.X > 7.71 {
		t.Errorf("X = %v, expected 7.7", s.X)
	}
}

func TestShipReceiveHit(t *testing.T) {
	s := testShip(2, &fakeClock{})
	s.MoveLeft(1)

	if !s.ReceiveHit() {
		t.Fatal("ReceiveHit() with lives left should succeed")
	}
	if s.Lives() != 1 {
		t.Errorf("Lives() = %d, expected 1", s.Lives())
	}
	if s.X != 10 {
		t.Errorf("X = %v, expected ship recentered at 10", s.X)
	}
}

func TestShipReceiveHitWithoutLives(t *testing.T) {
	s := testShip(0, &fakeClock{})
	s.MoveLeft(1)

	if s.ReceiveHit() {
		t.Error("ReceiveHit() with no lives should report false")
	}
	if s.Lives() != 0 {
		t.Errorf("Lives() = %d, expected 0", s.Lives())
	}
	if s.X != 9 {
		t.Errorf("X = %v, expected 9 (no mutation)", s.X)
	}
}

func TestShipFireCooldown(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := testShip(2, clock)
	shots := NewProjectileSet(SidePlayer, 1, nil)

	p, ok := s.Fire(shots)
	if !ok {
		t.Fatal("first Fire() should succeed")
	}
	if p.X != 10 || p.Y != 20 {
		t.Errorf("shot at (%v, %v), expected (10, 20)", p.X, p.Y)
	}

	clock.Advance(100 * time.Millisecond)
	if _, ok := s.Fire(shots); ok {
		t.Error("Fire() within the cooldown with a shot in flight should be rejected")
	}

	clock.Advance(300 * time.Millisecond)
	if _, ok := s.Fire(shots); !ok {
		t.Error("Fire() after the cooldown should succeed")
	}

	shots.Clear()
	if _, ok := s.Fire(shots); !ok {
		t.Error("Fire() with no shot in flight should succeed")
	}
	if shots.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", shots.Len())
	}
}

func TestShipFullReset(t *testing.T) {
	s := testShip(2, &fakeClock{})
	s.ReceiveHit()
	s.MoveRight(1)

	s.Reset(false)
	if s.Lives() != 1 || s.X != 10 {
		t.Errorf("partial reset: lives %d at %v, expected 1 at 10", s.Lives(), s.X)
	}
	s.Reset(true)
	if s.Lives() != 2 {
		t.Errorf("full reset: Lives() = %d, expected 2", s.Lives())
	}
}
