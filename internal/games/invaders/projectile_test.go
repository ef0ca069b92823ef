package invaders

import "testing"

func TestEnemyShotPastBoundary(t *testing.T) {
	shots := NewProjectileSet(SideEnemy, 0.5, nil)
	shots.Spawn(10, 21.8)
	kept := shots.Spawn(12, 10)

	shots.Advance()
	if got := shots.RemovePassed(22); got != 1 {
		t.Errorf("RemovePassed() = %d, expected 1", got)
	}
	if shots.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", shots.Len())
	}
	shots.Each(func(p *Projectile) {
		if p != kept || p.Y != 10.5 {
			t.Errorf("remaining shot = %+v, expected ID %d at y 10.5", p, kept.ID)
		}
	})
}

func TestPlayerShotPastBoundary(t *testing.T) {
	shots := NewProjectileSet(SidePlayer, 1, nil)
	shots.Spawn(10, 1.5)
	shots.Spawn(10, 2)

	shots.Advance()
	// y=1 sits on the boundary and stays
	if got := shots.RemovePassed(1); got != 1 {
		t.Errorf("RemovePassed() = %d, expected 1", got)
	}
	if shots.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", shots.Len())
	}
}

func TestProjectileIDsShared(t *testing.T) {
	var next int
	player := NewProjectileSet(SidePlayer, 1, &next)
	enemy := NewProjectileSet(SideEnemy, 0.5, &next)

	a := player.Spawn(0, 0)
	b := enemy.Spawn(0, 0)
	c := player.Spawn(0, 0)

	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs %d, %d, %d should be unique", a.ID, b.ID, c.ID)
	}
	if b.Owner != SideEnemy || a.Owner != SidePlayer {
		t.Error("shots should carry their set's side")
	}
}

func TestProjectileRemovePreservesOrder(t *testing.T) {
	shots := NewProjectileSet(SidePlayer, 1, nil)
	var spawned []*Projectile
	for i := range 5 {
		spawned = append(spawned, shots.Spawn(float64(i), 10))
	}

	if !shots.Remove(spawned[1]) {
		t.Fatal("Remove() should find the shot")
	}
	if shots.Remove(spawned[1]) {
		t.Error("Remove() twice should fail")
	}
	n := shots.RemoveWhere(func(p *Projectile) bool { return p.X == 3 })
	if n != 1 {
		t.Errorf("RemoveWhere() = %d, expected 1", n)
	}

	var xs []float64
	shots.Each(func(p *Projectile) { xs = append(xs, p.X) })
	expected := []float64{0, 2, 4}
	if len(xs) != len(expected) {
		t.Fatalf("remaining = %v, expected %v", xs, expected)
	}
	for i := range xs {
		if xs[i] != expected[i] {
			t.Errorf("remaining = %v, expected %v", xs, expected)
			break
		}
	}

	if got := len(shots.drainRemoved()); got != 2 {
		t.Errorf("drainRemoved() returned %d shots, expected 2", got)
	}
	if got := len(shots.drainRemoved()); got != 0 {
		t.Errorf("second drainRemoved() returned %d shots, expected 0", got)
	}
}

func TestProjectileClear(t *testing.T) {
	shots := NewProjectileSet(SideEnemy, 0.5, nil)
	hit := shots.Spawn(1, 1)
	shots.Spawn(2, 2)
	shots.Remove(hit)

	shots.Clear()
	if shots.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", shots.Len())
	}
	if got := len(shots.drainRemoved()); got != 1 {
		t.Errorf("drainRemoved() returned %d shots, expected only the hit one", got)
	}
}
