package invaders

// Side identifies who fired a projectile.
type Side uint8

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "enemy"
}

// Projectile is a shot in flight.
type Projectile struct {
	ID    int
	X, Y  float64
	Owner Side
}

// ProjectileSet is an ordered collection of shots fired by one side.
// Player shots travel toward y=0, enemy shots toward the bottom.
type ProjectileSet struct {
	side   Side
	speed  float64
	nextID *int
	items  []*Projectile

	removed []*Projectile // since last drain, for Changes
}

// NewProjectileSet creates an empty set. IDs are drawn from nextID, which
// may be shared between sets so IDs stay unique across both sides.
func NewProjectileSet(side Side, speed float64, nextID *int) *ProjectileSet {
	if nextID == nil {
		nextID = new(int)
	}
	return &ProjectileSet{side: side, speed: speed, nextID: nextID}
}

// Side returns the owner of every shot in the set.
func (s *ProjectileSet) Side() Side {
	return s.side
}

// Spawn appends a new shot at (x, y).
func (s *ProjectileSet) Spawn(x, y float64) *Projectile {
	*s.nextID++
	p := &Projectile{ID: *s.nextID, X: x, Y: y, Owner: s.side}
	s.items = append(s.items, p)
	return p
}

// Advance moves every shot one tick along its direction.
func (s *ProjectileSet) Advance() {
	dy := s.speed
	if s.side == SidePlayer {
		dy = -dy
	}
	for _, p := range s.items {
		p.Y += dy
	}
}

// RemovePassed removes shots beyond a boundary line: player shots above it
// (y < boundary), enemy shots below it (y > boundary). Returns how many were
// removed.
func (s *ProjectileSet) RemovePassed(boundary float64) int {
	n := 0
	kept := s.items[:0]
	for _, p := range s.items {
		passed := p.Y > boundary
		if s.side == SidePlayer {
			passed = p.Y < boundary
		}
		if passed {
			s.removed = append(s.removed, p)
			n++
			continue
		}
		kept = append(kept, p)
	}
	clear(s.items[len(kept):])
	s.items = kept
	return n
}

// Remove deletes one shot, preserving the order of the rest.
func (s *ProjectileSet) Remove(p *Projectile) bool {
	for i, q := range s.items {
		if q == p {
			s.removed = append(s.removed, p)
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveWhere deletes every shot for which hit reports true, in order.
// hit may mutate other game state; it sees each shot exactly once.
func (s *ProjectileSet) RemoveWhere(hit func(*Projectile) bool) int {
	n := 0
	kept := s.items[:0]
	for _, p := range s.items {
		if hit(p) {
			s.removed = append(s.removed, p)
			n++
			continue
		}
		kept = append(kept, p)
	}
	clear(s.items[len(kept):])
	s.items = kept
	return n
}

// Clear drops every shot in flight. Unlike the hit and boundary removals,
// cleared shots are not queued for drainRemoved.
func (s *ProjectileSet) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Len returns the number of shots in flight.
func (s *ProjectileSet) Len() int {
	return len(s.items)
}

// Each calls fn for every shot in spawn order.
func (s *ProjectileSet) Each(fn func(*Projectile)) {
	for _, p := range s.items {
		fn(p)
	}
}

func (s *ProjectileSet) drainRemoved() []*Projectile {
	out := s.removed
	s.removed = nil
	return out
}
