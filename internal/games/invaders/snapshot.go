package invaders

// Snapshot contains the game state that determines future ticks.
// Uses primitive types only for stable serialization. Positions are stored
// in tenths of a cell.
type Snapshot struct {
	Tick      uint64
	Phase     int
	Level     int
	Score     int
	HighScore int
	Lives     int
	ShipX     int
	Paused    bool

	MoveInterval  int
	MoveCounter   int
	ShootInterval int
	ShootCounter  int

	// Formation state
	Remaining   int
	MovingRight bool
	Frame       int
	// Each live enemy is 4 ints: Row, Col, X, Y
	EnemyData []int

	// Each shot is 3 ints: ID, X, Y
	PlayerShotData []int
	EnemyShotData  []int

	// Block cells flattened cluster by cluster, row-major: 1 = occupied
	BlockRows int
	BlockData []int
}

func tenths(v float64) int {
	if v < 0 {
		return int(v*10 - 0.5)
	}
	return int(v*10 + 0.5)
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:          g.tick,
		Phase:         int(g.round.Phase),
		Level:         g.round.Level,
		Score:         g.round.Score,
		HighScore:     g.round.HighScore,
		Paused:        g.paused,
		MoveInterval:  g.round.MoveInterval,
		MoveCounter:   g.round.MoveCounter,
		ShootInterval: g.round.ShootInterval,
		ShootCounter:  g.round.ShootCounter,
	}
	if g.screenTooSmall {
		return snap
	}

	snap.Lives = g.ship.Lives()
	snap.ShipX = tenths(g.ship.X)

	snap.Remaining = g.formation.Remaining()
	snap.MovingRight = g.formation.MovingRight()
	snap.Frame = g.formation.Frame()
	snap.EnemyData = make([]int, 0, snap.Remaining*4)
	g.formation.Each(func(e Enemy) {
		snap.EnemyData = append(snap.EnemyData, e.Row, e.Col, tenths(e.X), tenths(e.Y))
	})

	g.playerShots.Each(func(p *Projectile) {
		snap.PlayerShotData = append(snap.PlayerShotData, p.ID, tenths(p.X), tenths(p.Y))
	})
	g.enemyShots.Each(func(p *Projectile) {
		snap.EnemyShotData = append(snap.EnemyShotData, p.ID, tenths(p.X), tenths(p.Y))
	})

	snap.BlockRows = g.blocks.Rows()
	for _, cl := range g.blocks.Clusters() {
		for _, row := range cl.Cells {
			for _, cell := range row {
				v := 0
				if cell.Occupied {
					v = 1
				}
				snap.BlockData = append(snap.BlockData, v)
			}
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ShipX)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MoveInterval)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MoveCounter)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ShootInterval) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ShootCounter)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Remaining)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Frame)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BlockRows)     //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.Paused)
	h = h*31 + boolBit(snap.MovingRight)

	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.PlayerShotData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.EnemyShotData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.BlockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
