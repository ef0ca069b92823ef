package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Phase is the coordinator state.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhasePlaying
	PhaseLevelTransition
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseLevelTransition:
		return "level_transition"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// RoundState holds the level, score and pacing counters of a round.
type RoundState struct {
	Level     int
	Score     int
	HighScore int

	MoveInterval int // Ticks between formation moves
	MoveCounter  int

	ShootBase     int // Lower bound of ShootInterval for this level
	ShootInterval int // Ticks between enemy shots, drawn at level start
	ShootCounter  int

	TickDelay time.Duration

	Phase      Phase
	PhaseTicks int // Ticks spent in the loading phase
}

// resetRound returns score, level, lives, formation, blocks and pacing to
// their defaults. The high score is kept.
func (g *Game) resetRound() {
	g.round.Level = 1
	g.round.Score = 0
	g.newHighScore = false

	g.clearShots()
	g.blocks.Rebuild(1, g.cfg.Blocks.Rows)
	g.formation.Reset()
	g.ship.Reset(true)
	g.applyLevelPacing()
	g.round.Phase = PhasePlaying
}

// startLevel sets up the field for round.Level after a level was cleared.
func (g *Game) startLevel() {
	g.clearShots()
	g.blocks.Rebuild(g.round.Level, 0)
	g.formation.Reset()
	g.ship.Reset(false)
	g.applyLevelPacing()
	g.round.Phase = PhasePlaying
}

func (g *Game) applyLevelPacing() {
	level := g.round.Level
	g.round.MoveInterval = g.pacing.MoveInterval(level)
	g.round.MoveCounter = 0
	g.round.ShootBase = g.pacing.ShootBase(level)
	g.round.ShootInterval = g.pacing.ShootInterval(g.round.ShootBase, g.rng)
	g.round.ShootCounter = 0
	g.round.TickDelay = g.pacing.TickDelay(level)
	g.round.PhaseTicks = 0
}

// clearShots takes every shot off the field and reports it removed.
func (g *Game) clearShots() {
	g.playerShots.Each(func(p *Projectile) { g.emitShot(core.OpRemoved, p) })
	g.enemyShots.Each(func(p *Projectile) { g.emitShot(core.OpRemoved, p) })
	g.playerShots.Clear()
	g.enemyShots.Clear()
}

// runTick performs one playing tick. The order is fixed: projectiles move,
// the formation moves, enemies shoot, player shots resolve, enemy shots
// resolve, then the level is checked for completion.
func (g *Game) runTick() {
	g.playerShots.Advance()
	g.enemyShots.Advance()
	g.emitShotsMoved()

	g.round.MoveCounter++
	if g.round.MoveCounter >= g.round.MoveInterval {
		g.round.MoveCounter = 0
		if g.moveFormation() {
			return
		}
	}

	g.round.ShootCounter++
	if g.round.ShootCounter >= g.round.ShootInterval {
		g.round.ShootCounter = 0
		g.enemyFire()
	}

	g.resolvePlayerShots()
	if g.resolveEnemyShots() {
		return
	}

	if g.formation.Eliminated() {
		g.levelCleared()
	}
}

// moveFormation advances the formation one step. Reports true when the
// formation reached the ship and the round ended.
func (g *Game) moveFormation() bool {
	flipped := g.formation.Advance(g.cfg.Formation.MoveStep)

	if lowest, ok := g.formation.LowestEdge(); ok && lowest >= g.ship.Top() {
		g.emitFormation(core.OpMoved)
		g.gameOver("invaded")
		return true
	}

	g.carveBlocks()
	g.formation.ToggleFrame()
	g.emitFormation(core.OpMoved)

	if flipped {
		g.round.MoveInterval = max(g.pacing.MinMoveInterval(), g.round.MoveInterval-1)
	}
	if g.formation.LastShip() {
		g.round.MoveInterval = g.pacing.MinMoveInterval()
	}
	return false
}

// carveBlocks lets the lowest enemy of each column cut into the first shield
// its box overlaps, scanning from its trailing edge in the direction of
// travel.
func (g *Game) carveBlocks() {
	l := g.formation.Layout()
	right := g.formation.MovingRight()
	clusters := g.blocks.Clusters()

	dir := 1.0
	if !right {
		dir = -1
	}
	width := int(l.EnemyW)

	for _, e := range g.formation.Frontier() {
		hull := core.NewBox(e.X, e.Y, l.EnemyW, l.EnemyH)
		trailing := e.X - dir*(l.EnemyW-1)/2
		for dx := range width {
			x := trailing + float64(dx)*dir
			i, ok := g.blocks.ClusterAt(x)
			if !ok {
				continue
			}
			if hull.Overlaps(clusters[i].Bounds()) {
				g.blocks.HitByEnemy(i, x, e.Y, right)
			}
			break
		}
	}
}

func (g *Game) enemyFire() {
	x, y, ok := g.formation.FireFromRandomLive(g.rng)
	if !ok {
		return
	}
	p := g.enemyShots.Spawn(x, y)
	g.emitShot(core.OpCreated, p)
}

func (g *Game) resolvePlayerShots() {
	g.playerShots.RemoveWhere(func(p *Projectile) bool {
		return g.blocks.Hit(p.X, p.Y)
	})
	g.playerShots.RemovePassed(topBoundary)
	g.playerShots.RemoveWhere(func(p *Projectile) bool {
		e, ok := g.formation.CheckHit(p.Y, p.X)
		if !ok {
			return false
		}
		g.round.Score += g.cfg.Scoring.PointsPerEnemy
		g.emitEnemy(core.OpDestroyed, e)
		return true
	})
}

// resolveEnemyShots reports true when a hit with no lives left ended the
// round. At most one shot hits the ship per tick.
func (g *Game) resolveEnemyShots() bool {
	g.enemyShots.RemoveWhere(func(p *Projectile) bool {
		return g.blocks.Hit(p.X, p.Y)
	})
	g.enemyShots.RemovePassed(g.bottomBoundary)

	hull := g.ship.Box()
	var hit *Projectile
	g.enemyShots.Each(func(p *Projectile) {
		if hit == nil && hull.Contains(p.X, p.Y) {
			hit = p
		}
	})
	if hit == nil {
		return false
	}
	g.enemyShots.Remove(hit)

	if !g.ship.ReceiveHit() {
		g.gameOver("ship destroyed")
		return true
	}
	g.emitLifeLost(g.ship.Lives())
	g.emitShip(core.OpMoved)
	g.log.Debug("ship hit", "lives", g.ship.Lives())
	return false
}

func (g *Game) levelCleared() {
	g.clearShots()
	g.round.Level++
	g.round.Phase = PhaseLevelTransition
	g.bannerLevel = g.round.Level
	g.log.Info("level cleared",
		"next_level", g.round.Level,
		"score", g.round.Score,
		"speed_up", g.pacing.IsEnabled(),
	)
}

// gameOver ends the round. The high score is raised here, so the platform
// sees the new value in the same step result.
func (g *Game) gameOver(reason string) {
	g.clearShots()
	g.round.Phase = PhaseGameOver
	g.bannerLevel = g.round.Level
	g.bannerScore = g.round.Score
	g.newHighScore = g.round.Score > g.round.HighScore
	if g.newHighScore {
		g.round.HighScore = g.round.Score
	}
	g.log.Info("game over",
		"reason", reason,
		"level", g.round.Level,
		"score", g.round.Score,
		"high_score", g.round.HighScore,
	)
}
