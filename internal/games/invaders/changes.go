package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/assets"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Changes returns the draw list of the last Step: every entity that was
// created, moved or destroyed during the tick. The slice is reused by the
// next Step.
func (g *Game) Changes() []core.Change {
	return g.changes
}

func (g *Game) emit(op core.ChangeOp, kind core.EntityKind, id int, sprite assets.Handle, x, y float64) {
	g.changes = append(g.changes, core.Change{Op: op, Kind: kind, ID: id, Sprite: sprite, X: x, Y: y})
}

// emitAll reports every live entity with the same op. Used around full
// rebuilds: OpRemoved before a level start or round restart, OpCreated after
// it and at the initial reset.
func (g *Game) emitAll(op core.ChangeOp) {
	g.emitShip(op)
	g.emitFormation(op)
	g.playerShots.Each(func(p *Projectile) { g.emitShot(op, p) })
	g.enemyShots.Each(func(p *Projectile) { g.emitShot(op, p) })

	for i, cl := range g.blocks.Clusters() {
		for r, row := range cl.Cells {
			for c, cell := range row {
				if !cell.Occupied {
					continue
				}
				x, y := cl.CellPos(r, c)
				id := g.blocks.cellID(cellRef{cluster: i, row: r, col: c})
				g.emit(op, core.EntityBlock, id, cell.Sprite, x, y)
			}
		}
	}

	life := g.atlas.MustLookup(assets.NameLife)
	for i := range g.ship.Lives() {
		g.emit(op, core.EntityLife, i, life, g.lifeX(i), float64(g.screenH-1))
	}
}

func (g *Game) emitShip(op core.ChangeOp) {
	g.emit(op, core.EntityShip, 0, g.ship.Sprite(), g.ship.X, g.ship.Y)
}

func (g *Game) emitFormation(op core.ChangeOp) {
	g.formation.Each(func(e Enemy) {
		g.emitEnemy(op, e)
	})
}

func (g *Game) emitEnemy(op core.ChangeOp, e Enemy) {
	g.emit(op, core.EntityEnemy, g.formation.slotID(e), e.Sprite(g.formation.Frame()), e.X, e.Y)
}

func (g *Game) emitShot(op core.ChangeOp, p *Projectile) {
	kind, name := core.EntityPlayerShot, assets.NamePlayerShot
	if p.Owner == SideEnemy {
		kind, name = core.EntityEnemyShot, assets.NameEnemyShot
	}
	g.emit(op, kind, p.ID, g.atlas.MustLookup(name), p.X, p.Y)
}

func (g *Game) emitShotsMoved() {
	g.playerShots.Each(func(p *Projectile) { g.emitShot(core.OpMoved, p) })
	g.enemyShots.Each(func(p *Projectile) { g.emitShot(core.OpMoved, p) })
}

// emitLifeLost reports the life icon at index id disappearing.
func (g *Game) emitLifeLost(id int) {
	g.emit(core.OpDestroyed, core.EntityLife, id, g.atlas.MustLookup(assets.NameLife), g.lifeX(id), float64(g.screenH-1))
}

// flushRemovals turns shots and block cells removed during the tick into
// Destroyed changes.
func (g *Game) flushRemovals() {
	if g.blocks == nil {
		return
	}
	for _, p := range g.playerShots.drainRemoved() {
		g.emitShot(core.OpDestroyed, p)
	}
	for _, p := range g.enemyShots.drainRemoved() {
		g.emitShot(core.OpDestroyed, p)
	}
	for _, ref := range g.blocks.drainDestroyed() {
		cl := g.blocks.Clusters()[ref.cluster]
		x, y := cl.CellPos(ref.row, ref.col)
		g.emit(core.OpDestroyed, core.EntityBlock, g.blocks.cellID(ref), g.blocks.sprite, x, y)
	}
}
