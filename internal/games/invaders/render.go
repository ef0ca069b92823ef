package invaders

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/assets"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Drawing glyphs
const (
	BoundaryChar = '─'
	ProgressFull = '#'
	ProgressTodo = '-'
)

const progressWidth = 30

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", MinScreenWidth, MinScreenHeight)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	if g.round.Phase == PhaseLoading {
		g.renderLoading(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBlocks(dst)
	g.renderFormation(dst)
	g.renderShots(dst)
	g.drawSprite(dst, g.ship.Sprite(), g.ship.X, g.ship.Y)
	g.renderLives(dst)
	g.renderOverlay(dst)
}

// renderLoading draws the title and a progress bar that fills over the
// loading phase.
func (g *Game) renderLoading(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-3, "SPACE INVADERS", core.ColorBrightGreen)

	steps := max(1, g.cfg.Banner.LoadingSteps)
	done := min(progressWidth, g.round.PhaseTicks*progressWidth/steps)
	bar := "[" + strings.Repeat(string(ProgressFull), done) +
		strings.Repeat(string(ProgressTodo), progressWidth-done) + "]"
	dst.DrawTextCentered(mid, bar)
	dst.DrawTextCentered(mid+2, "Loading...")
}

// renderHUD draws score, level and high score above the top boundary.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, hudRow, fmt.Sprintf("Score: %d", g.round.Score))
	dst.DrawTextCentered(hudRow, fmt.Sprintf("Level: %d", g.round.Level))

	high := fmt.Sprintf("High: %d", g.round.HighScore)
	dst.DrawText(dst.Width()-len(high)-1, hudRow, high)

	dst.DrawHLine(0, topBoundary, dst.Width(), BoundaryChar)
	dst.DrawHLine(0, int(g.bottomBoundary), dst.Width(), BoundaryChar)
}

func (g *Game) renderBlocks(dst *core.Screen) {
	for _, cl := range g.blocks.Clusters() {
		for r, row := range cl.Cells {
			for c, cell := range row {
				if !cell.Occupied {
					continue
				}
				x, y := cl.CellPos(r, c)
				g.drawSprite(dst, cell.Sprite, x, y)
			}
		}
	}
}

func (g *Game) renderFormation(dst *core.Screen) {
	frame := g.formation.Frame()
	g.formation.Each(func(e Enemy) {
		g.drawSprite(dst, e.Sprite(frame), e.X, e.Y)
	})
}

func (g *Game) renderShots(dst *core.Screen) {
	player := g.atlas.MustLookup(assets.NamePlayerShot)
	g.playerShots.Each(func(p *Projectile) {
		g.drawSprite(dst, player, p.X, p.Y)
	})
	enemy := g.atlas.MustLookup(assets.NameEnemyShot)
	g.enemyShots.Each(func(p *Projectile) {
		g.drawSprite(dst, enemy, p.X, p.Y)
	})
}

// renderLives draws one icon per spare life on the bottom row.
func (g *Game) renderLives(dst *core.Screen) {
	life := g.atlas.MustLookup(assets.NameLife)
	for i := range g.ship.Lives() {
		g.drawSprite(dst, life, g.lifeX(i), float64(dst.Height()-1))
	}
}

// lifeX returns the x of life icon i. Icons that would run off the right
// edge pile up on the last column.
func (g *Game) lifeX(i int) float64 {
	return float64(core.Clamp(2+i*2, 0, g.screenW-1))
}

// drawSprite draws a sprite centered on (cx, cy). Unknown handles draw nothing.
func (g *Game) drawSprite(dst *core.Screen, h assets.Handle, cx, cy float64) {
	s, ok := g.atlas.Sprite(h)
	if !ok {
		return
	}
	left := int(math.Round(cx - float64(s.Width()-1)/2))
	top := int(math.Round(cy))
	dst.DrawTextColored(left, top, s.Glyph, s.Color)
}

// renderOverlay draws banners and the pause box.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.round.Phase == PhaseLevelTransition:
		g.drawCenteredBox(dst, "NEXT LEVEL", fmt.Sprintf("Level %d", g.bannerLevel))

	case g.round.Phase == PhaseGameOver:
		subtitle := fmt.Sprintf("Reached level %d  |  Score %d", g.bannerLevel, g.bannerScore)
		if g.newHighScore {
			subtitle += "  |  New high score!"
		}
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
