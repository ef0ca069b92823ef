// Package invaders implements Space Invaders: a ship defending against a
// descending enemy formation from behind destructible shields.
package invaders

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/assets"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// GameID is the registry and score-store key.
const GameID = "invaders"

// Minimum terminal size for a round.
const (
	MinScreenWidth  = 60
	MinScreenHeight = 24
)

// Fixed rows of the playfield.
const (
	hudRow      = 0
	topBoundary = 1 // Player shots above this line are removed
)

// ErrScreenTooSmall is returned when the terminal cannot fit a round.
var ErrScreenTooSmall = errors.New("invaders: screen too small")

// ValidateScreen checks that a w x h terminal can host a round.
func ValidateScreen(w, h int) error {
	if w < MinScreenWidth || h < MinScreenHeight {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrScreenTooSmall, w, h, MinScreenWidth, MinScreenHeight)
	}
	return nil
}

var (
	configured struct {
		cfg   config.InvadersConfig
		atlas *assets.Atlas
		set   bool
	}
	logger = log.New(io.Discard)
)

// Configure sets the configuration and sprite set used by games created
// through the registry. The atlas must pass Validate.
func Configure(cfg config.InvadersConfig, atlas *assets.Atlas) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := atlas.Validate(); err != nil {
		return err
	}
	configured.cfg = cfg
	configured.atlas = atlas
	configured.set = true
	return nil
}

// SetLogger sets the logger games report round events to.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the Space Invaders round coordinator.
type Game struct {
	cfg    config.InvadersConfig
	atlas  *assets.Atlas
	pacing *config.Pacing
	rng    *rand.Rand
	now    func() time.Time
	log    *log.Logger

	// Entities
	blocks      *BlockField
	formation   *Formation
	ship        *Ship
	playerShots *ProjectileSet
	enemyShots  *ProjectileSet
	shotIDs     int

	round   RoundState
	tick    uint64
	paused  bool
	changes []core.Change

	// Banner contents, captured when a banner phase starts
	bannerLevel  int
	bannerScore  int
	newHighScore bool

	// Layout (computed from screen size)
	screenW        int
	screenH        int
	bottomBoundary float64 // Enemy shots below this line are removed
	screenTooSmall bool
}

// New creates a game using the package configuration, or the embedded
// defaults when Configure was never called.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with an explicit configuration and sprite set.
func NewWithConfig(cfg config.InvadersConfig, atlas *assets.Atlas) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := atlas.Validate(); err != nil {
		return nil, err
	}
	return &Game{cfg: cfg, atlas: atlas}, nil
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// SetClock replaces the wall clock used for the fire cooldown.
// Takes effect at the next Reset.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Space Invaders"
}

// loadDefaults fills in configuration for registry-created games.
func (g *Game) loadDefaults() {
	if g.atlas != nil {
		return
	}
	if configured.set {
		g.cfg = configured.cfg
		g.atlas = configured.atlas
		return
	}

	cfg, err := config.LoadInvaders("")
	if err != nil {
		g.log.Warn("falling back to default config", "err", err)
		cfg = config.DefaultInvadersConfig()
	}
	atlas, err := assets.Default(cfg.Colors)
	if err != nil {
		g.log.Warn("falling back to default colors", "err", err)
		cfg.Colors = config.DefaultInvadersConfig().Colors
		atlas, _ = assets.Default(cfg.Colors)
	}
	g.cfg = cfg
	g.atlas = atlas
}

// Reset initializes the game for a new round on a screen of the given size.
// The round opens on the loading screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.log = logger.With("game", GameID)
	g.loadDefaults()
	if g.now == nil {
		g.now = time.Now
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.pacing = config.NewPacing(g.cfg.Pacing)
	g.tick = 0
	g.paused = false
	g.changes = g.changes[:0]
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.screenTooSmall = !g.fits(cfg.ScreenW, cfg.ScreenH)
	if g.screenTooSmall {
		g.log.Debug("screen too small", "w", cfg.ScreenW, "h", cfg.ScreenH)
		return
	}

	g.buildEntities()

	g.round = RoundState{HighScore: cfg.HighScore}
	g.resetRound()
	g.round.Phase = PhaseLoading
	g.emitAll(core.OpCreated)
	g.log.Debug("round reset",
		"w", cfg.ScreenW,
		"h", cfg.ScreenH,
		"seed", cfg.Seed,
		"progression", g.pacing.IsEnabled(),
	)
}

// fits reports whether the configured layout can be placed on a w x h screen.
func (g *Game) fits(w, h int) bool {
	if ValidateScreen(w, h) != nil {
		return false
	}
	fl := LayoutFor(g.cfg.Formation, w, h)
	if float64(fl.Cols-1)*fl.SpacingX+fl.EnemyW > float64(w) {
		return false
	}
	lowest := fl.TopY + float64(fl.Rows-1)*fl.SpacingY
	return lowest < g.blocksTop(h)-1
}

func (g *Game) shipY(h int) float64 {
	return float64(h - 3)
}

func (g *Game) blocksTop(h int) float64 {
	bottom := g.shipY(h) - float64(g.cfg.Blocks.Gap) - 1
	return bottom - float64(g.cfg.Blocks.Rows-1)
}

func (g *Game) buildEntities() {
	w, h := g.screenW, g.screenH
	g.bottomBoundary = float64(h - 2)

	g.blocks = NewBlockField(FieldLayout{
		Count:   g.cfg.Blocks.Count,
		Rows:    g.cfg.Blocks.Rows,
		Cols:    g.cfg.Blocks.Cols,
		ScreenW: w,
		TopY:    g.blocksTop(h),
	}, g.atlas.MustLookup(assets.NameBlock))

	g.formation = NewFormation(LayoutFor(g.cfg.Formation, w, h), g.atlas)

	g.ship = NewShip(ShipLayout{
		ScreenW:  w,
		Y:        g.shipY(h),
		Width:    g.cfg.Ship.Width,
		Step:     g.cfg.Ship.Step,
		Lives:    g.cfg.Ship.Lives,
		Cooldown: time.Duration(g.cfg.Ship.CooldownMS) * time.Millisecond,
	}, g.atlas.MustLookup(assets.NameShip), g.now)

	g.shotIDs = 0
	g.playerShots = NewProjectileSet(SidePlayer, g.cfg.Ship.ShotSpeed, &g.shotIDs)
	g.enemyShots = NewProjectileSet(SideEnemy, g.cfg.Formation.ShotSpeed, &g.shotIDs)
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	g.changes = g.changes[:0]

	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.round.Phase {
	case PhaseLoading:
		g.round.PhaseTicks++
		if g.round.PhaseTicks >= g.cfg.Banner.LoadingSteps {
			g.round.Phase = PhasePlaying
			g.round.PhaseTicks = 0
			return g.result(g.round.TickDelay)
		}
		return g.result(g.loadingStepDelay())

	case PhaseLevelTransition:
		g.emitAll(core.OpRemoved)
		g.startLevel()
		g.emitAll(core.OpCreated)
		return g.result(g.round.TickDelay)

	case PhaseGameOver:
		g.emitAll(core.OpRemoved)
		g.resetRound()
		g.emitAll(core.OpCreated)
		return g.result(g.round.TickDelay)
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result(g.round.TickDelay)
	}

	g.applyInput(input)
	g.runTick()

	switch g.round.Phase {
	case PhaseLevelTransition, PhaseGameOver:
		return g.result(g.bannerPause())
	}
	return g.result(g.round.TickDelay)
}

func (g *Game) result(next time.Duration) core.StepResult {
	g.flushRemovals()
	return core.StepResult{State: g.State(), NextTick: next}
}

func (g *Game) bannerPause() time.Duration {
	return time.Duration(g.cfg.Banner.PauseMS) * time.Millisecond
}

func (g *Game) loadingStepDelay() time.Duration {
	return time.Duration(g.cfg.Banner.LoadingStepMS) * time.Millisecond
}

// applyInput moves the ship and fires for this tick's actions.
func (g *Game) applyInput(input core.InputFrame) {
	moved := false
	switch {
	case input.Has(core.ActionLeftFast):
		moved = g.ship.MoveLeft(g.cfg.Ship.FastScale)
	case input.Has(core.ActionRightFast):
		moved = g.ship.MoveRight(g.cfg.Ship.FastScale)
	case input.Has(core.ActionLeft):
		moved = g.ship.MoveLeft(1)
	case input.Has(core.ActionRight):
		moved = g.ship.MoveRight(1)
	}
	if moved {
		g.emitShip(core.OpMoved)
	}

	if input.Has(core.ActionFire) {
		if p, ok := g.ship.Fire(g.playerShots); ok {
			g.emitShot(core.OpCreated, p)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.round.Score,
		HighScore: g.round.HighScore,
		Level:     g.round.Level,
		GameOver:  g.round.Phase == PhaseGameOver,
		Paused:    g.paused,
	}
}

// Phase returns the coordinator phase.
func (g *Game) Phase() Phase {
	return g.round.Phase
}

// Round returns a copy of the round state.
func (g *Game) Round() RoundState {
	return g.round
}
