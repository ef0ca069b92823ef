// Package assets maps opaque sprite handles to terminal art.
// Game logic stores only Handles; the renderer resolves them here.
package assets

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Handle identifies a sprite in an Atlas. The zero Handle is never valid.
type Handle = core.Handle

// Sprite is a single-row piece of terminal art.
type Sprite struct {
	Glyph string
	Color core.Color
}

// Width returns the sprite width in cells.
func (s Sprite) Width() int {
	return len([]rune(s.Glyph))
}

// Sprite names every invaders round needs.
const (
	NameShip       = "ship"
	NamePlayerShot = "player_shot"
	NameEnemyShot  = "enemy_shot"
	NameBlock      = "block"
	NameLife       = "life"
)

// EnemyTypes is the number of distinct enemy sprites.
const EnemyTypes = 3

// EnemyName returns the sprite name for an enemy type and animation frame.
func EnemyName(enemyType, frame int) string {
	return fmt.Sprintf("enemy_%d_%d", enemyType, frame)
}

// RequiredNames lists every sprite a round looks up.
func RequiredNames() []string {
	names := []string{NameShip, NamePlayerShot, NameEnemyShot, NameBlock, NameLife}
	for t := range EnemyTypes {
		names = append(names, EnemyName(t, 0), EnemyName(t, 1))
	}
	return names
}

// ErrEmptyAtlas is returned when an atlas lacks a required sprite.
var ErrEmptyAtlas = errors.New("assets: sprite set is empty or incomplete")

// Atlas is a registry of sprites addressed by Handle or by name.
type Atlas struct {
	sprites []Sprite // index = Handle-1
	byName  map[string]Handle
}

// NewAtlas creates an empty atlas.
func NewAtlas() *Atlas {
	return &Atlas{byName: make(map[string]Handle)}
}

// Add registers a sprite under name, replacing any previous sprite with that name.
func (a *Atlas) Add(name string, s Sprite) Handle {
	if h, ok := a.byName[name]; ok {
		a.sprites[h-1] = s
		return h
	}
	a.sprites = append(a.sprites, s)
	h := Handle(len(a.sprites))
	a.byName[name] = h
	return h
}

// Lookup returns the handle registered under name.
func (a *Atlas) Lookup(name string) (Handle, bool) {
	h, ok := a.byName[name]
	return h, ok
}

// MustLookup returns the handle for name, or the zero Handle when missing.
// Only safe to rely on after Validate succeeded.
func (a *Atlas) MustLookup(name string) Handle {
	return a.byName[name]
}

// Sprite resolves a handle.
func (a *Atlas) Sprite(h Handle) (Sprite, bool) {
	if h == 0 || int(h) > len(a.sprites) {
		return Sprite{}, false
	}
	return a.sprites[h-1], true
}

// Len returns the number of registered sprites.
func (a *Atlas) Len() int {
	return len(a.sprites)
}

// Validate checks that every required sprite is present and drawable.
func (a *Atlas) Validate() error {
	if a == nil || len(a.sprites) == 0 {
		return ErrEmptyAtlas
	}
	for _, name := range RequiredNames() {
		h, ok := a.byName[name]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrEmptyAtlas, name)
		}
		if a.sprites[h-1].Width() == 0 {
			return fmt.Errorf("%w: %q has no glyphs", ErrEmptyAtlas, name)
		}
	}
	return nil
}

// enemyGlyphs holds both animation frames per enemy type.
var enemyGlyphs = [EnemyTypes][2]string{
	{`/O\`, `\O/`},
	{`{@}`, `}@{`},
	{`<W>`, `>W<`},
}

// Default builds the standard sprite set, colored per cfg.
func Default(cfg config.ColorsConfig) (*Atlas, error) {
	color := func(name string) (core.Color, error) {
		c, ok := core.ParseColor(name)
		if !ok {
			return core.ColorDefault, fmt.Errorf("assets: unknown color %q", name)
		}
		return c, nil
	}

	a := NewAtlas()
	entries := []struct {
		name, glyph, color string
	}{
		{NameShip, "/-^-\\", cfg.Ship},
		{NamePlayerShot, "|", cfg.PlayerShot},
		{NameEnemyShot, "!", cfg.EnemyShot},
		{NameBlock, "█", cfg.Block},
		{NameLife, "^", cfg.Life},
	}
	for t := range EnemyTypes {
		for f := range 2 {
			entries = append(entries, struct{ name, glyph, color string }{
				EnemyName(t, f), enemyGlyphs[t][f], cfg.Enemies[t],
			})
		}
	}

	for _, e := range entries {
		c, err := color(e.color)
		if err != nil {
			return nil, err
		}
		a.Add(e.name, Sprite{Glyph: e.glyph, Color: c})
	}
	return a, nil
}
