package invaders

import (
	"github.com/vovakirdan/tui-invaders/internal/assets"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// SlotState tags a formation slot.
type SlotState uint8

const (
	SlotAlive SlotState = iota + 1
	SlotDestroyed
)

// Enemy is one formation slot. Both animation frames belong to the same
// entity, so a hit always removes them together.
type Enemy struct {
	Row, Col int
	Type     int
	X, Y     float64 // Center
	State    SlotState
	Sprites  [2]assets.Handle
}

// Alive reports whether the slot holds a live enemy.
func (e Enemy) Alive() bool {
	return e.State == SlotAlive
}

// Sprite returns the handle for the given animation frame.
func (e Enemy) Sprite(frame int) assets.Handle {
	return e.Sprites[frame&1]
}

// FormationLayout positions the canonical formation.
type FormationLayout struct {
	Rows, Cols int
	RowTypes   []int   // Enemy type per row, top to bottom
	SpacingX   float64 // Distance between column centers
	SpacingY   float64 // Distance between row centers
	TopY       float64 // Center y of the top row
	ScreenW    int
	EnemyW     float64
	EnemyH     float64
	DropStep   float64
}

// LayoutFor derives a formation layout for a screen size.
// Zero spacing in cfg is derived from the screen.
func LayoutFor(cfg config.FormationConfig, screenW, screenH int) FormationLayout {
	spacingX := cfg.SpacingX
	if spacingX <= 0 {
		spacingX = max(cfg.EnemyWidth+1, float64(screenW/17))
	}
	spacingY := cfg.SpacingY
	if spacingY <= 0 {
		spacingY = max(2, float64(screenH/12))
	}
	return FormationLayout{
		Rows:     cfg.Rows,
		Cols:     cfg.Cols,
		RowTypes: cfg.RowTypes,
		SpacingX: spacingX,
		SpacingY: spacingY,
		TopY:     cfg.TopOffset,
		ScreenW:  screenW,
		EnemyW:   cfg.EnemyWidth,
		EnemyH:   1,
		DropStep: cfg.DropStep,
	}
}

// Formation is the grid of enemies. Slots are stored row-major in a flat
// slice; liveRows lists the rows that still hold an enemy, top to bottom.
type Formation struct {
	layout  FormationLayout
	sprites [assets.EnemyTypes][2]assets.Handle

	slots       []Enemy
	liveRows    []int
	movingRight bool
	frame       int
	remaining   int
	lastShip    bool
	eliminated  bool
}

// NewFormation creates a formation at its canonical start layout.
func NewFormation(layout FormationLayout, atlas *assets.Atlas) *Formation {
	f := &Formation{layout: layout}
	for t := range assets.EnemyTypes {
		for fr := range 2 {
			f.sprites[t][fr] = atlas.MustLookup(assets.EnemyName(t, fr))
		}
	}
	f.Reset()
	return f
}

// Reset recreates every enemy at the canonical layout and clears all flags.
func (f *Formation) Reset() {
	l := f.layout
	width := float64(l.Cols-1) * l.SpacingX
	startX := float64(l.ScreenW)/2 - width/2

	f.slots = make([]Enemy, l.Rows*l.Cols)
	f.liveRows = f.liveRows[:0]
	for r := range l.Rows {
		typ := 0
		if r < len(l.RowTypes) {
			typ = l.RowTypes[r]
		}
		for c := range l.Cols {
			f.slots[r*l.Cols+c] = Enemy{
				Row:     r,
				Col:     c,
				Type:    typ,
				X:       startX + float64(c)*l.SpacingX,
				Y:       l.TopY + float64(r)*l.SpacingY,
				State:   SlotAlive,
				Sprites: f.sprites[typ],
			}
		}
		f.liveRows = append(f.liveRows, r)
	}

	f.movingRight = true
	f.frame = 0
	f.lastShip = false
	f.eliminated = false
	f.remaining = f.LiveCount()
}

func (f *Formation) slot(row, col int) *Enemy {
	return &f.slots[row*f.layout.Cols+col]
}

// Advance moves the formation one step sideways, or drops it and reverses
// direction when the step would carry the outermost live enemy past the
// screen edge. Reports whether the direction flipped.
func (f *Formation) Advance(step float64) bool {
	if f.remaining == 0 {
		return false
	}

	if f.fitsAfter(step) {
		dx := step
		if !f.movingRight {
			dx = -step
		}
		f.translate(dx, 0)
		return false
	}

	f.translate(0, f.layout.DropStep)
	f.movingRight = !f.movingRight
	return true
}

// fitsAfter reports whether the leading live enemy stays on screen after
// moving step in the current direction.
func (f *Formation) fitsAfter(step float64) bool {
	e, ok := f.extremum()
	if !ok {
		return true
	}
	half := f.layout.EnemyW / 2
	if f.movingRight {
		return e.X+half+step <= float64(f.layout.ScreenW)
	}
	return e.X-half-step >= 0
}

// extremum returns the live enemy in the outermost column toward the
// current direction. The row-major scan stops early once column 0 (moving
// left) or the last column (moving right) is found.
func (f *Formation) extremum() (Enemy, bool) {
	last := f.layout.Cols - 1
	best := -1
	var found Enemy
	for _, r := range f.liveRows {
		for c := range f.layout.Cols {
			e := f.slot(r, c)
			if !e.Alive() {
				continue
			}
			if best < 0 || (f.movingRight && c > best) || (!f.movingRight && c < best) {
				best = c
				found = *e
			}
			if (f.movingRight && best == last) || (!f.movingRight && best == 0) {
				return found, true
			}
		}
	}
	return found, best >= 0
}

func (f *Formation) translate(dx, dy float64) {
	for i := range f.slots {
		if f.slots[i].Alive() {
			f.slots[i].X += dx
			f.slots[i].Y += dy
		}
	}
}

// ToggleFrame swaps the visible animation frame for the whole formation.
func (f *Formation) ToggleFrame() {
	f.frame ^= 1
}

// Intner is the part of *rand.Rand used for enemy fire.
type Intner = config.Intner

// FireFromRandomLive picks one live enemy uniformly across the formation and
// returns a spawn point just below it.
func (f *Formation) FireFromRandomLive(rng Intner) (x, y float64, ok bool) {
	if f.remaining == 0 {
		return 0, 0, false
	}
	n := rng.Intn(f.remaining)
	for _, r := range f.liveRows {
		for c := range f.layout.Cols {
			e := f.slot(r, c)
			if !e.Alive() {
				continue
			}
			if n == 0 {
				return e.X, e.Y + f.layout.EnemyH/2 + 0.5, true
			}
			n--
		}
	}
	return 0, 0, false
}

// CheckHit scans live rows bottom-up for an enemy covering (x, y). The scan
// only reads; the matched slot is destroyed after it completes. An emptied
// row is dropped from the live rows.
func (f *Formation) CheckHit(y, x float64) (Enemy, bool) {
	halfW := f.layout.EnemyW / 2
	halfH := f.layout.EnemyH / 2

	rowIdx, col := -1, -1
scan:
	for i := len(f.liveRows) - 1; i >= 0; i-- {
		r := f.liveRows[i]
		for c := range f.layout.Cols {
			e := f.slot(r, c)
			if !e.Alive() {
				continue
			}
			if !core.Within(y, e.Y, halfH) {
				// Every live enemy in a row shares its y
				break
			}
			if core.Within(x, e.X, halfW) {
				rowIdx, col = i, c
				break scan
			}
		}
	}
	if rowIdx < 0 {
		return Enemy{}, false
	}

	row := f.liveRows[rowIdx]
	e := f.slot(row, col)
	e.State = SlotDestroyed
	f.remaining--

	switch f.remaining {
	case 1:
		f.lastShip = true
	case 0:
		f.lastShip = false
		f.eliminated = true
	}

	if f.rowEmpty(row) {
		f.liveRows = append(f.liveRows[:rowIdx], f.liveRows[rowIdx+1:]...)
	}
	return *e, true
}

func (f *Formation) rowEmpty(row int) bool {
	for c := range f.layout.Cols {
		if f.slot(row, c).Alive() {
			return false
		}
	}
	return true
}

// Frontier returns the lowest live enemy in each column, left to right.
func (f *Formation) Frontier() []Enemy {
	out := make([]Enemy, 0, f.layout.Cols)
	for c := range f.layout.Cols {
		for i := len(f.liveRows) - 1; i >= 0; i-- {
			e := f.slot(f.liveRows[i], c)
			if e.Alive() {
				out = append(out, *e)
				break
			}
		}
	}
	return out
}

// Each calls fn for every live enemy in row-major order.
func (f *Formation) Each(fn func(Enemy)) {
	for _, r := range f.liveRows {
		for c := range f.layout.Cols {
			if e := f.slot(r, c); e.Alive() {
				fn(*e)
			}
		}
	}
}

// LiveCount recomputes the number of live enemies from the slots.
func (f *Formation) LiveCount() int {
	n := 0
	for _, e := range f.slots {
		if e.Alive() {
			n++
		}
	}
	return n
}

// LowestEdge returns the bottom edge of the lowest live enemy.
func (f *Formation) LowestEdge() (float64, bool) {
	if len(f.liveRows) == 0 {
		return 0, false
	}
	r := f.liveRows[len(f.liveRows)-1]
	for c := range f.layout.Cols {
		if e := f.slot(r, c); e.Alive() {
			return e.Y + f.layout.EnemyH/2, true
		}
	}
	return 0, false
}

// HighestEdge returns the top edge of the highest live enemy.
func (f *Formation) HighestEdge() (float64, bool) {
	if len(f.liveRows) == 0 {
		return 0, false
	}
	r := f.liveRows[0]
	for c := range f.layout.Cols {
		if e := f.slot(r, c); e.Alive() {
			return e.Y - f.layout.EnemyH/2, true
		}
	}
	return 0, false
}

// Remaining returns the live enemy counter.
func (f *Formation) Remaining() int { return f.remaining }

// LastShip reports whether exactly one enemy is left.
func (f *Formation) LastShip() bool { return f.lastShip }

// Eliminated reports whether every enemy has been destroyed.
func (f *Formation) Eliminated() bool { return f.eliminated }

// MovingRight reports the current horizontal direction.
func (f *Formation) MovingRight() bool { return f.movingRight }

// Frame returns the visible animation frame, 0 or 1.
func (f *Formation) Frame() int { return f.frame }

// LiveRows returns how many rows still hold an enemy.
func (f *Formation) LiveRows() int { return len(f.liveRows) }

// Layout returns the formation layout.
func (f *Formation) Layout() FormationLayout { return f.layout }

// Slot returns the enemy at (row, col) of the canonical grid.
func (f *Formation) Slot(row, col int) (Enemy, bool) {
	if row < 0 || row >= f.layout.Rows || col < 0 || col >= f.layout.Cols {
		return Enemy{}, false
	}
	return *f.slot(row, col), true
}

// slotID is the stable identifier of a slot.
func (f *Formation) slotID(e Enemy) int {
	return e.Row*f.layout.Cols + e.Col
}
