// Package audio plays synthesized sound effects for game events.
package audio

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Sound identifies an effect.
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundHit
)

// SoundsFor maps a tick's draw list to the effects it should trigger.
// Only play events count; OpRemoved changes from a rebuild are silent.
// Each effect plays at most once per tick.
func SoundsFor(changes []core.Change) []Sound {
	var seen [3]bool
	var out []Sound
	add := func(s Sound) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, c := range changes {
		switch {
		case c.Op == core.OpCreated && c.Kind == core.EntityPlayerShot:
			add(SoundShot)
		case c.Op == core.OpDestroyed && c.Kind == core.EntityEnemy:
			add(SoundExplosion)
		case c.Op == core.OpDestroyed && c.Kind == core.EntityLife:
			add(SoundHit)
		}
	}
	return out
}

// HandleChanges plays the effects for one tick's draw list.
func (sm *SoundManager) HandleChanges(changes []core.Change) {
	for _, s := range SoundsFor(changes) {
		sm.Play(s)
	}
}
