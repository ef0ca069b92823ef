//go:build nosound

package audio

import (
	"errors"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// ErrNoSound is returned by Initialize in builds without a speaker.
var ErrNoSound = errors.New("audio: built without sound support")

// SoundManager is a silent stand-in for builds tagged nosound, which
// leave out the cgo audio backend.
type SoundManager struct {
	volume float64
}

// NewSoundManager creates a sound manager. Volume is linear, 0..1.
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{volume: core.ClampF(volume, 0, 1)}
}

// Initialize always fails; there is no device to open.
func (sm *SoundManager) Initialize() error { return ErrNoSound }

// Cleanup does nothing.
func (sm *SoundManager) Cleanup() {}

// Play does nothing.
func (sm *SoundManager) Play(Sound) {}
