//go:build nosound

package audio

import (
	"errors"
	"testing"
)

func TestNoSoundInitialize(t *testing.T) {
	sm := NewSoundManager(0.5)
	if err := sm.Initialize(); !errors.Is(err, ErrNoSound) {
		t.Errorf("Initialize() = %v, expected ErrNoSound", err)
	}
	sm.Play(SoundExplosion)
	sm.Cleanup()
}
