//go:build !nosound

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager owns the speaker and a mixer that effects are added to.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a sound manager. Volume is linear, 0..1.
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: core.ClampF(volume, 0, 1),
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every playing effect.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play starts one effect. It does nothing before Initialize.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	var streamer beep.Streamer
	switch s {
	case SoundShot:
		streamer = ShotSound(sampleRate, sm.volume)
	case SoundExplosion:
		streamer = ExplosionSound(sampleRate, sm.volume)
	case SoundHit:
		streamer = HitSound(sampleRate, sm.volume)
	default:
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}
