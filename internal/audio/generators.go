package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave for a fixed duration
type oscillator struct {
	freq     float64
	sweep    float64 // Frequency change per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, 0, duration, wave, rate)
}

// NewSweep creates an oscillator whose frequency changes by sweep Hz per
// second. A sweeping tone never drops below 20 Hz.
func NewSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.sweep != 0 {
			t := float64(o.position) / float64(o.rate)
			freq = math.Max(20, freq+o.sweep*t)
		}
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.totalSamples - e.release; e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Effect timings
const (
	shotDuration      = 90 * time.Millisecond
	explosionDuration = 250 * time.Millisecond
	hitDuration       = 400 * time.Millisecond
)

// ShotSound is a short descending square chirp.
func ShotSound(rate beep.SampleRate, volume float64) beep.Streamer {
	osc := NewSweep(1400, -8000, shotDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, shotDuration, 5*time.Millisecond, 40*time.Millisecond, rate)
	return newVolume(shaped, 0.25*volume)
}

// ExplosionSound is a burst of noise over a low rumble.
func ExplosionSound(rate beep.SampleRate, volume float64) beep.Streamer {
	noise := NewOscillator(0, explosionDuration, WaveNoise, rate)
	rumble := NewSweep(140, -200, explosionDuration, WaveSine, rate)
	mixed := beep.Mix(newVolume(noise, 0.6), newVolume(rumble, 0.4))
	shaped := NewEnvelope(mixed, explosionDuration, 2*time.Millisecond, 200*time.Millisecond, rate)
	return newVolume(shaped, 0.4*volume)
}

// HitSound is a falling saw tone played when the ship loses a life.
func HitSound(rate beep.SampleRate, volume float64) beep.Streamer {
	osc := NewSweep(440, -600, hitDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, hitDuration, 10*time.Millisecond, 250*time.Millisecond, rate)
	return newVolume(shaped, 0.35*volume)
}
