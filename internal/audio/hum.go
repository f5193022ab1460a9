package audio

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)

	BaseFreq = 110.0 // Hz at rest
	FreqSpan = 220.0 // added at full level

	// EnergyScale is the field kinetic energy that maps to ~63% loudness.
	EnergyScale = 2000.0

	// smoothing is the per-sample weight of the target level.
	smoothing = 0.0005
)

// Hum is a sine tone whose loudness and pitch follow how much the ring is moving.
// The frame loop writes the level, the speaker goroutine reads it.
type Hum struct {
	rate   beep.SampleRate
	phase  float64
	amp    float64
	target float64
	mu     sync.RWMutex
}

func NewHum(rate beep.SampleRate) *Hum {
	return &Hum{rate: rate}
}

// SetLevel sets the target level, clamped to [0, 1].
func (h *Hum) SetLevel(level float64) {
	level = clamp01(level)
	h.mu.Lock()
	h.target = level
	h.mu.Unlock()
}

func (h *Hum) Level() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.target
}

func (h *Hum) Stream(samples [][2]float64) (int, bool) {
	target := h.Level()
	for i := range samples {
		h.amp += (target - h.amp) * smoothing
		val := h.amp * math.Sin(2*math.Pi*h.phase)
		samples[i][0] = val
		samples[i][1] = val

		h.phase += (BaseFreq + FreqSpan*h.amp) / float64(h.rate)
		h.phase -= math.Floor(h.phase)
	}
	return len(samples), true
}

func (h *Hum) Err() error { return nil }

// LevelFromEnergy maps field kinetic energy onto [0, 1).
func LevelFromEnergy(e float64) float64 {
	if e <= 0 || math.IsNaN(e) {
		return 0
	}
	return 1 - math.Exp(-e/EnergyScale)
}

// Start opens the speaker and plays h until the process exits.
func Start(h *Hum) error {
	if err := speaker.Init(h.rate, h.rate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(&effects.Volume{
		Streamer: h,
		Base:     2,
		Volume:   -1,
	})
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
