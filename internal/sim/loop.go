package sim

import (
	"log"
	"math/rand"
	"sync"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/outline"
	"github.com/iburimskiy/particle-ring/internal/particle"
)

// Frame is what a renderer needs for one frame. Slices are owned by the frame.
type Frame struct {
	Particles []particle.Particle
	Outline   []particle.Vec2
	Settings  config.Settings
	Pointer   particle.Pointer
	Width     int
	Height    int
	Tick      uint64

	KineticEnergy float64
}

// Loop drives the field one tick per frame and holds the live settings. All methods are
// safe to call from input goroutines; rebuilds never overlap a tick.
type Loop struct {
	mu sync.Mutex

	field    *particle.Field
	settings config.Settings
	pointer  particle.Pointer

	width, height int
	tick          uint64
}

// New creates a loop. The field stays empty until the first Resize.
func New(settings config.Settings, rng *rand.Rand) *Loop {
	settings = settings.Normalize()
	return &Loop{
		field:    particle.NewField(rng, settings.PaletteFor()),
		settings: settings,
	}
}

func (l *Loop) SetPointer(x, y float64) {
	l.mu.Lock()
	l.pointer = particle.At(x, y)
	l.mu.Unlock()
}

func (l *Loop) ClearPointer() {
	l.mu.Lock()
	l.pointer = particle.NoPointer
	l.mu.Unlock()
}

func (l *Loop) SetRepulseForce(f float64) {
	l.mu.Lock()
	l.settings.RepulseForce = config.ClampRepulse(f)
	l.mu.Unlock()
}

// NudgeRepulseForce adds delta to the current repulsion and returns the clamped result.
func (l *Loop) NudgeRepulseForce(delta float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings.RepulseForce = config.ClampRepulse(l.settings.RepulseForce + delta)
	return l.settings.RepulseForce
}

func (l *Loop) SetShowOutline(show bool) {
	l.mu.Lock()
	l.settings.ShowOutline = show
	l.mu.Unlock()
}

func (l *Loop) ToggleOutline() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings.ShowOutline = !l.settings.ShowOutline
	return l.settings.ShowOutline
}

// SetCount clamps n and rebuilds the field at the current viewport.
func (l *Loop) SetCount(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings.Count = config.ClampCount(n)
	l.rebuild()
	return l.settings.Count
}

// NudgeCount is SetCount relative to the current count.
func (l *Loop) NudgeCount(delta int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := config.ClampCount(l.settings.Count + delta)
	if n == l.settings.Count {
		return n
	}
	l.settings.Count = n
	l.rebuild()
	return n
}

// Resize records a new viewport and relays the ring out at the current count.
// Same-size calls are ignored once the field exists.
func (l *Loop) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if width == l.width && height == l.height && l.field.Len() > 0 {
		return
	}
	l.width, l.height = width, height
	l.rebuild()
}

func (l *Loop) rebuild() {
	if l.width <= 0 || l.height <= 0 {
		return
	}
	l.field.Rebuild(l.settings.Count, float64(l.width), float64(l.height))
	log.Printf("rebuilt ring: %d particles, viewport %dx%d", l.settings.Count, l.width, l.height)
}

// Step advances one tick and returns the frame to draw.
func (l *Loop) Step() Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.field.Tick(l.pointer, l.settings.RepulseForce)
	l.tick++
	return l.frame()
}

// Snapshot returns the current frame without advancing.
func (l *Loop) Snapshot() Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame()
}

func (l *Loop) Settings() config.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// MeanHomeDistance reports how far the ring currently is from rest.
func (l *Loop) MeanHomeDistance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.field.MeanHomeDistance()
}

func (l *Loop) frame() Frame {
	ps := l.field.Particles()
	return Frame{
		Particles:     append([]particle.Particle(nil), ps...),
		Outline:       outline.Build(ps, l.settings.ShowOutline),
		Settings:      l.settings,
		Pointer:       l.pointer,
		Width:         l.width,
		Height:        l.height,
		Tick:          l.tick,
		KineticEnergy: l.field.KineticEnergy(),
	}
}
