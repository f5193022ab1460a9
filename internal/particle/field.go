package particle

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// Field owns the ring of particles. Slice order is creation order around the ring and
// the traversal order of the outline.
type Field struct {
	particles  []Particle
	center     Vec2
	ringRadius float64

	rng     *rand.Rand
	palette config.Palette
}

func NewField(rng *rand.Rand, palette config.Palette) *Field {
	return &Field{rng: rng, palette: palette}
}

// Rebuild replaces every particle with count fresh ones laid out on the ring of the
// given viewport.
func (f *Field) Rebuild(count int, width, height float64) {
	if count < 1 {
		count = 1
	}
	f.center = Vec2{width / 2, height / 2}
	f.ringRadius = math.Min(width, height) * RingScale

	f.particles = make([]Particle, count)
	for i := range f.particles {
		angle := float64(i) / float64(count) * 2 * math.Pi
		pos := Vec2{
			X: f.center.X + math.Cos(angle)*f.ringRadius,
			Y: f.center.Y + math.Sin(angle)*f.ringRadius,
		}
		f.particles[i] = Particle{
			Pos:    pos,
			Home:   pos,
			Radius: MinRadius + f.rng.Float64()*RadiusSpan,
			Color:  f.palette(i, count),
		}
	}
}

// Tick updates each particle in order against the live slice.
func (f *Field) Tick(ptr Pointer, repulse float64) {
	for i := range f.particles {
		Update(f.particles, i, ptr, repulse)
	}
}

// Particles returns the live slice; callers must not keep it across a Rebuild.
func (f *Field) Particles() []Particle { return f.particles }

func (f *Field) Len() int { return len(f.particles) }

func (f *Field) Center() Vec2 { return f.center }

func (f *Field) RingRadius() float64 { return f.ringRadius }

// KineticEnergy sums ½|v|² over the field, unit mass.
func (f *Field) KineticEnergy() float64 {
	var e float64
	for _, p := range f.particles {
		e += p.kinetic()
	}
	return e
}

func (f *Field) MeanHomeDistance() float64 {
	if len(f.particles) == 0 {
		return 0
	}
	var sum float64
	for _, p := range f.particles {
		sum += p.Home.Sub(p.Pos).Len()
	}
	return sum / float64(len(f.particles))
}
