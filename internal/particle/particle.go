package particle

import (
	"image/color"
	"math"
)

const (
	RepulseRadius = 80.0  // pointer proximity in pixels
	Spring        = 0.08  // pull toward home per tick
	Friction      = 0.92  // velocity kept per tick
	Dt            = 0.016 // fixed integration step, not wall time

	MinRadius  = 2.0
	RadiusSpan = 5.0

	// RingScale is the ring radius as a fraction of the shorter viewport side.
	RingScale = 0.3
)

// --- 2D vector ---
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Pointer is the cursor in canvas pixels. The zero value means no pointer.
type Pointer struct {
	Pos    Vec2
	Active bool
}

var NoPointer Pointer

func At(x, y float64) Pointer {
	return Pointer{Pos: Vec2{x, y}, Active: true}
}

// --- Particle ---
type Particle struct {
	Pos    Vec2
	Home   Vec2
	Vel    Vec2
	Radius float64
	Color  color.RGBA
}

// Update advances ps[i] by one tick. Overlaps with other particles are pushed apart in
// position, moving both ps[i] and the other particle, so a pair gets corrected once from
// each side per tick.
func Update(ps []Particle, i int, ptr Pointer, repulse float64) {
	p := &ps[i]

	p.Vel = p.Vel.Add(repulsion(p.Pos, ptr, repulse))

	for j := range ps {
		if j != i {
			separate(p, &ps[j])
		}
	}

	p.Vel = p.Vel.Add(p.Home.Sub(p.Pos).Mul(Spring))
	p.Vel = p.Vel.Mul(Friction)
	p.Pos = p.Pos.Add(p.Vel.Mul(Dt))
}

// repulsion is the velocity delta the pointer gives a particle at pos.
func repulsion(pos Vec2, ptr Pointer, repulse float64) Vec2 {
	if !ptr.Active {
		return Vec2{}
	}
	d := pos.Sub(ptr.Pos)
	dist := d.Len()
	if dist >= RepulseRadius {
		return Vec2{}
	}
	dir := Vec2{1, 0} // pointer dead on the centre pushes along +x
	if dist > 0 {
		dir = d.Mul(1 / dist)
	}
	return dir.Mul((RepulseRadius - dist) * repulse)
}

// separate moves a and b half the overlap each, away from one another.
// Coincident centres have no direction and are left alone.
func separate(a, b *Particle) bool {
	d := a.Pos.Sub(b.Pos)
	dist := d.Len()
	minDist := a.Radius + b.Radius
	if dist >= minDist || dist <= 0 {
		return false
	}
	sep := d.Mul((minDist - dist) * 0.5 / dist)
	a.Pos = a.Pos.Add(sep)
	b.Pos = b.Pos.Sub(sep)
	return true
}

func (p Particle) kinetic() float64 {
	return 0.5 * (p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y)
}
