package outline

import "github.com/iburimskiy/particle-ring/internal/particle"

// Build returns the closed polyline p0, p1, ..., pn-1, p0 through the particle centres,
// or nil when the outline is hidden or there are fewer than two particles.
func Build(ps []particle.Particle, show bool) []particle.Vec2 {
	if !show || len(ps) < 2 {
		return nil
	}
	pts := make([]particle.Vec2, 0, len(ps)+1)
	for _, p := range ps {
		pts = append(pts, p.Pos)
	}
	return append(pts, ps[0].Pos)
}
