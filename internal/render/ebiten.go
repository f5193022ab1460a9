package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/particle"
	"github.com/iburimskiy/particle-ring/internal/sim"
)

// Style is the fixed look of the outline stroke.
type Style struct {
	OutlineWidth float32
	OutlineColor color.RGBA // straight alpha
}

func StyleFor(s config.Settings) Style {
	c := s.BaseColor()
	alpha := config.OutlineAlpha * 255
	c.A = uint8(alpha)
	return Style{OutlineWidth: config.OutlineWidth, OutlineColor: c}
}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// DrawEbiten draws the particles, then the outline on top.
func DrawEbiten(dst *ebiten.Image, f sim.Frame, style Style) {
	for _, p := range f.Particles {
		vector.DrawFilledCircle(dst, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), p.Color, true)
	}
	strokeOutline(dst, f.Outline, style)
}

// strokeOutline strokes the polyline as a single path so overlapping joints do not
// stack alpha.
func strokeOutline(dst *ebiten.Image, pts []particle.Vec2, style Style) {
	if len(pts) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}

	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:      style.OutlineWidth,
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 4,
	})
	r, g, b, a := normalized(style.OutlineColor)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

func normalized(c color.RGBA) (float32, float32, float32, float32) {
	return float32(c.R) / 0xff, float32(c.G) / 0xff, float32(c.B) / 0xff, float32(c.A) / 0xff
}
