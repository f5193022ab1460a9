package config

import (
	"image/color"
	"math"
)

const (
	PaletteMono    = "mono"
	PaletteRainbow = "rainbow"
)

// Palette picks the colour of particle i out of n at creation time.
type Palette func(i, n int) color.RGBA

var palettes = map[string]func(base color.RGBA) Palette{
	PaletteMono: func(base color.RGBA) Palette {
		return func(int, int) color.RGBA { return base }
	},
	PaletteRainbow: func(color.RGBA) Palette {
		return func(i, n int) color.RGBA {
			r, g, b := hsvToRgb(360*float64(i)/float64(n), 0.8, 1.0)
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	},
}

// PaletteFor resolves the palette named in s, falling back to mono.
func (s Settings) PaletteFor() Palette {
	mk, ok := palettes[s.Palette]
	if !ok {
		mk = palettes[PaletteMono]
	}
	return mk(s.BaseColor())
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
