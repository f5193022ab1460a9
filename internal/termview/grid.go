package termview

import (
	"image/color"

	"github.com/iburimskiy/particle-ring/internal/particle"
	"github.com/iburimskiy/particle-ring/internal/sim"
)

// Pixel size of one terminal cell. The simulation runs in pixels so the ring keeps the
// same physics as the window backend.
const (
	CellW = 8
	CellH = 16
)

const (
	GlyphOutline = '·'
	GlyphSmall   = '•'
	GlyphLarge   = '●'

	largeRadius = 4.5
)

type Cell struct {
	Rune  rune
	Color color.RGBA
}

// Grid is a row-major cols×rows block of cells. A zero Rune is an empty cell.
type Grid struct {
	Cols, Rows int
	Cells      []Cell
}

func NewGrid(cols, rows int) Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return Grid{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
}

func (g Grid) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return Cell{}
	}
	return g.Cells[row*g.Cols+col]
}

func (g Grid) set(col, row int, c Cell) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return
	}
	g.Cells[row*g.Cols+col] = c
}

// Viewport is the pixel size the simulation sees for a terminal of cols×rows.
func Viewport(cols, rows int) (int, int) {
	return cols * CellW, rows * CellH
}

// PixelAt is the pixel centre of a cell.
func PixelAt(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellW, (float64(row) + 0.5) * CellH
}

func CellOf(p particle.Vec2) (int, int) {
	return floorDiv(p.X, CellW), floorDiv(p.Y, CellH)
}

func floorDiv(v float64, size int) int {
	c := int(v / float64(size))
	if v < 0 && float64(c*size) != v {
		c--
	}
	return c
}

// Rasterize maps a frame onto the grid: outline segments first, particles on top.
func Rasterize(f sim.Frame, cols, rows int, outlineColor color.RGBA) Grid {
	g := NewGrid(cols, rows)

	for i := 1; i < len(f.Outline); i++ {
		c0, r0 := CellOf(f.Outline[i-1])
		c1, r1 := CellOf(f.Outline[i])
		line(c0, r0, c1, r1, func(c, r int) {
			g.set(c, r, Cell{Rune: GlyphOutline, Color: outlineColor})
		})
	}

	for _, p := range f.Particles {
		c, r := CellOf(p.Pos)
		glyph := GlyphSmall
		if p.Radius >= largeRadius {
			glyph = GlyphLarge
		}
		g.set(c, r, Cell{Rune: glyph, Color: p.Color})
	}
	return g
}

// line walks the cells from (x0, y0) to (x1, y1) inclusive (Bresenham).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
