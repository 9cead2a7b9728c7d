package tui

import (
	"github.com/san-kum/sway/internal/sim"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// canvas rasterizes world coordinates to terminal cells. World y grows
// up, rows grow down, so the vertical axis flips during projection.
type canvas struct {
	cells  [][]rune
	width  int
	height int
}

func newCanvas(width, height int) *canvas {
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = make([]rune, width)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &canvas{cells: cells, width: width, height: height}
}

func (c *canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cells[y][x] = r
	}
}

// line draws with Bresenham stepping.
func (c *canvas) line(x1, y1, x2, y2 int, r rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// project maps a world position into cell coordinates.
func (c *canvas) project(p vec.Vec2, pg world.Playground) (int, int) {
	half := pg.HalfSize
	x := (p.X + half.X) / (2 * half.X) * float64(c.width-1)
	y := (1 - (p.Y+half.Y)/(2*half.Y)) * float64(c.height-1)
	return int(x), int(y)
}

// drawWorld renders the playground border, constraints and nodes.
// Nodes draw last so they sit on top of their links.
func (c *canvas) drawWorld(s *sim.Simulator) {
	pg := s.Playground()
	w := s.World()

	for x := 0; x < c.width; x++ {
		c.set(x, 0, '─')
		c.set(x, c.height-1, '─')
	}
	for y := 0; y < c.height; y++ {
		c.set(0, y, '│')
		c.set(c.width-1, y, '│')
	}
	c.set(0, 0, '┌')
	c.set(c.width-1, 0, '┐')
	c.set(0, c.height-1, '└')
	c.set(c.width-1, c.height-1, '┘')

	for _, con := range w.Constraints() {
		na, nb := w.Node(con.A), w.Node(con.B)
		if na == nil || nb == nil {
			continue
		}
		x1, y1 := c.project(na.Position, pg)
		x2, y2 := c.project(nb.Position, pg)
		c.line(x1, y1, x2, y2, '·')
	}

	for _, h := range w.Handles() {
		n := w.Node(h)
		x, y := c.project(n.Position, pg)
		c.set(x, y, nodeGlyph(n.Type))
	}
}

func nodeGlyph(t world.NodeType) rune {
	switch t {
	case world.NodeAnchor:
		return '@'
	case world.NodeLimb:
		return 'o'
	default:
		return 'O'
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
