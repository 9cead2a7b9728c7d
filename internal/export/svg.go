// Package export renders recorded runs and scene snapshots to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sway/internal/trace"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// TrajectoryToSVG draws one node's recorded path as a polyline,
// auto-fitted with 10% padding. World y points up, SVG y down.
func TrajectoryToSVG(points []vec.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// NodePath extracts one node's positions from recorded frames.
func NodePath(frames []trace.Frame, nodeIndex int) []vec.Vec2 {
	points := make([]vec.Vec2, 0, len(frames))
	for _, frame := range frames {
		i := nodeIndex * 2
		if i+1 >= len(frame.Positions) {
			continue
		}
		points = append(points, vec.New(frame.Positions[i], frame.Positions[i+1]))
	}
	return points
}

// WorldToSVG draws a scene snapshot: constraints as lines, nodes as
// circles sized by radius, anchors highlighted.
func WorldToSVG(w *world.World, pg world.Playground, width, height int) string {
	half := pg.HalfSize

	project := func(p vec.Vec2) (float64, float64) {
		x := (p.X + half.X) / (2 * half.X) * float64(width)
		y := float64(height) - (p.Y+half.Y)/(2*half.Y)*float64(height)
		return x, y
	}
	scale := float64(width) / (2 * half.X)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(`<g stroke="#444444" stroke-width="1">
`)
	for _, c := range w.Constraints() {
		na, nb := w.Node(c.A), w.Node(c.B)
		if na == nil || nb == nil {
			continue
		}
		x1, y1 := project(na.Position)
		x2, y2 := project(nb.Position)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x1, y1, x2, y2))
	}
	sb.WriteString("</g>\n")

	for _, h := range w.Handles() {
		n := w.Node(h)
		x, y := project(n.Position)
		fill := "#00ff00"
		switch n.Type {
		case world.NodeAnchor:
			fill = "#ff8800"
		case world.NodeLimb:
			fill = "#00aaff"
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, n.Radius*scale, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
