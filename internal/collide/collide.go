package collide

import (
	"github.com/san-kum/sway/internal/graph"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// minSeparationDistance guards the push axis against coincident centers.
const minSeparationDistance = 1e-4

// Resolve runs one broad+narrow collision pass over all nodes. cellSize ≤ 0
// falls back to DefaultCellSize. Nodes in the same constraint group are
// never separated.
func Resolve(w *world.World, g *graph.Graph, cellSize float64) {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}

	handles := w.Handles()
	positions := make([]vec.Vec2, len(handles))
	radii := make([]float64, len(handles))
	for i, h := range handles {
		n := w.Node(h)
		positions[i] = n.Position
		radii[i] = n.Radius
	}

	entries := buildEntries(positions, radii, cellSize)
	pairs := candidatePairs(entries)

	for _, p := range pairs {
		ha, hb := handles[p[0]], handles[p[1]]
		if g.SameGroup(ha, hb) {
			continue
		}

		a := w.Node(ha)
		b := w.Node(hb)

		delta := a.Position.Sub(b.Position)
		dist := delta.Length()
		minDist := a.Radius + b.Radius
		if dist >= minDist || dist <= minSeparationDistance {
			continue
		}

		// Equal-mass split: each node takes half the penetration depth.
		push := delta.Normalize().Scale((minDist - dist) * 0.5)
		a.Shift(push)
		b.Shift(push.Neg())
	}
}
