// Package solver relaxes distance constraints each tick. Constraint edges
// are split by topology: maximal paths through degree-≤2 nodes are solved
// once in path order, which keeps rope-like sequences free of the jitter
// that pairwise relaxation produces; everything else (branching nodes,
// cycles, isolated links) converges through a fixed number of Gauss-Seidel
// rounds with the correction split between the endpoints.
package solver

import (
	"github.com/san-kum/sway/internal/graph"
	"github.com/san-kum/sway/internal/world"
)

// DefaultIterations is the relaxation round count for standalone edges.
// Coupled constraints converge approximately within a few rounds; the value
// trades accuracy against tick cost and is exposed through configuration.
const DefaultIterations = 4

const minSolveDistance = 1e-6

// Solve runs one tick of constraint resolution. iterations ≤ 0 falls back
// to DefaultIterations.
func Solve(w *world.World, g *graph.Graph, iterations int) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	chains, standalone := g.Partition()

	for i := range chains {
		solveChain(w, &chains[i])
	}

	for i := 0; i < iterations; i++ {
		for _, p := range standalone {
			relaxPair(w, p)
		}
	}
}

// solveChain walks the path once, pulling each far node to rest distance
// from its near node along the current link direction. When exactly one end
// of the path is an anchor, the walk starts there so the anchor stays put.
func solveChain(w *world.World, c *graph.Chain) {
	if len(c.Nodes) < 2 {
		return
	}

	first := w.Node(c.Nodes[0])
	last := w.Node(c.Nodes[len(c.Nodes)-1])
	if first == nil || last == nil {
		return
	}
	if last.Type == world.NodeAnchor && first.Type != world.NodeAnchor {
		reverseChain(c)
	}

	for i := 0; i < len(c.RestLengths); i++ {
		near := w.Node(c.Nodes[i])
		far := w.Node(c.Nodes[i+1])
		if near == nil || far == nil {
			return
		}

		delta := far.Position.Sub(near.Position)
		dist := delta.Length()
		if dist < minSolveDistance {
			continue
		}

		want := near.Position.Add(delta.Scale(c.RestLengths[i] / dist))
		far.Shift(want.Sub(far.Position))
	}
}

// relaxPair projects one standalone edge toward its rest length. Anchors
// are pinned: an anchor/free pair moves only the free node, an
// anchor/anchor pair is left alone, and a free/free pair splits the
// correction evenly.
func relaxPair(w *world.World, p graph.Pair) {
	a := w.Node(p.A)
	b := w.Node(p.B)
	if a == nil || b == nil {
		return
	}

	delta := b.Position.Sub(a.Position)
	dist := delta.Length()
	if dist < minSolveDistance {
		return
	}

	var wa, wb float64
	switch {
	case a.Type == world.NodeAnchor && b.Type == world.NodeAnchor:
		return
	case a.Type == world.NodeAnchor:
		wa, wb = 0, 1
	case b.Type == world.NodeAnchor:
		wa, wb = 1, 0
	default:
		wa, wb = 0.5, 0.5
	}

	correction := delta.Scale((dist - p.RestLength) / dist)
	a.Shift(correction.Scale(wa))
	b.Shift(correction.Scale(-wb))
}

func reverseChain(c *graph.Chain) {
	for i, j := 0, len(c.Nodes)-1; i < j; i, j = i+1, j-1 {
		c.Nodes[i], c.Nodes[j] = c.Nodes[j], c.Nodes[i]
	}
	for i, j := 0, len(c.RestLengths)-1; i < j; i, j = i+1, j-1 {
		c.RestLengths[i], c.RestLengths[j] = c.RestLengths[j], c.RestLengths[i]
	}
}
