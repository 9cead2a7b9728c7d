package graph

import (
	"sort"

	"github.com/san-kum/sway/internal/world"
)

// Chain is a maximal constraint path through nodes of degree at most two.
// Nodes holds the path in order; RestLengths[i] is the link between Nodes[i]
// and Nodes[i+1].
type Chain struct {
	Nodes       []world.Handle
	RestLengths []float64
}

// Pair is a standalone constraint edge: incident to a branching node, part
// of a cycle, or an isolated two-node link. Pairs are relaxed iteratively
// instead of being solved in path order.
type Pair struct {
	A          world.Handle
	B          world.Handle
	RestLength float64
}

type edgeKey struct{ a, b world.Handle }

func keyFor(a, b world.Handle) edgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Partition splits the current topology into chains and standalone pairs.
// Every constraint edge lands in exactly one bucket, in deterministic order.
func (g *Graph) Partition() ([]Chain, []Pair) {
	var chains []Chain
	var standalone []Pair

	nodes := g.sortedNodes()

	// Edges between degree-≤2 nodes are chain candidates; the rest relax
	// iteratively. subAdj is the candidate subgraph.
	subAdj := make(map[world.Handle][]Edge)
	seenEdge := make(map[edgeKey]bool)

	for _, h := range nodes {
		for _, e := range g.adjacency[h] {
			if !h.Less(e.Node) {
				continue
			}
			if g.Degree(h) > 2 || g.Degree(e.Node) > 2 {
				standalone = append(standalone, Pair{A: h, B: e.Node, RestLength: e.RestLength})
				continue
			}
			subAdj[h] = append(subAdj[h], e)
			subAdj[e.Node] = append(subAdj[e.Node], Edge{Node: h, RestLength: e.RestLength})
		}
	}

	// Path endpoints have exactly one candidate edge. Walking from each
	// endpoint covers all open paths; anything left over is a cycle.
	endpoints := make([]world.Handle, 0)
	for h, edges := range subAdj {
		if len(edges) == 1 {
			endpoints = append(endpoints, h)
		}
	}
	sort.Slice(endpoints, func(i, j int) bool { return endpoints[i].Less(endpoints[j]) })

	for _, start := range endpoints {
		if len(subAdj[start]) == 1 && seenEdge[keyFor(start, subAdj[start][0].Node)] {
			continue
		}
		chain := walkPath(start, subAdj, seenEdge)
		switch {
		case len(chain.RestLengths) >= 2:
			chains = append(chains, chain)
		case len(chain.RestLengths) == 1:
			// An isolated single edge carries no path ordering to exploit.
			standalone = append(standalone, Pair{A: chain.Nodes[0], B: chain.Nodes[1], RestLength: chain.RestLengths[0]})
		}
	}

	// Cycles: all candidate nodes have two edges, so no endpoint ever
	// reached them. Chains cannot contain cycles; relax them pairwise.
	for _, h := range nodes {
		for _, e := range subAdj[h] {
			if !h.Less(e.Node) || seenEdge[keyFor(h, e.Node)] {
				continue
			}
			seenEdge[keyFor(h, e.Node)] = true
			standalone = append(standalone, Pair{A: h, B: e.Node, RestLength: e.RestLength})
		}
	}

	return chains, standalone
}

func walkPath(start world.Handle, subAdj map[world.Handle][]Edge, seenEdge map[edgeKey]bool) Chain {
	chain := Chain{Nodes: []world.Handle{start}}
	prev := world.None
	current := start

	for {
		var next world.Handle
		var rest float64
		found := false
		for _, e := range subAdj[current] {
			if e.Node == prev || seenEdge[keyFor(current, e.Node)] {
				continue
			}
			next, rest = e.Node, e.RestLength
			found = true
			break
		}
		if !found {
			return chain
		}
		seenEdge[keyFor(current, next)] = true
		chain.Nodes = append(chain.Nodes, next)
		chain.RestLengths = append(chain.RestLengths, rest)
		prev, current = current, next
	}
}
