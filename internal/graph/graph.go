// Package graph maintains the derived constraint topology: adjacency,
// connected-component groups and the chain/standalone partition used by the
// constraint solver. The graph is rebuilt from scratch whenever the
// constraint set changes; group ids are assigned in first-seen order over
// sorted handles and are only meaningful within a single tick.
package graph

import (
	"sort"

	"github.com/san-kum/sway/internal/world"
)

// Edge is one directed adjacency entry.
type Edge struct {
	Node       world.Handle
	RestLength float64
}

type Graph struct {
	adjacency map[world.Handle][]Edge
	groups    map[world.Handle]int
	groupN    int
	version   uint64
}

func New() *Graph {
	return &Graph{
		adjacency: make(map[world.Handle][]Edge),
		groups:    make(map[world.Handle]int),
	}
}

// Rebuild replaces the adjacency and group maps from the constraint list.
// The flood fill is iterative; deep chains must not grow the call stack.
func (g *Graph) Rebuild(constraints []world.Constraint) {
	g.adjacency = make(map[world.Handle][]Edge, len(g.adjacency))
	g.groups = make(map[world.Handle]int, len(g.groups))
	g.groupN = 0
	g.version++

	for _, c := range constraints {
		g.adjacency[c.A] = append(g.adjacency[c.A], Edge{Node: c.B, RestLength: c.RestLength})
		g.adjacency[c.B] = append(g.adjacency[c.B], Edge{Node: c.A, RestLength: c.RestLength})
	}

	keys := g.sortedNodes()
	stack := make([]world.Handle, 0, len(keys))

	for _, node := range keys {
		if _, seen := g.groups[node]; seen {
			continue
		}
		id := g.groupN
		g.groupN++
		g.groups[node] = id
		stack = append(stack[:0], node)

		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range g.adjacency[current] {
				if _, seen := g.groups[e.Node]; !seen {
					g.groups[e.Node] = id
					stack = append(stack, e.Node)
				}
			}
		}
	}
}

// Version increments on every rebuild. Reactive stages compare it against
// the version they last consumed.
func (g *Graph) Version() uint64 { return g.version }

// Neighbors returns the adjacency list for a node (nil when isolated).
func (g *Graph) Neighbors(h world.Handle) []Edge { return g.adjacency[h] }

// Degree returns the number of constraints touching the node.
func (g *Graph) Degree(h world.Handle) int { return len(g.adjacency[h]) }

// Group returns the connected-component id for the node.
func (g *Graph) Group(h world.Handle) (int, bool) {
	id, ok := g.groups[h]
	return id, ok
}

// SameGroup reports whether both nodes belong to one connected component.
// Nodes absent from the graph are in no group at all.
func (g *Graph) SameGroup(a, b world.Handle) bool {
	ga, oka := g.groups[a]
	gb, okb := g.groups[b]
	return oka && okb && ga == gb
}

// GroupCount returns the number of connected components.
func (g *Graph) GroupCount() int { return g.groupN }

// RestLength returns the rest length of the edge between a and b.
func (g *Graph) RestLength(a, b world.Handle) (float64, bool) {
	for _, e := range g.adjacency[a] {
		if e.Node == b {
			return e.RestLength, true
		}
	}
	return 0, false
}

func (g *Graph) sortedNodes() []world.Handle {
	keys := make([]world.Handle, 0, len(g.adjacency))
	for h := range g.adjacency {
		keys = append(keys, h)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
