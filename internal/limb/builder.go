package limb

import (
	"github.com/san-kum/sway/internal/graph"
	"github.com/san-kum/sway/internal/world"
)

// maxChainJoints caps limb tracing against degenerate topologies.
const maxChainJoints = 100

// Build reconstructs limb sets from the current topology. For every
// non-limb node with limb-typed neighbors, each such neighbor is traced
// outward into an ordered joint chain, one limb per chain. Existing limbs
// whose joint sequence is unchanged keep their tuning and stepping state
// (lengths are cleared for recomputation); changed chains are replaced and
// bodies without chains lose their set. Intended to run only when the graph
// changed, so unrelated edits never reset IK tuning.
func Build(w *world.World, g *graph.Graph, sets map[world.Handle]*Set) {
	active := make(map[world.Handle]bool)

	for _, body := range w.Handles() {
		bodyNode := w.Node(body)
		if bodyNode.Type == world.NodeLimb {
			continue
		}

		var limbs []Limb
		for _, e := range g.Neighbors(body) {
			neighbor := w.Node(e.Node)
			if neighbor == nil || neighbor.Type != world.NodeLimb {
				continue
			}
			chain := traceChain(w, g, e.Node, body)
			if len(chain) > 0 {
				limbs = append(limbs, NewLimb(chain))
			}
		}

		if len(limbs) == 0 {
			continue
		}
		active[body] = true
		merge(sets, body, limbs)
	}

	for body := range sets {
		if !active[body] {
			delete(sets, body)
		}
	}
}

// merge installs fresh limbs for a body, preserving tunables of limbs whose
// joint sequence survived the rebuild.
func merge(sets map[world.Handle]*Set, body world.Handle, fresh []Limb) {
	existing, ok := sets[body]
	if !ok {
		sets[body] = &Set{Limbs: fresh}
		return
	}

	identical := len(existing.Limbs) == len(fresh)
	if identical {
		for i := range fresh {
			if !sameJoints(existing.Limbs[i].Joints, fresh[i].Joints) {
				identical = false
				break
			}
		}
	}
	if identical {
		// Rest lengths may have changed even when the joint sequence has
		// not; clear Lengths so the solver recomputes from the graph.
		for i := range existing.Limbs {
			existing.Limbs[i].Lengths = nil
		}
		return
	}

	merged := make([]Limb, 0, len(fresh))
	for _, nl := range fresh {
		preserved := false
		for _, old := range existing.Limbs {
			if sameJoints(old.Joints, nl.Joints) {
				kept := old
				kept.Joints = nl.Joints
				kept.Lengths = nil
				merged = append(merged, kept)
				preserved = true
				break
			}
		}
		if !preserved {
			merged = append(merged, nl)
		}
	}
	sets[body] = &Set{Limbs: merged}
}

// traceChain walks limb-typed nodes outward from start, never turning back
// toward the node it came from. The walk stops at chain ends, non-limb
// nodes, cycles, and the depth cap.
func traceChain(w *world.World, g *graph.Graph, start, body world.Handle) []world.Handle {
	chain := make([]world.Handle, 0, 4)
	prev := body
	current := start

	for depth := 0; depth < maxChainJoints; depth++ {
		chain = append(chain, current)

		next := world.None
		for _, e := range g.Neighbors(current) {
			if e.Node == prev {
				continue
			}
			n := w.Node(e.Node)
			if n != nil && n.Type == world.NodeLimb {
				next = e.Node
				break
			}
		}
		if !next.IsValid() {
			return chain
		}
		for _, seen := range chain {
			if seen == next {
				// Limb cycle; cut the chain here.
				return chain
			}
		}
		prev, current = current, next
	}
	return chain
}
