package world

import "github.com/san-kum/sway/internal/vec"

// World owns the node arena and the constraint list. It is the single source
// of truth for positional state; every other simulation structure references
// nodes by handle. Mutations that change the constraint topology set a dirty
// flag consumed by the graph rebuild stage.
type World struct {
	nodes       arena
	constraints []constraintRecord
	nextID      ConstraintID
	dirty       bool
}

type constraintRecord struct {
	id ConstraintID
	c  Constraint
}

func New() *World {
	return &World{nextID: 1, dirty: true}
}

// AddNode inserts a node and returns its handle. A non-positive radius is
// clamped to the default.
func (w *World) AddNode(n Node) Handle {
	if n.Radius <= 0 {
		n.Radius = DefaultRadius
	}
	return w.nodes.alloc(n)
}

// Node returns a mutable view of the node, or nil for stale handles.
func (w *World) Node(h Handle) *Node {
	return w.nodes.get(h)
}

// SetNodeType changes a node's role. Limb membership feeds limb chain
// derivation, so a type change forces a graph rebuild.
func (w *World) SetNodeType(h Handle, t NodeType) error {
	n := w.nodes.get(h)
	if n == nil {
		return ErrUnknownNode
	}
	if n.Type != t {
		n.Type = t
		w.dirty = true
	}
	return nil
}

// SetMovementMode selects how an anchor drives its target.
func (w *World) SetMovementMode(h Handle, m MovementMode) error {
	n := w.nodes.get(h)
	if n == nil {
		return ErrUnknownNode
	}
	n.MovementMode = m
	return nil
}

// SetPath configures a procedural anchor's path around the given center.
func (w *World) SetPath(h Handle, p PathType, center, amplitude vec.Vec2, phase float64) error {
	n := w.nodes.get(h)
	if n == nil {
		return ErrUnknownNode
	}
	n.PathType = p
	n.PathCenter = center
	n.PathAmplitude = amplitude
	n.PathPhase = phase
	return nil
}

// RemoveNode deletes a node and every constraint touching it.
func (w *World) RemoveNode(h Handle) error {
	if !w.nodes.release(h) {
		return ErrUnknownNode
	}
	kept := w.constraints[:0]
	for _, rec := range w.constraints {
		if rec.c.Involves(h) {
			w.dirty = true
			continue
		}
		kept = append(kept, rec)
	}
	w.constraints = kept
	w.dirty = true
	return nil
}

// Handles lists live nodes in ascending slot order. The order is stable
// between mutations, which keeps every downstream stage deterministic.
func (w *World) Handles() []Handle {
	return w.nodes.handles()
}

// NodeCount returns the number of live nodes.
func (w *World) NodeCount() int { return w.nodes.count }

// AddConstraint links two live nodes at the given rest length (clamped).
// A pair may carry at most one constraint.
func (w *World) AddConstraint(a, b Handle, restLength float64) (ConstraintID, error) {
	if a == b {
		return 0, ErrSelfLoop
	}
	if w.nodes.get(a) == nil || w.nodes.get(b) == nil {
		return 0, ErrUnknownNode
	}
	// Parallel edges would collapse to a single solved link anyway.
	for _, rec := range w.constraints {
		if rec.c.Involves(a) && rec.c.Involves(b) {
			return 0, ErrDuplicateConstraint
		}
	}
	id := w.nextID
	w.nextID++
	w.constraints = append(w.constraints, constraintRecord{id: id, c: NewConstraint(a, b, restLength)})
	w.dirty = true
	return id, nil
}

// RemoveConstraint deletes a constraint by id.
func (w *World) RemoveConstraint(id ConstraintID) error {
	for i, rec := range w.constraints {
		if rec.id == id {
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			w.dirty = true
			return nil
		}
	}
	return ErrUnknownConstraint
}

// SetRestLength edits a constraint's rest length, clamped to the valid range.
func (w *World) SetRestLength(id ConstraintID, restLength float64) error {
	for i := range w.constraints {
		if w.constraints[i].id == id {
			w.constraints[i].c.RestLength = ClampRestLength(restLength)
			w.dirty = true
			return nil
		}
	}
	return ErrUnknownConstraint
}

// Constraint looks up a constraint by id.
func (w *World) Constraint(id ConstraintID) (Constraint, bool) {
	for _, rec := range w.constraints {
		if rec.id == id {
			return rec.c, true
		}
	}
	return Constraint{}, false
}

// Constraints returns all constraints in creation order.
func (w *World) Constraints() []Constraint {
	out := make([]Constraint, len(w.constraints))
	for i, rec := range w.constraints {
		out[i] = rec.c
	}
	return out
}

// ConstraintIDs returns ids in creation order, matching Constraints.
func (w *World) ConstraintIDs() []ConstraintID {
	out := make([]ConstraintID, len(w.constraints))
	for i, rec := range w.constraints {
		out[i] = rec.id
	}
	return out
}

// PruneDangling drops constraints whose endpoints no longer resolve. Runs
// before each graph rebuild so no stage ever follows a dead handle.
func (w *World) PruneDangling() {
	kept := w.constraints[:0]
	for _, rec := range w.constraints {
		if w.nodes.get(rec.c.A) == nil || w.nodes.get(rec.c.B) == nil {
			w.dirty = true
			continue
		}
		kept = append(kept, rec)
	}
	w.constraints = kept
}

// TopologyDirty reports whether the constraint set changed since the last
// ClearTopologyDirty.
func (w *World) TopologyDirty() bool { return w.dirty }

// ClearTopologyDirty is called by the graph rebuild stage after consuming
// the flag.
func (w *World) ClearTopologyDirty() { w.dirty = false }

// MarkTopologyDirty forces a rebuild on the next tick.
func (w *World) MarkTopologyDirty() { w.dirty = true }
