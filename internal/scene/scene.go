// Package scene serializes world snapshots for import and export.
// Handles are flattened to node indices so a scene file is stable
// across arena generations.
package scene

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/sway/internal/limb"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// ConstraintData references nodes by their index in SceneData.Nodes.
type ConstraintData struct {
	NodeA      int     `json:"node_a"`
	NodeB      int     `json:"node_b"`
	RestLength float64 `json:"rest_length"`
}

// LimbData mirrors limb.Limb with joints flattened to node indices.
// TargetNode is nil when the limb aims by chain angle instead.
type LimbData struct {
	Joints                []int     `json:"joints"`
	Target                vec.Vec2  `json:"target"`
	Lengths               []float64 `json:"lengths"`
	Iterations            int       `json:"iterations"`
	Tolerance             float64   `json:"tolerance"`
	FlipBend              []bool    `json:"flip_bend"`
	TargetNode            *int      `json:"target_node"`
	MaxReach              float64   `json:"max_reach"`
	TargetDirectionOffset float64   `json:"target_direction_offset"`
	StepThreshold         float64   `json:"step_threshold"`
	StepSpeed             float64   `json:"step_speed"`
	StepHeight            float64   `json:"step_height"`
	IsStepping            bool      `json:"is_stepping"`
	StepStart             vec.Vec2  `json:"step_start"`
	StepDest              vec.Vec2  `json:"step_dest"`
	StepProgress          float64   `json:"step_progress"`
}

// LimbSetData binds a body node index to its limbs.
type LimbSetData struct {
	BodyNode int        `json:"body_node"`
	Limbs    []LimbData `json:"limbs"`
}

// SceneData is a complete serializable snapshot.
type SceneData struct {
	Nodes       []world.Node     `json:"nodes"`
	Constraints []ConstraintData `json:"constraints"`
	LimbSets    []LimbSetData    `json:"limb_sets"`
}

// Build flattens the world into a SceneData. Node order follows
// ascending handle order, so indices are deterministic.
func Build(w *world.World, sets map[world.Handle]*limb.Set) SceneData {
	handles := w.Handles()
	index := make(map[world.Handle]int, len(handles))

	scene := SceneData{Nodes: make([]world.Node, 0, len(handles))}
	for i, h := range handles {
		index[h] = i
		scene.Nodes = append(scene.Nodes, *w.Node(h))
	}

	for _, c := range w.Constraints() {
		ia, oka := index[c.A]
		ib, okb := index[c.B]
		if !oka || !okb {
			continue
		}
		scene.Constraints = append(scene.Constraints, ConstraintData{
			NodeA:      ia,
			NodeB:      ib,
			RestLength: c.RestLength,
		})
	}

	for _, body := range handles {
		set, ok := sets[body]
		if !ok {
			continue
		}
		lsd := LimbSetData{BodyNode: index[body]}
		for _, l := range set.Limbs {
			lsd.Limbs = append(lsd.Limbs, flattenLimb(l, index))
		}
		scene.LimbSets = append(scene.LimbSets, lsd)
	}

	return scene
}

func flattenLimb(l limb.Limb, index map[world.Handle]int) LimbData {
	ld := LimbData{
		Target:                l.Target,
		Lengths:               append([]float64(nil), l.Lengths...),
		Iterations:            l.Iterations,
		Tolerance:             l.Tolerance,
		FlipBend:              append([]bool(nil), l.FlipBend...),
		MaxReach:              l.MaxReach,
		TargetDirectionOffset: l.TargetDirectionOffset,
		StepThreshold:         l.StepThreshold,
		StepSpeed:             l.StepSpeed,
		StepHeight:            l.StepHeight,
		IsStepping:            l.IsStepping,
		StepStart:             l.StepStart,
		StepDest:              l.StepDest,
		StepProgress:          l.StepProgress,
	}
	for _, j := range l.Joints {
		if i, ok := index[j]; ok {
			ld.Joints = append(ld.Joints, i)
		}
	}
	if i, ok := index[l.TargetNode]; ok && l.TargetNode.IsValid() {
		ld.TargetNode = &i
	}
	return ld
}

// Spawn instantiates a scene into the world, returning the handles of
// the created nodes in scene index order. Out-of-range references are
// skipped, never fatal.
func Spawn(w *world.World, sets map[world.Handle]*limb.Set, scene SceneData) []world.Handle {
	handles := make([]world.Handle, len(scene.Nodes))
	for i, n := range scene.Nodes {
		handles[i] = w.AddNode(n)
	}

	for _, c := range scene.Constraints {
		if c.NodeA < 0 || c.NodeA >= len(handles) || c.NodeB < 0 || c.NodeB >= len(handles) {
			continue
		}
		// Errors here are self-loops from a hand-edited file; skip.
		_, _ = w.AddConstraint(handles[c.NodeA], handles[c.NodeB], c.RestLength)
	}

	for _, lsd := range scene.LimbSets {
		if lsd.BodyNode < 0 || lsd.BodyNode >= len(handles) {
			continue
		}
		set := &limb.Set{}
		for _, ld := range lsd.Limbs {
			set.Limbs = append(set.Limbs, unflattenLimb(ld, handles))
		}
		sets[handles[lsd.BodyNode]] = set
	}

	return handles
}

func unflattenLimb(ld LimbData, handles []world.Handle) limb.Limb {
	l := limb.Limb{
		Target:                ld.Target,
		Lengths:               append([]float64(nil), ld.Lengths...),
		Iterations:            ld.Iterations,
		Tolerance:             ld.Tolerance,
		FlipBend:              append([]bool(nil), ld.FlipBend...),
		TargetNode:            world.None,
		MaxReach:              ld.MaxReach,
		TargetDirectionOffset: ld.TargetDirectionOffset,
		StepThreshold:         ld.StepThreshold,
		StepSpeed:             ld.StepSpeed,
		StepHeight:            ld.StepHeight,
		IsStepping:            ld.IsStepping,
		StepStart:             ld.StepStart,
		StepDest:              ld.StepDest,
		StepProgress:          ld.StepProgress,
	}
	for _, i := range ld.Joints {
		if i >= 0 && i < len(handles) {
			l.Joints = append(l.Joints, handles[i])
		}
	}
	if ld.TargetNode != nil && *ld.TargetNode >= 0 && *ld.TargetNode < len(handles) {
		l.TargetNode = handles[*ld.TargetNode]
	}
	return l
}

// Encode renders a scene as indented JSON.
func Encode(scene SceneData) ([]byte, error) {
	return json.MarshalIndent(scene, "", "  ")
}

// Decode parses a scene from JSON. Missing sections decode to empty
// slices.
func Decode(data []byte) (SceneData, error) {
	var scene SceneData
	if err := json.Unmarshal(data, &scene); err != nil {
		return SceneData{}, fmt.Errorf("scene: decode: %w", err)
	}
	return scene, nil
}
