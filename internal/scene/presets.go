package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// Preset scenes, used as CLI starting points and TUI demos.
var presets = map[string]func() SceneData{
	"snake":    Snake,
	"crawler":  Crawler,
	"starfish": Starfish,
}

// PresetNames lists available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds the named preset scene.
func Preset(name string) (SceneData, error) {
	build, ok := presets[name]
	if !ok {
		return SceneData{}, fmt.Errorf("scene: unknown preset %q", name)
	}
	return build(), nil
}

// Snake is a wandering anchor head towing a chain of body segments.
func Snake() SceneData {
	const segments = 12
	const spacing = 25.0

	var s SceneData

	head := world.NewNode(vec.New(0, 0))
	head.Type = world.NodeAnchor
	head.MovementMode = world.MoveProcedural
	head.PathType = world.PathWander
	head.Radius = 8
	s.Nodes = append(s.Nodes, head)

	for i := 1; i <= segments; i++ {
		seg := world.NewNode(vec.New(-float64(i)*spacing, 0))
		seg.Radius = 6 - 3*float64(i)/segments
		s.Nodes = append(s.Nodes, seg)
		s.Constraints = append(s.Constraints, ConstraintData{
			NodeA:      i - 1,
			NodeB:      i,
			RestLength: spacing,
		})
	}

	return s
}

// Crawler is a two-segment body with four stepping legs.
func Crawler() SceneData {
	const legSegment = 30.0

	var s SceneData

	body := world.NewNode(vec.New(0, 0))
	body.Type = world.NodeAnchor
	body.MovementMode = world.MoveProcedural
	body.PathType = world.PathWander
	body.Radius = 12
	s.Nodes = append(s.Nodes, body)

	tail := world.NewNode(vec.New(-40, 0))
	tail.Radius = 9
	s.Nodes = append(s.Nodes, tail)
	s.Constraints = append(s.Constraints, ConstraintData{NodeA: 0, NodeB: 1, RestLength: 40})

	// Two legs per body segment, mirrored across the spine.
	legRoots := []struct {
		body int
		side float64
	}{
		{0, 1}, {0, -1},
		{1, 1}, {1, -1},
	}
	for _, root := range legRoots {
		base := s.Nodes[root.body].Position
		prev := root.body
		for j := 1; j <= 2; j++ {
			joint := world.NewNode(vec.New(base.X, base.Y+root.side*legSegment*float64(j)))
			joint.Type = world.NodeLimb
			joint.Radius = 4
			s.Nodes = append(s.Nodes, joint)
			idx := len(s.Nodes) - 1
			s.Constraints = append(s.Constraints, ConstraintData{
				NodeA:      prev,
				NodeB:      idx,
				RestLength: legSegment,
			})
			prev = idx
		}
	}

	return s
}

// Starfish is a static core with five radial limb arms.
func Starfish() SceneData {
	const arms = 5
	const jointsPerArm = 3
	const armSegment = 28.0

	var s SceneData

	core := world.NewNode(vec.New(0, 0))
	core.Type = world.NodeAnchor
	core.MovementMode = world.MoveProcedural
	core.PathType = world.PathCircle
	core.PathAmplitude = vec.Splat(60)
	core.Radius = 14
	s.Nodes = append(s.Nodes, core)

	for a := 0; a < arms; a++ {
		angle := 2 * math.Pi * float64(a) / arms
		dir := vec.FromAngle(angle)
		prev := 0
		for j := 1; j <= jointsPerArm; j++ {
			joint := world.NewNode(dir.Scale(armSegment * float64(j)))
			joint.Type = world.NodeLimb
			joint.Radius = 5
			s.Nodes = append(s.Nodes, joint)
			idx := len(s.Nodes) - 1
			s.Constraints = append(s.Constraints, ConstraintData{
				NodeA:      prev,
				NodeB:      idx,
				RestLength: armSegment,
			})
			prev = idx
		}
	}

	return s
}
