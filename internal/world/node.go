package world

import (
	"math"

	"github.com/san-kum/sway/internal/vec"
)

// NodeType classifies a node's role in the simulation.
type NodeType int

const (
	NodeNormal NodeType = iota
	NodeAnchor
	NodeLimb
)

func (t NodeType) String() string {
	switch t {
	case NodeAnchor:
		return "anchor"
	case NodeLimb:
		return "limb"
	default:
		return "normal"
	}
}

// MovementMode selects how an anchor node drives its target position.
type MovementMode int

const (
	MoveNone MovementMode = iota
	MoveFollowTarget
	MoveProcedural
)

func (m MovementMode) String() string {
	switch m {
	case MoveFollowTarget:
		return "follow"
	case MoveProcedural:
		return "procedural"
	default:
		return "none"
	}
}

// PathType selects the procedural path function for MoveProcedural anchors.
type PathType int

const (
	PathCircle PathType = iota
	PathWave
	PathWander
)

func (p PathType) String() string {
	switch p {
	case PathWave:
		return "wave"
	case PathWander:
		return "wander"
	default:
		return "circle"
	}
}

// Node is a point mass integrated with Verlet stepping. Velocity is implicit
// in the difference between Position and PrevPosition.
type Node struct {
	Position     vec.Vec2 `json:"position"`
	PrevPosition vec.Vec2 `json:"prev_position"`
	Acceleration vec.Vec2 `json:"acceleration"`
	Radius       float64  `json:"radius"`
	Type         NodeType `json:"node_type"`
	ChainAngle   float64  `json:"chain_angle"`

	MovementMode  MovementMode `json:"movement_mode"`
	MovementSpeed float64      `json:"movement_speed"`

	PathType        PathType `json:"path_type"`
	PathAmplitude   vec.Vec2 `json:"path_amplitude"`
	PathPhase       float64  `json:"path_phase"`
	PathCenter      vec.Vec2 `json:"path_center"`
	WanderDirection float64  `json:"wander_direction"`

	TargetPosition   vec.Vec2 `json:"target_position"`
	AngleConstraint  float64  `json:"angle_constraint"`
	CollisionDamping float64  `json:"collision_damping"`
}

// Default node parameters.
const (
	DefaultRadius           = 5.0
	DefaultMovementSpeed    = 12.0
	DefaultCollisionDamping = 0.5
)

// NewNode returns a node at rest at the given position with default tuning.
func NewNode(position vec.Vec2) Node {
	return Node{
		Position:         position,
		PrevPosition:     position,
		Radius:           DefaultRadius,
		ChainAngle:       math.Pi,
		MovementSpeed:    DefaultMovementSpeed,
		AngleConstraint:  math.Pi / 4,
		PathAmplitude:    vec.Splat(100),
		CollisionDamping: DefaultCollisionDamping,
	}
}

// Velocity returns the implicit per-tick velocity.
func (n *Node) Velocity() vec.Vec2 {
	return n.Position.Sub(n.PrevPosition)
}

// Shift moves the node without changing its implicit velocity.
func (n *Node) Shift(delta vec.Vec2) {
	n.Position = n.Position.Add(delta)
	n.PrevPosition = n.PrevPosition.Add(delta)
}
