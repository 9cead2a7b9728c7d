// Package limb derives articulated IK chains from the constraint topology
// and positions them with a FABRIK solver driving a stepping gait.
package limb

import (
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// Default limb tuning.
const (
	DefaultIterations    = 10
	DefaultTolerance     = 0.1
	DefaultMaxReach      = 100.0
	DefaultStepThreshold = 20.0
	DefaultStepSpeed     = 5.0
	DefaultStepHeight    = 10.0
)

// Limb is an ordered joint chain solved toward a target. The stepping
// fields form a small gait state machine: a planted foot tracks its ideal
// footing until the error exceeds StepThreshold, then animates a step from
// StepStart to StepDest with a vertical lift.
type Limb struct {
	Joints  []world.Handle
	Lengths []float64
	Target  vec.Vec2

	Iterations int
	Tolerance  float64
	FlipBend   []bool

	TargetNode            world.Handle
	MaxReach              float64
	TargetDirectionOffset float64

	StepThreshold float64
	StepSpeed     float64
	StepHeight    float64
	IsStepping    bool
	StepStart     vec.Vec2
	StepDest      vec.Vec2
	StepProgress  float64
}

// NewLimb returns a limb over the given joints with default tuning.
func NewLimb(joints []world.Handle) Limb {
	return Limb{
		Joints:        joints,
		Iterations:    DefaultIterations,
		Tolerance:     DefaultTolerance,
		FlipBend:      make([]bool, len(joints)),
		MaxReach:      DefaultMaxReach,
		StepThreshold: DefaultStepThreshold,
		StepSpeed:     DefaultStepSpeed,
		StepHeight:    DefaultStepHeight,
	}
}

// sameJoints reports whether two limbs cover the identical joint sequence.
func sameJoints(a, b []world.Handle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Set groups the limbs attached to one body node.
type Set struct {
	Limbs []Limb
}
