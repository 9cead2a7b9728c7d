// Package motion drives anchor nodes toward their targets, either a
// follow point supplied by the caller or a procedural path.
package motion

import (
	"math"

	"github.com/san-kum/sway/internal/graph"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

const (
	// MinTargetDistance is the dead zone below which an anchor stops
	// chasing its target.
	MinTargetDistance = 0.5

	// SteeringStrength scales wander look-ahead corrections at the
	// nearest scan distance.
	SteeringStrength = 0.15

	// SteeringThreshold discards corrections too small to matter.
	SteeringThreshold = 0.01

	// StuckDetectionThreshold flips the wander heading when the
	// computed target collapses onto the anchor.
	StuckDetectionThreshold = 5.0

	// TargetSmoothing is the per-tick lerp factor toward the new
	// wander target.
	TargetSmoothing = 0.1

	// NodeAvoidanceBuffer pads radii sums during look-ahead node
	// avoidance.
	NodeAvoidanceBuffer = 15.0

	minAvoidDistance = 1e-4
)

// Update computes targets for every anchor node and advances each a
// bounded step. Procedural paths are deterministic in (elapsed, phase,
// amplitude, center); the follow point feeds FollowTarget anchors.
func Update(w *world.World, g *graph.Graph, pg world.Playground, elapsed float64, follow vec.Vec2, hasFollow bool) {
	handles := w.Handles()

	for _, h := range handles {
		n := w.Node(h)
		if n == nil || n.Type != world.NodeAnchor {
			continue
		}

		switch n.MovementMode {
		case world.MoveNone:
			n.TargetPosition = n.Position
		case world.MoveFollowTarget:
			if hasFollow {
				n.TargetPosition = follow
				moveToward(n)
			}
		case world.MoveProcedural:
			n.TargetPosition = proceduralTarget(w, g, pg, h, n, elapsed, handles)
			moveToward(n)
		}
	}
}

// moveToward advances the node at most MovementSpeed toward its target,
// shifting prev with it so no velocity is injected.
func moveToward(n *world.Node) {
	dir := n.TargetPosition.Sub(n.Position)
	dist := dir.Length()
	if dist < MinTargetDistance {
		return
	}
	step := math.Min(n.MovementSpeed, dist)
	n.Shift(dir.Normalize().Scale(step))
}

func proceduralTarget(w *world.World, g *graph.Graph, pg world.Playground, h world.Handle, n *world.Node, elapsed float64, handles []world.Handle) vec.Vec2 {
	t := elapsed + n.PathPhase

	switch n.PathType {
	case world.PathCircle:
		return circleTarget(n, t)
	case world.PathWave:
		return waveTarget(n, t)
	case world.PathWander:
		return wanderTarget(w, g, pg, h, n, t, handles)
	}
	return n.Position
}

func circleTarget(n *world.Node, t float64) vec.Vec2 {
	return vec.New(
		n.PathCenter.X+n.PathAmplitude.X*math.Cos(t),
		n.PathCenter.Y+n.PathAmplitude.Y*math.Sin(t),
	)
}

func waveTarget(n *world.Node, t float64) vec.Vec2 {
	return vec.New(
		n.PathCenter.X+n.PathAmplitude.X*math.Cos(t),
		n.PathCenter.Y+n.PathAmplitude.Y*math.Sin(t*2),
	)
}

// wanderTarget mutates WanderDirection as a side effect: drift,
// look-ahead steering, boundary handling and stuck detection all adjust
// the heading before the target is placed.
func wanderTarget(w *world.World, g *graph.Graph, pg world.Playground, h world.Handle, n *world.Node, t float64, handles []world.Handle) vec.Vec2 {
	boundsMin := pg.InnerMin().Add(vec.Splat(n.Radius))
	boundsMax := pg.InnerMax().Sub(vec.Splat(n.Radius))
	amplitude := n.PathAmplitude.X

	n.WanderDirection += naturalDrift(t) * 0.008

	heading := n.WanderDirection + angleVariation(t)
	dir := vec.FromAngle(heading)

	applyLookaheadSteering(w, g, h, n, dir, amplitude, boundsMin, boundsMax, handles)

	target := n.Position.Add(vec.FromAngle(n.WanderDirection + angleVariation(t)).Scale(amplitude))

	target = handleBoundary(n, target, boundsMin, boundsMax, t)

	if n.Position.Distance(target) < StuckDetectionThreshold {
		n.WanderDirection = vec.NormalizeAngle(n.WanderDirection + math.Pi)
	}

	return n.TargetPosition.Lerp(target, TargetSmoothing)
}

func naturalDrift(t float64) float64 {
	return math.Sin(t*0.3)*0.15 + math.Sin(t*0.17)*0.08
}

func angleVariation(t float64) float64 {
	return math.Sin(t*0.7)*0.15 + math.Sin(t*1.3)*0.08
}

// applyLookaheadSteering scans ahead at decreasing distances and steers
// the wander heading away from walls and unconnected nodes. Nearer
// obstacles get stronger corrections.
func applyLookaheadSteering(w *world.World, g *graph.Graph, h world.Handle, n *world.Node, dir vec.Vec2, amplitude float64, boundsMin, boundsMax vec.Vec2, handles []world.Handle) {
	scanDistances := [4]float64{amplitude * 2.5, amplitude * 2.0, amplitude * 1.5, amplitude}
	heading := n.WanderDirection

	for _, scanDist := range scanDistances {
		scanPoint := n.Position.Add(dir.Scale(scanDist))
		strength := SteeringStrength / (scanDist / amplitude)

		if s := boundarySteering(scanPoint, boundsMin, boundsMax, heading, strength); math.Abs(s) > SteeringThreshold {
			n.WanderDirection += s
		}

		if s := nodeSteering(w, g, h, n, scanPoint, heading, strength, handles); math.Abs(s) > SteeringThreshold {
			n.WanderDirection += s
		}
	}
}

func boundarySteering(point, boundsMin, boundsMax vec.Vec2, heading, strength float64) float64 {
	steering := 0.0

	if point.X < boundsMin.X {
		steering += vec.AngleDiff(0, heading) * strength
	} else if point.X > boundsMax.X {
		steering += vec.AngleDiff(math.Pi, heading) * strength
	}

	if point.Y < boundsMin.Y {
		steering += vec.AngleDiff(math.Pi/2, heading) * strength
	} else if point.Y > boundsMax.Y {
		steering += vec.AngleDiff(-math.Pi/2, heading) * strength
	}

	return steering
}

// nodeSteering accumulates away-from-obstacle corrections for every
// node the scan point approaches, skipping self and constraint-linked
// nodes.
func nodeSteering(w *world.World, g *graph.Graph, h world.Handle, n *world.Node, scanPoint vec.Vec2, heading, strength float64, handles []world.Handle) float64 {
	steering := 0.0

	for _, other := range handles {
		if other == h || g.SameGroup(h, other) {
			continue
		}
		on := w.Node(other)
		if on == nil {
			continue
		}

		dist := scanPoint.Distance(on.Position)
		minSafe := on.Radius + n.Radius + NodeAvoidanceBuffer
		if dist >= minSafe || dist <= minAvoidDistance {
			continue
		}

		urgency := 1 - dist/minSafe
		awayAngle := n.Position.Sub(on.Position).Angle()
		steering += vec.AngleDiff(awayAngle, heading) * strength * urgency
	}

	return steering
}

func handleBoundary(n *world.Node, target vec.Vec2, boundsMin, boundsMax vec.Vec2, t float64) vec.Vec2 {
	outLeft := target.X < boundsMin.X
	outRight := target.X > boundsMax.X
	outBottom := target.Y < boundsMin.Y
	outTop := target.Y > boundsMax.Y

	if (outLeft || outRight) && (outBottom || outTop) {
		return cornerFlip(n, target, boundsMin, boundsMax, t)
	}

	if outLeft {
		target.X = boundsMin.X
		n.WanderDirection = steerSmoothly(n.WanderDirection, 0, 0.1)
	} else if outRight {
		target.X = boundsMax.X
		n.WanderDirection = steerSmoothly(n.WanderDirection, math.Pi, 0.1)
	}

	if outBottom {
		target.Y = boundsMin.Y
		n.WanderDirection = steerSmoothly(n.WanderDirection, math.Pi/2, 0.1)
	} else if outTop {
		target.Y = boundsMax.Y
		n.WanderDirection = steerSmoothly(n.WanderDirection, -math.Pi/2, 0.1)
	}

	return target
}

// cornerFlip turns the heading roughly around with a small jitter so
// repeated corner hits do not retrace the same path, then re-aims the
// target at the same distance.
func cornerFlip(n *world.Node, target vec.Vec2, boundsMin, boundsMax vec.Vec2, t float64) vec.Vec2 {
	n.WanderDirection = vec.NormalizeAngle(n.WanderDirection + math.Pi + math.Sin(t*7.3)*0.3)

	amplitude := target.Distance(n.Position)
	flipped := n.Position.Add(vec.FromAngle(n.WanderDirection + angleVariation(t)).Scale(amplitude))

	return flipped.Clamp(boundsMin, boundsMax)
}

func steerSmoothly(current, target, fraction float64) float64 {
	return current + vec.AngleDiff(target, current)*fraction
}
