package limb

import (
	"math"
	"sort"

	"github.com/san-kum/sway/internal/graph"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// fallbackLength stands in for a segment whose constraint vanished between
// rebuild and solve.
const fallbackLength = 1.0

// SolveAll runs the FABRIK pass over every limb set. graphChanged forces
// segment lengths to be recomputed from the constraint graph. Bodies are
// visited in handle order so the pass is deterministic.
func SolveAll(w *world.World, g *graph.Graph, sets map[world.Handle]*Set, pg world.Playground, graphChanged bool, dt float64) {
	bodies := make([]world.Handle, 0, len(sets))
	for h := range sets {
		bodies = append(bodies, h)
	}
	sort.Slice(bodies, func(i, j int) bool { return bodies[i].Less(bodies[j]) })

	innerMin := pg.InnerMin()
	innerMax := pg.InnerMax()

	for _, body := range bodies {
		bodyNode := w.Node(body)
		if bodyNode == nil {
			continue
		}
		set := sets[body]
		for i := range set.Limbs {
			if len(set.Limbs[i].Joints) == 0 {
				continue
			}
			solveLimb(w, g, &set.Limbs[i], body, bodyNode.Position, innerMin, innerMax, graphChanged, dt)
		}
	}
}

func solveLimb(w *world.World, g *graph.Graph, l *Limb, body world.Handle, bodyPos, innerMin, innerMax vec.Vec2, graphChanged bool, dt float64) {
	jointCount := len(l.Joints)

	if graphChanged || len(l.Lengths) != jointCount {
		recalcLengths(l, body, g)
	}

	ideal := idealTarget(w, l, body, bodyPos, innerMin, innerMax)
	if l.Target.IsZero() {
		l.Target = ideal
	}

	advanceStep(l, ideal, dt)

	target := l.Target.Clamp(innerMin, innerMax)

	positions := make([]vec.Vec2, 0, jointCount+1)
	positions = append(positions, bodyPos)
	for _, j := range l.Joints {
		n := w.Node(j)
		if n == nil {
			return
		}
		positions = append(positions, n.Position)
	}

	if len(l.Lengths) != jointCount {
		return
	}

	total := 0.0
	for _, seg := range l.Lengths {
		total += seg
	}

	if target.Distance(bodyPos) >= total {
		// Out of reach: fully extend toward the target direction.
		dir := target.Sub(bodyPos).Normalize()
		for i := range l.Lengths {
			positions[i+1] = positions[i].Add(dir.Scale(l.Lengths[i]))
		}
	} else {
		last := len(positions) - 1
		for pass := 0; pass < l.Iterations; pass++ {
			// Backward: pin the end effector to the target, pull the chain in.
			positions[last] = target
			for i := len(l.Lengths) - 1; i >= 0; i-- {
				positions[i] = constrainDistance(positions[i], positions[i+1], l.Lengths[i])
			}

			// Forward: pin the base to the body, push the chain out.
			positions[0] = bodyPos
			for i := 0; i < len(l.Lengths); i++ {
				positions[i+1] = constrainDistance(positions[i+1], positions[i], l.Lengths[i])
			}

			if jointCount > 1 {
				applyBendFlips(positions, l)
			}

			if positions[last].Distance(target) <= l.Tolerance {
				break
			}
		}
	}

	for i, j := range l.Joints {
		n := w.Node(j)
		if n == nil {
			continue
		}
		p := positions[i+1].Clamp(innerMin.Add(vec.Splat(n.Radius)), innerMax.Sub(vec.Splat(n.Radius)))
		n.Position = p

		// Orientation: interior joints face the next joint, the tip keeps
		// the direction it was reached from.
		if i < jointCount-1 {
			n.ChainAngle = positions[i+2].Sub(positions[i+1]).Angle()
		} else {
			n.ChainAngle = positions[i+1].Sub(positions[i]).Angle()
		}
	}
}

// advanceStep drives the gait state machine. Planted: start a step once the
// ideal footing drifts past StepThreshold. Stepping: ease between start and
// destination with a sine lift peaking mid-step, re-aiming if the ideal
// point keeps moving; snap to the destination at full progress.
func advanceStep(l *Limb, ideal vec.Vec2, dt float64) {
	if !l.IsStepping {
		if l.Target.Distance(ideal) > l.StepThreshold {
			l.IsStepping = true
			l.StepStart = l.Target
			l.StepDest = ideal
			l.StepProgress = 0
		}
		return
	}

	l.StepProgress += dt * l.StepSpeed

	if l.StepDest.Distance(ideal) > l.StepThreshold*0.5 {
		l.StepDest = ideal
	}

	if l.StepProgress >= 1 {
		l.IsStepping = false
		l.StepProgress = 0
		l.Target = l.StepDest
		return
	}

	t := l.StepProgress
	t = t * t * (3 - 2*t)
	flat := l.StepStart.Lerp(l.StepDest, t)
	flat.Y += math.Sin(t*math.Pi) * l.StepHeight
	l.Target = flat
}

// recalcLengths refreshes per-segment rest lengths from the graph.
func recalcLengths(l *Limb, body world.Handle, g *graph.Graph) {
	l.Lengths = l.Lengths[:0]
	if len(l.Joints) == 0 {
		return
	}

	l.Lengths = append(l.Lengths, segmentLength(g, body, l.Joints[0]))
	for i := 0; i < len(l.Joints)-1; i++ {
		l.Lengths = append(l.Lengths, segmentLength(g, l.Joints[i], l.Joints[i+1]))
	}
}

func segmentLength(g *graph.Graph, a, b world.Handle) float64 {
	if d, ok := g.RestLength(a, b); ok {
		return d
	}
	return fallbackLength
}

// idealTarget picks the point the limb wants to plant on: the target node's
// position if one is set, otherwise a ray from the body along its chain
// angle (plus the limb's direction offset) out to MaxReach, clipped to the
// playground interior.
func idealTarget(w *world.World, l *Limb, body world.Handle, bodyPos, innerMin, innerMax vec.Vec2) vec.Vec2 {
	if l.TargetNode.IsValid() {
		if n := w.Node(l.TargetNode); n != nil {
			return n.Position
		}
	}

	bodyAngle := 0.0
	if n := w.Node(body); n != nil {
		bodyAngle = n.ChainAngle
	}

	dir := vec.FromAngle(bodyAngle + l.TargetDirectionOffset)
	end := bodyPos.Add(dir.Scale(l.MaxReach))
	return rayClipAABB(bodyPos, end, innerMin, innerMax)
}

// constrainDistance places pos at exactly d from anchor along their current
// direction; coincident points fall back to +x.
func constrainDistance(pos, anchor vec.Vec2, d float64) vec.Vec2 {
	dir := pos.Sub(anchor).Normalize()
	if dir.IsZero() {
		return anchor.Add(vec.New(d, 0))
	}
	return anchor.Add(dir.Scale(d))
}

// applyBendFlips resolves the two-solution elbow ambiguity: interior joints
// sitting on the wrong side of the root-tip axis are reflected across it.
func applyBendFlips(positions []vec.Vec2, l *Limb) {
	if len(positions) < 3 {
		return
	}

	root := positions[0]
	tip := positions[len(positions)-1]
	axis := tip.Sub(root)
	axisLenSq := axis.LengthSq()
	if axisLenSq < 1e-6 {
		return
	}

	for i := 1; i < len(positions)-1; i++ {
		joint := positions[i]
		cross := axis.Cross(joint.Sub(root))

		flip := i-1 < len(l.FlipBend) && l.FlipBend[i-1]
		desired := -1.0
		if flip {
			desired = 1.0
		}

		if sign(cross) != desired {
			t := joint.Sub(root).Dot(axis) / axisLenSq
			projection := root.Add(axis.Scale(t))
			positions[i] = projection.Sub(joint.Sub(projection))
		}
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// rayClipAABB shortens the segment start→end at its first intersection with
// the box, leaving it untouched when it never enters.
func rayClipAABB(start, end, min, max vec.Vec2) vec.Vec2 {
	dir := end.Sub(start)
	if dir.IsZero() {
		return end
	}

	t := 1.0

	if dir.X != 0 {
		tx1 := (min.X - start.X) / dir.X
		tx2 := (max.X - start.X) / dir.X
		tmin, tmax := math.Min(tx1, tx2), math.Max(tx1, tx2)
		if tmax < 0 || tmin > t {
			return end
		}
		if tmin > 0 {
			t = math.Min(t, tmin)
		}
	}
	if dir.Y != 0 {
		ty1 := (min.Y - start.Y) / dir.Y
		ty2 := (max.Y - start.Y) / dir.Y
		tmin, tmax := math.Min(ty1, ty2), math.Max(ty1, ty2)
		if tmax < 0 || tmin > t {
			return end
		}
		if tmin > 0 {
			t = math.Min(t, tmin)
		}
	}

	return start.Add(dir.Scale(t))
}
