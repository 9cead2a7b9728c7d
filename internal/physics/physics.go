// Package physics implements the integration stages: Verlet position
// stepping and the playground boundary response.
package physics

import (
	"fmt"

	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// Integrate advances every node one Verlet step. Acceleration is treated as
// already scaled for a single step: new = 2·pos − prev + acc·dt.
func Integrate(w *world.World, dt float64) {
	for _, h := range w.Handles() {
		n := w.Node(h)
		next := n.Position.Scale(2).Sub(n.PrevPosition).Add(n.Acceleration.Scale(dt))
		n.PrevPosition = n.Position
		n.Position = next
	}
}

// Validate reports the first node whose position became non-finite. A NaN
// or Inf here means an upstream contract violation (unclamped force input,
// malformed snapshot) and is the only fatal condition in the core.
func Validate(w *world.World) error {
	for _, h := range w.Handles() {
		n := w.Node(h)
		if !n.Position.IsFinite() || !n.PrevPosition.IsFinite() {
			return fmt.Errorf("node %d/%d: non-finite position %v", h.Index, h.Generation, n.Position)
		}
	}
	return nil
}

// CollideBounds clamps nodes to the playground's inner rectangle and
// reflects their motion with impact damping. Each axis is handled
// independently; a corner hit applies both axis corrections. The node's
// CollisionDamping removes a further fraction of the reflected velocity,
// so a node with CollisionDamping of 1 lands dead on the wall.
func CollideBounds(w *world.World, pg world.Playground) {
	innerMin := pg.InnerMin()
	innerMax := pg.InnerMax()
	damping := pg.ImpactDamping

	for _, h := range w.Handles() {
		n := w.Node(h)
		r := n.Radius
		vel := n.Velocity()
		retain := damping * (1 - n.CollisionDamping)

		n.Position.X, n.PrevPosition.X, n.Acceleration.X = bounceAxis(
			n.Position.X, n.PrevPosition.X, n.Acceleration.X, vel.X,
			innerMin.X+r, innerMax.X-r, damping, retain)

		n.Position.Y, n.PrevPosition.Y, n.Acceleration.Y = bounceAxis(
			n.Position.Y, n.PrevPosition.Y, n.Acceleration.Y, vel.Y,
			innerMin.Y+r, innerMax.Y-r, damping, retain)
	}
}

// bounceAxis clamps one axis to [min, max]. On impact the position snaps to
// the bound, acceleration flips to point back inside (scaled by damping) and
// prev is rebuilt from the retained fraction of the pre-collision velocity
// so the next Verlet step reflects instead of penetrating.
func bounceAxis(pos, prev, accel, vel, min, max, damping, retain float64) (float64, float64, float64) {
	switch {
	case pos < min:
		pos = min
		return pos, pos + vel*retain, abs(accel) * damping
	case pos > max:
		pos = max
		return pos, pos + vel*retain, -abs(accel) * damping
	default:
		return pos, prev, accel
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ClampToBounds pushes a point inside the inner rectangle, shrunk by radius.
func ClampToBounds(p vec.Vec2, pg world.Playground, radius float64) vec.Vec2 {
	min := pg.InnerMin().Add(vec.Splat(radius))
	max := pg.InnerMax().Sub(vec.Splat(radius))
	return p.Clamp(min, max)
}
