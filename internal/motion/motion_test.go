package motion

import (
	"math"
	"testing"

	"github.com/san-kum/sway/internal/graph"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

func anchor(pos vec.Vec2) world.Node {
	n := world.NewNode(pos)
	n.Type = world.NodeAnchor
	return n
}

func TestNoneModePinsTarget(t *testing.T) {
	w := world.New()
	h := w.AddNode(anchor(vec.New(3, 4)))
	w.Node(h).TargetPosition = vec.New(100, 100)

	g := graph.New()
	g.Rebuild(nil)
	Update(w, g, world.NewPlayground(vec.New(300, 300)), 0, vec.Vec2{}, false)

	n := w.Node(h)
	if n.TargetPosition != n.Position {
		t.Errorf("target = %v, want pinned to position %v", n.TargetPosition, n.Position)
	}
	if n.Position != vec.New(3, 4) {
		t.Errorf("static anchor moved to %v", n.Position)
	}
}

func TestFollowTargetBoundedStep(t *testing.T) {
	w := world.New()
	h := w.AddNode(anchor(vec.New(0, 0)))
	n := w.Node(h)
	n.MovementMode = world.MoveFollowTarget
	n.MovementSpeed = 12

	g := graph.New()
	g.Rebuild(nil)
	Update(w, g, world.NewPlayground(vec.New(300, 300)), 0, vec.New(100, 0), true)

	if math.Abs(n.Position.X-12) > 1e-9 {
		t.Errorf("position.X = %f, want one speed-bounded step of 12", n.Position.X)
	}
	// prev shifts with position so the step injects no velocity.
	if v := n.Velocity(); !v.IsZero() {
		t.Errorf("step injected velocity %v", v)
	}
}

func TestFollowTargetReachesWithoutOvershoot(t *testing.T) {
	w := world.New()
	h := w.AddNode(anchor(vec.New(0, 0)))
	n := w.Node(h)
	n.MovementMode = world.MoveFollowTarget
	n.MovementSpeed = 12

	g := graph.New()
	g.Rebuild(nil)
	Update(w, g, world.NewPlayground(vec.New(300, 300)), 0, vec.New(5, 0), true)

	if math.Abs(n.Position.X-5) > 1e-9 {
		t.Errorf("position.X = %f, want exactly 5", n.Position.X)
	}
}

func TestFollowTargetDeadZone(t *testing.T) {
	w := world.New()
	h := w.AddNode(anchor(vec.New(0, 0)))
	n := w.Node(h)
	n.MovementMode = world.MoveFollowTarget

	g := graph.New()
	g.Rebuild(nil)
	Update(w, g, world.NewPlayground(vec.New(300, 300)), 0, vec.New(0.3, 0), true)

	if !n.Position.IsZero() {
		t.Errorf("moved %v inside the dead zone", n.Position)
	}
}

func TestFollowTargetNoFollowPoint(t *testing.T) {
	w := world.New()
	h := w.AddNode(anchor(vec.New(7, 7)))
	n := w.Node(h)
	n.MovementMode = world.MoveFollowTarget

	g := graph.New()
	g.Rebuild(nil)
	Update(w, g, world.NewPlayground(vec.New(300, 300)), 0, vec.Vec2{}, false)

	if n.Position != vec.New(7, 7) {
		t.Errorf("anchor moved without a follow point: %v", n.Position)
	}
}

func TestCircleTarget(t *testing.T) {
	n := world.NewNode(vec.Vec2{})
	n.PathCenter = vec.New(10, 20)
	n.PathAmplitude = vec.New(100, 50)

	got := circleTarget(&n, math.Pi/2)
	want := vec.New(10, 70)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("circleTarget = %v, want %v", got, want)
	}
}

func TestWaveTargetDoublesVerticalFrequency(t *testing.T) {
	n := world.NewNode(vec.Vec2{})
	n.PathAmplitude = vec.New(100, 100)

	got := waveTarget(&n, math.Pi/4)
	if math.Abs(got.X-100*math.Cos(math.Pi/4)) > 1e-9 {
		t.Errorf("wave X = %f", got.X)
	}
	if math.Abs(got.Y-100) > 1e-9 {
		t.Errorf("wave Y = %f, want sin(pi/2)*100 = 100", got.Y)
	}
}

func TestNormalNodesIgnored(t *testing.T) {
	w := world.New()
	h := w.AddNode(world.NewNode(vec.New(1, 1)))
	n := w.Node(h)
	n.MovementMode = world.MoveProcedural

	g := graph.New()
	g.Rebuild(nil)
	Update(w, g, world.NewPlayground(vec.New(300, 300)), 10, vec.Vec2{}, false)

	if n.Position != vec.New(1, 1) {
		t.Errorf("normal node moved to %v", n.Position)
	}
}

func TestWanderDeterministic(t *testing.T) {
	run := func() vec.Vec2 {
		w := world.New()
		h := w.AddNode(anchor(vec.New(0, 0)))
		n := w.Node(h)
		n.MovementMode = world.MoveProcedural
		n.PathType = world.PathWander

		g := graph.New()
		g.Rebuild(nil)
		pg := world.NewPlayground(vec.New(400, 400))
		for i := 0; i < 50; i++ {
			Update(w, g, pg, float64(i)*0.016, vec.Vec2{}, false)
		}
		return n.Position
	}

	first := run()
	if first.IsZero() {
		t.Fatal("wander never moved the anchor")
	}
	for i := 0; i < 3; i++ {
		if again := run(); again != first {
			t.Fatalf("wander diverged across identical runs: %v vs %v", again, first)
		}
	}
}

func TestWanderStaysInBounds(t *testing.T) {
	w := world.New()
	h := w.AddNode(anchor(vec.New(0, 0)))
	n := w.Node(h)
	n.MovementMode = world.MoveProcedural
	n.PathType = world.PathWander
	n.PathAmplitude = vec.Splat(100)

	g := graph.New()
	g.Rebuild(nil)
	pg := world.NewPlayground(vec.New(150, 150))

	boundsMin := pg.InnerMin().Add(vec.Splat(n.Radius))
	boundsMax := pg.InnerMax().Sub(vec.Splat(n.Radius))
	for i := 0; i < 500; i++ {
		Update(w, g, pg, float64(i)*0.016, vec.Vec2{}, false)
		tp := n.TargetPosition
		if tp.X < boundsMin.X-1e-9 || tp.X > boundsMax.X+1e-9 ||
			tp.Y < boundsMin.Y-1e-9 || tp.Y > boundsMax.Y+1e-9 {
			t.Fatalf("tick %d: wander target %v escaped bounds [%v, %v]", i, tp, boundsMin, boundsMax)
		}
	}
}

func TestStuckDetectionFlipsHeading(t *testing.T) {
	n := world.NewNode(vec.New(0, 0))
	n.Type = world.NodeAnchor
	// Tiny amplitude keeps the target within the stuck threshold.
	n.PathAmplitude = vec.Splat(1)
	n.WanderDirection = 0

	w := world.New()
	h := w.AddNode(n)
	g := graph.New()
	g.Rebuild(nil)

	node := w.Node(h)
	wanderTarget(w, g, world.NewPlayground(vec.New(300, 300)), h, node, 0, w.Handles())

	if math.Abs(math.Abs(node.WanderDirection)-math.Pi) > 0.5 {
		t.Errorf("heading = %f, want flipped near ±pi", node.WanderDirection)
	}
}

func TestBoundarySteeringPushesInward(t *testing.T) {
	boundsMin := vec.New(-100, -100)
	boundsMax := vec.New(100, 100)

	// Scan point beyond the right wall while heading +x: steer toward pi.
	s := boundarySteering(vec.New(120, 0), boundsMin, boundsMax, 0, SteeringStrength)
	if s <= 0 {
		t.Errorf("steering = %f, want positive turn toward pi", s)
	}

	// Inside bounds: no correction.
	if s := boundarySteering(vec.New(0, 0), boundsMin, boundsMax, 0, SteeringStrength); s != 0 {
		t.Errorf("steering inside bounds = %f, want 0", s)
	}
}

func TestNodeSteeringSkipsConnected(t *testing.T) {
	w := world.New()
	a := w.AddNode(anchor(vec.New(0, 0)))
	b := w.AddNode(world.NewNode(vec.New(30, 0)))
	if _, err := w.AddConstraint(a, b, 30); err != nil {
		t.Fatal(err)
	}

	g := graph.New()
	g.Rebuild(w.Constraints())

	n := w.Node(a)
	s := nodeSteering(w, g, a, n, vec.New(30, 0), 0, SteeringStrength, w.Handles())
	if s != 0 {
		t.Errorf("steered %f away from a constraint-linked node", s)
	}
}

func TestNodeSteeringAvoidsStranger(t *testing.T) {
	w := world.New()
	a := w.AddNode(anchor(vec.New(0, 10)))
	w.AddNode(world.NewNode(vec.New(30, 0)))

	g := graph.New()
	g.Rebuild(nil)

	n := w.Node(a)
	s := nodeSteering(w, g, a, n, vec.New(32, 0), 0, SteeringStrength, w.Handles())
	if s == 0 {
		t.Error("no steering away from an unconnected node near the scan point")
	}
}
