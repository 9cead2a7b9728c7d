package export

import (
	"strings"
	"testing"

	"github.com/san-kum/sway/internal/trace"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

func TestTrajectoryToSVG(t *testing.T) {
	points := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}}
	svg := TrajectoryToSVG(points, 400, 300, "#00ff00")

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, `<path fill="none" stroke="#00ff00"`) {
		t.Error("missing trajectory path")
	}
	if strings.Count(svg, " L") != len(points)-1 {
		t.Errorf("expected %d line segments", len(points)-1)
	}
}

func TestTrajectoryToSVGTooFewPoints(t *testing.T) {
	if svg := TrajectoryToSVG([]vec.Vec2{{X: 1, Y: 1}}, 400, 300, "#fff"); svg != "" {
		t.Error("expected empty output for a single point")
	}
}

func TestTrajectoryToSVGDegenerateRange(t *testing.T) {
	// All points on one horizontal line; must not divide by zero.
	points := []vec.Vec2{{X: 0, Y: 3}, {X: 10, Y: 3}}
	svg := TrajectoryToSVG(points, 100, 100, "#fff")
	if !strings.Contains(svg, "<path") {
		t.Error("degenerate vertical range should still render")
	}
}

func TestNodePath(t *testing.T) {
	frames := []trace.Frame{
		{Time: 0, Positions: []float64{1, 2, 3, 4}},
		{Time: 1, Positions: []float64{5, 6, 7, 8}},
	}

	path := NodePath(frames, 1)
	if len(path) != 2 {
		t.Fatalf("path length = %d, want 2", len(path))
	}
	if path[0] != vec.New(3, 4) || path[1] != vec.New(7, 8) {
		t.Errorf("path = %v", path)
	}

	// Out-of-range node index yields no points.
	if got := NodePath(frames, 5); len(got) != 0 {
		t.Errorf("expected empty path, got %v", got)
	}
}

func TestWorldToSVG(t *testing.T) {
	w := world.New()
	a := w.AddNode(world.NewNode(vec.New(0, 0)))
	anchor := world.NewNode(vec.New(50, 0))
	anchor.Type = world.NodeAnchor
	b := w.AddNode(anchor)
	if _, err := w.AddConstraint(a, b, 50); err != nil {
		t.Fatal(err)
	}

	svg := WorldToSVG(w, world.NewPlayground(vec.New(200, 200)), 400, 400)

	if strings.Count(svg, "<circle") != 2 {
		t.Error("expected one circle per node")
	}
	if strings.Count(svg, "<line") != 1 {
		t.Error("expected one line per constraint")
	}
	if !strings.Contains(svg, `fill="#ff8800"`) {
		t.Error("anchor color missing")
	}
}
