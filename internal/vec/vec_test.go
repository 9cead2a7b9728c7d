package vec

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	v := New(3, 4).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("expected unit length, got %f", v.Length())
	}

	zero := Vec2{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("normalizing zero vector should stay zero, got %v", zero)
	}
}

func TestClamp(t *testing.T) {
	min := New(-10, -10)
	max := New(10, 10)

	tests := []struct {
		in   Vec2
		want Vec2
	}{
		{New(0, 0), New(0, 0)},
		{New(-20, 5), New(-10, 5)},
		{New(5, 20), New(5, 10)},
		{New(-20, 20), New(-10, 10)},
	}

	for _, tt := range tests {
		got := tt.in.Clamp(min, max)
		if got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	a := New(0, 0)
	b := New(10, 20)

	mid := a.Lerp(b, 0.5)
	if mid != New(5, 10) {
		t.Errorf("expected midpoint (5,10), got %v", mid)
	}
	if a.Lerp(b, 0) != a || a.Lerp(b, 1) != b {
		t.Error("lerp endpoints should match inputs")
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
	}

	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 && math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
		if got > math.Pi+1e-9 || got < -math.Pi-1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f outside (-π, π]", tt.in, got)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !New(1, 2).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec2{X: math.NaN()}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec2{Y: math.Inf(1)}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi / 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("FromAngle(π/2) = %v, want (0,1)", v)
	}
	if math.Abs(FromAngle(1.3).Angle()-1.3) > 1e-12 {
		t.Error("Angle should invert FromAngle")
	}
}
