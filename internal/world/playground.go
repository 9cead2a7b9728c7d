package world

import "github.com/san-kum/sway/internal/vec"

// Playground defaults.
const (
	DefaultBorderMargin  = 10.0
	DefaultStrokeWidth   = 2.0
	DefaultImpactDamping = 0.5
)

// Playground is the rectangular world bounds, centered on the origin. The
// collision surface is the inner edge of the border stroke.
type Playground struct {
	HalfSize      vec.Vec2
	BorderMargin  float64
	StrokeWidth   float64
	ImpactDamping float64
}

// NewPlayground returns bounds with the given half extents and default
// margin, stroke and damping.
func NewPlayground(halfSize vec.Vec2) Playground {
	return Playground{
		HalfSize:      halfSize,
		BorderMargin:  DefaultBorderMargin,
		StrokeWidth:   DefaultStrokeWidth,
		ImpactDamping: DefaultImpactDamping,
	}
}

// StrokeOuterMin is the outer edge of the border stroke.
func (p Playground) StrokeOuterMin() vec.Vec2 {
	return p.HalfSize.Neg().Add(vec.Splat(p.BorderMargin))
}

// StrokeOuterMax is the outer edge of the border stroke.
func (p Playground) StrokeOuterMax() vec.Vec2 {
	return p.HalfSize.Sub(vec.Splat(p.BorderMargin))
}

// InnerMin is the inner edge of the border stroke, the collision surface.
func (p Playground) InnerMin() vec.Vec2 {
	return p.HalfSize.Neg().Add(vec.Splat(p.BorderMargin + p.StrokeWidth))
}

// InnerMax is the inner edge of the border stroke, the collision surface.
func (p Playground) InnerMax() vec.Vec2 {
	return p.HalfSize.Sub(vec.Splat(p.BorderMargin + p.StrokeWidth))
}
