package world

// Rest-length bounds enforced at construction and on every edit.
const (
	MinConstraintDistance = 10.0
	MaxConstraintDistance = 200.0
)

// ConstraintID identifies a constraint for edit and removal. IDs are never
// reused within one World.
type ConstraintID uint64

// Constraint is a distance link between two nodes. Nodes are referenced by
// handle only; a constraint whose endpoint died is purged, never followed.
type Constraint struct {
	A          Handle
	B          Handle
	RestLength float64
}

// NewConstraint builds a constraint with the rest length clamped to the
// valid range. Endpoint validity is the caller's concern.
func NewConstraint(a, b Handle, restLength float64) Constraint {
	return Constraint{A: a, B: b, RestLength: ClampRestLength(restLength)}
}

// Involves reports whether h is one of the constraint's endpoints.
func (c Constraint) Involves(h Handle) bool { return c.A == h || c.B == h }

// Other returns the opposite endpoint, or None if h is not an endpoint.
func (c Constraint) Other(h Handle) Handle {
	switch h {
	case c.A:
		return c.B
	case c.B:
		return c.A
	default:
		return None
	}
}

func ClampRestLength(l float64) float64 {
	if l < MinConstraintDistance {
		return MinConstraintDistance
	}
	if l > MaxConstraintDistance {
		return MaxConstraintDistance
	}
	return l
}
