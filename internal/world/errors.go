package world

import "errors"

// Domain errors for world mutations.
var (
	// ErrUnknownNode indicates a handle that does not refer to a live node.
	ErrUnknownNode = errors.New("world: unknown node handle")

	// ErrUnknownConstraint indicates a constraint id that is not live.
	ErrUnknownConstraint = errors.New("world: unknown constraint id")

	// ErrSelfLoop indicates a constraint linking a node to itself.
	ErrSelfLoop = errors.New("world: constraint endpoints must differ")

	// ErrDuplicateConstraint indicates the two nodes are already linked.
	ErrDuplicateConstraint = errors.New("world: constraint already exists between nodes")
)
