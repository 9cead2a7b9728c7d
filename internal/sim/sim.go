// Package sim ties the pipeline stages into a tick-stepped simulator:
// topology tracking, constraint relaxation, limb IK, anchor movement,
// Verlet integration, boundary response and collision avoidance.
package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/sway/internal/collide"
	"github.com/san-kum/sway/internal/graph"
	"github.com/san-kum/sway/internal/limb"
	"github.com/san-kum/sway/internal/motion"
	"github.com/san-kum/sway/internal/physics"
	"github.com/san-kum/sway/internal/solver"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

// Playback gates the physics stages. Topology maintenance and limb
// rebuilding run in every state so edits made while paused are
// reflected immediately.
type Playback int

const (
	Stopped Playback = iota
	Playing
	Paused
)

func (p Playback) String() string {
	switch p {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Simulator owns the world and advances it one tick at a time. It is
// not safe for concurrent use; callers serialize Step with mutations.
type Simulator struct {
	world      *world.World
	playground world.Playground
	graph      *graph.Graph
	limbs      map[world.Handle]*limb.Set

	playback         Playback
	elapsed          float64
	tick             uint64
	lastGraphVersion uint64

	follow    vec.Vec2
	hasFollow bool

	constraintIterations int
	cellSize             float64
}

// New returns a stopped simulator over an empty world.
func New(pg world.Playground) *Simulator {
	return &Simulator{
		world:                world.New(),
		playground:           pg,
		graph:                graph.New(),
		limbs:                make(map[world.Handle]*limb.Set),
		constraintIterations: solver.DefaultIterations,
		cellSize:             collide.DefaultCellSize,
	}
}

// Step advances one tick. Stage order is fixed: prune, graph rebuild,
// constraint solve, limb rebuild, FABRIK, anchor movement, Verlet,
// boundary, collision avoidance. Graph and limb maintenance run in all
// playback states; the physics stages only while Playing.
func (s *Simulator) Step(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &StepError{Tick: s.tick, Stage: "begin",
			Wrapped: fmt.Errorf("%w: dt=%v", ErrBadTimestep, dt)}
	}

	s.world.PruneDangling()

	if s.world.TopologyDirty() {
		s.graph.Rebuild(s.world.Constraints())
		s.world.ClearTopologyDirty()
	}
	graphChanged := s.graph.Version() != s.lastGraphVersion

	playing := s.playback == Playing

	if playing {
		solver.Solve(s.world, s.graph, s.constraintIterations)
	}

	if graphChanged {
		limb.Build(s.world, s.graph, s.limbs)
		s.lastGraphVersion = s.graph.Version()
	}

	if playing {
		limb.SolveAll(s.world, s.graph, s.limbs, s.playground, graphChanged, dt)
		motion.Update(s.world, s.graph, s.playground, s.elapsed, s.follow, s.hasFollow)
		physics.Integrate(s.world, dt)
		physics.CollideBounds(s.world, s.playground)
		collide.Resolve(s.world, s.graph, s.cellSize)

		s.elapsed += dt
		s.tick++

		if err := physics.Validate(s.world); err != nil {
			return &StepError{Tick: s.tick, Stage: "integrate",
				Wrapped: fmt.Errorf("%w: %v", ErrInvalidState, err)}
		}
	}

	return nil
}

// Play starts or resumes physics stepping.
func (s *Simulator) Play() { s.playback = Playing }

// Pause freezes physics while keeping topology maintenance live.
func (s *Simulator) Pause() { s.playback = Paused }

// Stop halts physics and rewinds elapsed time; world contents are kept.
func (s *Simulator) Stop() {
	s.playback = Stopped
	s.elapsed = 0
	s.tick = 0
}

// TogglePlayback flips between Playing and Paused; a stopped simulator
// starts playing.
func (s *Simulator) TogglePlayback() {
	if s.playback == Playing {
		s.playback = Paused
	} else {
		s.playback = Playing
	}
}

func (s *Simulator) Playback() Playback { return s.playback }
func (s *Simulator) Elapsed() float64   { return s.elapsed }
func (s *Simulator) Tick() uint64       { return s.tick }

// SetFollowPoint supplies the live target consumed by FollowTarget
// anchors, e.g. a cursor position in world coordinates.
func (s *Simulator) SetFollowPoint(p vec.Vec2) {
	s.follow = p
	s.hasFollow = true
}

// ClearFollowPoint removes the follow target; FollowTarget anchors hold
// position until a new point arrives.
func (s *Simulator) ClearFollowPoint() {
	s.hasFollow = false
}

func (s *Simulator) World() *world.World          { return s.world }
func (s *Simulator) Graph() *graph.Graph          { return s.graph }
func (s *Simulator) Playground() world.Playground { return s.playground }

// LimbSet returns the limbs attached to a body node, or nil.
func (s *Simulator) LimbSet(body world.Handle) *limb.Set {
	return s.limbs[body]
}

// LimbSets exposes the full body-to-limbs mapping for read-only
// inspection.
func (s *Simulator) LimbSets() map[world.Handle]*limb.Set {
	return s.limbs
}

// SetConstraintIterations tunes relaxation rounds, clamped to at
// least one.
func (s *Simulator) SetConstraintIterations(n int) {
	if n < 1 {
		n = 1
	}
	s.constraintIterations = n
}

// SetCellSize tunes the collision broad-phase grid. Non-positive
// values fall back to the default.
func (s *Simulator) SetCellSize(size float64) {
	s.cellSize = size
}
