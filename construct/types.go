// SPDX-License-Identifier: MIT

package construct

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
)

// Sentinel errors for route construction.
var (
	// ErrNilTrack is returned if a nil track pointer is passed.
	ErrNilTrack = errors.New("construct: track is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("construct: invalid option supplied")

	// ErrNoRouteFound is returned when the depth bound is exhausted without
	// reaching the goal region. It is not fatal: the Result is still valid.
	ErrNoRouteFound = errors.New("construct: no route found")
)

// Model selects how a state may move.
type Model int

const (
	// ModelVelocity applies racetrack physics: accelerate by at most one per axis, then move.
	ModelVelocity Model = iota
	// ModelConn4 steps to an orthogonal neighbour.
	ModelConn4
	// ModelConn8 steps to any of the eight neighbours.
	ModelConn8
)

func (m Model) String() string {
	switch m {
	case ModelVelocity:
		return "velocity"
	case ModelConn4:
		return "conn4"
	case ModelConn8:
		return "conn8"
	}
	return fmt.Sprintf("model(%d)", int(m))
}

// ParseModel is the inverse of Model.String; matching is case-insensitive.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "velocity":
		return ModelVelocity, nil
	case "conn4":
		return ModelConn4, nil
	case "conn8":
		return ModelConn8, nil
	}
	return 0, fmt.Errorf("%w: unknown model %q", ErrOptionViolation, s)
}

// connectivity is the grid connectivity whose distance field bounds m.
func (m Model) connectivity() track.Connectivity {
	if m == ModelConn4 {
		return track.Conn4
	}
	return track.Conn8
}

// State is a vehicle position plus its velocity on arrival.
type State struct {
	Row, Col   int
	VRow, VCol int
}

// Pos returns the grid position of s.
func (s State) Pos() track.Pos { return track.Pos{Row: s.Row, Col: s.Col} }

// Less orders states lexicographically by (Row, Col, VRow, VCol).
func (s State) Less(o State) bool {
	switch {
	case s.Row != o.Row:
		return s.Row < o.Row
	case s.Col != o.Col:
		return s.Col < o.Col
	case s.VRow != o.VRow:
		return s.VRow < o.VRow
	default:
		return s.VCol < o.VCol
	}
}

// speed is the Chebyshev norm of the velocity.
func (s State) speed() int { return max(abs(s.VRow), abs(s.VCol)) }

// Transition is one move considered during the search.
type Transition struct {
	From, To State
}

// Option configures Construct via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by Construct.
type Option func(*Options)

// Options holds the search parameters and hooks.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth is the maximum number of moves a route may contain.
	MaxDepth int

	// Model selects the move rules.
	Model Model

	// GrassCost is the cost of a move that ends on grass (≥ 1).
	GrassCost int

	// MaxSpeed caps |v|∞ under ModelVelocity; 0 disables the cap.
	MaxSpeed int

	// Workers > 1 checks successors of each expanded state concurrently.
	Workers int

	// Prune enables the distance-field lower bound.
	Prune bool

	// RecordExplored keeps every accepted transition in Result.Explored.
	RecordExplored bool

	// OnExpand is called before a state's successors are generated.
	OnExpand func(s State, cost, depth int)

	err error
}

// DefaultOptions returns Options with:
//   - Context.Background()
//   - MaxDepth 1, ModelVelocity, GrassCost 2, no speed cap
//   - a single worker, pruning on, explored transitions not recorded
//   - a no-op OnExpand hook.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		MaxDepth:  1,
		Model:     ModelVelocity,
		GrassCost: 2,
		Workers:   1,
		Prune:     true,
		OnExpand:  func(State, int, int) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth bounds the number of moves.
//
//	d >= 0: routes have at most d moves
//	d < 0:  invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithModel selects the move rules.
func WithModel(m Model) Option {
	return func(o *Options) {
		switch m {
		case ModelVelocity, ModelConn4, ModelConn8:
			o.Model = m
		default:
			o.err = fmt.Errorf("%w: unknown model %d", ErrOptionViolation, int(m))
		}
	}
}

// WithGrassCost sets the cost of moving onto grass; c must be at least 1.
func WithGrassCost(c int) Option {
	return func(o *Options) {
		if c < 1 {
			o.err = fmt.Errorf("%w: GrassCost must be >= 1 (%d)", ErrOptionViolation, c)
			return
		}
		o.GrassCost = c
	}
}

// WithMaxSpeed caps the velocity norm; 0 means unlimited.
func WithMaxSpeed(s int) Option {
	return func(o *Options) {
		if s < 0 {
			o.err = fmt.Errorf("%w: MaxSpeed cannot be negative (%d)", ErrOptionViolation, s)
			return
		}
		o.MaxSpeed = s
	}
}

// WithWorkers sets how many goroutines check successors; n must be at least 1.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithPruning toggles the distance-field lower bound.
func WithPruning(on bool) Option {
	return func(o *Options) { o.Prune = on }
}

// WithExplored records every accepted transition in Result.Explored.
func WithExplored() Option {
	return func(o *Options) { o.RecordExplored = true }
}

// WithOnExpand registers a callback run before each expansion.
func WithOnExpand(fn func(s State, cost, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// Result is the outcome of Construct.
//
//   - Found: Route runs from the start region to the goal region.
//   - Route: the complete route, or the best partial route when !Found
//     (the reached state closest to the finish).
//   - States: the same sequence as search states.
//   - Cost: accumulated cost of Route.
//   - Expanded / Generated: popped-and-expanded labels / offered labels.
//   - Explored: accepted transitions, only with WithExplored.
type Result struct {
	Found     bool
	Route     route.Route
	States    []State
	Cost      int
	Expanded  int
	Generated int
	Explored  []Transition
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
