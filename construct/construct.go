// SPDX-License-Identifier: MIT

package construct

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
)

// Construct searches t for the cheapest route with at most MaxDepth moves,
// applying any number of functional Options.
//
// Preconditions and validation (in order):
//  1. t must be non-nil (ErrNilTrack).
//  2. every Option must be valid (ErrOptionViolation).
//
// When the bound is exhausted without reaching the goal region, Construct
// returns the Result (Found=false, best partial route) together with an error
// wrapping ErrNoRouteFound.
func Construct(t *track.Track, opts ...Option) (*Result, error) {
	if t == nil {
		return nil, ErrNilTrack
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	r := newRunner(t, o)
	r.seed()
	goal, err := r.loop()
	if err != nil {
		return nil, err
	}
	if goal >= 0 {
		r.finish(goal, true)
		return r.res, nil
	}

	// The bound cuts labels long before they get close to the goal, so the
	// best-effort route comes from an unpruned pass. It cannot find a route
	// the pruned pass missed.
	if o.Prune {
		first := r.res
		o.Prune = false
		r = newRunner(t, o)
		r.seed()
		if _, err := r.loop(); err != nil {
			return nil, err
		}
		r.res.Expanded += first.Expanded
		r.res.Generated += first.Generated
	}
	r.finish(r.best, false)
	return r.res, fmt.Errorf("%w within %d moves", ErrNoRouteFound, o.MaxDepth)
}

// label is one search node. Labels are never removed from runner.labels, so
// parent indices stay valid after a label is dominated.
type label struct {
	state  State
	cost   int
	depth  int
	parent int // -1 for a start label
	seq    int
	dead   bool
}

// runner holds the mutable state of a single Construct call.
type runner struct {
	t      *track.Track
	opts   Options
	field  [][]int
	labels []label
	front  map[State][]int // non-dominated labels per state
	pq     labelPQ
	exp    *expander
	best   int // best partial-route candidate, -1 if none
	res    *Result
}

func newRunner(t *track.Track, o Options) *runner {
	r := &runner{
		t:     t,
		opts:  o,
		field: t.DistanceField(o.Model.connectivity()),
		front: make(map[State][]int),
		best:  -1,
		res:   &Result{},
	}
	r.exp = newExpander(t, &r.opts)
	heap.Init(&r.pq)
	return r
}

// seed offers every start cell at rest.
func (r *runner) seed() {
	for _, p := range r.t.Starts() {
		r.offer(State{Row: p.Row, Col: p.Col}, 0, 0, -1)
	}
}

// loop pops labels until a goal label surfaces, the frontier empties, or the
// context is done. It returns the goal label index or -1.
func (r *runner) loop() (int, error) {
	ctx := r.opts.Ctx
	for r.pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return -1, ctx.Err()
		default:
		}

		item := heap.Pop(&r.pq).(pqItem)
		cur := r.labels[item.idx]
		if cur.dead {
			continue
		}
		if r.t.IsFinish(cur.state.Pos()) {
			return item.idx, nil
		}
		if cur.depth >= r.opts.MaxDepth {
			continue
		}

		r.res.Expanded++
		r.opts.OnExpand(cur.state, cur.cost, cur.depth)
		moves, err := r.exp.expand(ctx, cur.state)
		if err != nil {
			return -1, err
		}
		for _, m := range moves {
			if !m.ok {
				continue
			}
			if r.offer(m.to, cur.cost+m.cost, cur.depth+1, item.idx) && r.opts.RecordExplored {
				r.res.Explored = append(r.res.Explored, Transition{From: cur.state, To: m.to})
			}
		}
	}
	return -1, nil
}

// offer admits a label unless it is dominated or provably cannot finish in
// time. Labels cut by the bound are still kept as partial-route candidates.
func (r *runner) offer(s State, cost, depth, parent int) bool {
	r.res.Generated++
	for _, i := range r.front[s] {
		if l := r.labels[i]; l.cost <= cost && l.depth <= depth {
			return false
		}
	}

	idx := len(r.labels)
	r.labels = append(r.labels, label{state: s, cost: cost, depth: depth, parent: parent, seq: idx})
	r.consider(idx)
	if r.opts.Prune && !r.canFinish(s, depth) {
		r.labels[idx].dead = true
		return false
	}

	kept := r.front[s][:0]
	for _, i := range r.front[s] {
		if l := r.labels[i]; cost <= l.cost && depth <= l.depth {
			r.labels[i].dead = true
			continue
		}
		kept = append(kept, i)
	}
	r.front[s] = append(kept, idx)

	heap.Push(&r.pq, pqItem{cost: cost, depth: depth, state: s, seq: idx, idx: idx})
	return true
}

// canFinish reports whether s, reached after depth moves, may still reach the
// goal region within MaxDepth. It never rejects a state that can.
func (r *runner) canFinish(s State, depth int) bool {
	d := r.field[s.Row][s.Col]
	if d == track.Unreachable {
		return false
	}
	need := d
	if r.opts.Model == ModelVelocity {
		need = minMoves(d, s.speed())
	}
	return depth+need <= r.opts.MaxDepth
}

// consider keeps the label closest to the goal as the partial-route answer:
// smallest distance-field value, then cost, depth, state and sequence.
func (r *runner) consider(idx int) {
	if r.best < 0 {
		r.best = idx
		return
	}
	a, b := r.labels[idx], r.labels[r.best]
	da, db := r.distance(a.state), r.distance(b.state)
	switch {
	case da != db:
		if da < db {
			r.best = idx
		}
	case a.cost != b.cost:
		if a.cost < b.cost {
			r.best = idx
		}
	case a.depth != b.depth:
		if a.depth < b.depth {
			r.best = idx
		}
	case a.state != b.state:
		if a.state.Less(b.state) {
			r.best = idx
		}
	}
}

// distance maps Unreachable to a value larger than any real distance.
func (r *runner) distance(s State) int {
	if d := r.field[s.Row][s.Col]; d != track.Unreachable {
		return d
	}
	return r.t.Rows*r.t.Cols + 1
}

// finish reconstructs the label chain ending at idx into the Result.
func (r *runner) finish(idx int, found bool) {
	r.res.Found = found
	if idx < 0 {
		return
	}
	var chain []int
	for at := idx; at >= 0; at = r.labels[at].parent {
		chain = append(chain, at)
	}
	// reverse to get start → end
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	r.res.States = make([]State, len(chain))
	r.res.Route = make(route.Route, len(chain))
	for i, at := range chain {
		l := r.labels[at]
		r.res.States[i] = l.state
		r.res.Route[i] = route.Step{
			Index: i,
			Row:   l.state.Row,
			Col:   l.state.Col,
			VRow:  l.state.VRow,
			VCol:  l.state.VCol,
			Cell:  r.t.At(l.state.Pos()),
			Cost:  l.cost,
		}
	}
	r.res.Cost = r.labels[idx].cost
}
