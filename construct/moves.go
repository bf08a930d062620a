// SPDX-License-Identifier: MIT

package construct

import "github.com/katalvlaran/racetrack/track"

// accelerations are the velocity changes of ModelVelocity in a fixed order.
var accelerations = [][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// move is the outcome of applying one delta to a state.
type move struct {
	to   State
	cost int
	ok   bool
}

// deltas returns the per-expansion deltas of the model: accelerations or neighbour offsets.
func deltas(m Model) [][2]int {
	switch m {
	case ModelConn4:
		return track.NeighborOffsets(track.Conn4)
	case ModelConn8:
		return track.NeighborOffsets(track.Conn8)
	default:
		return accelerations
	}
}

// step applies d to s under o.Model. The result has ok=false when the move is illegal.
func step(t *track.Track, o *Options, s State, d [2]int) move {
	if o.Model != ModelVelocity {
		to := track.Pos{Row: s.Row + d[0], Col: s.Col + d[1]}
		if !t.Drivable(to) {
			return move{}
		}
		return move{to: State{Row: to.Row, Col: to.Col}, cost: cellCost(t, o, to), ok: true}
	}

	vr, vc := s.VRow+d[0], s.VCol+d[1]
	if vr == 0 && vc == 0 {
		return move{}
	}
	if o.MaxSpeed > 0 && max(abs(vr), abs(vc)) > o.MaxSpeed {
		return move{}
	}
	end, ok := traverse(t, s.Pos(), track.Pos{Row: s.Row + vr, Col: s.Col + vc})
	if !ok {
		return move{}
	}
	return move{
		to:   State{Row: end.Row, Col: end.Col, VRow: vr, VCol: vc},
		cost: cellCost(t, o, end),
		ok:   true,
	}
}

// traverse walks the segment from→to one Chebyshev step at a time, rounding the
// minor axis to the nearest cell. Consecutive samples are 8-adjacent.
// It fails on the first undrivable sample and stops early on the first finish cell.
func traverse(t *track.Track, from, to track.Pos) (track.Pos, bool) {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	n := max(abs(dr), abs(dc))
	for i := 1; i <= n; i++ {
		p := track.Pos{
			Row: from.Row + roundDiv(dr*i, n),
			Col: from.Col + roundDiv(dc*i, n),
		}
		if !t.Drivable(p) {
			return track.Pos{}, false
		}
		if t.IsFinish(p) {
			return p, true
		}
	}
	return to, true
}

func cellCost(t *track.Track, o *Options, p track.Pos) int {
	if t.At(p) == track.Grass {
		return o.GrassCost
	}
	return 1
}

// roundDiv returns a/b rounded half up; b must be positive.
func roundDiv(a, b int) int {
	return floorDiv(2*a+b, 2*b)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// minMoves is the fewest moves that can cover dist cells starting at speed s,
// given that speed grows by at most one per move.
func minMoves(dist, s int) int {
	k, covered := 0, 0
	for covered < dist {
		k++
		covered += s + k
	}
	return k
}

// Legal reports whether to is a successor of from on t under the given options.
// It lets callers verify that consecutive route states are legal transitions.
func Legal(t *track.Track, from, to State, opts ...Option) bool {
	if t == nil {
		return false
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return false
	}
	for _, d := range deltas(o.Model) {
		if m := step(t, &o, from, d); m.ok && m.to == to {
			return true
		}
	}
	return false
}
