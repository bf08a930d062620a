// SPDX-License-Identifier: MIT

// Package route holds the Route produced by the constructor and serializes it
// as CSV, one row per step:
//
//	step,row,col,v_row,v_col,cell,cost
//	0,1,1,0,0,start,0
//	1,2,2,1,1,road,1
//
// Route is plain data: the constructor builds it, the exporter and the
// visualizers only read it.
package route

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/racetrack/track"
)

// Sentinel errors for route I/O.
var (
	// ErrWrite is wrapped by every WriteError.
	ErrWrite = errors.New("route: write failed")
	// ErrFormat indicates a CSV file that does not follow the route layout.
	ErrFormat = errors.New("route: malformed route file")
)

// WriteError reports an I/O failure while exporting to Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("route: write %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrWrite and the underlying cause to errors.Is.
func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }

// Step is one position of a route with the vehicle velocity on arrival.
// Cost is the accumulated cost from the first step, inclusive.
type Step struct {
	Index int
	Row   int
	Col   int
	VRow  int
	VCol  int
	Cell  track.Cell
	Cost  int
}

// Pos returns the step's grid position.
func (s Step) Pos() track.Pos { return track.Pos{Row: s.Row, Col: s.Col} }

// Route is an ordered sequence of steps from the start region towards the goal region.
type Route []Step

// Moves returns the number of transitions (edges) in the route.
func (r Route) Moves() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}

// Positions returns the grid positions in order.
func (r Route) Positions() []track.Pos {
	out := make([]track.Pos, len(r))
	for i, s := range r {
		out[i] = s.Pos()
	}
	return out
}

// Cost returns the accumulated cost of the last step, or 0 for an empty route.
func (r Route) Cost() int {
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1].Cost
}

// Complete reports whether r starts in the start region and ends in the goal region of t.
func (r Route) Complete(t *track.Track) bool {
	if len(r) == 0 || t == nil {
		return false
	}
	return t.IsStart(r[0].Pos()) && t.IsFinish(r[len(r)-1].Pos())
}
