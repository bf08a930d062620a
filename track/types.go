// SPDX-License-Identifier: MIT

package track

import (
	"errors"
	"fmt"
)

// Sentinel errors for track loading.
var (
	// ErrNotFound indicates the track path does not exist.
	ErrNotFound = errors.New("track: file not found")
	// ErrEmptyTrack indicates the input has no rows or no columns.
	ErrEmptyTrack = errors.New("track: track must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("track: all rows must have the same length")
	// ErrUnknownSymbol indicates a character outside the cell grammar.
	ErrUnknownSymbol = errors.New("track: unknown cell symbol")
	// ErrMissingStart indicates no start cell was found.
	ErrMissingStart = errors.New("track: no start cell")
	// ErrMissingFinish indicates no finish cell was found.
	ErrMissingFinish = errors.New("track: no finish cell")
)

// ParseError reports where a track file is malformed.
// Line and Col are 1-based; zero means "not tied to a position".
type ParseError struct {
	Path string
	Line int
	Col  int
	Err  error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	switch {
	case e.Line > 0 && e.Col > 0:
		return fmt.Sprintf("%s:%d:%d: %v", where, e.Line, e.Col, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", where, e.Line, e.Err)
	default:
		return fmt.Sprintf("%s: %v", where, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Cell is the kind of a single track cell.
type Cell uint8

const (
	// Wall blocks movement.
	Wall Cell = iota
	// Road is drivable at unit cost.
	Road
	// Grass is drivable but carries a configurable surcharge.
	Grass
	// Start marks the start region.
	Start
	// Finish marks the goal region.
	Finish
)

var cellNames = [...]string{
	Wall:   "wall",
	Road:   "road",
	Grass:  "grass",
	Start:  "start",
	Finish: "finish",
}

var cellSymbols = [...]byte{
	Wall:   'O',
	Road:   '.',
	Grass:  'G',
	Start:  'S',
	Finish: 'F',
}

// String returns the lower-case name used in exported routes.
func (c Cell) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Symbol returns the canonical track-file symbol for c.
func (c Cell) Symbol() byte {
	if int(c) < len(cellSymbols) {
		return cellSymbols[c]
	}
	return '?'
}

// Drivable reports whether a vehicle may occupy or cross the cell.
func (c Cell) Drivable() bool { return c != Wall }

// CellFromSymbol maps a track-file symbol to its Cell.
func CellFromSymbol(b byte) (Cell, bool) {
	switch b {
	case 'O', '#':
		return Wall, true
	case ' ', '.':
		return Road, true
	case 'G':
		return Grass, true
	case 'S':
		return Start, true
	case 'F':
		return Finish, true
	}
	return Wall, false
}

// ParseCellName is the inverse of Cell.String.
func ParseCellName(name string) (Cell, error) {
	for c, n := range cellNames {
		if n == name {
			return Cell(c), nil
		}
	}
	return Wall, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
}

// Pos addresses a cell by row and column.
type Pos struct {
	Row, Col int
}

// Less orders positions row-major.
func (p Pos) Less(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 adds the four diagonals.
	Conn8
)

// Unreachable marks cells of a DistanceField that cannot reach a finish cell.
const Unreachable = -1

// Track is an immutable rectangular racetrack.
// cells is row-major; starts and finishes are cached in row-major order.
type Track struct {
	Rows, Cols int
	cells      []Cell
	starts     []Pos
	finishes   []Pos
}
