// SPDX-License-Identifier: MIT

package track

import "strings"

var (
	offsets4 = [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	offsets8 = [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
)

// New constructs a Track from a non-empty, rectangular grid of cells.
// It deep-copies the input so later mutation of cells has no effect.
// Returns ErrEmptyTrack, ErrNonRectangular, ErrMissingStart or ErrMissingFinish.
// Complexity: O(R×C) time and memory.
func New(cells [][]Cell) (*Track, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyTrack
	}
	rows, cols := len(cells), len(cells[0])
	for _, row := range cells {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}

	t := &Track{Rows: rows, Cols: cols, cells: make([]Cell, 0, rows*cols)}
	for r, row := range cells {
		t.cells = append(t.cells, row...)
		for c, cell := range row {
			switch cell {
			case Start:
				t.starts = append(t.starts, Pos{r, c})
			case Finish:
				t.finishes = append(t.finishes, Pos{r, c})
			}
		}
	}
	if len(t.starts) == 0 {
		return nil, ErrMissingStart
	}
	if len(t.finishes) == 0 {
		return nil, ErrMissingFinish
	}

	return t, nil
}

// InBounds reports whether p lies within the grid.
func (t *Track) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < t.Rows && p.Col >= 0 && p.Col < t.Cols
}

// At returns the cell at p. Positions out of bounds read as Wall.
func (t *Track) At(p Pos) Cell {
	if !t.InBounds(p) {
		return Wall
	}
	return t.cells[t.index(p)]
}

// Drivable reports whether p is inside the grid and not a wall.
func (t *Track) Drivable(p Pos) bool { return t.At(p).Drivable() }

// IsStart reports whether p belongs to the start region.
func (t *Track) IsStart(p Pos) bool { return t.At(p) == Start }

// IsFinish reports whether p belongs to the goal region.
func (t *Track) IsFinish(p Pos) bool { return t.At(p) == Finish }

// Starts returns the start region in row-major order. The slice is a copy.
func (t *Track) Starts() []Pos { return append([]Pos(nil), t.starts...) }

// Finishes returns the goal region in row-major order. The slice is a copy.
func (t *Track) Finishes() []Pos { return append([]Pos(nil), t.finishes...) }

// NeighborOffsets returns the (dRow, dCol) offsets for conn in a fixed clockwise order
// starting north. Callers must not modify the result.
func NeighborOffsets(conn Connectivity) [][2]int {
	if conn == Conn8 {
		return offsets8
	}
	return offsets4
}

// String renders the track in canonical symbols, one row per line.
func (t *Track) String() string {
	var b strings.Builder
	b.Grow(t.Rows * (t.Cols + 1))
	for r := 0; r < t.Rows; r++ {
		for c := 0; c < t.Cols; c++ {
			b.WriteByte(t.cells[r*t.Cols+c].Symbol())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// index maps p to its row-major index.
func (t *Track) index(p Pos) int {
	return p.Row*t.Cols + p.Col
}

// position converts a row-major index back to a Pos.
func (t *Track) position(i int) Pos {
	return Pos{Row: i / t.Cols, Col: i % t.Cols}
}
