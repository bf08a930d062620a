// SPDX-License-Identifier: MIT

// Package track loads racetrack maps and exposes them as an immutable grid.
//
// What:
//
//   - Track wraps a rectangular grid of typed cells (wall, road, grass,
//     start, finish) addressed by Pos{Row, Col}, (0,0) being top-left.
//   - Parse/Load read the text format: one row per line, one symbol per cell.
//   - DistanceField computes, for every cell, the number of grid steps to the
//     nearest finish cell (multi-source BFS), used as a lower bound by search.
//
// Symbols:
//
//	O or #   wall (not drivable)
//	' ' or . road
//	G        grass (drivable, more expensive)
//	S        start region
//	F        finish region
//
// Lines starting with ';' are comments. Trailing blank lines are ignored.
//
// Errors:
//
//   - ErrNotFound: the track path does not exist.
//   - *ParseError wrapping ErrEmptyTrack, ErrNonRectangular, ErrUnknownSymbol,
//     ErrMissingStart or ErrMissingFinish.
//
// Complexity:
//
//   - Parse:         O(R×C) time and memory.
//   - DistanceField: O(R×C×d) time (d = 4 or 8), O(R×C) memory.
package track
