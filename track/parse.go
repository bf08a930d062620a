// SPDX-License-Identifier: MIT

package track

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Load reads and parses the track file at path.
// A missing file yields an error wrapping ErrNotFound; malformed content a *ParseError.
func Load(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("track: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// sourceLine is a non-comment input line with its 1-based line number.
type sourceLine struct {
	no   int
	text string
}

// Parse reads a track from r. Every structural problem is reported as a *ParseError.
func Parse(r io.Reader) (*Track, error) {
	var lines []sourceLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	no := 0
	for sc.Scan() {
		no++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(text, ";") {
			continue
		}
		lines = append(lines, sourceLine{no: no, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("track: read: %w", err)
	}

	// trailing blank lines carry no rows
	for len(lines) > 0 && lines[len(lines)-1].text == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 || lines[0].text == "" {
		return nil, &ParseError{Err: ErrEmptyTrack}
	}

	cols := len(lines[0].text)
	cells := make([][]Cell, len(lines))
	for i, ln := range lines {
		if len(ln.text) != cols {
			return nil, &ParseError{
				Line: ln.no,
				Err:  fmt.Errorf("%w: got %d columns, want %d", ErrNonRectangular, len(ln.text), cols),
			}
		}
		row := make([]Cell, cols)
		for c := 0; c < cols; c++ {
			cell, ok := CellFromSymbol(ln.text[c])
			if !ok {
				return nil, &ParseError{
					Line: ln.no,
					Col:  c + 1,
					Err:  fmt.Errorf("%w %q", ErrUnknownSymbol, ln.text[c]),
				}
			}
			row[c] = cell
		}
		cells[i] = row
	}

	t, err := New(cells)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return t, nil
}
