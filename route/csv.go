// SPDX-License-Identifier: MIT

package route

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/racetrack/track"
)

var header = []string{"step", "row", "col", "v_row", "v_col", "cell", "cost"}

// WriteCSV writes r to w with a header row.
func WriteCSV(w io.Writer, r Route) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, s := range r {
		rec[0] = strconv.Itoa(s.Index)
		rec[1] = strconv.Itoa(s.Row)
		rec[2] = strconv.Itoa(s.Col)
		rec[3] = strconv.Itoa(s.VRow)
		rec[4] = strconv.Itoa(s.VCol)
		rec[5] = s.Cell.String()
		rec[6] = strconv.Itoa(s.Cost)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a route written by WriteCSV. Rows must be numbered 0..n-1 in order.
func ReadCSV(r io.Reader) (Route, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrFormat)
		}
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	for i, h := range header {
		if head[i] != h {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrFormat, i+1, head[i], h)
		}
	}

	var out Route
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		s, err := parseStep(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		if s.Index != len(out) {
			return nil, fmt.Errorf("%w: step %d out of order, want %d", ErrFormat, s.Index, len(out))
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStep(rec []string) (Step, error) {
	var ints [5]int
	for i := range ints {
		v, err := strconv.Atoi(rec[i])
		if err != nil {
			return Step{}, fmt.Errorf("%s: %w", header[i], err)
		}
		ints[i] = v
	}
	cell, err := track.ParseCellName(rec[5])
	if err != nil {
		return Step{}, err
	}
	cost, err := strconv.Atoi(rec[6])
	if err != nil {
		return Step{}, fmt.Errorf("cost: %w", err)
	}
	return Step{
		Index: ints[0], Row: ints[1], Col: ints[2], VRow: ints[3], VCol: ints[4],
		Cell: cell, Cost: cost,
	}, nil
}

// Export writes r to path, creating parent directories as needed. The file is
// written to a temporary sibling and renamed, so readers never see a partial route.
// Every failure is a *WriteError.
func Export(path string, r Route) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := WriteCSV(tmp, r); err != nil {
		_ = tmp.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Import reads a route previously written by Export.
func Import(path string) (Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("route: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
