// SPDX-License-Identifier: MIT

package visualize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
)

// Route markers drawn over the track symbols.
const (
	MarkStart    = 's'
	MarkFinish   = 'f'
	MarkStep     = '*'
	MarkExplored = ':'
)

// Overlay writes the track with the route drawn over it, one row per line,
// followed by a summary line. Colors are applied only when the destination is
// a terminal; files and buffers get plain text.
//
// Exactly one of Out and Path is used; Path wins when both are set.
type Overlay struct {
	Out  io.Writer
	Path string

	// Explored cells are marked with MarkExplored unless a route step covers them.
	Explored []track.Pos
}

// Render implements Renderer.
func (o *Overlay) Render(ctx context.Context, t *track.Track, r route.Route) error {
	if t == nil {
		return ErrNilTrack
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if o.Path == "" {
		out := o.Out
		if out == nil {
			out = os.Stdout
		}
		return o.write(out, t, r)
	}

	if err := os.MkdirAll(filepath.Dir(o.Path), 0o755); err != nil {
		return fmt.Errorf("visualize: %w", err)
	}
	f, err := os.Create(o.Path)
	if err != nil {
		return fmt.Errorf("visualize: %w", err)
	}
	if err := o.write(f, t, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (o *Overlay) write(w io.Writer, t *track.Track, r route.Route) error {
	st := newStyles(lipgloss.NewRenderer(w))
	marks := Marks(t, r, o.Explored)

	var b strings.Builder
	for row := 0; row < t.Rows; row++ {
		for col := 0; col < t.Cols; col++ {
			sym := marks[row][col]
			b.WriteString(st.of(sym).Render(string(sym)))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "moves=%d cost=%d complete=%t\n", r.Moves(), r.Cost(), r.Complete(t))

	_, err := io.WriteString(w, b.String())
	return err
}

// Marks returns the overlay as a symbol grid: canonical track symbols with
// explored cells and route steps drawn on top. Steps outside the track are ignored.
func Marks(t *track.Track, r route.Route, explored []track.Pos) [][]byte {
	grid := make([][]byte, t.Rows)
	for row := range grid {
		grid[row] = make([]byte, t.Cols)
		for col := range grid[row] {
			grid[row][col] = t.At(track.Pos{Row: row, Col: col}).Symbol()
		}
	}
	for _, p := range explored {
		if t.Drivable(p) {
			grid[p.Row][p.Col] = MarkExplored
		}
	}
	for i, s := range r {
		p := s.Pos()
		if !t.InBounds(p) {
			continue
		}
		switch {
		case i == 0:
			grid[p.Row][p.Col] = MarkStart
		case i == len(r)-1:
			grid[p.Row][p.Col] = MarkFinish
		default:
			if grid[p.Row][p.Col] != MarkStart {
				grid[p.Row][p.Col] = MarkStep
			}
		}
	}
	return grid
}

type styles struct {
	wall, grass, region, route, explored, plain lipgloss.Style
}

func newStyles(re *lipgloss.Renderer) styles {
	return styles{
		wall:     re.NewStyle().Foreground(lipgloss.Color("#5c6370")),
		grass:    re.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		region:   re.NewStyle().Foreground(lipgloss.Color("#2196F3")).Bold(true),
		route:    re.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		explored: re.NewStyle().Foreground(lipgloss.Color("#FFC107")),
		plain:    re.NewStyle(),
	}
}

func (s styles) of(sym byte) lipgloss.Style {
	switch sym {
	case 'O':
		return s.wall
	case 'G':
		return s.grass
	case 'S', 'F':
		return s.region
	case MarkStart, MarkFinish, MarkStep:
		return s.route
	case MarkExplored:
		return s.explored
	default:
		return s.plain
	}
}
