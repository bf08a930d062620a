// SPDX-License-Identifier: MIT

package construct

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/racetrack/track"
)

// expander generates the successors of one state. With more than one worker
// the legality checks run on an errgroup; each delta owns its output slot, so
// the order of the returned moves never depends on scheduling.
type expander struct {
	t       *track.Track
	opts    *Options
	deltas  [][2]int
	workers int
}

func newExpander(t *track.Track, o *Options) *expander {
	return &expander{t: t, opts: o, deltas: deltas(o.Model), workers: o.Workers}
}

// expand returns one move per delta, in delta order. Illegal moves have ok=false.
func (e *expander) expand(ctx context.Context, s State) ([]move, error) {
	out := make([]move, len(e.deltas))
	if e.workers <= 1 {
		for i, d := range e.deltas {
			out[i] = step(e.t, e.opts, s, d)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, d := range e.deltas {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = step(e.t, e.opts, s, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
