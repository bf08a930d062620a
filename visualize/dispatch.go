// SPDX-License-Identifier: MIT

package visualize

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
)

// Dispatcher runs renderers in the background. A failing renderer does not
// cancel the others; Wait reports every failure.
//
// The zero value is not usable; call NewDispatcher.
type Dispatcher struct {
	ctx context.Context
	g   errgroup.Group

	mu   sync.Mutex
	errs []error
}

// NewDispatcher returns a Dispatcher whose renderers observe ctx. limit caps
// the number of renderers running at once; limit <= 0 means no cap.
func NewDispatcher(ctx context.Context, limit int) *Dispatcher {
	d := &Dispatcher{ctx: ctx}
	if limit > 0 {
		d.g.SetLimit(limit)
	}
	return d
}

// Go starts r on t and rt. name labels the renderer in errors.
func (d *Dispatcher) Go(name string, r Renderer, t *track.Track, rt route.Route) {
	d.g.Go(func() error {
		if err := r.Render(d.ctx, t, rt); err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			d.mu.Lock()
			d.errs = append(d.errs, err)
			d.mu.Unlock()
			return err
		}
		return nil
	})
}

// Wait blocks until every started renderer returned and joins their errors.
func (d *Dispatcher) Wait() error {
	_ = d.g.Wait()
	d.mu.Lock()
	defer d.mu.Unlock()
	return errors.Join(d.errs...)
}
