// SPDX-License-Identifier: MIT

// Package app runs the racetrack pipeline: load the track, construct a
// route, export it and optionally visualize it. Failures come back as
// *ExitError so the binary can exit with a code per error class.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/racetrack/construct"
	"github.com/katalvlaran/racetrack/internal/config"
	"github.com/katalvlaran/racetrack/internal/logging"
	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
	"github.com/katalvlaran/racetrack/visualize"
)

// progressEvery is the number of expansions between debug progress lines.
const progressEvery = 50_000

// Summary describes a finished run.
type Summary struct {
	RunID     string
	Found     bool
	Moves     int
	Cost      int
	Expanded  int
	Generated int
	Output    string
	Elapsed   time.Duration
}

// Run executes the pipeline described by cfg. The overlay, when enabled and
// not sent to a file, is written to stdout. The logger is taken from ctx.
//
// A missing route is fatal (ExitNoRoute) unless cfg.Search.AllowPartial is
// set, in which case the partial route is exported and Run succeeds.
func Run(ctx context.Context, cfg config.Config, stdout io.Writer) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Exit(err)
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	sum := &Summary{RunID: uuid.NewString(), Output: cfg.Output.Path}
	log := logging.FromContext(ctx).With(zap.String("run_id", sum.RunID))
	began := time.Now()

	t, err := track.Load(cfg.Track)
	if err != nil {
		log.Error("load track", zap.String("path", cfg.Track), zap.Error(err))
		return nil, Exit(err)
	}
	log.Info("track loaded",
		zap.String("path", cfg.Track),
		zap.Int("rows", t.Rows),
		zap.Int("cols", t.Cols),
		zap.Int("starts", len(t.Starts())),
		zap.Int("finishes", len(t.Finishes())),
	)

	res, err := construct.Construct(t, searchOptions(ctx, cfg, log)...)
	switch {
	case errors.Is(err, construct.ErrNoRouteFound):
		log.Warn("no route found",
			zap.Int("depth", cfg.Search.Depth),
			zap.Int("partial_moves", res.Route.Moves()),
			zap.Bool("allow_partial", cfg.Search.AllowPartial),
		)
		if !cfg.Search.AllowPartial {
			return nil, Exit(err)
		}
	case err != nil:
		log.Error("construct route", zap.Error(err))
		return nil, Exit(err)
	}
	sum.Found = res.Found
	sum.Moves = res.Route.Moves()
	sum.Cost = res.Cost
	sum.Expanded = res.Expanded
	sum.Generated = res.Generated

	if err := route.Export(cfg.Output.Path, res.Route); err != nil {
		log.Error("export route", zap.Error(err))
		return nil, Exit(err)
	}
	log.Info("route written",
		zap.String("path", cfg.Output.Path),
		zap.Bool("found", res.Found),
		zap.Int("moves", sum.Moves),
		zap.Int("cost", sum.Cost),
		zap.Int("expanded", res.Expanded),
		zap.Int("generated", res.Generated),
	)

	if cfg.Visualize.Enabled {
		visualizeRoute(ctx, cfg, t, res, stdout, log)
	}

	sum.Elapsed = time.Since(began)
	log.Debug("run finished", zap.Duration("elapsed", sum.Elapsed))
	return sum, nil
}

func searchOptions(ctx context.Context, cfg config.Config, log *zap.Logger) []construct.Option {
	opts := []construct.Option{
		construct.WithContext(ctx),
		construct.WithMaxDepth(cfg.Search.Depth),
		construct.WithModel(cfg.Model()),
		construct.WithGrassCost(cfg.Search.GrassCost),
		construct.WithMaxSpeed(cfg.Search.MaxSpeed),
		construct.WithWorkers(cfg.Search.Workers),
		construct.WithPruning(cfg.Search.Prune),
	}
	if cfg.Visualize.Enabled {
		opts = append(opts, construct.WithExplored())
	}
	if log.Core().Enabled(zap.DebugLevel) {
		n := 0
		opts = append(opts, construct.WithOnExpand(func(s construct.State, cost, depth int) {
			n++
			if n%progressEvery == 0 {
				log.Debug("search progress",
					zap.Int("expanded", n),
					zap.Int("cost", cost),
					zap.Int("depth", depth),
					zap.Stringer("pos", s.Pos()),
				)
			}
		}))
	}
	return opts
}

// visualizeRoute runs the configured renderers in the background and waits
// for them. Their failures are logged, never returned.
func visualizeRoute(ctx context.Context, cfg config.Config, t *track.Track, res *construct.Result, stdout io.Writer, log *zap.Logger) {
	if cfg.Visualize.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Visualize.Timeout)
		defer cancel()
	}

	explored := make([]track.Pos, 0, len(res.Explored))
	for _, tr := range res.Explored {
		explored = append(explored, tr.To.Pos())
	}

	d := visualize.NewDispatcher(ctx, 0)
	d.Go("overlay", &visualize.Overlay{Out: stdout, Path: cfg.Visualize.OverlayPath, Explored: explored}, t, res.Route)
	if cfg.Visualize.Command != "" {
		d.Go("command", &visualize.Command{
			Template:   cfg.Visualize.Command,
			TrackPath:  cfg.Track,
			RoutePath:  cfg.Output.Path,
			OutputPath: cfg.VisualizeOutput(),
		}, t, res.Route)
	}
	if err := d.Wait(); err != nil {
		log.Warn("visualization failed", zap.Error(err))
		return
	}
	log.Info("visualization done", zap.String("overlay", cfg.Visualize.OverlayPath))
}
