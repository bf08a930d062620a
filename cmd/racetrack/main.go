// SPDX-License-Identifier: MIT

// Command racetrack constructs a route through a racetrack map and writes it
// as CSV.
//
//	racetrack --track tracks/track_02.t --output routes/output.csv --d 20 --visualize
//
// Flags set on the command line override values from --config, which
// override the built-in defaults.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/katalvlaran/racetrack/internal/app"
	"github.com/katalvlaran/racetrack/internal/config"
	"github.com/katalvlaran/racetrack/internal/logging"
)

// flags mirrors the command line. Values are applied only when the flag was
// set explicitly.
type flags struct {
	config       string
	track        string
	output       string
	visualize    bool
	depth        int
	model        string
	grassCost    int
	maxSpeed     int
	workers      int
	noPrune      bool
	allowPartial bool
	overlay      string
	vizCommand   string
	logLevel     string
	logFormat    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return app.ExitOK
	}
	fmt.Fprintln(stderr, "racetrack:", err)
	return app.Classify(err)
}

func newRootCmd() *cobra.Command {
	var f flags
	def := config.Default()

	cmd := &cobra.Command{
		Use:           "racetrack",
		Short:         "Construct a route through a racetrack map",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &app.ExitError{Code: app.ExitUsage, Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, &f)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &app.ExitError{Code: app.ExitUsage, Err: err}
	})

	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "YAML (.yaml, .yml) or HCL (.hcl) config file")
	fs.StringVar(&f.track, "track", def.Track, "track file")
	fs.StringVar(&f.output, "output", def.Output.Path, "route CSV file")
	fs.BoolVar(&f.visualize, "visualize", def.Visualize.Enabled, "visualize the route after export")
	fs.IntVar(&f.depth, "d", def.Search.Depth, "maximum number of moves")
	fs.StringVar(&f.model, "model", def.Search.Model, "move model: velocity, conn4 or conn8")
	fs.IntVar(&f.grassCost, "grass-cost", def.Search.GrassCost, "cost of a move ending on grass")
	fs.IntVar(&f.maxSpeed, "max-speed", def.Search.MaxSpeed, "velocity cap per axis, 0 for none")
	fs.IntVar(&f.workers, "workers", def.Search.Workers, "goroutines checking successors")
	fs.BoolVar(&f.noPrune, "no-prune", !def.Search.Prune, "disable distance-field pruning")
	fs.BoolVar(&f.allowPartial, "allow-partial", def.Search.AllowPartial, "write the partial route and succeed when no route is found")
	fs.StringVar(&f.overlay, "overlay", def.Visualize.OverlayPath, "write the text overlay to this file instead of stdout")
	fs.StringVar(&f.vizCommand, "viz-command", def.Visualize.Command, "external visualiser template, empty to skip")
	fs.StringVar(&f.logLevel, "log-level", def.Logging.Level, "debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", def.Logging.Format, "json or console")

	return cmd
}

func execute(cmd *cobra.Command, f *flags) error {
	cfg := config.Default()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return &app.ExitError{Code: app.ExitUsage, Err: err}
		}
		cfg = loaded
	}
	overlay(cmd.Flags(), f, &cfg)
	if err := cfg.Validate(); err != nil {
		return &app.ExitError{Code: app.ExitUsage, Err: err}
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return &app.ExitError{Code: app.ExitUsage, Err: err}
	}
	defer func() { _ = logger.Sync() }()

	ctx := logging.WithLogger(cmd.Context(), logger)
	sum, err := app.Run(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logger.Debug("summary", zap.String("run_id", sum.RunID), zap.Duration("elapsed", sum.Elapsed))

	status := "route"
	if !sum.Found {
		status = "partial route"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s written to %s (moves=%d cost=%d)\n", status, sum.Output, sum.Moves, sum.Cost)
	return nil
}

// overlay copies explicitly set flags onto cfg.
func overlay(fs *pflag.FlagSet, f *flags, cfg *config.Config) {
	if fs.Changed("track") {
		cfg.Track = f.track
	}
	if fs.Changed("output") {
		cfg.Output.Path = f.output
	}
	if fs.Changed("visualize") {
		cfg.Visualize.Enabled = f.visualize
	}
	if fs.Changed("d") {
		cfg.Search.Depth = f.depth
	}
	if fs.Changed("model") {
		cfg.Search.Model = f.model
	}
	if fs.Changed("grass-cost") {
		cfg.Search.GrassCost = f.grassCost
	}
	if fs.Changed("max-speed") {
		cfg.Search.MaxSpeed = f.maxSpeed
	}
	if fs.Changed("workers") {
		cfg.Search.Workers = f.workers
	}
	if fs.Changed("no-prune") {
		cfg.Search.Prune = !f.noPrune
	}
	if fs.Changed("allow-partial") {
		cfg.Search.AllowPartial = f.allowPartial
	}
	if fs.Changed("overlay") {
		cfg.Visualize.OverlayPath = f.overlay
	}
	if fs.Changed("viz-command") {
		cfg.Visualize.Command = f.vizCommand
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
}
