package app_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/racetrack/construct"
	"github.com/katalvlaran/racetrack/internal/app"
	"github.com/katalvlaran/racetrack/internal/config"
	"github.com/katalvlaran/racetrack/internal/logging"
	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
)

// setup writes body as a track file and returns a config pointing at it with
// the output inside the same temp dir.
func setup(t *testing.T, body string) config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "track.t")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg := config.Default()
	cfg.Track = path
	cfg.Output.Path = filepath.Join(dir, "routes", "out.csv")
	cfg.Visualize.Command = ""
	return cfg
}

func observed(level zapcore.Level) (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logging.WithLogger(context.Background(), zap.New(core)), logs
}

func TestRun_Success(t *testing.T) {
	cfg := setup(t, "S..\n...\n..F\n")
	cfg.Search.Model = "conn4"
	cfg.Search.Depth = 4

	ctx, logs := observed(zapcore.InfoLevel)
	sum, err := app.Run(ctx, cfg, &bytes.Buffer{})
	require.NoError(t, err)

	assert.True(t, sum.Found)
	assert.Equal(t, 4, sum.Moves)
	assert.Equal(t, 4, sum.Cost)
	assert.Positive(t, sum.Expanded)
	assert.NotEmpty(t, sum.RunID)

	r, err := route.Import(cfg.Output.Path)
	require.NoError(t, err)
	assert.Len(t, r, 5)
	assert.Equal(t, track.Finish, r[4].Cell)

	written := logs.FilterMessage("route written").All()
	require.Len(t, written, 1)
	assert.Equal(t, sum.RunID, written[0].ContextMap()["run_id"])
	assert.Equal(t, true, written[0].ContextMap()["found"])
}

func TestRun_SampleTrack(t *testing.T) {
	cfg := config.Default()
	cfg.Track = filepath.Join("..", "..", "tracks", "track_02.t")
	cfg.Output.Path = filepath.Join(t.TempDir(), "out.csv")
	cfg.Search.Depth = 30
	cfg.Visualize.Command = ""

	sum, err := app.Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.True(t, sum.Found)
	assert.LessOrEqual(t, sum.Moves, 30)
}

func TestRun_ErrorCodes(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		cfg := config.Default()
		cfg.Track = filepath.Join(t.TempDir(), "missing.t")
		_, err := app.Run(context.Background(), cfg, nil)
		assert.Equal(t, app.ExitNotFound, app.Classify(err))
		assert.ErrorIs(t, err, track.ErrNotFound)
	})

	t.Run("parse", func(t *testing.T) {
		cfg := setup(t, "S.X\n..F\n")
		_, err := app.Run(context.Background(), cfg, nil)
		assert.Equal(t, app.ExitParse, app.Classify(err))
		assert.ErrorIs(t, err, track.ErrUnknownSymbol)
	})

	t.Run("usage", func(t *testing.T) {
		cfg := setup(t, "SF\n")
		cfg.Search.Depth = -3
		_, err := app.Run(context.Background(), cfg, nil)
		assert.Equal(t, app.ExitUsage, app.Classify(err))
	})

	t.Run("write", func(t *testing.T) {
		cfg := setup(t, "SF\n")
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		cfg.Output.Path = filepath.Join(blocker, "out.csv")
		cfg.Search.Model = "conn4"

		_, err := app.Run(context.Background(), cfg, nil)
		assert.Equal(t, app.ExitWrite, app.Classify(err))
		assert.ErrorIs(t, err, route.ErrWrite)
	})
}

func TestRun_NoRoute(t *testing.T) {
	cfg := setup(t, "S....F\n")
	cfg.Search.Model = "conn4"
	cfg.Search.Depth = 2

	_, err := app.Run(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Equal(t, app.ExitNoRoute, app.Classify(err))
	assert.ErrorIs(t, err, construct.ErrNoRouteFound)
	assert.NoFileExists(t, cfg.Output.Path, "nothing is written without allow-partial")
}

func TestRun_AllowPartial(t *testing.T) {
	cfg := setup(t, "S....F\n")
	cfg.Search.Model = "conn4"
	cfg.Search.Depth = 2
	cfg.Search.AllowPartial = true

	ctx, logs := observed(zapcore.WarnLevel)
	sum, err := app.Run(ctx, cfg, nil)
	require.NoError(t, err)
	assert.False(t, sum.Found)
	assert.Equal(t, 2, sum.Moves)
	assert.Equal(t, 1, logs.FilterMessage("no route found").Len())

	r, err := route.Import(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, []track.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, r.Positions())
}

func TestRun_VisualizeStdout(t *testing.T) {
	cfg := setup(t, "S.F\n")
	cfg.Search.Model = "conn4"
	cfg.Search.Depth = 2
	cfg.Visualize.Enabled = true

	var out bytes.Buffer
	_, err := app.Run(context.Background(), cfg, &out)
	require.NoError(t, err)
	assert.Equal(t, "s*f\nmoves=2 cost=2 complete=true\n", out.String())
}

func TestRun_VisualizeFileAndCommand(t *testing.T) {
	cfg := setup(t, "S.F\n")
	cfg.Search.Model = "conn4"
	cfg.Search.Depth = 2
	cfg.Visualize.Enabled = true
	cfg.Visualize.OverlayPath = filepath.Join(filepath.Dir(cfg.Output.Path), "overlay.txt")
	// the command fails; the run does not
	cfg.Visualize.Command = "racetrack-no-such-visualiser {route}"

	ctx, logs := observed(zapcore.WarnLevel)
	var out bytes.Buffer
	_, err := app.Run(ctx, cfg, &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(cfg.Visualize.OverlayPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "s*f\n"))

	failed := logs.FilterMessage("visualization failed").All()
	require.Len(t, failed, 1)
	assert.Contains(t, fmt.Sprint(failed[0].ContextMap()["error"]), "command")
}

func TestRun_Cancelled(t *testing.T) {
	cfg := setup(t, "S..\n...\n..F\n")
	cfg.Search.Depth = 4
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := app.Run(ctx, cfg, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, app.ExitInternal, app.Classify(err))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, app.ExitOK},
		{errors.New("boom"), app.ExitInternal},
		{fmt.Errorf("load: %w", track.ErrNotFound), app.ExitNotFound},
		{&track.ParseError{Line: 2, Err: track.ErrNonRectangular}, app.ExitParse},
		{&route.WriteError{Path: "x", Err: os.ErrPermission}, app.ExitWrite},
		{fmt.Errorf("%w within 3 moves", construct.ErrNoRouteFound), app.ExitNoRoute},
		{config.ErrInvalid, app.ExitUsage},
		{config.ErrUnsupported, app.ExitUsage},
		{construct.ErrOptionViolation, app.ExitUsage},
		{&app.ExitError{Code: 42, Err: track.ErrNotFound}, 42},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, app.Classify(tc.err), "%v", tc.err)
	}
}

func TestExit(t *testing.T) {
	assert.NoError(t, app.Exit(nil))

	err := app.Exit(track.ErrNotFound)
	var ee *app.ExitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, app.ExitNotFound, ee.Code)
	assert.Equal(t, track.ErrNotFound.Error(), err.Error())

	again := app.Exit(err)
	assert.Same(t, err, again, "already classified")

	assert.Equal(t, "exit status 7", (&app.ExitError{Code: 7}).Error())
}
