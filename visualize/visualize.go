// SPDX-License-Identifier: MIT

// Package visualize hands a constructed route to visualization collaborators.
//
// Renderer is the collaborator contract. Two implementations ship with the
// package:
//
//   - Overlay prints the track with the route drawn over it.
//   - Command runs an external program (by default perl src/visualise.pl)
//     with track, route and output paths substituted.
//
// Dispatcher runs renderers in the background once the route file exists, so
// the export itself never waits on them.
package visualize

import (
	"context"
	"errors"

	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
)

var (
	// ErrNilTrack is returned by renderers that receive no track.
	ErrNilTrack = errors.New("visualize: track is nil")
	// ErrEmptyCommand indicates a Command whose template has no program.
	ErrEmptyCommand = errors.New("visualize: empty command template")
	// ErrCommandFailed wraps a non-zero exit of an external renderer.
	ErrCommandFailed = errors.New("visualize: command failed")
)

// Renderer visualizes a route over its track.
type Renderer interface {
	Render(ctx context.Context, t *track.Track, r route.Route) error
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(ctx context.Context, t *track.Track, r route.Route) error

// Render calls f.
func (f RenderFunc) Render(ctx context.Context, t *track.Track, r route.Route) error {
	return f(ctx, t, r)
}
