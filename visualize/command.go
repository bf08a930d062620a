// SPDX-License-Identifier: MIT

package visualize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
)

// DefaultCommand is the template of the external visualiser.
const DefaultCommand = "perl src/visualise.pl {track} {route} {output}"

// Placeholders substituted in a Command template.
const (
	PlaceholderTrack  = "{track}"
	PlaceholderRoute  = "{route}"
	PlaceholderOutput = "{output}"
)

// Command renders by running an external program on the files the pipeline
// already wrote. The template is split on whitespace before substitution, so
// a path containing spaces stays a single argument.
type Command struct {
	Template   string
	TrackPath  string
	RoutePath  string
	OutputPath string

	// Dir is the working directory; empty means the current one.
	Dir string
	// Stdout receives the program's standard output; nil discards it.
	Stdout io.Writer
}

// Args returns the program and its arguments after substitution.
func (c *Command) Args() ([]string, error) {
	tmpl := c.Template
	if tmpl == "" {
		tmpl = DefaultCommand
	}
	fields := strings.Fields(tmpl)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	rep := strings.NewReplacer(
		PlaceholderTrack, c.TrackPath,
		PlaceholderRoute, c.RoutePath,
		PlaceholderOutput, c.OutputPath,
	)
	for i, f := range fields {
		fields[i] = rep.Replace(f)
	}
	return fields, nil
}

// Render implements Renderer. The track and route are not re-encoded; the
// program reads them from TrackPath and RoutePath. A non-zero exit yields an
// error wrapping ErrCommandFailed that carries the program's stderr.
func (c *Command) Render(ctx context.Context, t *track.Track, _ route.Route) error {
	if t == nil {
		return ErrNilTrack
	}
	args, err := c.Args()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%w: %s: %v", ErrCommandFailed, args[0], err)
		}
		return fmt.Errorf("%w: %s: %v: %s", ErrCommandFailed, args[0], err, msg)
	}
	return nil
}
