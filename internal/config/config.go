// SPDX-License-Identifier: MIT

// Package config holds the racetrack run configuration: built-in defaults,
// optional YAML or HCL files, and validation. Command-line flags are applied
// on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/racetrack/construct"
	"github.com/katalvlaran/racetrack/internal/logging"
	"github.com/katalvlaran/racetrack/visualize"
)

var (
	// ErrInvalid is wrapped by every Validate failure.
	ErrInvalid = errors.New("config: invalid configuration")
	// ErrUnsupported indicates a config file extension other than .yaml, .yml or .hcl.
	ErrUnsupported = errors.New("config: unsupported file type")
)

// Config is the full run configuration.
type Config struct {
	Track     string    `yaml:"track"`
	Search    Search    `yaml:"search"`
	Output    Output    `yaml:"output"`
	Visualize Visualize `yaml:"visualize"`
	Logging   Logging   `yaml:"logging"`
}

// Search configures the route constructor.
type Search struct {
	Depth        int    `yaml:"depth"`
	Model        string `yaml:"model"`
	GrassCost    int    `yaml:"grass_cost"`
	MaxSpeed     int    `yaml:"max_speed"`
	Workers      int    `yaml:"workers"`
	Prune        bool   `yaml:"prune"`
	AllowPartial bool   `yaml:"allow_partial"`
}

// Output configures the route exporter.
type Output struct {
	Path string `yaml:"path"`
}

// Visualize configures the optional visualization step.
type Visualize struct {
	Enabled bool `yaml:"enabled"`
	// OverlayPath receives the text overlay; empty prints it to stdout.
	OverlayPath string `yaml:"overlay_path"`
	// Command is the external renderer template; empty skips it.
	Command string `yaml:"command"`
	// Output substitutes {output}; empty derives it from the route path.
	Output  string        `yaml:"output"`
	Timeout time.Duration `yaml:"timeout"`
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() Config {
	return Config{
		Track: "tracks/track_02.t",
		Search: Search{
			Depth:     1,
			Model:     construct.ModelVelocity.String(),
			GrassCost: 2,
			Workers:   1,
			Prune:     true,
		},
		Output: Output{Path: "routes/output.csv"},
		Visualize: Visualize{
			Command: visualize.DefaultCommand,
			Timeout: time.Minute,
		},
		Logging: Logging{Level: "info", Format: logging.FormatConsole},
	}
}

// Load returns Default overlaid with the file at path. The format follows the
// extension: .yaml/.yml or .hcl. Keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".hcl":
		err = decodeHCL(path, data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Track == "":
		return fmt.Errorf("%w: track path is empty", ErrInvalid)
	case c.Output.Path == "":
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	case c.Search.Depth < 0:
		return fmt.Errorf("%w: search depth must be >= 0 (%d)", ErrInvalid, c.Search.Depth)
	case c.Search.GrassCost < 1:
		return fmt.Errorf("%w: grass cost must be >= 1 (%d)", ErrInvalid, c.Search.GrassCost)
	case c.Search.MaxSpeed < 0:
		return fmt.Errorf("%w: max speed must be >= 0 (%d)", ErrInvalid, c.Search.MaxSpeed)
	case c.Search.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1 (%d)", ErrInvalid, c.Search.Workers)
	case c.Visualize.Timeout < 0:
		return fmt.Errorf("%w: visualize timeout must be >= 0 (%s)", ErrInvalid, c.Visualize.Timeout)
	}
	if _, err := construct.ParseModel(c.Search.Model); err != nil {
		return fmt.Errorf("%w: search model %q", ErrInvalid, c.Search.Model)
	}
	if err := logging.Check(c.Logging.Level, c.Logging.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Model returns the parsed search model. Call Validate first.
func (c Config) Model() construct.Model {
	m, _ := construct.ParseModel(c.Search.Model)
	return m
}

// VisualizeOutput returns Visualize.Output, or the route path with a .pdf extension.
func (c Config) VisualizeOutput() string {
	if c.Visualize.Output != "" {
		return c.Visualize.Output
	}
	return strings.TrimSuffix(c.Output.Path, filepath.Ext(c.Output.Path)) + ".pdf"
}
