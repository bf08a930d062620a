// SPDX-License-Identifier: MIT

// Package logging builds the zap logger used by the racetrack binary and
// carries it through context.Context.
package logging

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrFormat indicates an unknown output format.
var ErrFormat = errors.New("logging: unknown format")

// New returns a logger writing to stderr at level ("debug", "info", "warn",
// "error") in format (FormatJSON or FormatConsole). Empty values mean info
// and console.
func New(level, format string) (*zap.Logger, error) {
	cfg, err := buildConfig(level, format)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

// Check reports whether New would accept level and format.
func Check(level, format string) error {
	_, err := buildConfig(level, format)
	return err
}

func buildConfig(level, format string) (zap.Config, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return zap.Config{}, fmt.Errorf("logging: level %q: %w", level, err)
		}
	}

	var cfg zap.Config
	switch format {
	case FormatJSON:
		cfg = zap.NewProductionConfig()
	case FormatConsole, "":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.DisableStacktrace = true
	default:
		return zap.Config{}, fmt.Errorf("%w %q", ErrFormat, format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg, nil
}

type ctxKey struct{}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
