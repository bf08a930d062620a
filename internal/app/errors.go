// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/racetrack/construct"
	"github.com/katalvlaran/racetrack/internal/config"
	"github.com/katalvlaran/racetrack/route"
	"github.com/katalvlaran/racetrack/track"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitParse    = 4
	ExitWrite    = 5
	ExitNoRoute  = 6
)

// ExitError pairs an error with the process exit code it maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Classify maps err to an exit code. An *ExitError anywhere in the chain
// keeps its own code.
func Classify(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	var pe *track.ParseError
	switch {
	case errors.Is(err, track.ErrNotFound):
		return ExitNotFound
	case errors.As(err, &pe):
		return ExitParse
	case errors.Is(err, route.ErrWrite):
		return ExitWrite
	case errors.Is(err, construct.ErrNoRouteFound):
		return ExitNoRoute
	case errors.Is(err, config.ErrInvalid),
		errors.Is(err, config.ErrUnsupported),
		errors.Is(err, construct.ErrOptionViolation):
		return ExitUsage
	}
	return ExitInternal
}

// Exit wraps err in an *ExitError carrying Classify(err). nil stays nil.
func Exit(err error) error {
	if err == nil {
		return nil
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return err
	}
	return &ExitError{Code: Classify(err), Err: err}
}
