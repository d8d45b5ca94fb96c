package main

import (
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Logger *charmlog.Logger
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: newLogger(os.Stderr),
	}
}

// newLogger creates the structured stderr logger at info level.
func newLogger(w io.Writer) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "htmlreport",
	})
}

// applyVerbosity sets the logger level from --verbose / --quiet.
// Quiet wins when both are set.
func (e *Environment) applyVerbosity(verbose, quiet bool) {
	switch {
	case quiet:
		e.Logger.SetLevel(charmlog.ErrorLevel)
	case verbose:
		e.Logger.SetLevel(charmlog.DebugLevel)
	default:
		e.Logger.SetLevel(charmlog.InfoLevel)
	}
}
