package renderer

import (
	"errors"
	"fmt"
)

var (
	ErrNoDisplay         = errors.New("no display connection")
	ErrNoConfig          = errors.New("no matching surface config")
	ErrNoSurface         = errors.New("unable to create window surface")
	ErrNoContext         = errors.New("unable to create rendering context")
	ErrMakeCurrentFailed = errors.New("unable to make context current")

	ErrCompileFailed = errors.New("shader compilation failed")
	ErrLinkFailed    = errors.New("program link failed")
)

// ContextError reports which acquisition step failed.
type ContextError struct {
	Op  string
	Err error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

// BuildError is compiler or linker log text captured while building
// resources. It is a diagnostic; on its own it does not fail a build.
type BuildError struct {
	Stage string
	Log   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s info log: %s", e.Stage, e.Log)
}
