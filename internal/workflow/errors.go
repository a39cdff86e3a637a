// Package workflow implements the magnet commands. Each handler validates its
// input, performs its side effects in order and reports a human-readable
// line before returning. No step is retried.
package workflow

import (
	"errors"
	"fmt"

	"github.com/magnet-build/magnet/internal/toolchain"
)

// ValidationError reports malformed command input. No side effect has run.
type ValidationError struct {
	Usage string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Usage == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (usage: %s)", e.Err, e.Usage)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PreconditionError reports a command run in the wrong place or against a
// project that lacks required state. No side effect has run.
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string {
	return e.Err.Error()
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// ExternalToolError reports a failed external program. Steps completed before
// it are not rolled back and no later step ran.
type ExternalToolError struct {
	Command toolchain.Command
	Err     error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failure writing a persisted document or a
// generated file.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Sentinel causes carried by the typed errors above.
var (
	ErrNotAtRoot            = errors.New("run this command at the root of your project, where .magnet can be found")
	ErrMissingArgument      = errors.New("missing argument")
	ErrAlreadyInstalled     = errors.New("dependency already installed")
	ErrNotInstalled         = errors.New("dependency not installed")
	ErrInvalidURL           = errors.New("cannot derive a dependency name from url")
	ErrProjectExists        = errors.New("a file or directory with the project name already exists")
	ErrBinaryNotFound       = errors.New("no built binary found, run `magnet build` first")
	ErrInvalidConfig        = errors.New("configuration must be Debug or Release")
	ErrInvalidDefaultConfig = errors.New("the default configuration in .magnet/config.yaml is not Debug or Release, fix it with `magnet config [Debug/Release]`")
)

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already printed by a handler.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
