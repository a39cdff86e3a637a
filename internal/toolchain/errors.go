// Package toolchain launches the external programs magnet drives (cmake, git
// and the built binary) and knows the CMake generator conventions.
package toolchain

import (
	"errors"
	"fmt"
)

var (
	// ErrToolNotFound indicates the program is not on PATH.
	ErrToolNotFound = errors.New("toolchain: program not found")

	// ErrEmptyCommand indicates a Command without a program name.
	ErrEmptyCommand = errors.New("toolchain: empty command")
)

// ExitError reports a program that ran and exited non-zero.
type ExitError struct {
	Command Command
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
