// Package generator produces the three build scripts of a project from its
// descriptor and dependency registry.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceDirMissing indicates the project has no Source directory to scan.
	ErrSourceDirMissing = errors.New("generator: source directory not found")

	// ErrInvalidExclude indicates a malformed source exclude pattern.
	ErrInvalidExclude = errors.New("generator: invalid exclude pattern")
)

// MissingDependencyError reports declared dependencies that have no checkout
// under the dependency directory. Names preserve registry order.
type MissingDependencyError struct {
	Names []string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependencies not installed: %s", strings.Join(e.Names, ", "))
}
