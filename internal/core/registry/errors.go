// Package registry owns the ordered set of declared dependencies, its persisted
// YAML document, and the reconciliation of declared names against the
// dependency checkouts present on disk.
package registry

import "errors"

var (
	// ErrDuplicate indicates the dependency is already declared.
	ErrDuplicate = errors.New("dependency already declared")

	// ErrEmptyName indicates an empty dependency name.
	ErrEmptyName = errors.New("dependency name must not be empty")

	// ErrInvalidYAML indicates the registry document could not be parsed.
	ErrInvalidYAML = errors.New("invalid dependency registry YAML")

	// ErrPersistence indicates the registry document could not be written.
	ErrPersistence = errors.New("persist dependency registry")
)
