// Package project owns the project descriptor: its data model, its persisted
// YAML representation under .magnet/, and the on-disk layout derived from it.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrDescriptorNotFound indicates no .magnet/config.yaml exists at the project root.
	ErrDescriptorNotFound = errors.New("project descriptor not found")

	// ErrNotProjectRoot indicates no .magnet directory was found.
	ErrNotProjectRoot = errors.New("not a magnet project")

	// ErrEmptyName indicates the descriptor has no project name.
	ErrEmptyName = errors.New("project name must not be empty")

	// ErrInvalidName indicates the project name cannot be used as a directory and target name.
	ErrInvalidName = errors.New("invalid project name")

	// ErrInvalidBinaryType indicates an unrecognized projectType value.
	ErrInvalidBinaryType = errors.New("invalid project type: must be one of Executable, StaticLibrary, DynamicLibrary")

	// ErrInvalidYAML indicates the descriptor document could not be parsed.
	ErrInvalidYAML = errors.New("invalid descriptor YAML")

	// ErrPersistence indicates the descriptor could not be written.
	ErrPersistence = errors.New("persist descriptor")
)
