package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magnet-build/magnet/internal/defs"
)

// @MX:ANCHOR: [AUTO] Every project-scoped command resolves its root through these helpers.
// @MX:REASON: [AUTO] fan_in=6, workflow handlers, cli pre-run, generator tests
// IsRoot reports whether dir directly contains the .magnet marker directory.
func IsRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, defs.MagnetDir))
	return err == nil && info.IsDir()
}

// FindRoot locates the project root by searching for the .magnet directory,
// starting at dir and traversing upward.
// Returns an error wrapping ErrNotProjectRoot when no marker is found.
func FindRoot(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		if IsRoot(absDir) {
			return absDir, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", fmt.Errorf("%w: no %s directory found in %s or any parent directory",
				ErrNotProjectRoot, defs.MagnetDir, dir)
		}
		absDir = parent
	}
}

// Layout resolves the directories of a project below its root.
type Layout struct {
	Root string
	Name string
}

// NewLayout returns the layout for a project root and descriptor name.
func NewLayout(root, name string) Layout {
	return Layout{Root: filepath.Clean(root), Name: name}
}

// ProjectDir is the named subdirectory holding sources and dependencies.
func (l Layout) ProjectDir() string { return filepath.Join(l.Root, l.Name) }

// SourceDir holds the project's C++ sources.
func (l Layout) SourceDir() string { return filepath.Join(l.ProjectDir(), defs.SourceDir) }

// DependencyDir holds one checkout per declared dependency.
func (l Layout) DependencyDir() string { return filepath.Join(l.ProjectDir(), defs.DependenciesDir) }

// BuildDir is the CMake binary directory.
func (l Layout) BuildDir() string { return filepath.Join(l.ProjectDir(), defs.BuildDir) }

// BinaryDir is where built artifacts land.
func (l Layout) BinaryDir() string { return filepath.Join(l.ProjectDir(), defs.BinariesDir) }

// DependencyPath is the checkout directory of one dependency.
func (l Layout) DependencyPath(name string) string { return filepath.Join(l.DependencyDir(), name) }

// RelDependencyPath is the dependency checkout path relative to the root, with
// forward slashes, as git expects it for submodule paths.
func (l Layout) RelDependencyPath(name string) string {
	return l.Name + "/" + defs.DependenciesDir + "/" + name
}

// RelBuildDir is the build directory relative to the root, as passed to cmake.
func (l Layout) RelBuildDir() string {
	return l.Name + "/" + defs.BuildDir
}

// RootCMakeLists is the generated root build script.
func (l Layout) RootCMakeLists() string { return filepath.Join(l.Root, defs.CMakeLists) }

// SourceCMakeLists is the generated source-target build script.
func (l Layout) SourceCMakeLists() string { return filepath.Join(l.SourceDir(), defs.CMakeLists) }

// DependencyCMakeLists is the generated dependency-aggregation build script.
func (l Layout) DependencyCMakeLists() string {
	return filepath.Join(l.DependencyDir(), defs.CMakeLists)
}

// RegistryPath is the dependency registry document.
func (l Layout) RegistryPath() string {
	return filepath.Join(l.Root, defs.MagnetDir, defs.DependenciesYAML)
}
