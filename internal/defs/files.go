package defs

// Project marker directory and the documents persisted inside it.
const (
	// MagnetDir is the marker directory that identifies a project root.
	MagnetDir = ".magnet"

	// ConfigYAML is the project descriptor document.
	ConfigYAML = "config.yaml"

	// DependenciesYAML is the dependency registry document.
	DependenciesYAML = "dependencies.yaml"
)

// Directories below the project's named subdirectory.
const (
	SourceDir       = "Source"
	DependenciesDir = "Dependencies"
	BuildDir        = "Build"
	BinariesDir     = "Binaries"
	IncludeDir      = "include"
)

// CMakeLists is the file name of every generated build script.
const CMakeLists = "CMakeLists.txt"

// GitModules is the submodule manifest maintained by git.
const GitModules = ".gitmodules"
