package toolchain

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// Generator names passed to cmake -G.
const (
	GeneratorVisualStudio  = "Visual Studio 17 2022"
	GeneratorXcode         = "Xcode"
	GeneratorUnixMakefiles = "Unix Makefiles"
)

// CMakeProgram is the cmake executable name.
const CMakeProgram = "cmake"

// GeneratorName returns the default CMake generator for goos.
func GeneratorName(goos string) string {
	switch goos {
	case "windows":
		return GeneratorVisualStudio
	case "darwin":
		return GeneratorXcode
	default:
		return GeneratorUnixMakefiles
	}
}

// IsMultiConfig reports whether generator places binaries in per-configuration
// subdirectories.
func IsMultiConfig(generator string) bool {
	return strings.HasPrefix(generator, "Visual Studio") ||
		generator == GeneratorXcode ||
		strings.HasPrefix(generator, "Ninja Multi-Config")
}

// SplitArgs splits a user-supplied argument string with POSIX shell quoting
// rules. Environment variables are expanded from the process environment.
func SplitArgs(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields, err := shell.Fields(s, nil)
	if err != nil {
		return nil, fmt.Errorf("parse arguments %q: %w", s, err)
	}
	return fields, nil
}

// ConfigureCommand builds the cmake configure step run from the project root.
func ConfigureCommand(root, buildDir, generator, configuration string, extra []string) Command {
	args := []string{"-S", ".", "-B", buildDir, "-G", generator, "-DCMAKE_BUILD_TYPE=" + configuration}
	return Command{Dir: root, Name: CMakeProgram, Args: append(args, extra...)}
}

// BuildCommand builds the cmake build step run from the project root.
func BuildCommand(root, buildDir, configuration string) Command {
	return Command{
		Dir:  root,
		Name: CMakeProgram,
		Args: []string{"--build", buildDir, "--config", configuration},
	}
}
