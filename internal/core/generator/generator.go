package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/magnet-build/magnet/internal/cmake"
	"github.com/magnet-build/magnet/internal/core/project"
	"github.com/magnet-build/magnet/internal/core/registry"
	"github.com/magnet-build/magnet/internal/defs"
	"github.com/magnet-build/magnet/pkg/version"
)

// ToolName is written into the header of every generated file.
const ToolName = "Magnet"

// SourcePattern selects the files compiled into the project target.
const SourcePattern = "**/*.{cpp,h,hpp}"

// Include describes the include directory exported by one dependency.
type Include struct {
	Name string
	// HasIncludeDir is true when the checkout carries an include/ subdirectory.
	HasIncludeDir bool
}

// Path returns the include entry relative to the dependency directory.
func (i Include) Path() string {
	if i.HasIncludeDir {
		return i.Name + "/" + defs.IncludeDir
	}
	return i.Name
}

// Plan is everything the generator reads from disk before writing.
// Once a Plan exists the write phase needs no further filesystem probes.
type Plan struct {
	Layout       project.Layout
	Descriptor   project.Descriptor
	Dependencies []string
	Sources      []string
	Includes     []Include
}

// Result reports what a generation pass produced.
type Result struct {
	Files   []string
	Sources []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithExcludes drops discovered sources matching any of the doublestar
// patterns. Patterns are matched against paths relative to the Source directory.
func WithExcludes(patterns []string) Option {
	return func(g *Generator) {
		g.excludes = slices.Clone(patterns)
	}
}

// WithVersion overrides the tool version written into file headers.
func WithVersion(v string) Option {
	return func(g *Generator) {
		g.version = v
	}
}

// Generator writes the root, source-target and dependency-aggregation build
// scripts of one project.
type Generator struct {
	layout   project.Layout
	desc     project.Descriptor
	reg      *registry.Registry
	excludes []string
	version  string
	logger   *slog.Logger
}

// New creates a Generator for the project at root.
func New(root string, desc *project.Descriptor, reg *registry.Registry, opts ...Option) *Generator {
	g := &Generator{
		layout:  project.NewLayout(root, desc.Name),
		desc:    *desc,
		reg:     reg,
		version: version.GetVersion(),
		logger:  slog.Default().With("module", "generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// @MX:ANCHOR: [AUTO] Plan is the only place the generator reads the project tree.
// @MX:REASON: [AUTO] Generate relies on every failure surfacing here so no file is touched on error
// Plan reconciles the registry against the dependency directory, discovers
// sources and probes include directories. It never writes.
// A declared dependency without a checkout yields *MissingDependencyError.
func (g *Generator) Plan() (*Plan, error) {
	if err := g.desc.Validate(); err != nil {
		return nil, err
	}

	presences := g.reg.CheckPresence(g.layout.DependencyDir())
	if missing := registry.Missing(presences); len(missing) > 0 {
		return nil, &MissingDependencyError{Names: missing}
	}

	sources, err := DiscoverSources(g.layout.SourceDir(), g.excludes)
	if err != nil {
		return nil, err
	}

	deps := g.reg.List()
	includes := make([]Include, 0, len(deps))
	for _, dep := range deps {
		info, err := os.Stat(filepath.Join(g.layout.DependencyPath(dep), defs.IncludeDir))
		includes = append(includes, Include{Name: dep, HasIncludeDir: err == nil && info.IsDir()})
	}

	return &Plan{
		Layout:       g.layout,
		Descriptor:   g.desc,
		Dependencies: deps,
		Sources:      sources,
		Includes:     includes,
	}, nil
}

// Generate plans and then writes the three build scripts in order: root,
// source-target, dependency-aggregation. Running it twice on an unchanged
// tree produces byte-identical files.
func (g *Generator) Generate() (*Result, error) {
	plan, err := g.Plan()
	if err != nil {
		return nil, err
	}
	return g.Write(plan)
}

// Write emits the build scripts described by plan.
func (g *Generator) Write(plan *Plan) (*Result, error) {
	if err := os.MkdirAll(plan.Layout.DependencyDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create dependency directory: %w", err)
	}

	steps := []struct {
		path string
		fill func(e *cmake.Emitter)
	}{
		{plan.Layout.RootCMakeLists(), func(e *cmake.Emitter) { g.emitRoot(e, plan) }},
		{plan.Layout.SourceCMakeLists(), func(e *cmake.Emitter) { g.emitSource(e, plan) }},
		{plan.Layout.DependencyCMakeLists(), func(e *cmake.Emitter) { g.emitDependencies(e, plan) }},
	}

	result := &Result{Sources: slices.Clone(plan.Sources)}
	for _, step := range steps {
		err := cmake.WriteFile(step.path, func(e *cmake.Emitter) error {
			step.fill(e)
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("write %s: %w", step.path, err)
		}
		result.Files = append(result.Files, step.path)
		g.logger.Debug("build script written", "path", step.path)
	}

	g.logger.Info("project files generated",
		"project", plan.Descriptor.Name,
		"sources", len(plan.Sources),
		"dependencies", len(plan.Dependencies),
	)
	return result, nil
}

func (g *Generator) emitRoot(e *cmake.Emitter, plan *Plan) {
	name := plan.Descriptor.Name
	binaries := "${PROJECT_SOURCE_DIR}/${PROJECT_NAME}/" + defs.BinariesDir

	e.Header(ToolName, g.version)
	e.MinimumRequired(plan.Descriptor.CmakeVersion)
	e.Project(name)
	e.Newline(1)

	e.CxxStandard(plan.Descriptor.CppVersion)
	e.Set("CMAKE_ARCHIVE_OUTPUT_DIRECTORY", binaries)
	e.Set("CMAKE_LIBRARY_OUTPUT_DIRECTORY", binaries)
	e.Set("CMAKE_RUNTIME_OUTPUT_DIRECTORY", binaries)
	e.Newline(1)

	e.AddSubdirectory("${PROJECT_NAME}/" + defs.SourceDir)
	e.AddSubdirectory("${PROJECT_NAME}/" + defs.DependenciesDir)
	e.Newline(1)

	e.TargetIncludeDirectories(name, "PUBLIC", "${PROJECT_SOURCE_DIR}/${PROJECT_NAME}/"+defs.SourceDir)
	e.Newline(1)

	e.If("MSVC", func() {
		e.SetProperty("DIRECTORY ${CMAKE_CURRENT_SOURCE_DIR} PROPERTY VS_STARTUP_PROJECT " + name)
	})
}

func (g *Generator) emitSource(e *cmake.Emitter, plan *Plan) {
	name := plan.Descriptor.Name

	e.Header(ToolName, g.version)
	e.MinimumRequired(plan.Descriptor.CmakeVersion)
	e.Project(name)
	e.CxxStandard(plan.Descriptor.CppVersion)

	if plan.Descriptor.Type.IsLibrary() {
		e.AddLibrary(name, plan.Descriptor.Type.LibraryKind(), plan.Sources)
	} else {
		e.AddExecutable(name, plan.Sources)
	}
	e.Newline(1)

	e.Comment("Set rpath relative to app")
	e.IfElse("NOT MSVC", func() {
		e.SetTargetProperties(name, "LINK_FLAGS", `"-Wl,-rpath,./"`)
	}, func() {
		e.SetTargetProperties(name, "VS_DEBUGGER_WORKING_DIRECTORY",
			"${CMAKE_SOURCE_DIR}/${PROJECT_NAME}/"+defs.BinariesDir+"/"+string(project.Debug))
	})
	e.Newline(1)

	e.Comment("Precompiled headers")
	e.Comment("target_precompile_headers(${PROJECT_NAME} PUBLIC PCH.h)")
	e.Newline(1)

	if len(plan.Dependencies) > 0 {
		e.TargetLinkLibraries(name, plan.Dependencies)
	}
}

func (g *Generator) emitDependencies(e *cmake.Emitter, plan *Plan) {
	e.Header(ToolName, g.version)
	e.MinimumRequired(plan.Descriptor.CmakeVersion)
	e.Project(plan.Descriptor.Name)
	e.Newline(1)

	if len(plan.Dependencies) == 0 {
		return
	}

	e.AddSubdirectories(plan.Dependencies)
	e.Newline(1)

	e.BeginTargetIncludeDirectories(plan.Descriptor.Name, "PUBLIC")
	for _, inc := range plan.Includes {
		e.IncludeDirectory(inc.Path())
	}
	e.EndTargetIncludeDirectories()
}

// DiscoverSources lists files under sourceDir matching SourcePattern, as
// forward-slash paths relative to sourceDir in lexical order. Paths matching
// any exclude pattern are dropped.
func DiscoverSources(sourceDir string, excludes []string) ([]string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat source directory: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", ErrSourceDirMissing, sourceDir)
	}

	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExclude, pattern)
		}
	}

	matches, err := doublestar.Glob(os.DirFS(sourceDir), SourcePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("discover sources in %s: %w", sourceDir, err)
	}

	sources := matches[:0]
	for _, m := range matches {
		if excluded(m, excludes) {
			continue
		}
		sources = append(sources, m)
	}
	slices.Sort(sources)
	return slices.Compact(sources), nil
}

func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
