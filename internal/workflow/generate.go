package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magnet-build/magnet/internal/core/generator"
	"github.com/magnet-build/magnet/internal/toolchain"
	"github.com/magnet-build/magnet/internal/watch"
	"github.com/magnet-build/magnet/pkg/version"
)

// GenerateOptions tunes the generate command.
type GenerateOptions struct {
	// SkipConfigure writes the build scripts without running cmake.
	SkipConfigure bool
}

// Generate writes the three build scripts and runs the CMake configure step.
func (c *Context) Generate(ctx context.Context, opts GenerateOptions) error {
	c.Reporter.Info("Generating project files...")

	ws, err := c.open(true)
	if err != nil {
		return c.fail(err)
	}
	return c.fail(c.generate(ctx, ws, opts))
}

// @MX:ANCHOR: [AUTO] generate is the tail of every cascading dependency command.
// @MX:REASON: [AUTO] fan_in=5, Generate, GenerateWatch, InstallAll, Install, Remove, Switch
func (c *Context) generate(ctx context.Context, ws *workspace, opts GenerateOptions) error {
	cfg, err := ws.configuration()
	if err != nil {
		return err
	}
	extra, err := toolchain.SplitArgs(c.Settings.CMakeArgs)
	if err != nil {
		return &ValidationError{Err: err}
	}

	gen := generator.New(ws.root, ws.desc, ws.registry,
		generator.WithExcludes(c.Settings.SourceExclude),
		generator.WithVersion(version.GetVersion()),
	)

	plan, err := gen.Plan()
	if err != nil {
		var missing *generator.MissingDependencyError
		if errors.As(err, &missing) {
			for _, name := range missing.Names {
				c.Reporter.Warn("Missing dependency: %s", ws.layout.RelDependencyPath(name))
			}
			return fmt.Errorf("generate failed due to missing dependencies, run `magnet install` to install them: %w", err)
		}
		if errors.Is(err, generator.ErrInvalidExclude) {
			return &ValidationError{Err: err}
		}
		return &PreconditionError{Err: err}
	}

	result, err := gen.Write(plan)
	if err != nil {
		return &PersistenceError{Path: ws.root, Err: err}
	}
	c.logger.Info("build scripts written", "files", len(result.Files), "sources", len(result.Sources))

	if opts.SkipConfigure {
		c.Reporter.Success("Successfully generated project files.")
		return nil
	}

	cmd := toolchain.ConfigureCommand(ws.root, ws.layout.RelBuildDir(), c.generatorName(),
		cfg.String(), extra)
	if err := c.Runner.Run(ctx, cmd); err != nil {
		return &ExternalToolError{
			Command: cmd,
			Err:     fmt.Errorf("CMake failed to generate project files, see messages above for more information: %w", err),
		}
	}

	c.Reporter.Success("Successfully generated project files. Run `magnet build` next.")
	return nil
}

func (c *Context) generatorName() string {
	if g := strings.TrimSpace(c.Settings.Generator); g != "" {
		return g
	}
	return toolchain.GeneratorName(c.GOOS)
}

// GenerateWatch generates once and then regenerates every time a source file
// is created, removed or renamed, until ctx is cancelled. Failed
// regenerations are reported and watching continues.
func (c *Context) GenerateWatch(ctx context.Context, opts GenerateOptions) error {
	if err := c.Generate(ctx, opts); err != nil {
		return err
	}

	ws, err := c.open(true)
	if err != nil {
		return c.fail(err)
	}

	w, err := watch.New(ws.layout.SourceDir(), watch.DefaultConfig())
	if err != nil {
		return c.fail(err)
	}
	defer func() { _ = w.Close() }()

	c.Reporter.Info("Watching %s for changes. Press Ctrl+C to stop.", ws.layout.SourceDir())
	return w.Run(ctx, func(paths []string) {
		c.logger.Debug("sources changed", "paths", paths)
		c.Reporter.Info("Detected %d changed file(s), regenerating...", len(paths))

		// Registry and descriptor may have changed since the last pass.
		current, err := c.open(true)
		if err != nil {
			_ = c.fail(err)
			return
		}
		_ = c.fail(c.generate(ctx, current, opts))
	})
}
