package workflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/magnet-build/magnet/internal/toolchain"
)

// cleanTargets are the CMake cache artifacts removed by Clean, relative to
// the build directory.
var cleanTargets = []string{
	"cmake_install.cmake",
	"CMakeCache.txt",
	"CMakeFiles",
	"Makefile",
}

// Build compiles the project in its default configuration.
func (c *Context) Build(ctx context.Context) error {
	ws, err := c.open(false)
	if err != nil {
		return c.fail(err)
	}

	cfg, err := ws.configuration()
	if err != nil {
		return c.fail(err)
	}
	c.Reporter.Info("Building in %s configuration...", cfg)

	cmd := toolchain.BuildCommand(ws.root, ws.layout.RelBuildDir(), cfg.String())
	if err := c.Runner.Run(ctx, cmd); err != nil {
		return c.fail(&ExternalToolError{
			Command: cmd,
			Err:     fmt.Errorf("CMake couldn't build the project, have you run `magnet generate` first? %w", err),
		})
	}

	c.Reporter.Success("Build successful. Run `magnet run` to launch your app.")
	return nil
}

// Run launches the built executable with args, from the project root.
func (c *Context) Run(ctx context.Context, args []string) error {
	ws, err := c.open(false)
	if err != nil {
		return c.fail(err)
	}

	cfg, err := ws.configuration()
	if err != nil {
		return c.fail(err)
	}

	binary, err := c.BinaryPath(ws.layout.BinaryDir(), ws.desc.Name, cfg.String())
	if err != nil {
		return c.fail(&PreconditionError{Err: err})
	}

	c.Reporter.Info("Launching project...")
	cmd := toolchain.Command{Dir: ws.root, Name: binary, Args: args}
	if err := c.Runner.Run(ctx, cmd); err != nil {
		return c.fail(&ExternalToolError{Command: cmd, Err: err})
	}
	return nil
}

// BinaryPath locates the executable named name under binaryDir. Multi-config
// generators place it in a per-configuration subdirectory; single-config
// generators place it directly in binaryDir. The generator's own location is
// tried first and the other one second.
func (c *Context) BinaryPath(binaryDir, name, configuration string) (string, error) {
	file := name
	if c.GOOS == "windows" {
		file += ".exe"
	}

	candidates := []string{
		filepath.Join(binaryDir, configuration, file),
		filepath.Join(binaryDir, file),
	}
	if !toolchain.IsMultiConfig(c.generatorName()) {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: looked in %s", ErrBinaryNotFound, binaryDir)
}

// Clean removes the CMake cache artifacts from the build directory and
// reports how many files and directories were deleted.
func (c *Context) Clean(_ context.Context) error {
	ws, err := c.open(false)
	if err != nil {
		return c.fail(err)
	}

	c.Reporter.Info("Clean started...")

	removed := 0
	for _, target := range cleanTargets {
		path := filepath.Join(ws.layout.BuildDir(), target)
		n, err := removeAll(path)
		removed += n
		if err != nil {
			return c.fail(&PersistenceError{Path: path, Err: err})
		}
	}

	switch removed {
	case 0:
		c.Reporter.Success("Looks like your project is already clean. Nice!")
	case 1:
		c.Reporter.Success("Removed 1 item.")
	default:
		c.Reporter.Success("Removed %d items.", removed)
	}
	return nil
}

// removeAll deletes path recursively and returns the number of entries it
// held, path itself included. A missing path counts as zero.
func removeAll(path string) (int, error) {
	count := 0
	err := filepath.WalkDir(path, func(_ string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if err := os.RemoveAll(path); err != nil {
		return 0, err
	}
	return count, nil
}
