package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/magnet-build/magnet/internal/core/git"
	"github.com/magnet-build/magnet/internal/core/registry"
	"github.com/magnet-build/magnet/internal/toolchain"
)

const (
	installUsage = "magnet install <url>\n       magnet install --list"
	removeUsage  = "magnet remove <dependency>"
	switchUsage  = "magnet switch <dependency> <branch>"
)

// runSteps runs cmds in order and stops at the first failure.
func (c *Context) runSteps(ctx context.Context, message string, cmds ...toolchain.Command) error {
	for _, cmd := range cmds {
		if err := c.Runner.Run(ctx, cmd); err != nil {
			return &ExternalToolError{Command: cmd, Err: fmt.Errorf("%s, see messages above for more information: %w", message, err)}
		}
	}
	return nil
}

// saveRegistry persists the registry, wrapping failures as PersistenceError.
func saveRegistry(reg *registry.Registry) error {
	if err := reg.Save(); err != nil {
		return &PersistenceError{Path: reg.Path(), Err: err}
	}
	return nil
}

// InstallAll checks out every submodule, then regenerates.
func (c *Context) InstallAll(ctx context.Context) error {
	ws, err := c.open(true)
	if err != nil {
		return c.fail(err)
	}

	if err := c.runSteps(ctx, "failed to install dependencies", git.SubmoduleUpdate(ws.root)); err != nil {
		return c.fail(err)
	}
	c.Reporter.Success("Successfully installed all dependencies.")

	c.Reporter.Info("Generating project files...")
	return c.fail(c.generate(ctx, ws, GenerateOptions{}))
}

// ResolveURL expands owner/repo shorthand against host. Full URLs and scp-like
// addresses are returned unchanged.
func ResolveURL(repo, host string) string {
	repo = strings.TrimSpace(repo)
	if strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@") {
		return repo
	}
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	return host + strings.TrimPrefix(repo, "/")
}

// Install adds repo as a submodule, records it in the
// registry and regenerates. The registry is only written after git succeeded.
func (c *Context) Install(ctx context.Context, repo string) error {
	if strings.TrimSpace(repo) == "" {
		return c.fail(&ValidationError{Err: fmt.Errorf("%w: url", ErrMissingArgument), Usage: installUsage})
	}

	ws, err := c.open(true)
	if err != nil {
		return c.fail(err)
	}

	url := ResolveURL(repo, c.Settings.GitHost)
	name := registry.Normalize(registry.ExtractName(url))
	if name == "" || name == "." || name == ".." {
		return c.fail(&ValidationError{Err: fmt.Errorf("%w: %s", ErrInvalidURL, url)})
	}
	if ws.registry.Contains(name) {
		return c.fail(&ValidationError{Err: fmt.Errorf("%w: %s", ErrAlreadyInstalled, name)})
	}

	c.logger.Info("installing dependency", "name", name, "url", url)
	path := ws.layout.RelDependencyPath(name)
	if err := c.runSteps(ctx, "failed to install dependency", git.SubmoduleAdd(ws.root, url, path)); err != nil {
		return c.fail(err)
	}

	if err := ws.registry.Add(name); err != nil {
		return c.fail(&ValidationError{Err: err})
	}
	if err := saveRegistry(ws.registry); err != nil {
		return c.fail(err)
	}
	c.Reporter.Success("Installed new dependency: %s", name)

	c.Reporter.Info("Generating project files...")
	return c.fail(c.generate(ctx, ws, GenerateOptions{}))
}

// ListDependencies prints the registry with the checked-out revision and
// origin of each dependency.
func (c *Context) ListDependencies(_ context.Context) error {
	ws, err := c.open(true)
	if err != nil {
		return c.fail(err)
	}

	names := ws.registry.List()
	if len(names) == 0 {
		c.Reporter.Info("No dependencies installed.")
		return nil
	}

	submodules, err := git.Submodules(ws.root)
	if err != nil {
		c.logger.Warn("cannot read submodule origins", "error", err)
	}

	c.Reporter.Title("Here are all the installed dependencies:")
	for _, name := range names {
		c.Reporter.Item(name, c.describe(ws, name, submodules))
	}
	return nil
}

func (c *Context) describe(ws *workspace, name string, submodules map[string]git.Submodule) string {
	var parts []string

	rev, err := git.Describe(ws.layout.DependencyPath(name))
	switch {
	case err == nil:
		parts = append(parts, rev.String())
	case errors.Is(err, os.ErrNotExist) || errors.Is(err, git.ErrNotRepository):
		parts = append(parts, "not checked out")
	default:
		c.logger.Debug("describe dependency failed", "name", name, "error", err)
	}

	if sm, ok := submodules[ws.layout.RelDependencyPath(name)]; ok && sm.URL != "" {
		parts = append(parts, sm.URL)
	}
	return strings.Join(parts, " ")
}

// Remove deinitializes the submodule of dep, deletes its checkout and git
// metadata, drops it from the registry and regenerates.
func (c *Context) Remove(ctx context.Context, dep string) error {
	dep = registry.Normalize(dep)
	if dep == "" {
		return c.fail(&ValidationError{Err: fmt.Errorf("%w: dependency", ErrMissingArgument), Usage: removeUsage})
	}

	ws, err := c.open(true)
	if err != nil {
		return c.fail(err)
	}
	if !ws.registry.Contains(dep) {
		return c.fail(&ValidationError{Err: fmt.Errorf("%w: %s", ErrNotInstalled, dep)})
	}

	path := ws.layout.RelDependencyPath(dep)
	err = c.runSteps(ctx, "failed to remove dependency",
		git.SubmoduleDeinit(ws.root, path),
		git.Remove(ws.root, path),
	)
	if err != nil {
		return c.fail(err)
	}

	moduleDir := git.ModuleDir(ws.root, path)
	if err := os.RemoveAll(moduleDir); err != nil {
		return c.fail(&PersistenceError{Path: moduleDir, Err: err})
	}

	ws.registry.Remove(dep)
	if err := saveRegistry(ws.registry); err != nil {
		return c.fail(err)
	}
	c.Reporter.Success("Removed dependency: %s", dep)

	c.Reporter.Info("Generating project files...")
	return c.fail(c.generate(ctx, ws, GenerateOptions{}))
}

// Switch checks out branch in the checkout of dep, stages the new submodule
// revision and regenerates. The registry is not modified.
func (c *Context) Switch(ctx context.Context, dep, branch string) error {
	dep = registry.Normalize(dep)
	if dep == "" || strings.TrimSpace(branch) == "" {
		return c.fail(&ValidationError{Err: fmt.Errorf("%w: dependency and branch", ErrMissingArgument), Usage: switchUsage})
	}

	ws, err := c.open(true)
	if err != nil {
		return c.fail(err)
	}
	if !ws.registry.Contains(dep) {
		return c.fail(&ValidationError{Err: fmt.Errorf("%w: %s", ErrNotInstalled, dep)})
	}

	path := ws.layout.RelDependencyPath(dep)
	err = c.runSteps(ctx, "failed to switch dependency branch",
		git.Checkout(ws.root, path, branch),
		git.Add(ws.root, path),
	)
	if err != nil {
		return c.fail(err)
	}
	c.Reporter.Success("Switched %s branch to: %s", dep, branch)

	c.Reporter.Info("Generating project files...")
	return c.fail(c.generate(ctx, ws, GenerateOptions{}))
}
