package workflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/magnet-build/magnet/internal/core/git"
	"github.com/magnet-build/magnet/internal/core/project"
	"github.com/magnet-build/magnet/internal/core/registry"
	"github.com/magnet-build/magnet/internal/template"
	"github.com/magnet-build/magnet/pkg/version"
)

// NewOptions are the answers of the new-project wizard.
type NewOptions struct {
	Name string
	// Type defaults to Executable when empty.
	Type string
	// CppVersion and CmakeVersion default to the settings when empty.
	CppVersion   string
	CmakeVersion string
	// SkipGit leaves the project without a repository.
	SkipGit bool
}

// ProjectDirAvailable fails when name cannot be created under dir.
func ProjectDirAvailable(dir, name string) error {
	_, err := os.Lstat(filepath.Join(dir, name))
	if err == nil {
		return fmt.Errorf("%w: %s", ErrProjectExists, name)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// New creates the project directory opts.Name under the working directory,
// renders the starter sources, writes the descriptor and an empty registry
// and initializes a git repository. A failure removes the partial project.
func (c *Context) New(ctx context.Context, opts NewOptions) (err error) {
	desc, err := c.newDescriptor(opts)
	if err != nil {
		return c.fail(&ValidationError{Err: err, Usage: "magnet new --name <name> [--type Executable|StaticLibrary|DynamicLibrary]"})
	}
	if err := ProjectDirAvailable(c.Dir, desc.Name); err != nil {
		return c.fail(&PreconditionError{Err: err})
	}

	c.Reporter.Info("Creating new C++ project...")

	root := filepath.Join(c.Dir, desc.Name)
	if err := os.Mkdir(root, 0o755); err != nil {
		return c.fail(&PersistenceError{Path: root, Err: err})
	}
	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(root); rmErr != nil {
				c.logger.Warn("cannot remove partial project", "path", root, "error", rmErr)
			}
		}
	}()

	tmplCtx := template.NewTemplateContext(desc.Name, string(desc.Type),
		template.WithLibrary(desc.Type.IsLibrary()),
		template.WithVersions(desc.CppVersion, desc.CmakeVersion),
		template.WithToolVersion(version.GetVersion()),
	)
	files, err := c.Deployer.Deploy(ctx, root, tmplCtx)
	if err != nil {
		return c.fail(&PersistenceError{Path: root, Err: err})
	}
	c.logger.Debug("template deployed", "files", files)

	if err := c.Store.Save(root, desc); err != nil {
		return c.fail(&PersistenceError{Path: project.DescriptorPath(root), Err: err})
	}
	layout := project.NewLayout(root, desc.Name)
	if err := saveRegistry(registry.New(layout.RegistryPath())); err != nil {
		return c.fail(err)
	}

	if !opts.SkipGit {
		if err := git.Init(root); err != nil {
			return c.fail(&PersistenceError{Path: root, Err: err})
		}
	}

	c.Reporter.Success("Created %s project %s.", tmplCtx.TypeLabel(), desc.Name)
	c.Reporter.Plain("Next steps: `cd %s && magnet generate`", desc.Name)
	return nil
}

func (c *Context) newDescriptor(opts NewOptions) (*project.Descriptor, error) {
	if err := project.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	desc := project.NewDescriptor(opts.Name)

	if opts.Type != "" {
		t, err := project.ParseBinaryType(opts.Type)
		if err != nil {
			return nil, err
		}
		desc.Type = t
	}

	desc.CppVersion = firstNonEmpty(opts.CppVersion, c.Settings.CppVersion, desc.CppVersion)
	desc.CmakeVersion = firstNonEmpty(opts.CmakeVersion, c.Settings.CmakeVersion, desc.CmakeVersion)
	return desc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
