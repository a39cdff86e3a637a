package workflow

import (
	"errors"
	"io"
	"log/slog"
	"runtime"

	"github.com/magnet-build/magnet/internal/config"
	"github.com/magnet-build/magnet/internal/core/project"
	"github.com/magnet-build/magnet/internal/core/registry"
	"github.com/magnet-build/magnet/internal/template"
	"github.com/magnet-build/magnet/internal/toolchain"
	"github.com/magnet-build/magnet/internal/ui"
)

// Context carries everything one command invocation needs. It is built once
// per invocation and never shared between invocations.
type Context struct {
	// Dir is the working directory the command was invoked from.
	Dir      string
	Settings *config.Settings
	Reporter *ui.Reporter
	Runner   toolchain.Runner
	Store    *project.Store
	Deployer template.Deployer
	// GOOS selects the default CMake generator and binary suffix.
	GOOS   string
	logger *slog.Logger
}

// NewContext creates a Context with the embedded project template and the
// host platform.
func NewContext(dir string, settings *config.Settings, out io.Writer, runner toolchain.Runner) *Context {
	if settings == nil {
		settings = config.NewDefaultSettings()
	}
	return &Context{
		Dir:      dir,
		Settings: settings,
		Reporter: ui.NewReporter(out, settings.NoColor),
		Runner:   runner,
		Store:    project.NewStore(),
		Deployer: template.NewDeployer(template.EmbeddedFS()),
		GOOS:     runtime.GOOS,
		logger:   slog.Default().With("module", "workflow"),
	}
}

// workspace is a loaded project: its root, descriptor and registry.
type workspace struct {
	root     string
	desc     *project.Descriptor
	registry *registry.Registry
	layout   project.Layout
}

// fail reports err to the user once and marks it as reported.
func (c *Context) fail(err error) error {
	if err == nil || Reported(err) {
		return err
	}
	var v *ValidationError
	if errors.As(err, &v) && v.Usage != "" {
		c.Reporter.Error("%v", v.Err)
		c.Reporter.Plain("Usage: %s", v.Usage)
	} else {
		c.Reporter.Error("%v", err)
	}
	c.logger.Debug("command failed", "error", err)
	return &reportedError{err: err}
}

// open loads the project. With atRoot the working directory itself must hold
// .magnet; otherwise the root is searched upward.
func (c *Context) open(atRoot bool) (*workspace, error) {
	root := c.Dir
	if atRoot {
		if !project.IsRoot(c.Dir) {
			return nil, &PreconditionError{Err: ErrNotAtRoot}
		}
	} else {
		found, err := project.FindRoot(c.Dir)
		if err != nil {
			return nil, &PreconditionError{Err: err}
		}
		root = found
	}

	desc, err := c.Store.Load(root)
	if err != nil {
		return nil, &PreconditionError{Err: err}
	}
	if err := desc.Validate(); err != nil {
		return nil, &PreconditionError{Err: err}
	}

	layout := project.NewLayout(root, desc.Name)
	reg, err := registry.Load(layout.RegistryPath())
	if err != nil {
		return nil, &PreconditionError{Err: err}
	}

	return &workspace{root: root, desc: desc, registry: reg, layout: layout}, nil
}

// configuration returns the project's default configuration. A hand-edited
// descriptor may hold a value that does not parse.
func (ws *workspace) configuration() (project.Configuration, error) {
	if !ws.desc.Configuration.IsValid() {
		return "", &PreconditionError{Err: ErrInvalidDefaultConfig}
	}
	return ws.desc.Configuration, nil
}
