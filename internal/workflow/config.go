package workflow

import (
	"fmt"

	"github.com/magnet-build/magnet/internal/core/project"
)

const configUsage = "magnet config [Debug/Release]"

// Config persists text as the project's default build configuration.
func (c *Context) Config(text string) error {
	cfg := project.ParseConfiguration(text)
	if !cfg.IsValid() {
		return c.fail(&ValidationError{Err: fmt.Errorf("%w (got: %q)", ErrInvalidConfig, text), Usage: configUsage})
	}

	ws, err := c.open(true)
	if err != nil {
		return c.fail(err)
	}

	ws.desc.Configuration = cfg
	if err := c.Store.Save(ws.root, ws.desc); err != nil {
		return c.fail(&PersistenceError{Path: project.DescriptorPath(ws.root), Err: err})
	}

	c.Reporter.Success("Successfully changed default configuration to %s.", cfg)
	return nil
}
