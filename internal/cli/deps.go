// Package cli provides the Cobra command tree and dependency wiring for the
// magnet CLI. This file defines the Dependencies struct (Composition Root).
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/magnet-build/magnet/internal/config"
	"github.com/magnet-build/magnet/internal/toolchain"
	"github.com/magnet-build/magnet/internal/ui"
	"github.com/magnet-build/magnet/internal/workflow"
)

// Dependencies holds the services shared by every command. It is the only
// place where concrete types are instantiated.
type Dependencies struct {
	Settings *config.Settings
	Loader   *config.Loader
	Runner   toolchain.Runner
	Headless *ui.HeadlessManager
	Logger   *slog.Logger
}

// deps is the dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates the process-level services with default settings.
// Settings are replaced once flags are parsed, see loadSettings.
func InitDependencies() {
	deps = &Dependencies{
		Settings: config.NewDefaultSettings(),
		Loader:   config.NewLoader(),
		Runner:   toolchain.NewExecRunner(),
		Headless: ui.NewHeadlessManager(),
		Logger:   slog.Default(),
	}
}

// GetDeps returns the current Dependencies instance.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// settingsOverrides collects the persistent flags the user actually set.
func settingsOverrides(cmd *cobra.Command) map[string]any {
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		overrides[config.KeyLogLevel] = getStringFlag(cmd, "log-level")
	}
	if flags.Changed("no-color") {
		overrides[config.KeyNoColor] = getBoolFlag(cmd, "no-color")
	}
	if flags.Changed("verbose") && getBoolFlag(cmd, "verbose") {
		overrides[config.KeyLogLevel] = "debug"
	}
	return overrides
}

// loadSettings reads the settings file and environment, then installs the
// configured logger. It runs before every command.
func loadSettings(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		InitDependencies()
	}
	if deps.Loader == nil {
		deps.Loader = config.NewLoader()
	}

	path := getStringFlag(cmd, "settings")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			slog.Debug("no default settings path", "error", err)
		}
		path = p
	}

	settings, err := deps.Loader.Load(path, settingsOverrides(cmd))
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	deps.Settings = settings
	deps.Logger = ui.SetupLogger(cmd.ErrOrStderr(), settings.LogLevel, settings.LogFormat)
	deps.Logger.Debug("settings loaded", "file", deps.Loader.UsedFile())
	return nil
}

// newWorkflow builds the per-invocation workflow context for cmd.
func newWorkflow(cmd *cobra.Command) (*workflow.Context, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies not initialized")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return workflow.NewContext(cwd, deps.Settings, cmd.OutOrStdout(), deps.Runner), nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
