package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magnet-build/magnet/internal/workflow"
	"github.com/magnet-build/magnet/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "magnet",
	Short: "Magnet: C++ project manager on top of CMake",
	Long: `Magnet scaffolds C++ projects, manages their git submodule dependencies
and generates the CMake build scripts that tie them together.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the magnet CLI
// @MX:REASON: [AUTO] fan_in=2, called from cmd/magnet/main.go and cli_test.go
// Execute initializes dependencies and runs the root command. Errors already
// reported by a command handler are not printed again.
func Execute() error {
	InitDependencies()
	err := rootCmd.Execute()
	if err != nil && !workflow.Reported(err) {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("Magnet %s\n", version.GetVersion()))

	pf := rootCmd.PersistentFlags()
	pf.String("settings", "", "Settings file (default: $XDG_CONFIG_HOME/magnet/settings.yaml)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.BoolP("verbose", "v", false, "Shorthand for --log-level debug")
	pf.Bool("no-color", false, "Disable colored output")
}
