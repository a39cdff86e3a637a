package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magnet-build/magnet/internal/workflow"
)

var configCmd = &cobra.Command{
	Use:   "config <Debug|Release>",
	Short: "Change the default build configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, err := newWorkflow(cmd)
		if err != nil {
			return err
		}
		return wf.Config(firstArg(args))
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the CMake build scripts and configure the build",
	Long: `Generate writes CMakeLists.txt at the project root, in <name>/Source and in
<name>/Dependencies, then runs the CMake configure step into <name>/Build.

Every declared dependency must be checked out; run "magnet install" first
when one is missing. With --watch, generation reruns whenever a source file
is added, removed or renamed.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the project in its default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		wf, err := newWorkflow(cmd)
		if err != nil {
			return err
		}
		return wf.Build(commandContext(cmd))
	},
}

var runCmd = &cobra.Command{
	Use:     "run [-- args...]",
	Aliases: []string{"go"},
	Short:   "Launch the built executable",
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, err := newWorkflow(cmd)
		if err != nil {
			return err
		}
		return wf.Run(commandContext(cmd), args)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the CMake cache from the build directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		wf, err := newWorkflow(cmd)
		if err != nil {
			return err
		}
		return wf.Clean(commandContext(cmd))
	},
}

func init() {
	rootCmd.AddCommand(configCmd, generateCmd, buildCmd, runCmd, cleanCmd)

	generateCmd.Flags().BoolP("watch", "w", false, "Regenerate when source files are added, removed or renamed")
	generateCmd.Flags().Bool("no-configure", false, "Write the build scripts without running cmake")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	wf, err := newWorkflow(cmd)
	if err != nil {
		return err
	}
	opts := workflow.GenerateOptions{SkipConfigure: getBoolFlag(cmd, "no-configure")}

	if !getBoolFlag(cmd, "watch") {
		return wf.Generate(commandContext(cmd), opts)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return wf.GenerateWatch(ctx, opts)
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
