package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magnet-build/magnet/internal/cli/wizard"
	"github.com/magnet-build/magnet/internal/workflow"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new C++ project",
	Long: `Create a new C++ project in a directory named after it.

The project gets starter sources for its type, a .magnet directory holding
its descriptor and an empty dependency list, and a fresh git repository.
Questions not answered by flags are asked interactively on a terminal.

Examples:
  magnet new                          Ask for the name and type
  magnet new Game                     Executable project named Game
  magnet new Engine --type StaticLibrary --non-interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("name", "", "Project name (also accepted as the first argument)")
	newCmd.Flags().String("type", "", "Project type: Executable, StaticLibrary or DynamicLibrary (default: Executable)")
	newCmd.Flags().String("cpp", "", "C++ standard (default: cpp_version setting)")
	newCmd.Flags().String("cmake", "", "Minimum CMake version (default: cmake_version setting)")
	newCmd.Flags().Bool("no-git", false, "Do not initialize a git repository")
	newCmd.Flags().Bool("non-interactive", false, "Skip the interactive wizard; use flags and defaults")
}

func runNew(cmd *cobra.Command, args []string) error {
	wf, err := newWorkflow(cmd)
	if err != nil {
		return err
	}

	opts := workflow.NewOptions{
		Name:         getStringFlag(cmd, "name"),
		Type:         getStringFlag(cmd, "type"),
		CppVersion:   getStringFlag(cmd, "cpp"),
		CmakeVersion: getStringFlag(cmd, "cmake"),
		SkipGit:      getBoolFlag(cmd, "no-git"),
	}
	if opts.Name == "" {
		opts.Name = firstArg(args)
	}

	if !getBoolFlag(cmd, "non-interactive") && !deps.Headless.IsHeadless() {
		defaults := wizard.Defaults{
			ProjectName: opts.Name,
			ProjectType: opts.Type,
			CppVersion:  opts.CppVersion,
			ValidateName: func(name string) error {
				return workflow.ProjectDirAvailable(wf.Dir, name)
			},
		}
		if questions := wizard.DefaultQuestions(defaults); len(questions) > 0 {
			result, err := wizard.Run(questions, wizard.Seed(defaults))
			if err != nil {
				if errors.Is(err, wizard.ErrCancelled) {
					_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Project creation cancelled.")
					return nil
				}
				return fmt.Errorf("wizard failed: %w", err)
			}
			opts.Name = result.ProjectName
			opts.Type = result.ProjectType
			opts.CppVersion = result.CppVersion
		}
	}

	return wf.New(commandContext(cmd), opts)
}
