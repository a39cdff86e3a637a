package cli

import (
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [url | owner/repo]",
	Short: "Install one dependency, or every declared dependency",
	Long: `Without arguments, install checks out every git submodule of the project.

With a repository URL, or owner/repo shorthand resolved against the git_host
setting, install adds the repository as a submodule under
<name>/Dependencies and declares it. Both forms regenerate the build scripts
afterwards. --list prints the declared dependencies instead.`,
	Aliases: []string{"pull"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, err := newWorkflow(cmd)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		switch {
		case getBoolFlag(cmd, "list"):
			return wf.ListDependencies(ctx)
		case len(args) == 0:
			return wf.InstallAll(ctx)
		default:
			return wf.Install(ctx, args[0])
		}
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <dependency>",
	Short: "Remove an installed dependency",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, err := newWorkflow(cmd)
		if err != nil {
			return err
		}
		return wf.Remove(commandContext(cmd), firstArg(args))
	},
}

var switchCmd = &cobra.Command{
	Use:   "switch <dependency> <branch>",
	Short: "Check out another branch of a dependency",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wf, err := newWorkflow(cmd)
		if err != nil {
			return err
		}
		var branch string
		if len(args) > 1 {
			branch = args[1]
		}
		return wf.Switch(commandContext(cmd), firstArg(args), branch)
	},
}

func init() {
	rootCmd.AddCommand(installCmd, removeCmd, switchCmd)

	installCmd.Flags().BoolP("list", "l", false, "List the declared dependencies")
}
