package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magnet-build/magnet/internal/ui"
	"github.com/magnet-build/magnet/internal/workflow"
	"github.com/magnet-build/magnet/pkg/version"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show the list of commands, or help for one command",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == rootCmd {
				return fmt.Errorf("unknown command %q", args[0])
			}
			return target.Help()
		}

		out := cmd.OutOrStdout()
		rendered, err := ui.RenderMarkdown(helpMarkdown(), ui.IsTerminal(out))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, rendered)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the magnet version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		v := version.GetVersion()
		if getBoolFlag(cmd, "full") {
			v = version.GetFullVersion()
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Magnet %s\n", v)
	},
}

func init() {
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("full", false, "Include the build commit and date")
}

// helpMarkdown lists the command table grouped by scope.
func helpMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Magnet %s\n\n", version.GetVersion())
	b.WriteString("C++ project manager on top of CMake.\n")

	sections := []struct {
		title string
		scope workflow.Scope
	}{
		{"Global commands", workflow.ScopeGlobal},
		{"Project commands", workflow.ScopeProject},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n", s.title)
		b.WriteString("| Command | Description |\n|---|---|\n")
		for _, c := range workflow.Commands() {
			if c.Scope != s.scope {
				continue
			}
			summary := c.Summary
			if c.RequiresRoot {
				summary += " (run at the project root)"
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", c.Usage, summary)
		}
	}

	b.WriteString("\nRun `magnet help <command>` for the flags of one command.\n")
	return b.String()
}
