package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCompletionCommand creates the completion command for shell completions
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate a shell completion script for phpgen. Resource names for
'generate --resource' complete from the configured descriptor file.

Bash:

  $ source <(phpgen completion bash)

Zsh:

  $ phpgen completion zsh > "${fpath[1]}/_phpgen"

Fish:

  $ phpgen completion fish > ~/.config/fish/completions/phpgen.fish

PowerShell:

  PS> phpgen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// completeResources lists the resource names of the configured descriptor
// file for shell completion.
func completeResources(global *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := global.load()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		project, err := loadProject(global.configDir, cfg, nil, cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		names := make([]string, 0, len(project.Resources))
		for _, resource := range project.Resources {
			names = append(names, resource.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
