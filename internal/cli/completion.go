package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Completions include
// registered figure names for render.
func (c *CLI) completionCommand() *cobra.Command {
	var noDesc bool

	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for figforge. Figure names
complete after "figforge render".

  bash:        source <(figforge completion bash)
  zsh:         figforge completion zsh > "${fpath[1]}/_figforge"
  fish:        figforge completion fish | source
  powershell:  figforge completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, !noDesc)
			case "zsh":
				if noDesc {
					return root.GenZshCompletionNoDesc(w)
				}
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, !noDesc)
			case "powershell":
				if noDesc {
					return root.GenPowerShellCompletion(w)
				}
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "omit figure descriptions from completions")

	return cmd
}
