package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for chromash.

Bash:
  $ source <(chromash completion bash)
  $ chromash completion bash > ~/.local/share/bash-completion/completions/chromash

Zsh:
  $ chromash completion zsh > "${fpath[1]}/_chromash"

Fish:
  $ chromash completion fish > ~/.config/fish/completions/chromash.fish

Preset names are completed for "preset apply" and "preset delete".`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			default:
				return cmd.Root().GenFishCompletion(stdout, true)
			}
		},
	}
}
