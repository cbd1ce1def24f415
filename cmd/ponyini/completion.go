package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for ponyini.

To load completions:

Bash:
  $ source <(ponyini completion bash)

Zsh:
  $ ponyini completion zsh > "${fpath[1]}/_ponyini"
  $ compinit

Fish:
  $ ponyini completion fish | source

PowerShell:
  PS> ponyini completion powershell | Out-String | Invoke-Expression
`,
	ValidArgs:        []string{"bash", "zsh", "fish", "powershell"},
	Args:             cobra.ExactArgs(1),
	PersistentPreRun: skipConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(w)
		case "zsh":
			return rootCmd.GenZshCompletion(w)
		case "fish":
			return rootCmd.GenFishCompletion(w, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(w)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
