package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minepkg/assetguard/internals/autocomplete"
	"github.com/minepkg/assetguard/internals/distro"

	settings "github.com/minepkg/assetguard/internals/config"
)

func init() {
	rootCmd.AddCommand(completionCmd)
}

var completionCmd = &cobra.Command{
	Hidden:                true,
	DisableFlagsInUseLine: true,
	Use:                   "completion [bash|zsh|fish|powershell]",
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Short:                 "Prints shell completion code",
	Long: `Prints a completion script for the given shell. Server arguments are completed from
the cached distribution index.

  source <(assetguard completion bash)
  assetguard completion zsh > "${fpath[1]}/_assetguard"
  assetguard completion fish > ~/.config/fish/completions/assetguard.fish
  assetguard completion powershell | Out-String | Invoke-Expression
`,
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			// make this loadable
			os.Stdout.WriteString("#compdef assetguard\ncompdef _assetguard assetguard\n")
			cmd.Root().GenZshCompletion(os.Stdout)

		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

// completeServers completes the server argument from the cached distribution
func completeServers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := settings.Load(viper.GetViper())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	m := &distro.Manager{LauncherDir: s.LauncherDirectory, DevMode: s.DevMode}
	completer := autocomplete.AutoCompleter{Source: m.PullLocal}
	return completer.ValidArgs(cmd, args, toComplete)
}
