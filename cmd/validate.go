package cmd

import (
	"github.com/spf13/cobra"

	"github.com/minepkg/assetguard/internals/commands"
	"github.com/minepkg/assetguard/internals/launcher"
)

func init() {
	runner := &validateRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "validate [server]",
		Short: "Checks which files of a server are missing or corrupt without downloading them",
		Args:  cobra.MaximumNArgs(1),

		ValidArgsFunction: completeServers,
	}, runner)
	runner.overwrites = launcher.CmdOverwriteFlags(cmd.Command)

	rootCmd.AddCommand(cmd.Command)
}

type validateRunner struct {
	overwrites *launcher.OverwriteFlags
}

func (v *validateRunner) RunE(cmd *cobra.Command, args []string) error {
	l, err := newLauncher(cmd.Context())
	if err != nil {
		return err
	}
	if err := l.ApplyOverWrites(v.overwrites, args); err != nil {
		return err
	}

	summary, err := l.Validate(cmd.Context())
	if err != nil {
		return err
	}
	l.PrintSummary(summary)
	return nil
}
