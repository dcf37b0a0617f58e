package cmd

import (
	"github.com/spf13/cobra"

	"github.com/minepkg/assetguard/internals/commands"
	"github.com/minepkg/assetguard/internals/launcher"
)

func init() {
	runner := &syncRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "sync [server]",
		Short:   "Downloads everything a server needs",
		Long:    "Validates all files of the server and downloads the ones that are missing or corrupt, including the java runtime",
		Aliases: []string{"prepare", "update"},
		Args:    cobra.MaximumNArgs(1),

		ValidArgsFunction: completeServers,
	}, runner)
	runner.overwrites = launcher.CmdOverwriteFlags(cmd.Command)

	rootCmd.AddCommand(cmd.Command)
}

type syncRunner struct {
	overwrites *launcher.OverwriteFlags
}

func (s *syncRunner) RunE(cmd *cobra.Command, args []string) error {
	l, err := newLauncher(cmd.Context())
	if err != nil {
		return err
	}
	if err := l.ApplyOverWrites(s.overwrites, args); err != nil {
		return err
	}

	_, err = l.Prepare(cmd.Context())
	return err
}
