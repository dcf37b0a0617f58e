package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"

	"github.com/minepkg/assetguard/internals/commands"
	"github.com/minepkg/assetguard/internals/launcher"
)

func init() {
	runner := &nativesRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "natives [server]",
		Short: "Extracts the native libraries of a server",
		Long:  "Syncs the server and extracts its native libraries into the temporary natives directory",
		Args:  cobra.MaximumNArgs(1),

		ValidArgsFunction: completeServers,
	}, runner)
	runner.overwrites = launcher.CmdOverwriteFlags(cmd.Command)

	clearCmd := commands.New(&cobra.Command{
		Use:   "clear-natives",
		Short: "Removes the temporary natives directory",
		Args:  cobra.NoArgs,
	}, &clearNativesRunner{})

	rootCmd.AddCommand(cmd.Command, clearCmd.Command)
}

type nativesRunner struct {
	overwrites *launcher.OverwriteFlags
}

func (n *nativesRunner) RunE(cmd *cobra.Command, args []string) error {
	l, err := newLauncher(cmd.Context())
	if err != nil {
		return err
	}
	if err := l.ApplyOverWrites(n.overwrites, args); err != nil {
		return err
	}

	extracted, err := l.Natives(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("│ %d files extracted to %s\n", len(extracted), gchalk.Bold(l.Settings.NativesDirectory()))
	return nil
}

type clearNativesRunner struct{}

func (c *clearNativesRunner) RunE(cmd *cobra.Command, args []string) error {
	l, err := newLauncher(cmd.Context())
	if err != nil {
		return err
	}
	if err := l.ClearNatives(); err != nil {
		return err
	}
	fmt.Println("Removed " + l.Settings.NativesDirectory())
	return nil
}
