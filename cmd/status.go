package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"

	"github.com/minepkg/assetguard/internals/commands"
	"github.com/minepkg/assetguard/internals/serverstatus"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "status [address[:port]]",
		Short: "Shows whether a server is online",
		Long:  "Pings the given address or the address of the selected server",
		Args:  cobra.MaximumNArgs(1),
	}, &statusRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type statusRunner struct{}

func (s *statusRunner) RunE(cmd *cobra.Command, args []string) error {
	var address string
	if len(args) == 1 {
		address = args[0]
	} else {
		l, err := newLauncher(cmd.Context())
		if err != nil {
			return err
		}
		server, err := l.Server(cmd.Context())
		if err != nil {
			return err
		}
		address = server.Address
	}

	status, err := serverstatus.Get(address)
	if err != nil {
		fmt.Printf("%s %s\n", gchalk.Red("●"), gchalk.Bold(address)+" is offline")
		return err
	}

	fmt.Printf("%s %s\n", gchalk.Green("●"), gchalk.Bold(address)+" is online")
	fmt.Printf("│ Version %s\n", status.Version)
	fmt.Printf("│ Players %d / %d\n", status.OnlinePlayers, status.MaxPlayers)
	if status.MOTD != "" {
		fmt.Printf("│ %s\n", gchalk.Gray(status.MOTD))
	}
	fmt.Printf("│ %s\n", gchalk.Gray(fmt.Sprintf("%dms", status.Latency.Milliseconds())))
	return nil
}
