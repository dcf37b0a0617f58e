package config

import (
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/minepkg/assetguard/internals/commands"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get [key]",
		Short: "Gets a global config value. Prints all values without a key",
		Args:  cobra.MaximumNArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		keys := maps.Keys(entries)
		slices.Sort(keys)
		for _, key := range keys {
			fmt.Printf("  %-18s %v %s\n", key, viper.Get(key), gchalk.Gray("# "+entries[key].help))
		}
		return nil
	}

	key := strings.ToLower(args[0])
	if _, ok := entries[key]; !ok {
		return fmt.Errorf("config key \"%s\" does not exist", key)
	}

	fmt.Println("Printing config entry:")
	fmt.Printf("  %s: %v\n", key, viper.Get(key))

	return nil
}
