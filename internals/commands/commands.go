package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command that renders errors returned by its Runner
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner runs a command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// New wires run into cmd. Errors are rendered with [RichError] and exit with code 1
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		if err := run.RunE(cmd, args); err != nil {
			fmt.Fprintln(os.Stderr, RichError(err)+"\n")
			os.Exit(1)
		}
	}

	return build
}
