package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minepkg/assetguard/internals/commands"
	"github.com/minepkg/assetguard/internals/java"
	"github.com/minepkg/assetguard/internals/merrors"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "java [major]",
		Short: "Downloads a java runtime",
		Long:  "Downloads the latest OpenJDK runtime of the given major version (default 8) unless it is already installed",
		Example: `
  assetguard java
  assetguard java 17`,
		Args: cobra.MaximumNArgs(1),
	}, &javaRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type javaRunner struct{}

func (j *javaRunner) RunE(cmd *cobra.Command, args []string) error {
	wanted := ""
	if len(args) == 1 {
		wanted = args[0]
	}
	major, err := java.ParseMajor(wanted)
	if err != nil {
		return &merrors.CliError{
			Err:  fmt.Sprintf("Invalid java version %q", wanted),
			Help: "Use a feature version like 8, 1.8 or 17",
		}
	}

	l, err := newLauncher(cmd.Context())
	if err != nil {
		return err
	}
	// the configured executable is not what we want to download here
	l.Settings.Java.Executable = ""

	exec, err := l.Java(cmd.Context(), major)
	if errors.Is(err, merrors.ErrNoRuntime) {
		return &merrors.CliError{
			Err:  err.Error(),
			Code: "no-runtime",
			Help: "Install java manually and set java.executable in your config",
		}
	}
	if err != nil {
		return err
	}
	fmt.Println(exec)
	return nil
}
