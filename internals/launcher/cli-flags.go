package launcher

import (
	"github.com/spf13/cobra"

	"github.com/minepkg/assetguard/internals/java"
)

// OverwriteFlags are cli flags used to overwrite the configured behavior
type OverwriteFlags struct {
	Server         string
	Java           string
	NonInteractive bool
}

// CmdOverwriteFlags registers the overwrite flags on cmd
func CmdOverwriteFlags(cmd *cobra.Command) *OverwriteFlags {
	flags := OverwriteFlags{}
	cmd.Flags().StringVarP(&flags.Server, "server", "s", "", "Overwrite the selected server")
	cmd.Flags().StringVar(&flags.Java, "java", "", "Overwrite the Java runtime. Examples: 8, 17, system")
	cmd.Flags().BoolVar(&flags.NonInteractive, "non-interactive", false, "Do not show spinners or progress bars")

	return &flags
}

// ApplyOverWrites applies the flags to l. Positional server arguments win over --server
func (l *Launcher) ApplyOverWrites(o *OverwriteFlags, args []string) error {
	if o.Server != "" {
		l.ServerID = o.Server
	}
	if len(args) > 0 {
		l.ServerID = args[0]
	}
	if o.NonInteractive {
		l.NonInteractive = true
	}

	switch o.Java {
	case "":
	case "system":
		l.UseSystemJava = true
	default:
		major, err := java.ParseMajor(o.Java)
		if err != nil {
			return err
		}
		l.JavaMajor = major
	}
	return nil
}
