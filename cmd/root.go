package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minepkg/assetguard/cmd/config"
	"github.com/minepkg/assetguard/internals/cmdlog"
	"github.com/minepkg/assetguard/internals/commands"
	"github.com/minepkg/assetguard/internals/globals"
	"github.com/minepkg/assetguard/internals/launcher"
	"github.com/minepkg/assetguard/internals/metrics"
	"github.com/minepkg/assetguard/internals/ownhttp"

	settings "github.com/minepkg/assetguard/internals/config"
)

// ConfigFileName is the config file in the home directory (without extension)
const ConfigFileName = ".assetguard"

var (
	// Version is set by main
	Version string
	// Commit is set by main
	Commit string
)

var (
	cfgFile       string
	disableColors bool
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetguard",
	Short: "Keeps your Minecraft installation in sync with the server distribution.",
	Long:  "Validates and downloads assets, libraries, mods and java runtimes for a server distribution",

	Example: `
  assetguard validate
  assetguard sync main-1.12.2
  assetguard java 17
  assetguard status mc.example.com`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	}
	ownhttp.UserAgent = "assetguard/" + Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(commands.RichError(err))
		os.Exit(1)
	}
}

func init() {
	settings.SetDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.assetguard.toml)")
	rootCmd.PersistentFlags().BoolVar(&disableColors, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().String("data-dir", "", "overwrite the data directory")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve prometheus metrics on this address (e.g. :9090)")
	rootCmd.PersistentFlags().Float64("rate-limit", 0, "limit outgoing requests per second (0 = unlimited)")

	viper.BindPFlag("dataDirectory", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("metricsAddr", rootCmd.PersistentFlags().Lookup("metrics-addr"))
	viper.BindPFlag("rateLimit", rootCmd.PersistentFlags().Lookup("rate-limit"))

	rootCmd.AddCommand(config.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		cmdlog.DisableColor()
		commands.EmojiEnabled = false
	}

	globals.Log.SetOutput(os.Stderr)
	globals.Log.SetLevel(logrus.WarnLevel)
	if verbose {
		globals.Log.SetLevel(logrus.DebugLevel)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".assetguard" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(ConfigFileName)
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("ASSETGUARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		globals.Log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

// newLauncher loads the settings and creates a launcher. The metrics endpoint is
// served for the lifetime of ctx if configured
func newLauncher(ctx context.Context) (*launcher.Launcher, error) {
	s, err := settings.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	client := globals.HTTPClient
	if s.RateLimit > 0 {
		client = ownhttp.NewWithOptions(ownhttp.Options{RequestsPerSecond: s.RateLimit})
	}

	if s.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, s.MetricsAddr); err != nil {
				globals.Log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	l := launcher.New(s, client, globals.Log, globals.Logger)
	l.Version = Version
	return l, nil
}
