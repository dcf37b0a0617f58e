package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
	configKindFloat
)

type configEntry struct {
	kind int
	help string
}

// entries are the keys that can be read and written from the command line.
// Nested values like modConfigurations have to be edited in the config file
var entries = map[string]configEntry{
	"datadirectory":     {configKindString, "root of common and instance files"},
	"launcherdirectory": {configKindString, "where the distribution is cached"},
	"selectedserver":    {configKindString, "server used when none is passed"},
	"distributionurl":   {configKindString, "url of the distribution.json"},
	"devmode":           {configKindBool, "read dev_distribution.json and never pull remote"},
	"java.executable":   {configKindString, "use this java instead of a downloaded one"},
	"java.major":        {configKindString, "java version to use (8, 17 …)"},
	"packxzhelper":      {configKindString, "path to PackXZExtract.jar"},
	"limits.assets":     {configKindInt, "parallel asset downloads"},
	"limits.libraries":  {configKindInt, "parallel library downloads"},
	"limits.files":      {configKindInt, "parallel misc file downloads"},
	"limits.forge":      {configKindInt, "parallel distribution downloads"},
	"ratelimit":         {configKindFloat, "requests per second (0 = unlimited)"},
	"metricsaddr":       {configKindString, "serve prometheus metrics on this address"},
}

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}

// filePath is where `config set` writes to
func filePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".assetguard.toml"), nil
}
