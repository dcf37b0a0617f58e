// Package config maps the viper configuration onto the settings the engine needs.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/minepkg/assetguard/internals/assetguard"
	"github.com/minepkg/assetguard/internals/auth"
	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/java"
)

// NativesFolder is the scratch directory name for extracted natives
const NativesFolder = "AGNatives"

// DefaultDistributionURL is used when no distributionURL is configured
const DefaultDistributionURL = "http://mc.westeroscraft.com/WesterosCraftLauncher/distribution.json"

// JavaSettings configure the java runtime
type JavaSettings struct {
	// Executable overwrites the downloaded runtime
	Executable string `mapstructure:"executable"`
	// Major is the wanted feature version ("8", "1.8", "17")
	Major string `mapstructure:"major"`
}

// Limits overwrite the default concurrency per download category
type Limits struct {
	Assets    int `mapstructure:"assets"`
	Libraries int `mapstructure:"libraries"`
	Files     int `mapstructure:"files"`
	Forge     int `mapstructure:"forge"`
}

// ModConfiguration is the optional mod selection of one server
type ModConfiguration struct {
	ID   string                 `mapstructure:"id"`
	Mods map[string]interface{} `mapstructure:"mods"`
}

// Settings is the decoded configuration
type Settings struct {
	DataDirectory     string             `mapstructure:"dataDirectory"`
	LauncherDirectory string             `mapstructure:"launcherDirectory"`
	SelectedServer    string             `mapstructure:"selectedServer"`
	DistributionURL   string             `mapstructure:"distributionURL"`
	DevMode           bool               `mapstructure:"devMode"`
	Java              JavaSettings       `mapstructure:"java"`
	PackXZHelper      string             `mapstructure:"packXZHelper"`
	Limits            Limits             `mapstructure:"limits"`
	RateLimit         float64            `mapstructure:"rateLimit"`
	MetricsAddr       string             `mapstructure:"metricsAddr"`
	ModConfigurations []ModConfiguration `mapstructure:"modConfigurations"`
	Account           auth.User          `mapstructure:"account"`
}

// dataRoot mirrors where launchers usually keep their game files
func dataRoot() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return appData
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support")
	}
	return home
}

// SetDefaults registers all defaults on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataDirectory", filepath.Join(dataRoot(), ".assetguard"))

	launcherDir := filepath.Join(dataRoot(), ".assetguard", "launcher")
	if cfgDir, err := os.UserConfigDir(); err == nil {
		launcherDir = filepath.Join(cfgDir, "assetguard")
	}
	v.SetDefault("launcherDirectory", launcherDir)
	v.SetDefault("distributionURL", DefaultDistributionURL)
	v.SetDefault("java.major", "")
	v.SetDefault("limits.assets", downloadmgr.Assets.DefaultLimit())
	v.SetDefault("limits.libraries", downloadmgr.Libraries.DefaultLimit())
	v.SetDefault("limits.files", downloadmgr.Files.DefaultLimit())
	v.SetDefault("limits.forge", downloadmgr.Forge.DefaultLimit())
	v.SetDefault("rateLimit", 0)
	v.SetDefault("account.type", auth.TypeOffline)
}

// Load decodes the settings from v
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if s.DataDirectory == "" {
		return nil, errors.New("dataDirectory must not be empty")
	}
	if s.PackXZHelper == "" {
		s.PackXZHelper = filepath.Join(s.LauncherDirectory, "PackXZExtract.jar")
	}
	return s, nil
}

// CommonDirectory holds assets, libraries, versions and the mod store
func (s *Settings) CommonDirectory() string {
	return filepath.Join(s.DataDirectory, "common")
}

// InstanceDirectory holds one directory per server
func (s *Settings) InstanceDirectory() string {
	return filepath.Join(s.DataDirectory, "instances")
}

// NativesDirectory is the scratch directory natives get extracted to
func (s *Settings) NativesDirectory() string {
	return filepath.Join(os.TempDir(), NativesFolder)
}

// Dirs returns the engine directories
func (s *Settings) Dirs() assetguard.Dirs {
	return assetguard.Dirs{
		Common:   s.CommonDirectory(),
		Instance: s.InstanceDirectory(),
		Data:     s.DataDirectory,
	}
}

// JavaMajor parses the configured java version, 0 means "pick by minecraft version"
func (s *Settings) JavaMajor() (uint8, error) {
	if s.Java.Major == "" {
		return 0, nil
	}
	return java.ParseMajor(s.Java.Major)
}

// CategoryLimits returns the configured limits, unset ones are left out
func (s *Settings) CategoryLimits() map[downloadmgr.Category]int {
	limits := make(map[downloadmgr.Category]int, 4)
	set := func(c downloadmgr.Category, n int) {
		if n > 0 {
			limits[c] = n
		}
	}
	set(downloadmgr.Assets, s.Limits.Assets)
	set(downloadmgr.Libraries, s.Limits.Libraries)
	set(downloadmgr.Files, s.Limits.Files)
	set(downloadmgr.Forge, s.Limits.Forge)
	return limits
}

// OptionalMods returns the parsed mod selection per server id
func (s *Settings) OptionalMods() map[string]assetguard.OptionalMods {
	out := make(map[string]assetguard.OptionalMods, len(s.ModConfigurations))
	for _, cfg := range s.ModConfigurations {
		if cfg.ID == "" {
			continue
		}
		out[cfg.ID] = assetguard.ParseOptionalMods(cfg.Mods)
	}
	return out
}
