package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minepkg/assetguard/internals/downloadmgr"
)

func load(t *testing.T, toml string) *Settings {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(toml)))
	s, err := Load(v)
	require.NoError(t, err)
	return s
}

func TestDefaults(t *testing.T) {
	s := load(t, "")

	assert.Equal(t, DefaultDistributionURL, s.DistributionURL)
	assert.Equal(t, filepath.Join(s.DataDirectory, "common"), s.CommonDirectory())
	assert.Equal(t, filepath.Join(s.DataDirectory, "instances"), s.InstanceDirectory())
	assert.Equal(t, NativesFolder, filepath.Base(s.NativesDirectory()))
	assert.Equal(t, filepath.Join(s.LauncherDirectory, "PackXZExtract.jar"), s.PackXZHelper)

	limits := s.CategoryLimits()
	for _, c := range []downloadmgr.Category{downloadmgr.Assets, downloadmgr.Libraries, downloadmgr.Files, downloadmgr.Forge} {
		assert.Equal(t, c.DefaultLimit(), limits[c], c.String())
	}
	_, hasJava := limits[downloadmgr.Java]
	assert.False(t, hasJava)

	major, err := s.JavaMajor()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), major)
}

func TestLoadFile(t *testing.T) {
	s := load(t, `
dataDirectory = "/games/ag"
selectedServer = "main-1.12"
rateLimit = 12.5

[java]
major = "1.8"

[limits]
assets = 4

[[modConfigurations]]
id = "main-1.12"
  [modConfigurations.mods]
  "com.example:optifine" = false
  [modConfigurations.mods."com.example:shaders"]
  value = true
    [modConfigurations.mods."com.example:shaders".mods]
    "com.example:pack" = false
`)

	assert.Equal(t, "/games/ag", s.DataDirectory)
	assert.Equal(t, "main-1.12", s.SelectedServer)
	assert.Equal(t, 12.5, s.RateLimit)
	assert.Equal(t, filepath.Join("/games/ag", "common"), s.Dirs().Common)
	assert.Equal(t, "/games/ag", s.Dirs().Data)

	major, err := s.JavaMajor()
	require.NoError(t, err)
	assert.Equal(t, uint8(8), major)

	assert.Equal(t, 4, s.CategoryLimits()[downloadmgr.Assets])

	mods := s.OptionalMods()["main-1.12"]
	require.NotNil(t, mods)
	assert.False(t, mods["com.example:optifine"].Enabled)
	shaders := mods["com.example:shaders"]
	assert.True(t, shaders.Enabled)
	assert.False(t, shaders.Mods["com.example:pack"].Enabled)
}

func TestInvalidJavaMajor(t *testing.T) {
	s := load(t, "[java]\nmajor = \"8-jre\"\n")
	_, err := s.JavaMajor()
	assert.Error(t, err)
}

func TestEmptyDataDirectory(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("dataDirectory", "")
	_, err := Load(v)
	assert.Error(t, err)
}
