package assetguard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/merrors"
)

func TestIsForgeGradle3(t *testing.T) {
	tests := []struct {
		mc      string
		forge   string
		want    bool
		wantErr bool
	}{
		{"1.13", "1.13-24.0.0", true, false},
		{"1.16.5", "1.16.5-36.2.0", true, false},
		{"1.12.2", "1.12.2-14.23.5.2847", false, false},
		{"1.12.2", "1.12.2-14.23.5.2854", true, false},
		{"1.12.2", "1.12.2-14.23.4.2759", false, false},
		{"1.7.10", "1.7.10-10.13.4.1614-1.7.10", false, false},
		{"1.12.2", "14.23.5.2854", false, true},
	}

	for _, test := range tests {
		t.Run(test.forge, func(t *testing.T) {
			got, err := IsForgeGradle3(test.mc, test.forge)
			if (err != nil) != test.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("IsForgeGradle3(%s, %s) = %v, want %v", test.mc, test.forge, got, test.want)
			}
		})
	}
}

const forgeVersionJSON = `{"id": "1.12.2-forge1.12.2-14.23.5.2847", "inheritsFrom": "1.12.2", "mainClass": "net.minecraft.launchwrapper.Launch"}`

func TestFinalizeForgeAssetWritesDescriptor(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "forge.jar")
	require.NoError(t, os.WriteFile(jar, buildJar(t, map[string]string{
		"version.json":    forgeVersionJSON,
		"install_profile": "{}",
		"net/Forge.class": "bytes",
	}), 0o644))

	data, err := FinalizeForgeAsset(jar, dir)
	require.NoError(t, err)
	assert.Equal(t, "1.12.2-forge1.12.2-14.23.5.2847", data.ID)
	assert.Equal(t, "1.12.2", data.InheritsFrom)

	written, err := os.ReadFile(filepath.Join(dir, "versions", data.ID, data.ID+".json"))
	require.NoError(t, err)
	assert.JSONEq(t, forgeVersionJSON, string(written))
}

func TestFinalizeForgeAssetReusesExisting(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "forge.jar")
	require.NoError(t, os.WriteFile(jar, buildJar(t, map[string]string{"version.json": forgeVersionJSON}), 0o644))

	id := "1.12.2-forge1.12.2-14.23.5.2847"
	writeFile(t, filepath.Join(dir, "versions", id, id+".json"), `{"id": "`+id+`", "mainClass": "patched"}`)

	data, err := FinalizeForgeAsset(jar, dir)
	require.NoError(t, err)
	assert.Equal(t, "patched", data.MainClass)
}

func TestFinalizeForgeAssetMissingEntry(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "forge.jar")
	require.NoError(t, os.WriteFile(jar, buildJar(t, map[string]string{"net/Forge.class": "bytes"}), 0o644))

	_, err := FinalizeForgeAsset(jar, dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrFormat))
}

func TestFinalizeForgeAssetIgnoresNestedDescriptor(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "forge.jar")
	require.NoError(t, os.WriteFile(jar, buildJar(t, map[string]string{"data/version.json": forgeVersionJSON}), 0o644))

	_, err := FinalizeForgeAsset(jar, dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrFormat))
}

func TestLoadForgeDataGradle3(t *testing.T) {
	e, _ := newTestEngine(t, nil, nil)
	manifest := filepath.Join(e.dirs.Common, "versions", "1.14.4-forge-28.1.0", "1.14.4-forge-28.1.0.json")
	writeFile(t, manifest, `{"id": "1.14.4-forge-28.1.0", "inheritsFrom": "1.14.4"}`)

	index, err := distro.Parse([]byte(`{"servers": [{
		"id": "s",
		"minecraftVersion": "1.14.4",
		"modules": [
			{"id": "com.example:mod:1.0", "type": "ForgeMod", "artifact": {"size": 1}},
			{"id": "net.minecraftforge:forge:1.14.4-28.1.0:universal", "type": "ForgeHosted", "artifact": {"size": 1},
			 "subModules": [{"id": "1.14.4-forge-28.1.0", "type": "VersionManifest", "artifact": {"size": 1}}]}
		]
	}]}`), distro.Dirs{Common: e.dirs.Common, Instance: e.dirs.Instance})
	require.NoError(t, err)
	srv := index.Servers[0]

	data, err := e.LoadForgeData(srv)
	require.NoError(t, err)
	assert.Equal(t, "1.14.4-forge-28.1.0", data.ID)
	assert.Equal(t, "1.14.4", data.InheritsFrom)

	srv.Modules[1].SubModules = nil
	_, err = e.LoadForgeData(srv)
	assert.True(t, errors.Is(err, merrors.ErrFormat))
}

func TestLoadForgeDataWithoutForge(t *testing.T) {
	e, _ := newTestEngine(t, nil, nil)
	_, err := e.LoadForgeData(&distro.Server{ID: "vanilla"})
	assert.True(t, errors.Is(err, merrors.ErrNotFound))
}
