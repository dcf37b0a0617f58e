package assetguard

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-version"
	archiver "github.com/mholt/archiver/v3"
	"github.com/pkg/errors"

	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/integrity"
	"github.com/minepkg/assetguard/internals/merrors"
	"github.com/minepkg/assetguard/internals/minecraft"
)

// ForgeVersionEntry is the version descriptor inside legacy forge jars
const ForgeVersionEntry = "version.json"

var (
	firstFG3Minecraft = semver.MustParse("1.13")
	lastFG2Forge      = version.Must(version.NewVersion("14.23.5.2847"))
)

// IsForgeGradle3 reports whether a forge build uses the ForgeGradle 3 layout.
// forgeVersion is the module version, eg. "1.12.2-14.23.5.2854"
func IsForgeGradle3(mcVersion string, forgeVersion string) (bool, error) {
	if mc, err := semver.NewVersion(mcVersion); err == nil && !mc.LessThan(firstFG3Minecraft) {
		return true, nil
	}

	parts := strings.SplitN(forgeVersion, "-", 3)
	if len(parts) < 2 {
		return false, errors.Wrapf(merrors.ErrFormat, "unsupported forge version %q", forgeVersion)
	}
	v, err := version.NewVersion(parts[1])
	if err != nil {
		return false, errors.Wrapf(merrors.ErrFormat, "unsupported forge version %q", forgeVersion)
	}
	return v.GreaterThan(lastFG2Forge), nil
}

// LoadForgeData returns the version descriptor of the forge module of server.
// ForgeGradle 3 builds ship it as a VersionManifest sub module, older builds
// inside the forge jar.
func (e *Engine) LoadForgeData(server *distro.Server) (*minecraft.VersionData, error) {
	for _, m := range server.Modules {
		if !m.Type.IsForge() {
			continue
		}

		fg3, err := IsForgeGradle3(server.MinecraftVersion, m.Version())
		if err != nil {
			return nil, err
		}
		if !fg3 {
			return FinalizeForgeAsset(m.Artifact.Path, e.dirs.Common)
		}

		for _, sub := range m.SubModules {
			if sub.Type != distro.VersionManifest {
				continue
			}
			buf, err := os.ReadFile(sub.Artifact.Path)
			if err != nil {
				return nil, errors.Wrap(err, "could not read forge version manifest")
			}
			data := &minecraft.VersionData{}
			if err := json.Unmarshal(buf, data); err != nil {
				return nil, errors.Wrapf(merrors.ErrFormat, "forge version manifest: %s", err)
			}
			return data, nil
		}
		return nil, errors.Wrap(merrors.ErrFormat, "no forge version manifest found")
	}
	return nil, errors.Wrapf(merrors.ErrNotFound, "no forge module in server %s", server.ID)
}

// FinalizeForgeAsset reads the version descriptor out of a forge jar. An existing
// `versions/<id>/<id>.json` in commonDir is preferred, otherwise the descriptor is written there.
func FinalizeForgeAsset(jarPath string, commonDir string) (*minecraft.VersionData, error) {
	var raw []byte
	err := archiver.NewZip().Walk(jarPath, func(f archiver.File) error {
		if integrity.EntryName(f) != ForgeVersionEntry {
			return nil
		}
		buf, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		raw = buf
		return archiver.ErrStopWalk
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", filepath.Base(jarPath))
	}
	if raw == nil {
		return nil, errors.Wrapf(merrors.ErrFormat, "%s not found in %s", ForgeVersionEntry, filepath.Base(jarPath))
	}

	data := &minecraft.VersionData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, errors.Wrapf(merrors.ErrFormat, "forge %s: %s", ForgeVersionEntry, err)
	}
	if data.ID == "" {
		return nil, errors.Wrapf(merrors.ErrFormat, "forge %s has no id", ForgeVersionEntry)
	}

	versionDir := filepath.Join(commonDir, "versions", data.ID)
	versionFile := filepath.Join(versionDir, data.ID+".json")
	if existing, err := os.ReadFile(versionFile); err == nil {
		cached := &minecraft.VersionData{}
		if err := json.Unmarshal(existing, cached); err != nil {
			return nil, errors.Wrapf(merrors.ErrFormat, "%s: %s", versionFile, err)
		}
		return cached, nil
	}

	if err := os.MkdirAll(versionDir, os.ModePerm); err != nil {
		return nil, err
	}
	if err := os.WriteFile(versionFile, raw, 0o644); err != nil {
		return nil, err
	}
	return data, nil
}
