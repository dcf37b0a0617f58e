package assetguard

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/minepkg/assetguard/internals/extract"
	"github.com/minepkg/assetguard/internals/minecraft"
)

// ExtractNatives unpacks all native libraries of v that apply to this platform into
// destDir. destDir is recreated first.
func (e *Engine) ExtractNatives(v *minecraft.VersionData, destDir string) ([]string, error) {
	if err := os.RemoveAll(destDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return nil, err
	}

	var (
		written []string
		result  *multierror.Error
	)
	libDir := filepath.Join(e.dirs.Common, "libraries")
	for _, lib := range v.Libraries.Required(e.platform) {
		if !lib.IsNative() {
			continue
		}
		artifact, ok := lib.SelectArtifact(e.platform)
		if !ok {
			continue
		}
		files, err := extract.Natives(filepath.Join(libDir, filepath.FromSlash(artifact.Path)), destDir, lib.Exclusions())
		if err != nil {
			e.log.WithField("library", lib.Name).WithError(err).Error("error while extracting native library")
			result = multierror.Append(result, err)
		}
		written = append(written, files...)
	}
	return written, result.ErrorOrNil()
}
