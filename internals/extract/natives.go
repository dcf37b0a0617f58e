// Package extract unpacks downloaded archives: native libraries, pack.xz
// compressed mods and java runtimes.
package extract

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	archiver "github.com/mholt/archiver/v3"
	"github.com/pkg/errors"

	"github.com/minepkg/assetguard/internals/integrity"
)

// DefaultExclusions is used for native libraries without an extract section
var DefaultExclusions = []string{"META-INF/"}

// Excluded reports whether name contains any of the exclusion strings
func Excluded(name string, exclude []string) bool {
	for _, e := range exclude {
		if strings.Contains(name, e) {
			return true
		}
	}
	return false
}

// Natives copies every entry of the jar at jarPath into destDir unless its
// name contains one of the exclusion strings. A nil exclude list uses DefaultExclusions
func Natives(jarPath string, destDir string, exclude []string) ([]string, error) {
	if exclude == nil {
		exclude = DefaultExclusions
	}
	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return nil, err
	}

	var written []string
	err := archiver.NewZip().Walk(jarPath, func(f archiver.File) error {
		name := integrity.EntryName(f)
		if name == "" || Excluded(name, exclude) {
			return nil
		}
		target, err := securejoin.SecureJoin(destDir, name)
		if err != nil {
			return err
		}
		if f.IsDir() {
			return os.MkdirAll(target, os.ModePerm)
		}
		if err := writeFile(target, f, 0o644); err != nil {
			return errors.Wrapf(err, "could not extract %s", name)
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return written, errors.Wrapf(err, "could not extract natives from %s", filepath.Base(jarPath))
	}
	return written, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}
	dest, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dest, r); err != nil {
		dest.Close()
		return err
	}
	return dest.Close()
}
