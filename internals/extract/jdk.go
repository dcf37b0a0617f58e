package extract

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/gzip"
	archiver "github.com/mholt/archiver/v3"
	"github.com/pkg/errors"

	"github.com/minepkg/assetguard/internals/integrity"
	"github.com/minepkg/assetguard/internals/merrors"
)

// JDK extracts a zip or tar.gz java runtime archive into runtimeDir and deletes the archive.
// It returns the top level directory of the extracted runtime
func JDK(archivePath string, runtimeDir string) (string, error) {
	var (
		first string
		err   error
	)
	if strings.HasSuffix(archivePath, ".zip") {
		first, err = jdkZip(archivePath, runtimeDir)
	} else {
		first, err = jdkTarGz(archivePath, runtimeDir)
	}
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", errors.Wrapf(merrors.ErrFormat, "%s is empty", filepath.Base(archivePath))
	}

	if err := os.Remove(archivePath); err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, topLevel(first)), nil
}

func topLevel(name string) string {
	name = strings.TrimPrefix(name, "./")
	if i := strings.Index(name, "/"); i > -1 {
		return name[:i]
	}
	return name
}

func jdkZip(archivePath string, runtimeDir string) (string, error) {
	first := ""
	err := archiver.NewZip().Walk(archivePath, func(f archiver.File) error {
		first = integrity.EntryName(f)
		return archiver.ErrStopWalk
	})
	if err != nil {
		return "", err
	}

	z := archiver.NewZip()
	z.OverwriteExisting = true
	if err := z.Unarchive(archivePath, runtimeDir); err != nil {
		return "", errors.Wrap(err, "could not extract jdk")
	}
	return first, nil
}

func jdkTarGz(archivePath string, runtimeDir string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", errors.Wrapf(merrors.ErrFormat, "%s is not gzip compressed: %s", filepath.Base(archivePath), err)
	}
	defer gz.Close()

	first := ""
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", errors.Wrap(err, "could not read jdk archive")
		}
		if first == "" {
			first = hdr.Name
		}

		target, err := securejoin.SecureJoin(runtimeDir, hdr.Name)
		if err != nil {
			return "", err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
				return "", err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return "", err
			}
		}
	}
	return first, nil
}
