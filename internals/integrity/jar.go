package integrity

import (
	"archive/tar"
	"bufio"
	"io"
	"strings"

	kzip "github.com/klauspost/compress/zip"
	archiver "github.com/mholt/archiver/v3"
)

// ChecksumsEntry is the jar entry listing the sha1 of every other entry
const ChecksumsEntry = "checksums.sha1"

// ParseChecksums parses a checksum list with one "<hash> <path>" pair per line.
// Lines with less than two fields are skipped.
func ParseChecksums(content string) map[string]string {
	parsed := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		parsed[fields[1]] = fields[0]
	}
	return parsed
}

// ValidateForgeJar opens the jar at path and checks it against its own checksum list.
// The checksum list itself has to hash to one of the expected sums and every entry
// it names has to match. Any mismatch fails the whole jar.
func ValidateForgeJar(path string, expected []string) bool {
	hashes := make(map[string]string)
	var listed map[string]string

	err := archiver.NewZip().Walk(path, func(f archiver.File) error {
		name := EntryName(f)
		buf, err := readAll(f)
		if err != nil {
			return err
		}
		if name == ChecksumsEntry {
			listed = ParseChecksums(string(buf))
		}
		hashes[name] = CalculateBytes(buf, SHA1)
		return nil
	})
	if err != nil {
		return false
	}

	own, ok := hashes[ChecksumsEntry]
	if !ok || !contains(expected, own) {
		return false
	}

	for name, sum := range listed {
		if hashes[name] != strings.ToLower(sum) {
			return false
		}
	}
	return true
}

// EntryName returns the full name of an archive entry. archiver only exposes the base name
// through FileInfo, the full path lives in the format specific header. archiver reads zips
// with klauspost/compress, so its headers are not archive/zip types.
func EntryName(f archiver.File) string {
	switch h := f.Header.(type) {
	case kzip.FileHeader:
		return h.Name
	case *kzip.FileHeader:
		return h.Name
	case *tar.Header:
		return h.Name
	default:
		return f.Name()
	}
}

func readAll(f archiver.File) ([]byte, error) {
	return io.ReadAll(f)
}
