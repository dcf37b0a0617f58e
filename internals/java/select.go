package java

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

var runtimeMajor = regexp.MustCompile(`(?i)(?:jdk-?|corretto-)(?:1\.)?(\d+)`)

var (
	mc117 = semver.MustParse("1.17.0")
	mc118 = semver.MustParse("1.18.0")
)

// RuntimeMajor guesses the feature version from a runtime directory name
// like "jdk8u292-b10", "jdk-17.0.1+12" or "amazon-corretto-8.jdk"
func RuntimeMajor(dirName string) (uint8, bool) {
	m := runtimeMajor.FindStringSubmatch(dirName)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseUint(m[1], 10, 8)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint8(v), true
}

// MajorFor returns the java version a minecraft version runs on.
// declared is the majorVersion from the version metadata, 0 if missing
func MajorFor(mcVersion string, declared int) uint8 {
	if declared > 0 && declared < 256 {
		return uint8(declared)
	}
	v, err := semver.NewVersion(mcVersion)
	if err != nil {
		return DefaultMajor
	}
	switch {
	case !v.LessThan(mc118):
		return 17
	case !v.LessThan(mc117):
		return 16
	default:
		return DefaultMajor
	}
}

// FindInstalled returns the executable of an installed runtime with the
// given major version, or "" if there is none
func (p *Provider) FindInstalled(dataDir string, major uint8) string {
	entries, err := os.ReadDir(RuntimeDir(dataDir))
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if m, ok := RuntimeMajor(e.Name()); !ok || m != major {
			continue
		}
		exec := p.platform.JavaExecFromRoot(filepath.Join(RuntimeDir(dataDir), e.Name()))
		if _, err := os.Stat(exec); err == nil {
			return exec
		}
	}
	return ""
}
