package utils

import (
	"strings"

	"github.com/jwalton/gchalk"
)

// PrettyVersion returns a version string for terminal printing. Everything after
// the first dash is grayed out, long versions are shortened
func PrettyVersion(version string) string {
	if version == "" {
		return gchalk.Gray("none")
	}
	// we trim first to avoid broken colors
	if len(version) >= 40 {
		version = version[:36] + " …"
	}

	versionParts := strings.SplitN(version, "-", 2)
	prettyVersion := versionParts[0]
	if len(versionParts) == 2 {
		prettyVersion += gchalk.Gray("-" + versionParts[1])
	}

	return prettyVersion
}
