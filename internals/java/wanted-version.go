package java

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidVersionString is returned for unparsable java version strings
	ErrInvalidVersionString = errors.New("invalid java version string")
	// ErrInvalidFeatureVersion is returned for versions out of range
	ErrInvalidFeatureVersion = errors.New("invalid java feature version")
)

// ParseMajor parses "8", "17", "1.8" or "17-jdk" into a feature release number
func ParseMajor(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultMajor, nil
	}
	// only jdk images are provisioned
	if i := strings.Index(s, "-"); i > -1 {
		if s[i+1:] != "jdk" {
			return 0, ErrInvalidVersionString
		}
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "1.")

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidVersionString
	}
	if v <= 0 || v >= math.MaxUint8 {
		return 0, ErrInvalidFeatureVersion
	}
	return uint8(v), nil
}
