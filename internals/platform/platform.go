// Package platform maps the host operating system onto the closed set of
// platforms the launcher knows how to provision.
package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// OS is a host operating system as named by the Mojang version metadata
type OS uint8

const (
	Unknown OS = iota
	Windows
	OSX
	Linux
)

// String returns the Mojang name of the OS ("windows", "osx", "linux")
func (o OS) String() string {
	switch o {
	case Windows:
		return "windows"
	case OSX:
		return "osx"
	case Linux:
		return "linux"
	default:
		return "unknown_os"
	}
}

// FromGOOS converts a runtime.GOOS value
func FromGOOS(goos string) OS {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return OSX
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// Platform bundles everything that differs between host systems.
// It is selected once by [Current] and passed around from there.
type Platform struct {
	OS OS
	// Arch is the Go architecture name (amd64, arm64 …)
	Arch string
	// javaExec is the executable path relative to a JDK root
	javaExec []string
}

var platforms = map[OS][]string{
	Windows: {"bin", "javaw.exe"},
	OSX:     {"Contents", "Home", "bin", "java"},
}

var defaultJavaExec = []string{"bin", "java"}

// New returns the platform for the given GOOS/GOARCH pair
func New(goos string, goarch string) Platform {
	o := FromGOOS(goos)
	exec, ok := platforms[o]
	if !ok {
		exec = defaultJavaExec
	}
	return Platform{OS: o, Arch: goarch, javaExec: exec}
}

var current = New(runtime.GOOS, runtime.GOARCH)

// Current returns the platform this binary runs on
func Current() Platform {
	return current
}

// Bitness returns "64" or "32". It replaces the `${arch}` placeholder
// used in native classifier names.
func (p Platform) Bitness() string {
	switch p.Arch {
	case "386", "arm", "mips", "mipsle":
		return "32"
	default:
		return "64"
	}
}

// ExpandArch substitutes the `${arch}` placeholder in a classifier name
func (p Platform) ExpandArch(s string) string {
	return strings.ReplaceAll(s, "${arch}", p.Bitness())
}

// JavaExecFromRoot returns the java executable inside a JDK root directory.
// Everything outside the Windows and macOS families uses bin/java.
func (p Platform) JavaExecFromRoot(root string) string {
	exec := p.javaExec
	if exec == nil {
		exec = defaultJavaExec
	}
	return filepath.Join(append([]string{root}, exec...)...)
}

// IsJavaExecPath reports whether path looks like a java executable for this platform
func (p Platform) IsJavaExecPath(path string) bool {
	switch p.OS {
	case Windows:
		return strings.HasSuffix(path, filepath.Join("bin", "javaw.exe"))
	default:
		return strings.HasSuffix(path, filepath.Join("bin", "java"))
	}
}
