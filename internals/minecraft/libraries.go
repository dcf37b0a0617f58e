package minecraft

import (
	"path/filepath"
	"strings"

	"github.com/minepkg/assetguard/internals/platform"
)

// DefaultNativeExclusions are skipped when unpacking native libraries
var DefaultNativeExclusions = []string{"META-INF/"}

// Libraries as a collection of minecraft libs
type Libraries []Library

// Required returns only the libraries that apply to the given platform
func (l Libraries) Required(p platform.Platform) Libraries {
	required := make(Libraries, 0, len(l))
	for _, lib := range l {
		if lib.Applies(p) {
			required = append(required, lib)
		}
	}
	return required
}

// Library is a minecraft library
type Library struct {
	// Name can be used to identify the library, but is not required otherwise.
	Name      string `json:"name"`
	Downloads struct {
		Artifact Artifact `json:"artifact"`
		// Classifiers is a list of additional artifacts.
		// It is used to download native libraries.
		// The `Natives` field is used to determine which classifier to use.
		Classifiers map[string]Artifact `json:"classifiers"`
	} `json:"downloads,omitempty"`
	URL string `json:"url,omitempty"`
	// Rules is a list of rules that determine whether this library should be included.
	// If no rules are specified, the library is included by default.
	Rules []Rule `json:"rules,omitempty"`
	// Natives is a map of OS names to native classifier names.
	// Classifier names can contain an `${arch}` placeholder.
	Natives map[string]string `json:"natives,omitempty"`
	// Extract lists archive paths to skip when unpacking natives
	Extract *struct {
		Exclude []string `json:"exclude"`
	} `json:"extract,omitempty"`
}

// Applies reports whether this library is needed on the given platform
func (l *Library) Applies(p platform.Platform) bool {
	return ValidateRules(l.Rules, l.Natives, p.OS)
}

// IsNative reports whether this library ships native code
func (l *Library) IsNative() bool {
	return l.Natives != nil
}

// NativeClassifier returns the classifier key for the given platform
func (l *Library) NativeClassifier(p platform.Platform) (string, bool) {
	classifier, ok := l.Natives[p.OS.String()]
	if !ok {
		return "", false
	}
	return p.ExpandArch(classifier), true
}

// SelectArtifact returns the artifact to download on the given platform.
// Native libraries use their classifier, all others the plain artifact.
func (l *Library) SelectArtifact(p platform.Platform) (Artifact, bool) {
	if !l.IsNative() {
		a := l.Downloads.Artifact
		if a.Path == "" {
			a.Path = l.Filepath()
		}
		if a.URL == "" {
			a.URL = l.fallbackURL(a.Path)
		}
		return a, true
	}
	classifier, ok := l.NativeClassifier(p)
	if !ok {
		return Artifact{}, false
	}
	a, ok := l.Downloads.Classifiers[classifier]
	return a, ok
}

// Exclusions returns the paths to skip when unpacking this native library
func (l *Library) Exclusions() []string {
	if l.Extract != nil {
		return l.Extract.Exclude
	}
	return DefaultNativeExclusions
}

// VersionlessID returns the "group:name" part of the library name
func (l *Library) VersionlessID() string {
	i := strings.LastIndex(l.Name, ":")
	if i < 0 {
		return l.Name
	}
	return l.Name[:i]
}

// Filepath returns the maven style path for this library, derived from its name
func (l *Library) Filepath() string {
	grouped := strings.Split(l.Name, ":")
	if len(grouped) < 3 {
		return l.Name
	}
	basePath := filepath.Join(strings.Split(grouped[0], ".")...)
	name := grouped[1]
	version := grouped[2]

	return filepath.Join(basePath, name, version, name+"-"+version+".jar")
}

func (l *Library) fallbackURL(path string) string {
	if l.URL != "" {
		return l.URL + filepath.ToSlash(path)
	}
	return "https://libraries.minecraft.net/" + filepath.ToSlash(path)
}
