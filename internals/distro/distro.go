// Package distro models the distribution index: the operator controlled list of
// servers and the module tree (forge, libraries, mods, files) each server needs.
package distro

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/minepkg/assetguard/internals/merrors"
	"github.com/pkg/errors"
)

// Dirs are the directories module paths are resolved against
type Dirs struct {
	// Common holds libraries, assets, versions and the mod store
	Common string
	// Instance holds one directory per server
	Instance string
}

// Index is the parsed distribution.json
type Index struct {
	Version    string    `json:"version"`
	RSS        string    `json:"rss"`
	Servers    []*Server `json:"servers"`
	mainServer string
}

// Server is one server entry of the distribution
type Server struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	Version          string    `json:"version"`
	Address          string    `json:"address"`
	MinecraftVersion string    `json:"minecraftVersion"`
	MainServer       bool      `json:"mainServer"`
	AutoConnect      bool      `json:"autoconnect"`
	Modules          []*Module `json:"modules"`
}

// Artifact is the downloadable part of a module
type Artifact struct {
	MD5  string `json:"MD5"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
	// Path is relative in the json and absolute after [Parse]
	Path string `json:"path"`
}

// Required describes whether a module is optional and if so, whether it is enabled by default
type Required struct {
	Value   bool
	Default bool
}

// UnmarshalJSON defaults both fields to true
func (r *Required) UnmarshalJSON(data []byte) error {
	raw := struct {
		Value *bool `json:"value"`
		Def   *bool `json:"def"`
	}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Value, r.Default = true, true
	if raw.Value != nil {
		r.Value = *raw.Value
	}
	if raw.Def != nil {
		r.Default = *raw.Def
	}
	return nil
}

// Module is one entry of a server's module tree
type Module struct {
	// ID is a maven identifier "group:artifact:version[:classifier][@ext]"
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	Required   *Required `json:"required,omitempty"`
	Artifact   Artifact  `json:"artifact"`
	SubModules []*Module `json:"subModules,omitempty"`

	group      string
	artifactID string
	version    string
	classifier string
	extension  string
}

// Parse parses a distribution index and resolves every module path against dirs
func Parse(buf []byte, dirs Dirs) (*Index, error) {
	index := &Index{}
	if err := json.Unmarshal(buf, index); err != nil {
		return nil, errors.Wrap(merrors.ErrFormat, "distribution: "+err.Error())
	}
	for _, s := range index.Servers {
		for _, m := range s.Modules {
			m.resolve(dirs, s.ID)
		}
		if s.MainServer && index.mainServer == "" {
			index.mainServer = s.ID
		}
	}
	if index.mainServer == "" && len(index.Servers) > 0 {
		index.mainServer = index.Servers[0].ID
	}
	return index, nil
}

// Server returns the server with the given id or nil
func (i *Index) Server(id string) *Server {
	for _, s := range i.Servers {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// MainServer returns the server flagged as main server, or the first one
func (i *Index) MainServer() *Server {
	if i.mainServer == "" {
		return nil
	}
	return i.Server(i.mainServer)
}

// IsRequired reports whether the module can not be disabled
func (m *Module) IsRequired() bool {
	return m.Required == nil || m.Required.Value
}

// IsDefault reports whether an optional module is enabled by default
func (m *Module) IsDefault() bool {
	return m.Required == nil || m.Required.Default
}

// Group returns the maven group of the module
func (m *Module) Group() string { return m.group }

// ArtifactID returns the maven artifact id of the module
func (m *Module) ArtifactID() string { return m.artifactID }

// Version returns the maven version of the module
func (m *Module) Version() string { return m.version }

// Classifier returns the maven classifier of the module (can be empty)
func (m *Module) Classifier() string { return m.classifier }

// Extension returns the file extension of the module
func (m *Module) Extension() string { return m.extension }

// VersionlessID returns "group:artifact"
func (m *Module) VersionlessID() string {
	return m.group + ":" + m.artifactID
}

// ExtensionlessID returns the id without the "@ext" suffix
func (m *Module) ExtensionlessID() string {
	return strings.SplitN(m.ID, "@", 2)[0]
}

func (m *Module) resolve(dirs Dirs, serverID string) {
	m.resolveMetadata()
	m.resolvePath(dirs, serverID)
	for _, sub := range m.SubModules {
		sub.resolve(dirs, serverID)
	}
}

func (m *Module) resolveMetadata() {
	parts := strings.SplitN(m.ID, "@", 2)
	m.extension = m.Type.DefaultExtension()
	if len(parts) == 2 && parts[1] != "" {
		m.extension = parts[1]
	}

	coords := strings.Split(parts[0], ":")
	get := func(i int) string {
		if i < len(coords) && coords[i] != "" {
			return coords[i]
		}
		return "???"
	}
	m.group = get(0)
	m.artifactID = get(1)
	m.version = get(2)
	if len(coords) > 3 {
		m.classifier = coords[3]
	}
}

func (m *Module) mavenPath() string {
	name := m.artifactID + "-" + m.version
	if m.classifier != "" {
		name += "-" + m.classifier
	}
	parts := append(strings.Split(m.group, "."), m.artifactID, m.version, name+"."+m.extension)
	return filepath.Join(parts...)
}

func (m *Module) resolvePath(dirs Dirs, serverID string) {
	rel := m.Artifact.Path
	if rel == "" {
		rel = m.mavenPath()
	}
	rel = filepath.FromSlash(rel)

	switch m.Type {
	case Library, ForgeHosted, LiteLoader:
		m.Artifact.Path = filepath.Join(dirs.Common, "libraries", rel)
	case ForgeMod, LiteMod:
		m.Artifact.Path = filepath.Join(dirs.Common, "modstore", rel)
	case VersionManifest:
		m.Artifact.Path = filepath.Join(dirs.Common, "versions", m.ID, m.ID+".json")
	default:
		m.Artifact.Path = filepath.Join(dirs.Instance, serverID, rel)
	}
}
