package minecraft

import "encoding/json"

// VersionData is a version.json manifest describing everything required to launch a version
type VersionData struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	// MinecraftArguments are used before 1.13
	MinecraftArguments string `json:"minecraftArguments,omitempty"`
	// Arguments is the newer argument format. It is passed through to the launch command builder
	Arguments  json.RawMessage `json:"arguments,omitempty"`
	MainClass  string          `json:"mainClass"`
	Assets     string          `json:"assets"`
	AssetIndex struct {
		ID        string `json:"id"`
		Sha1      string `json:"sha1"`
		Size      int64  `json:"size"`
		TotalSize int64  `json:"totalSize"`
		URL       string `json:"url"`
	} `json:"assetIndex"`
	Downloads struct {
		Client Artifact `json:"client"`
		Server Artifact `json:"server"`
	} `json:"downloads"`
	Logging struct {
		Client struct {
			Argument string  `json:"argument"`
			File     LogFile `json:"file"`
			Type     string  `json:"type"`
		} `json:"client"`
	} `json:"logging"`
	Libraries    Libraries `json:"libraries"`
	InheritsFrom string    `json:"inheritsFrom,omitempty"`
	JavaVersion  struct {
		Component    string `json:"component"`
		MajorVersion int    `json:"majorVersion"`
	} `json:"javaVersion"`
}

// HasLogging reports whether the version declares a client log configuration
func (v *VersionData) HasLogging() bool {
	return v.Logging.Client.File.ID != ""
}

const (
	// TypeSnapshot is a snapshot release
	TypeSnapshot = "snapshot"
	// TypeRelease is a full "normal" release
	TypeRelease = "release"
	// TypeOldBeta is a "old_beta" release
	TypeOldBeta = "old_beta"
	// TypeOldAlpha is a "old_alpha" release
	TypeOldAlpha = "old_alpha"
)

// Release is a released minecraft version
type Release struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// VersionManifest is the response from the "launchermeta" mojang api
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Release `json:"versions"`
}

// Find returns the release with the given id
func (m *VersionManifest) Find(id string) (*Release, bool) {
	for i := range m.Versions {
		if m.Versions[i].ID == id {
			return &m.Versions[i], true
		}
	}
	return nil, false
}
