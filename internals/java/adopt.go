package java

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/minepkg/assetguard/internals/merrors"
)

// AdoptiumAPI is the base url of the eclipse adoptium api
var AdoptiumAPI = "https://api.adoptium.net/v3"

// AdoptiumAsset is a single entry of the "latest assets" endpoint
type AdoptiumAsset struct {
	Binary struct {
		Architecture string `json:"architecture"`
		HeapSize     string `json:"heap_size"`
		ImageType    string `json:"image_type"`
		JvmImpl      string `json:"jvm_impl"`
		Os           string `json:"os"`
		Package      struct {
			Checksum string `json:"checksum"`
			Link     string `json:"link"`
			Name     string `json:"name"`
			Size     int64  `json:"size"`
		} `json:"package"`
	} `json:"binary"`
	ReleaseName string `json:"release_name"`
	Vendor      string `json:"vendor"`
	Version     struct {
		Major          int    `json:"major"`
		Minor          int    `json:"minor"`
		Security       int    `json:"security"`
		OpenjdkVersion string `json:"openjdk_version"`
		Semver         string `json:"semver"`
	} `json:"version"`
}

func (p *Provider) latestAdoptium(ctx context.Context, major uint8) (*Release, error) {
	u := fmt.Sprintf("%s/assets/latest/%d/hotspot?vendor=eclipse", AdoptiumAPI, major)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := p.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(merrors.ErrTransport, "adoptium lookup failed: %s", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(merrors.ErrTransport, "adoptium responded with %s", res.Status)
	}

	parsed := make([]AdoptiumAsset, 0, 8)
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrapf(merrors.ErrFormat, "invalid adoptium response: %s", err)
	}

	osName := adoptiumOS(p.platform.OS.String())
	for _, a := range parsed {
		if a.Version.Major == int(major) &&
			a.Binary.Os == osName &&
			a.Binary.ImageType == "jdk" &&
			a.Binary.Architecture == "x64" {
			return &Release{
				URI:  a.Binary.Package.Link,
				Size: a.Binary.Package.Size,
				Name: a.Binary.Package.Name,
			}, nil
		}
	}
	return nil, nil
}

func adoptiumOS(name string) string {
	if name == "osx" {
		return "mac"
	}
	return name
}
