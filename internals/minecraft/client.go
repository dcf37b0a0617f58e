package minecraft

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/minepkg/assetguard/internals/merrors"
	"github.com/pkg/errors"
)

// VersionManifestURL lists all minecraft versions
const VersionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// APIClient fetches version metadata from mojang and caches it in the common directory
type APIClient struct {
	*http.Client
	// ManifestURL defaults to [VersionManifestURL]
	ManifestURL string
}

// New returns a new APIClient using the given http client
func New(httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{
		Client:      httpClient,
		ManifestURL: VersionManifestURL,
	}
}

// GetVersionManifest returns all available Minecraft releases
func (a *APIClient) GetVersionManifest(ctx context.Context) (*VersionManifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.ManifestURL, nil)
	if err != nil {
		return nil, err
	}
	res, err := a.Do(req)
	if err != nil {
		return nil, errors.Wrap(merrors.ErrTransport, err.Error())
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(merrors.ErrTransport, "version manifest responded with %s", res.Status)
	}

	parsed := VersionManifest{}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(merrors.ErrFormat, err.Error())
	}
	return &parsed, nil
}

// LoadVersionData returns the version.json for the given version.
// It is read from `<common>/versions/<id>/<id>.json` and only downloaded if missing or forced.
func (a *APIClient) LoadVersionData(ctx context.Context, commonDir string, version string, force bool) (*VersionData, error) {
	versionFile := filepath.Join(commonDir, "versions", version, version+".json")

	if force || !fileExists(versionFile) {
		manifest, err := a.GetVersionManifest(ctx)
		if err != nil {
			return nil, err
		}
		release, ok := manifest.Find(version)
		if !ok {
			return nil, errors.Wrapf(merrors.ErrNotFound, "minecraft version %s", version)
		}
		if err := a.download(ctx, release.URL, versionFile); err != nil {
			return nil, err
		}
	}

	data := &VersionData{}
	if err := readJSON(versionFile, data); err != nil {
		return nil, err
	}
	return data, nil
}

// LoadAssetIndex returns the asset index of the given version.
// It is cached in `<common>/assets/indexes/<id>.json`
func (a *APIClient) LoadAssetIndex(ctx context.Context, commonDir string, v *VersionData, force bool) (*AssetIndex, error) {
	indexFile := filepath.Join(commonDir, "assets", "indexes", v.AssetIndex.ID+".json")

	if force || !fileExists(indexFile) {
		if err := a.download(ctx, v.AssetIndex.URL, indexFile); err != nil {
			return nil, err
		}
	}

	index := &AssetIndex{}
	if err := readJSON(indexFile, index); err != nil {
		return nil, err
	}
	return index, nil
}

// download fetches url into target. The file is written next to the target first
// so a cancelled download never leaves a truncated json behind
func (a *APIClient) download(ctx context.Context, url string, target string) error {
	if url == "" {
		return errors.Wrapf(merrors.ErrFormat, "no download url for %s", filepath.Base(target))
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := a.Do(req)
	if err != nil {
		return errors.Wrap(merrors.ErrTransport, err.Error())
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return errors.Wrapf(merrors.ErrTransport, "invalid status code: %s from %s", res.Status, url)
	}

	tmp := target + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, res.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func readJSON(file string, v interface{}) error {
	buf, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return errors.Wrap(merrors.ErrFormat, fmt.Sprintf("%s: %s", filepath.Base(file), err))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
