// Package java provisions an OpenJDK runtime for the current platform
package java

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/extract"
	"github.com/minepkg/assetguard/internals/platform"
)

// DefaultMajor is the java feature release used if nothing else is configured
const DefaultMajor uint8 = 8

// Release is a downloadable runtime archive
type Release struct {
	URI  string
	Size int64
	Name string
}

// Provider looks up and installs java runtimes
type Provider struct {
	http     *http.Client
	platform platform.Platform
	log      logrus.FieldLogger
}

// NewProvider creates a provider for the current platform
func NewProvider(log logrus.FieldLogger) *Provider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Provider{http.DefaultClient, platform.Current(), log}
}

// SetHTTPClient replaces the default http client with the given one
func (p *Provider) SetHTTPClient(c *http.Client) {
	p.http = c
}

// SetPlatform overrides the detected platform
func (p *Provider) SetPlatform(pl platform.Platform) {
	p.platform = pl
}

// RuntimeDir is the directory all downloaded runtimes are extracted to
func RuntimeDir(dataDir string) string {
	return filepath.Join(dataDir, "runtime", "x64")
}

// LatestOpenJDK finds the newest OpenJDK build of the given major version.
// Corretto is used on macOS, adoptium everywhere else.
// It returns nil without an error if no build is available for this platform
func (p *Provider) LatestOpenJDK(ctx context.Context, major uint8) (*Release, error) {
	if p.platform.OS == platform.OSX {
		return p.latestCorretto(ctx, major)
	}
	return p.latestAdoptium(ctx, major)
}

// Installed returns the java executables of all runtimes that already exist in dataDir
func (p *Provider) Installed(dataDir string) []string {
	entries, err := os.ReadDir(RuntimeDir(dataDir))
	if err != nil {
		return nil
	}
	var found []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		exec := p.platform.JavaExecFromRoot(filepath.Join(RuntimeDir(dataDir), e.Name()))
		if _, err := os.Stat(exec); err == nil {
			found = append(found, exec)
		}
	}
	return found
}

// EnqueueOpenJDK creates a single item tracker for the latest runtime of the given major version.
// After the download completes the archive is extracted and a "java" complete event with the
// java executable is emitted. It returns nil if no runtime is available.
func (p *Provider) EnqueueOpenJDK(ctx context.Context, dataDir string, major uint8, onEvent downloadmgr.EventFunc) (*downloadmgr.Tracker, error) {
	release, err := p.LatestOpenJDK(ctx, major)
	if err != nil || release == nil {
		return nil, err
	}

	runtimeDir := RuntimeDir(dataDir)
	asset := &downloadmgr.Asset{
		ID:     release.Name,
		Size:   release.Size,
		URL:    release.URI,
		Target: filepath.Join(runtimeDir, release.Name),
	}

	return downloadmgr.NewTracker([]*downloadmgr.Asset{asset}, func(ctx context.Context, a *downloadmgr.Asset) error {
		root, err := extract.JDK(a.Target, runtimeDir)
		if err != nil {
			return err
		}
		exec := p.platform.JavaExecFromRoot(root)
		p.log.WithField("executable", exec).Info("java runtime extracted")
		onEvent.Emit(downloadmgr.Event{Kind: downloadmgr.EventComplete, Stage: "java", Detail: exec})
		return nil
	}), nil
}
