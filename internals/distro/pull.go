package distro

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/minepkg/assetguard/internals/merrors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PullTimeout bounds the remote distribution request
const PullTimeout = 2500 * time.Millisecond

// Manager fetches the distribution index and keeps a copy in the launcher directory
type Manager struct {
	HTTP *http.Client
	// URL of the remote distribution.json
	URL string
	// LauncherDir contains the cached distribution.json
	LauncherDir string
	// DevMode reads dev_distribution.json instead and never pulls remote
	DevMode bool
	Dirs    Dirs
	Log     logrus.FieldLogger
}

func (d *Manager) localPath() string {
	if d.DevMode {
		return filepath.Join(d.LauncherDir, "dev_distribution.json")
	}
	return filepath.Join(d.LauncherDir, "distribution.json")
}

func (d *Manager) logger() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

// PullRemote downloads, parses and caches the remote distribution
func (d *Manager) PullRemote(ctx context.Context) (*Index, error) {
	if d.DevMode {
		return d.PullLocal()
	}
	ctx, cancel := context.WithTimeout(ctx, PullTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return nil, err
	}
	client := d.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(merrors.ErrTransport, err.Error())
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(merrors.ErrTransport, "distribution responded with %s", res.Status)
	}
	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(merrors.ErrTransport, err.Error())
	}

	index, err := Parse(buf, d.Dirs)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(d.LauncherDir, os.ModePerm); err != nil {
		return nil, err
	}
	if err := os.WriteFile(d.localPath(), buf, 0o644); err != nil {
		return nil, errors.Wrap(err, "could not cache distribution")
	}
	return index, nil
}

// PullLocal parses the cached distribution
func (d *Manager) PullLocal() (*Index, error) {
	buf, err := os.ReadFile(d.localPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(merrors.ErrNotFound, "no local distribution")
		}
		return nil, err
	}
	return Parse(buf, d.Dirs)
}

// Pull tries the remote distribution first and falls back to the cached one
func (d *Manager) Pull(ctx context.Context) (*Index, error) {
	log := d.logger()
	index, err := d.PullRemote(ctx)
	if err == nil {
		log.Debug("Loaded distribution index.")
		return index, nil
	}
	log.WithError(err).Warn("Failed to load distribution index, trying an older version.")

	index, localErr := d.PullLocal()
	if localErr != nil {
		return nil, errors.Wrapf(localErr, "remote distribution unavailable (%s)", err)
	}
	log.Info("Successfully loaded an older version of the distribution index.")
	return index, nil
}
