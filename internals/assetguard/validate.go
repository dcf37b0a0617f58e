package assetguard

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/merrors"
	"github.com/minepkg/assetguard/internals/minecraft"
)

// LockFile guards the common directory against concurrent passes
const LockFile = ".assetguard.lock"

// Result of a full validation pass. Either both data fields are set or Err is
type Result struct {
	VersionData *minecraft.VersionData
	ForgeData   *minecraft.VersionData
	Err         error
}

func failed(err error) Result {
	return Result{Err: err}
}

// Lock acquires the lock of the common directory. It waits until ctx is done
func (e *Engine) Lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(e.dirs.Common, os.ModePerm); err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(e.dirs.Common, LockFile))
	locked, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return nil, errors.Wrap(err, "could not lock common directory")
	}
	if !locked {
		return nil, errors.New("common directory is locked by another process")
	}
	return func() { lock.Unlock() }, nil
}

// Resolve pulls the distribution and fills the trackers of the given server
// without downloading anything. The stages emit validate events as they finish
func (e *Engine) Resolve(ctx context.Context, serverID string) (*distro.Server, *minecraft.VersionData, error) {
	if e.distro == nil {
		return nil, nil, errors.New("no distribution source configured")
	}
	index, err := e.distro.Pull(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not load distribution")
	}
	server := index.Server(serverID)
	if server == nil {
		return nil, nil, errors.Wrapf(merrors.ErrNotFound, "server %q is not part of the distribution", serverID)
	}

	e.ResolveDistribution(server)
	e.emitValidate("distribution")

	versionData, err := e.mc.LoadVersionData(ctx, e.dirs.Common, server.MinecraftVersion, false)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not load version %s", server.MinecraftVersion)
	}
	e.emitValidate("version")

	if err := e.ResolveAssets(ctx, versionData, false); err != nil {
		return nil, nil, errors.Wrap(err, "could not resolve assets")
	}
	e.emitValidate("assets")

	if _, err := e.ResolveLibraries(ctx, versionData); err != nil {
		return nil, nil, errors.Wrap(err, "could not resolve libraries")
	}
	e.emitValidate("libraries")

	e.ResolveMiscellaneous(versionData, false)
	e.emitValidate("files")

	return server, versionData, nil
}

// ValidateEverything runs a full pass for the given server: resolve the distribution,
// load the version metadata, resolve assets, libraries and files, download everything
// and finally load the forge version descriptor.
// Stage failures are returned in Result.Err, failed downloads are only reported as events.
func (e *Engine) ValidateEverything(ctx context.Context, serverID string) Result {
	if e.distro == nil {
		return failed(errors.New("no distribution source configured"))
	}
	unlock, err := e.Lock(ctx)
	if err != nil {
		return failed(err)
	}
	defer unlock()

	server, versionData, err := e.Resolve(ctx, serverID)
	if err != nil {
		return failed(err)
	}

	if err := e.Download(ctx); err != nil {
		if ctx.Err() != nil {
			return failed(err)
		}
		e.log.WithField("server", server.ID).WithError(err).Warn("some files could not be downloaded")
	}

	forgeData, err := e.LoadForgeData(server)
	if err != nil {
		return failed(errors.Wrap(err, "could not load forge data"))
	}

	return Result{VersionData: versionData, ForgeData: forgeData}
}
