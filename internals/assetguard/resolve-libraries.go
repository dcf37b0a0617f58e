package assetguard

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/integrity"
	"github.com/minepkg/assetguard/internals/metrics"
	"github.com/minepkg/assetguard/internals/minecraft"
)

// Library is a queued minecraft library
type Library struct {
	downloadmgr.Asset
	Native  bool
	Exclude []string
}

// ResolveLibraries queues every library of v that applies to this platform
// and is missing or corrupt
func (e *Engine) ResolveLibraries(ctx context.Context, v *minecraft.VersionData) ([]*Library, error) {
	libDir := filepath.Join(e.dirs.Common, "libraries")
	results := make([]*Library, len(v.Libraries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit(downloadmgr.Libraries))
	for i := range v.Libraries {
		i, lib := i, &v.Libraries[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !lib.Applies(e.platform) {
				return nil
			}
			artifact, ok := lib.SelectArtifact(e.platform)
			if !ok {
				e.log.WithField("library", lib.Name).Warn("no native classifier for this platform")
				return nil
			}
			l := &Library{
				Asset: downloadmgr.Asset{
					ID:        lib.Name,
					Hash:      artifact.Sha1,
					Algorithm: integrity.SHA1,
					Size:      artifact.Size,
					URL:       artifact.URL,
					Target:    filepath.Join(libDir, filepath.FromSlash(artifact.Path)),
				},
				Native:  lib.IsNative(),
				Exclude: lib.Exclusions(),
			}
			if !l.Valid() {
				results[i] = l
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var queued []*Library
	tracker := downloadmgr.NewTracker(nil, nil)
	for _, l := range results {
		if l != nil {
			queued = append(queued, l)
			tracker.Push(&l.Asset)
		}
	}
	e.setTracker(downloadmgr.Libraries, tracker)
	metrics.Queued.WithLabelValues(downloadmgr.Libraries.String()).Set(float64(len(queued)))
	return queued, nil
}
