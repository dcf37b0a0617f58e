package assetguard

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/integrity"
	"github.com/minepkg/assetguard/internals/metrics"
	"github.com/minepkg/assetguard/internals/minecraft"
)

// assetValidationLimit is the number of asset objects hashed in parallel
const assetValidationLimit = 10

// ResolveAssets loads the asset index of v and queues every object that is missing
// or corrupt. The index is only downloaded if it is not cached or force is set
func (e *Engine) ResolveAssets(ctx context.Context, v *minecraft.VersionData, force bool) error {
	index, err := e.mc.LoadAssetIndex(ctx, e.dirs.Common, v, force)
	if err != nil {
		return err
	}
	return e.resolveAssetIndex(ctx, index)
}

// resolveAssetIndex replaces the assets tracker with all invalid objects of index.
// Objects are visited in name order, one progress event is emitted per object.
func (e *Engine) resolveAssetIndex(ctx context.Context, index *minecraft.AssetIndex) error {
	objectDir := filepath.Join(e.dirs.Common, "assets", "objects")
	names := maps.Keys(index.Objects)
	slices.Sort(names)

	total := int64(len(names))
	results := make([]*downloadmgr.Asset, len(names))
	var visited atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(assetValidationLimit)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			obj := index.Objects[name]
			a := &downloadmgr.Asset{
				ID:        name,
				Hash:      obj.Hash,
				Algorithm: integrity.SHA1,
				Size:      obj.Size,
				URL:       obj.DownloadURL(),
				Target:    filepath.Join(objectDir, filepath.FromSlash(obj.UnixPath())),
			}
			if !a.Valid() {
				results[i] = a
			}
			e.emit(Event{Kind: downloadmgr.EventProgress, Stage: "assets", Done: visited.Add(1), Total: total})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	queue := make([]*downloadmgr.Asset, 0, len(results))
	for _, a := range results {
		if a != nil {
			queue = append(queue, a)
		}
	}
	e.setTracker(downloadmgr.Assets, downloadmgr.NewTracker(queue, nil))
	metrics.Queued.WithLabelValues(downloadmgr.Assets.String()).Set(float64(len(queue)))
	e.log.WithField("objects", total).WithField("queued", len(queue)).Debug("assets resolved")
	return nil
}
