package assetguard

import (
	"strings"

	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/integrity"
	"github.com/minepkg/assetguard/internals/metrics"
)

// PackXZExt is the suffix of modules that need to be decompressed after downloading
const PackXZExt = ".pack.xz"

// DistroModule is a queued module of the distribution
type DistroModule struct {
	downloadmgr.Asset
	Type distro.Type
}

// ValidationPath returns the path that is checked for integrity. pack.xz files
// are validated against their decompressed form
func ValidationPath(path string) string {
	if i := strings.LastIndex(strings.ToLower(path), PackXZExt); i > -1 && i == len(path)-len(PackXZExt) {
		return path[:i]
	}
	return path
}

// ResolveDistribution replaces the forge tracker and the extraction queue with
// all modules of server that are missing or corrupt
func (e *Engine) ResolveDistribution(server *distro.Server) []*DistroModule {
	queue, size, extract := resolveModules(server.Modules, e.optionalMods[server.ID])

	tracker := downloadmgr.NewTracker(nil, nil)
	for _, m := range queue {
		tracker.Push(&m.Asset)
	}
	if tracker.Size() != size {
		e.log.WithField("tracker", tracker.Size()).WithField("walk", size).Error("distribution size mismatch")
	}

	e.mu.Lock()
	e.trackers[downloadmgr.Forge] = tracker
	e.extractQueue = extract
	e.mu.Unlock()

	metrics.Queued.WithLabelValues(downloadmgr.Forge.String()).Set(float64(len(queue)))
	e.log.WithField("server", server.ID).WithField("queued", len(queue)).WithField("extract", len(extract)).
		Debug("distribution resolved")
	return queue
}

// resolveModules walks the module tree depth first. Every module is validated on
// its own, a valid parent does not skip its children.
func resolveModules(modules []*distro.Module, selection OptionalMods) ([]*DistroModule, int64, []string) {
	var (
		queue   []*DistroModule
		size    int64
		extract []string
	)
	for _, m := range modules {
		enabled, subSelection := selection.enabled(m)
		if !enabled {
			continue
		}

		path := m.Artifact.Path
		validationPath := ValidationPath(path)
		if !integrity.ValidateLocal(validationPath, integrity.MD5, m.Artifact.MD5) {
			queue = append(queue, &DistroModule{
				Asset: downloadmgr.Asset{
					ID:        m.ID,
					Hash:      m.Artifact.MD5,
					Algorithm: integrity.MD5,
					Size:      m.Artifact.Size,
					URL:       m.Artifact.URL,
					Target:    path,
				},
				Type: m.Type,
			})
			size += m.Artifact.Size
			if validationPath != path {
				extract = append(extract, path)
			}
		}

		if len(m.SubModules) > 0 {
			subQueue, subSize, subExtract := resolveModules(m.SubModules, subSelection)
			queue = append(queue, subQueue...)
			size += subSize
			extract = append(extract, subExtract...)
		}
	}
	return queue, size, extract
}
