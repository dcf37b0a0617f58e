package assetguard

import (
	"path/filepath"

	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/metrics"
	"github.com/minepkg/assetguard/internals/minecraft"
)

// ResolveMiscellaneous queues the client jar and the log configuration of v.
// force always queues the client jar.
func (e *Engine) ResolveMiscellaneous(v *minecraft.VersionData, force bool) {
	tracker := downloadmgr.NewTracker(nil, nil)

	client := downloadmgr.NewAsset(
		v.ID+" client",
		v.Downloads.Client.Sha1,
		v.Downloads.Client.Size,
		v.Downloads.Client.URL,
		filepath.Join(e.dirs.Common, "versions", v.ID, v.ID+".jar"),
	)
	if force || !client.Valid() {
		tracker.Push(client)
	}

	if v.HasLogging() {
		file := v.Logging.Client.File
		logConfig := downloadmgr.NewAsset(
			file.ID,
			file.Sha1,
			file.Size,
			file.URL,
			filepath.Join(e.dirs.Common, "assets", "log_configs", file.ID),
		)
		if !logConfig.Valid() {
			tracker.Push(logConfig)
		}
	}

	e.setTracker(downloadmgr.Files, tracker)
	metrics.Queued.WithLabelValues(downloadmgr.Files.String()).Set(float64(tracker.Len()))
}
