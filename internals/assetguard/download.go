package assetguard

import (
	"context"

	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/extract"
)

// downloadCategories are processed by Download, java only if it was enqueued
var downloadCategories = []downloadmgr.Category{
	downloadmgr.Assets,
	downloadmgr.Libraries,
	downloadmgr.Files,
	downloadmgr.Forge,
	downloadmgr.Java,
}

// Download processes all queued categories in parallel. Once every item has finished,
// queued pack.xz files are decompressed and a "download" complete event is emitted.
// Failed items are reported through error events and the returned error, they never
// stop other downloads.
func (e *Engine) Download(ctx context.Context) error {
	runs := make([]downloadmgr.Run, 0, len(downloadCategories))
	for _, c := range downloadCategories {
		runs = append(runs, downloadmgr.Run{Category: c, Tracker: e.Tracker(c), Limit: e.limit(c)})
	}

	m := downloadmgr.New(e.http, e.log, e.onEvent)
	m.Progress = e.progress
	dlErr := m.Process(ctx, runs)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// drained trackers are replaced
	for _, c := range downloadCategories {
		e.setTracker(c, downloadmgr.NewTracker(nil, nil))
	}

	queue := e.ExtractQueue()
	if len(queue) > 0 {
		if err := extract.PackXZ(ctx, e.JavaExecutable(), e.helperJar, queue, e.log); err != nil {
			e.log.WithError(err).Error("pack.xz extraction failed")
			e.emit(Event{Kind: downloadmgr.EventError, Stage: "extract", Err: err})
		}
		e.mu.Lock()
		e.extractQueue = nil
		e.mu.Unlock()
	}

	e.emit(Event{Kind: downloadmgr.EventComplete, Stage: "download"})
	return dlErr
}

// EnqueueJava queues the latest OpenJDK runtime of the given major version.
// It returns false if no runtime is available for this platform
func (e *Engine) EnqueueJava(ctx context.Context, major uint8) (bool, error) {
	tracker, err := e.java.EnqueueOpenJDK(ctx, e.dirs.Data, major, func(ev Event) {
		if ev.Kind == downloadmgr.EventComplete && ev.Stage == "java" {
			e.mu.Lock()
			e.javaExec = ev.Detail
			e.mu.Unlock()
		}
		e.emit(ev)
	})
	if err != nil || tracker == nil {
		return false, err
	}
	e.setTracker(downloadmgr.Java, tracker)
	return true, nil
}

// JavaExecutable returns the java executable used by the engine
func (e *Engine) JavaExecutable() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.javaExec
}

// InstalledJava returns the executable of an already extracted runtime of the
// given major version, or "" if none is installed
func (e *Engine) InstalledJava(major uint8) string {
	return e.java.FindInstalled(e.dirs.Data, major)
}

// SetJavaExecutable sets the java executable, e.g. to a system java
func (e *Engine) SetJavaExecutable(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.javaExec = path
}
