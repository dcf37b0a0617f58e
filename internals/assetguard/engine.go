// Package assetguard reconciles the local installation against the version
// metadata, the distribution index and the java runtime of a server. It decides
// what is missing or corrupt, downloads it and prepares it for launching.
package assetguard

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/java"
	"github.com/minepkg/assetguard/internals/minecraft"
	"github.com/minepkg/assetguard/internals/platform"
)

// Event is emitted while validating and downloading
type Event = downloadmgr.Event

// IndexSource provides the distribution index
type IndexSource interface {
	Pull(ctx context.Context) (*distro.Index, error)
}

// Dirs are the root directories the engine works in
type Dirs struct {
	// Common holds assets, libraries, versions and the mod store
	Common string
	// Instance holds one directory per server
	Instance string
	// Data is the root for downloaded java runtimes
	Data string
}

// Config configures a new Engine
type Config struct {
	Dirs Dirs
	// JavaExec is used to run the pack.xz helper
	JavaExec string
	// PackXZHelper is the path to PackXZExtract.jar
	PackXZHelper string
	// Limits overwrites the default concurrency of a category
	Limits map[downloadmgr.Category]int
	// OptionalMods holds the selected optional mods per server id
	OptionalMods map[string]OptionalMods

	HTTP         *http.Client
	Distribution IndexSource
	Platform     *platform.Platform
	Log          logrus.FieldLogger
	OnEvent      downloadmgr.EventFunc
}

// Engine holds the state of one validate, download, extract and finalize pass.
// A new engine should be created for every launch attempt.
type Engine struct {
	dirs         Dirs
	javaExec     string
	helperJar    string
	limits       map[downloadmgr.Category]int
	optionalMods map[string]OptionalMods

	http     *http.Client
	mc       *minecraft.APIClient
	java     *java.Provider
	distro   IndexSource
	platform platform.Platform
	log      logrus.FieldLogger
	onEvent  downloadmgr.EventFunc

	mu           sync.Mutex
	trackers     map[downloadmgr.Category]*downloadmgr.Tracker
	extractQueue []string
	progress     *downloadmgr.Progress
}

// New creates a new engine
func New(cfg Config) *Engine {
	client := cfg.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := platform.Current()
	if cfg.Platform != nil {
		p = *cfg.Platform
	}
	if cfg.Dirs.Data == "" {
		cfg.Dirs.Data = filepath.Dir(cfg.Dirs.Common)
	}

	jp := java.NewProvider(log)
	jp.SetHTTPClient(client)
	jp.SetPlatform(p)

	e := &Engine{
		dirs:         cfg.Dirs,
		javaExec:     cfg.JavaExec,
		helperJar:    cfg.PackXZHelper,
		limits:       cfg.Limits,
		optionalMods: cfg.OptionalMods,
		http:         client,
		mc:           minecraft.New(client),
		java:         jp,
		distro:       cfg.Distribution,
		platform:     p,
		log:          log,
		onEvent:      cfg.OnEvent,
		trackers:     make(map[downloadmgr.Category]*downloadmgr.Tracker, len(downloadmgr.Categories)),
		progress:     &downloadmgr.Progress{},
	}
	for _, c := range downloadmgr.Categories {
		e.trackers[c] = downloadmgr.NewTracker(nil, nil)
	}
	return e
}

// SetMinecraftClient replaces the client used to fetch version metadata
func (e *Engine) SetMinecraftClient(c *minecraft.APIClient) {
	e.mc = c
}

// Tracker returns the current tracker of a category
func (e *Engine) Tracker(c downloadmgr.Category) *downloadmgr.Tracker {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trackers[c]
}

func (e *Engine) setTracker(c downloadmgr.Category, t *downloadmgr.Tracker) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.trackers[c] = t
}

// ExtractQueue returns the paths that will be decompressed after downloading
func (e *Engine) ExtractQueue() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.extractQueue...)
}

// Progress returns the byte counters of the running download
func (e *Engine) Progress() *downloadmgr.Progress {
	return e.progress
}

// Dirs returns the directories of this engine
func (e *Engine) Dirs() Dirs {
	return e.dirs
}

func (e *Engine) limit(c downloadmgr.Category) int {
	if l, ok := e.limits[c]; ok && l > 0 {
		return l
	}
	return c.DefaultLimit()
}

func (e *Engine) emit(ev Event) {
	e.onEvent.Emit(ev)
}

func (e *Engine) emitValidate(stage string) {
	e.emit(Event{Kind: downloadmgr.EventValidate, Stage: stage})
}
