package launcher

import (
	"context"
	"net/http"
	"os"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/minepkg/assetguard/internals/assetguard"
	"github.com/minepkg/assetguard/internals/auth"
	"github.com/minepkg/assetguard/internals/cmdlog"
	"github.com/minepkg/assetguard/internals/config"
	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/merrors"
)

// Launcher prepares the files of one server with CLI output
type Launcher struct {
	Settings *config.Settings

	// ServerID overwrites the selected server
	ServerID string

	// User is handed to the game launch untouched
	User *auth.User

	// NonInteractive disables spinners and the progress view
	NonInteractive bool

	// UseSystemJava uses "java" from PATH instead of a downloaded runtime
	UseSystemJava bool

	// JavaMajor overwrites the java version picked for the minecraft version
	JavaMajor uint8

	// Version of this program, printed after preparing
	Version string

	log    logrus.FieldLogger
	out    *cmdlog.Logger
	index  *cachedIndex
	engine *assetguard.Engine
	state  state
}

// state is updated from engine events and read by the progress view
type state struct {
	mu          sync.Mutex
	stage       string
	assetsDone  int64
	assetsTotal int64
	failed      atomic.Int32
}

func (s *state) setStage(stage string) {
	s.mu.Lock()
	s.stage = stage
	s.mu.Unlock()
}

func (s *state) snapshot() (string, int64, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage, s.assetsDone, s.assetsTotal
}

// cachedIndex pulls the distribution only once per launcher
type cachedIndex struct {
	src   assetguard.IndexSource
	mu    sync.Mutex
	index *distro.Index
}

func (c *cachedIndex) Pull(ctx context.Context) (*distro.Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index != nil {
		return c.index, nil
	}
	index, err := c.src.Pull(ctx)
	if err != nil {
		return nil, err
	}
	c.index = index
	return index, nil
}

// New creates a launcher and its engine
func New(s *config.Settings, client *http.Client, log logrus.FieldLogger, out *cmdlog.Logger) *Launcher {
	l := &Launcher{
		Settings: s,
		User:     &s.Account,
		log:      log,
		out:      out,
	}
	l.index = &cachedIndex{src: &distro.Manager{
		HTTP:        client,
		URL:         s.DistributionURL,
		LauncherDir: s.LauncherDirectory,
		DevMode:     s.DevMode,
		Dirs:        distro.Dirs{Common: s.CommonDirectory(), Instance: s.InstanceDirectory()},
		Log:         log,
	}}
	return l.withEngine(client)
}

func (l *Launcher) withEngine(client *http.Client) *Launcher {
	l.engine = assetguard.New(assetguard.Config{
		Dirs:         l.Settings.Dirs(),
		JavaExec:     l.Settings.Java.Executable,
		PackXZHelper: l.Settings.PackXZHelper,
		Limits:       l.Settings.CategoryLimits(),
		OptionalMods: l.Settings.OptionalMods(),
		HTTP:         client,
		Distribution: l.index,
		Log:          l.log,
		OnEvent:      l.handleEvent,
	})
	return l
}

// Engine returns the engine driven by this launcher
func (l *Launcher) Engine() *assetguard.Engine {
	return l.engine
}

// Interactive reports whether spinners and the progress view should be shown
func (l *Launcher) Interactive() bool {
	if l.NonInteractive {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Server returns the server to prepare: the overwritten one, the selected one or the main server
func (l *Launcher) Server(ctx context.Context) (*distro.Server, error) {
	index, err := l.index.Pull(ctx)
	if err != nil {
		return nil, err
	}
	id := l.ServerID
	if id == "" {
		id = l.Settings.SelectedServer
	}
	if id == "" {
		if main := index.MainServer(); main != nil {
			return main, nil
		}
		return nil, &merrors.CliError{
			Err:  "The distribution has no servers",
			Help: "Check the distributionURL setting",
		}
	}
	server := index.Server(id)
	if server == nil {
		suggestions := make([]string, 0, len(index.Servers))
		for _, s := range index.Servers {
			suggestions = append(suggestions, s.ID)
		}
		return nil, &merrors.CliError{
			Err:         "Unknown server " + id,
			Code:        "server-not-found",
			Suggestions: suggestions,
		}
	}
	return server, nil
}

func (l *Launcher) handleEvent(ev assetguard.Event) {
	switch ev.Kind {
	case downloadmgr.EventValidate:
		l.state.setStage(ev.Stage)
		if !l.Interactive() {
			l.out.Log("✓ " + ev.Stage)
		}
	case downloadmgr.EventProgress:
		if ev.Stage == "assets" {
			l.state.mu.Lock()
			// progress events arrive out of order
			if ev.Total != l.state.assetsTotal || ev.Done > l.state.assetsDone {
				l.state.assetsDone, l.state.assetsTotal = ev.Done, ev.Total
			}
			l.state.mu.Unlock()
		}
	case downloadmgr.EventError:
		l.state.failed.Add(1)
		if !l.Interactive() && ev.Err != nil {
			l.out.Warn(errors.Wrap(ev.Err, ev.Stage).Error())
		}
	case downloadmgr.EventComplete:
		if ev.Stage == "java" {
			l.log.WithField("executable", ev.Detail).Debug("java ready")
		}
	}
}
