// Package downloadmgr downloads queued assets of multiple categories in parallel
// while keeping a shared byte counter.
package downloadmgr

import (
	"context"
	"net/http"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/minepkg/assetguard/internals/metrics"
)

// Run is a tracker that should be processed with the limit of its category
type Run struct {
	Category Category
	Tracker  *Tracker
	// Limit overwrites the category's default limit if > 0
	Limit int
}

func (r Run) limit() int {
	if r.Limit > 0 {
		return r.Limit
	}
	return r.Category.DefaultLimit()
}

// Manager processes download runs
type Manager struct {
	Client   *http.Client
	Log      logrus.FieldLogger
	OnEvent  EventFunc
	Progress *Progress

	mu       sync.Mutex
	failures *multierror.Error
}

// New creates a new download manager using client
func New(client *http.Client, log logrus.FieldLogger, onEvent EventFunc) *Manager {
	return &Manager{Client: client, Log: log, OnEvent: onEvent, Progress: &Progress{}}
}

func (m *Manager) client() *http.Client {
	if m.Client == nil {
		return &defaultClient
	}
	return m.Client
}

func (m *Manager) logger() logrus.FieldLogger {
	if m.Log == nil {
		return logrus.StandardLogger()
	}
	return m.Log
}

func (m *Manager) fail(a *Asset, err error) {
	m.logger().WithField("id", a.ID).WithError(err).Error("download failed")
	m.OnEvent.Emit(Event{Kind: EventError, Stage: "download", Detail: a.ID, Err: err})
	m.mu.Lock()
	m.failures = multierror.Append(m.failures, err)
	m.mu.Unlock()
}

// Process drains all trackers. Categories run in parallel, items inside a category
// are dispatched in queue order with at most Limit concurrent downloads.
// Failed items never stop other downloads, they are aggregated in the returned error.
// Process returns once every item has finished; trackers are empty afterwards.
func (m *Manager) Process(ctx context.Context, runs []Run) error {
	if m.Progress == nil {
		m.Progress = &Progress{}
	}
	m.mu.Lock()
	m.failures = nil
	m.mu.Unlock()

	var expected, items int64
	for _, r := range runs {
		expected += r.Tracker.Size()
		n := int64(r.Tracker.Len())
		items += n
		metrics.Queued.WithLabelValues(r.Category.String()).Set(float64(n))
	}
	m.Progress.Reset(expected, items)
	if items == 0 {
		return nil
	}

	var wg sync.WaitGroup
	for _, r := range runs {
		if r.Tracker.Len() == 0 {
			continue
		}
		wg.Add(1)
		go func(r Run) {
			defer wg.Done()
			m.processCategory(ctx, r)
		}(r)
	}
	wg.Wait()

	m.logger().WithField("failed", m.failureCount()).Debug("all downloads finished")

	m.mu.Lock()
	defer m.mu.Unlock()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return m.failures.ErrorOrNil()
}

func (m *Manager) processCategory(ctx context.Context, r Run) {
	g := errgroup.Group{}
	g.SetLimit(r.limit())
	log := m.logger().WithField("category", r.Category.String())
	log.WithField("items", r.Tracker.Len()).Debug("starting downloads")

	for {
		a, ok := r.Tracker.Pop()
		if !ok {
			break
		}
		g.Go(func() error {
			if err := m.fetch(ctx, r.Category, r.Tracker, a); err != nil {
				m.fail(a, err)
			}
			if m.Progress.done() {
				log.Debug("last outstanding download finished")
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (m *Manager) failureCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures == nil {
		return 0
	}
	return len(m.failures.Errors)
}
