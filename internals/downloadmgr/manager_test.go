package downloadmgr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minepkg/assetguard/internals/integrity"
	"github.com/minepkg/assetguard/internals/merrors"
)

var files = map[string]string{
	"/one":  "first file",
	"/two":  "the second file",
	"/lies": "longer than announced",
}

func fileServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		w.Write([]byte(content))
	}))
}

func assetFor(srv *httptest.Server, dir string, path string) *Asset {
	content := files[path]
	return NewAsset(
		path[1:],
		integrity.CalculateBytes([]byte(content), integrity.SHA1),
		int64(len(content)),
		srv.URL+path,
		filepath.Join(dir, "nested", path[1:]),
	)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) kind(k EventKind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

func newTestManager(rec *eventRecorder) *Manager {
	logger, _ := test.NewNullLogger()
	return New(nil, logger, rec.record)
}

func TestProcessDownloadsAllCategories(t *testing.T) {
	srv := fileServer()
	defer srv.Close()
	dir := t.TempDir()

	one := assetFor(srv, dir, "/one")
	two := assetFor(srv, dir, "/two")

	var hooked []string
	var hookMu sync.Mutex
	libs := NewTracker([]*Asset{two}, func(ctx context.Context, a *Asset) error {
		hookMu.Lock()
		defer hookMu.Unlock()
		hooked = append(hooked, a.ID)
		return nil
	})

	rec := &eventRecorder{}
	m := newTestManager(rec)
	err := m.Process(context.Background(), []Run{
		{Category: Assets, Tracker: NewTracker([]*Asset{one}, nil)},
		{Category: Libraries, Tracker: libs},
		{Category: Files, Tracker: NewTracker(nil, nil)},
	})
	require.NoError(t, err)

	assert.True(t, one.Valid())
	assert.True(t, two.Valid())
	assert.Equal(t, []string{"two"}, hooked)
	assert.Equal(t, 0, libs.Len())

	assert.Equal(t, one.Size+two.Size, m.Progress.Received())
	assert.Equal(t, m.Progress.Expected(), m.Progress.Received())
	assert.Equal(t, int64(0), m.Progress.Outstanding())

	progress := rec.kind(EventProgress)
	require.NotEmpty(t, progress)
	var max int64
	for _, e := range progress {
		assert.Equal(t, "download", e.Stage)
		if e.Done > max {
			max = e.Done
		}
	}
	assert.Equal(t, one.Size+two.Size, max)
}

func TestProcessSkipsFailures(t *testing.T) {
	srv := fileServer()
	defer srv.Close()
	dir := t.TempDir()

	ok := assetFor(srv, dir, "/one")
	missing := NewAsset("missing", "abc", 42, srv.URL+"/missing", filepath.Join(dir, "missing"))
	unreachable := NewAsset("unreachable", "abc", 8, "http://127.0.0.1:1/nope", filepath.Join(dir, "unreachable"))

	rec := &eventRecorder{}
	m := newTestManager(rec)
	err := m.Process(context.Background(), []Run{
		{Category: Files, Tracker: NewTracker([]*Asset{missing, ok, unreachable}, nil)},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrTransport))
	assert.True(t, ok.Valid())
	assert.NoFileExists(t, missing.Target)

	// failures still count towards the total
	assert.Equal(t, ok.Size+missing.Size+unreachable.Size, m.Progress.Received())
	assert.Len(t, rec.kind(EventError), 2)
}

func TestProcessContentLengthMismatch(t *testing.T) {
	srv := fileServer()
	defer srv.Close()
	dir := t.TempDir()

	lies := assetFor(srv, dir, "/lies")
	lies.Size = 3
	lies.Hash = "0000000000000000000000000000000000000000"

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	m := New(nil, logger, nil)

	err := m.Process(context.Background(), []Run{
		{Category: Forge, Tracker: NewTracker([]*Asset{lies}, nil)},
	})
	require.NoError(t, err, "hash mismatches after a size mismatch are only logged")

	assert.Equal(t, int64(len(files["/lies"])), m.Progress.Expected())
	assert.Equal(t, int64(len(files["/lies"])), m.Progress.Received())
	_, statErr := os.Stat(lies.Target)
	assert.NoError(t, statErr)

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned, "expected a warning about the hash mismatch")
}

func TestProcessContentLengthMismatchHashMatches(t *testing.T) {
	srv := fileServer()
	defer srv.Close()

	lies := assetFor(srv, t.TempDir(), "/lies")
	lies.Size = 3

	logger, hook := test.NewNullLogger()
	m := New(nil, logger, nil)
	err := m.Process(context.Background(), []Run{
		{Category: Forge, Tracker: NewTracker([]*Asset{lies}, nil)},
	})
	require.NoError(t, err)

	matched := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.InfoLevel && e.Message == "hashes match" {
			matched = true
		}
	}
	assert.True(t, matched, "a successful check is logged at the default level")
}

func TestProcessEmpty(t *testing.T) {
	m := New(nil, nil, nil)
	err := m.Process(context.Background(), []Run{{Category: Assets, Tracker: NewTracker(nil, nil)}})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), m.Progress.Outstanding())
}

func TestCheckHash(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0o644))

	a := &Asset{ID: "file", Target: target, Algorithm: integrity.MD5, Hash: "5D41402ABC4B2A76B9719D911017C592"}
	assert.NoError(t, CheckHash(a))

	a.Hash = "00000000000000000000000000000000"
	err := CheckHash(a)
	var invalid *ErrInvalidHash
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", invalid.Actual)
	assert.True(t, errors.Is(err, merrors.ErrIntegrity))
}
