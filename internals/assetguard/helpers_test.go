package assetguard

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/platform"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) filter(kind downloadmgr.EventKind, stage string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind && (stage == "" || e.Stage == stage) {
			out = append(out, e)
		}
	}
	return out
}

type staticIndex struct {
	index *distro.Index
}

func (s staticIndex) Pull(ctx context.Context) (*distro.Index, error) {
	return s.index, nil
}

// rewriteTransport sends every request to target, keeping the path
type rewriteTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	return t.base.RoundTrip(r)
}

// contentServer serves static content by path and counts requests
type contentServer struct {
	*httptest.Server
	files map[string][]byte
	hits  sync.Map
	total atomic.Int64
}

func newContentServer(files map[string][]byte) *contentServer {
	cs := &contentServer{files: files}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.total.Add(1)
		n, _ := cs.hits.LoadOrStore(r.URL.Path, new(atomic.Int64))
		n.(*atomic.Int64).Add(1)
		content, ok := cs.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(content)
	}))
	return cs
}

func (cs *contentServer) client() *http.Client {
	u, _ := url.Parse(cs.URL)
	return &http.Client{Transport: rewriteTransport{target: u, base: http.DefaultTransport}}
}

func (cs *contentServer) hitCount(path string) int64 {
	n, ok := cs.hits.Load(path)
	if !ok {
		return 0
	}
	return n.(*atomic.Int64).Load()
}

func newTestEngine(t *testing.T, client *http.Client, src IndexSource) (*Engine, *eventRecorder) {
	t.Helper()
	dir := t.TempDir()
	logger, _ := test.NewNullLogger()
	p := platform.New("linux", "amd64")
	rec := &eventRecorder{}
	e := New(Config{
		Dirs: Dirs{
			Common:   filepath.Join(dir, "common"),
			Instance: filepath.Join(dir, "instances"),
			Data:     dir,
		},
		HTTP:         client,
		Distribution: src,
		Platform:     &p,
		Log:          logger,
		OnEvent:      rec.record,
	})
	return e, rec
}

func buildJar(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
