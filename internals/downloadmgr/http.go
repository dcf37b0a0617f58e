package downloadmgr

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/minepkg/assetguard/internals/integrity"
	"github.com/minepkg/assetguard/internals/merrors"
	"github.com/minepkg/assetguard/internals/metrics"
)

var defaultClient = http.Client{
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).Dial,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// ErrInvalidHash is returned when a downloaded file does not match the digest of its asset
type ErrInvalidHash struct {
	FileName string
	Expected string
	Actual   string
}

func (e *ErrInvalidHash) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s hash is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"\n",
		e.FileName,
		e.Expected,
		e.Actual,
	)
}

// Is makes ErrInvalidHash match merrors.ErrIntegrity
func (e *ErrInvalidHash) Is(target error) bool {
	return target == merrors.ErrIntegrity
}

// CheckHash compares the file at a.Target against a.Hash
func CheckHash(a *Asset) error {
	if a.Hash == "" {
		return nil
	}
	actual, err := integrity.CalculateFile(a.Target, a.Algorithm)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, a.Hash) {
		return &ErrInvalidHash{a.Target, a.Hash, actual}
	}
	return nil
}

// progressWriter counts written bytes and reports every chunk
type progressWriter struct {
	m        *Manager
	category Category
	written  int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	n := int64(len(p))
	w.written += n
	done := w.m.Progress.Add(n)
	metrics.Bytes.WithLabelValues(w.category.String()).Add(float64(n))
	w.m.OnEvent.Emit(Event{Kind: EventProgress, Stage: "download", Done: done, Total: w.m.Progress.Expected()})
	return len(p), nil
}

// fetch downloads a single asset. Every return path accounts for the full
// expected size of a so the received counter ends at the expected total
func (m *Manager) fetch(ctx context.Context, category Category, t *Tracker, a *Asset) error {
	cat := category.String()
	start := time.Now()
	metrics.Inflight.WithLabelValues(cat).Inc()
	defer func() {
		metrics.Inflight.WithLabelValues(cat).Dec()
		metrics.Duration.WithLabelValues(cat).Observe(time.Since(start).Seconds())
	}()

	log := m.logger().WithField("category", cat).WithField("id", a.ID)

	if err := os.MkdirAll(filepath.Dir(a.Target), os.ModePerm); err != nil {
		m.skip(a, 0)
		metrics.Requests.WithLabelValues(cat, "error").Inc()
		return errors.Wrapf(err, "could not create directory for %s", a.ID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
	if err != nil {
		m.skip(a, 0)
		metrics.Requests.WithLabelValues(cat, "error").Inc()
		return errors.Wrapf(merrors.ErrTransport, "invalid url %q for %s: %s", a.URL, a.ID, err)
	}

	res, err := m.client().Do(req)
	if err != nil {
		m.skip(a, 0)
		metrics.Requests.WithLabelValues(cat, "error").Inc()
		return errors.Wrapf(merrors.ErrTransport, "error while fetching %s: %s", a.URL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		m.skip(a, 0)
		metrics.Requests.WithLabelValues(cat, "status").Inc()
		log.WithField("status", res.StatusCode).Warn("unable to download asset")
		return errors.Wrapf(merrors.ErrTransport, "invalid status code: %s from %s", res.Status, a.URL)
	}

	// the server knows better than the manifest
	checkHash := false
	if res.ContentLength != a.Size {
		checkHash = true
		if res.ContentLength >= 0 {
			m.Progress.AdjustExpected(res.ContentLength - a.Size)
		}
		log.WithField("manifest_size", a.Size).WithField("content_length", res.ContentLength).
			Debug("content length differs from manifest")
	}

	dest, err := os.Create(a.Target)
	if err != nil {
		m.skip(a, 0)
		metrics.Requests.WithLabelValues(cat, "error").Inc()
		return errors.Wrapf(err, "could not create %s", a.Target)
	}

	pw := &progressWriter{m: m, category: category}
	_, err = io.Copy(io.MultiWriter(dest, pw), res.Body)
	if err == nil {
		err = dest.Sync()
	}
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(a.Target)
		m.skip(a, pw.written)
		metrics.Requests.WithLabelValues(cat, "error").Inc()
		return errors.Wrapf(merrors.ErrTransport, "error while writing %s: %s", a.Target, err)
	}
	metrics.Requests.WithLabelValues(cat, "ok").Inc()

	if t.OnItemComplete != nil {
		if err := t.OnItemComplete(ctx, a); err != nil {
			return errors.Wrapf(err, "post processing of %s failed", a.ID)
		}
	}

	if checkHash {
		if err := CheckHash(a); err != nil {
			log.WithError(err).Warn("downloaded file does not match its manifest")
		} else {
			log.Info("hashes match")
		}
	}
	return nil
}

// skip accounts for an asset that will not be written completely
func (m *Manager) skip(a *Asset, written int64) {
	rest := a.Size - written
	if rest < 0 {
		rest = 0
	}
	done := m.Progress.Add(rest)
	m.OnEvent.Emit(Event{Kind: EventProgress, Stage: "download", Done: done, Total: m.Progress.Expected()})
}
