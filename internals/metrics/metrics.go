// Package metrics exposes download statistics in the prometheus format
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds all assetguard collectors
	Registry = prometheus.NewRegistry()

	Requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "assetguard_download_requests_total", Help: "Download requests by category and result"},
		[]string{"category", "result"},
	)
	Bytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "assetguard_download_bytes_total", Help: "Bytes written to disk by category"},
		[]string{"category"},
	)
	Inflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "assetguard_download_inflight", Help: "In-flight downloads by category"},
		[]string{"category"},
	)
	Queued = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "assetguard_queued_artifacts", Help: "Artifacts queued after validation"},
		[]string{"category"},
	)
	Duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "assetguard_download_duration_seconds", Help: "Time spent per artifact", Buckets: prometheus.DefBuckets},
		[]string{"category"},
	)
)

func init() {
	Registry.MustRegister(Requests, Bytes, Inflight, Queued, Duration)
}

// Handler serves the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
