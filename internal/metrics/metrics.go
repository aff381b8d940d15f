// Package metrics exposes Prometheus metrics for inspections run in watch mode.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eslint_watch"

// Outcome label values for inspections_total.
const (
	OutcomePassed = "passed"
	OutcomeFailed = "failed"
	OutcomeError  = "error"
)

// Recorder holds the inspection metrics. Each Recorder owns its registry so
// tests can create as many as they like.
type Recorder struct {
	registry *prometheus.Registry

	// inspections counts inspections.
	// Labels: outcome (passed, failed, error), trigger (all, additions, modifications)
	inspections *prometheus.CounterVec

	// duration measures wall time of the lint subprocess plus report parsing.
	duration prometheus.Histogram

	// runErrors counts inspections that errored.
	// Labels: kind (configuration, subprocess, report, other)
	runErrors *prometheus.CounterVec

	lastFiles    prometheus.Gauge
	lastErrors   prometheus.Gauge
	lastWarnings prometheus.Gauge
	failedPaths  prometheus.Gauge
}

// NewRecorder registers the metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		inspections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inspections_total",
			Help:      "Total inspections by outcome and trigger",
		}, []string{"outcome", "trigger"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inspection_duration_seconds",
			Help:      "Inspection duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		runErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_errors_total",
			Help:      "Inspections that could not complete, by error kind",
		}, []string{"kind"}),
		lastFiles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_files_inspected",
			Help:      "Files in the most recent report",
		}),
		lastErrors: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_errors",
			Help:      "Errors in the most recent report",
		}),
		lastWarnings: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_warnings",
			Help:      "Warnings in the most recent report",
		}),
		failedPaths: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "failed_paths",
			Help:      "Paths with messages after the most recent run",
		}),
	}
}

// ObserveReport records a completed inspection.
func (r *Recorder) ObserveReport(trigger string, passed bool, files, errs, warnings, failed int, d time.Duration) {
	outcome := OutcomeFailed
	if passed {
		outcome = OutcomePassed
	}
	r.inspections.WithLabelValues(outcome, trigger).Inc()
	r.duration.Observe(d.Seconds())
	r.lastFiles.Set(float64(files))
	r.lastErrors.Set(float64(errs))
	r.lastWarnings.Set(float64(warnings))
	r.failedPaths.Set(float64(failed))
}

// ObserveError records an inspection that errored. The last-report gauges
// are left alone.
func (r *Recorder) ObserveError(trigger, kind string, d time.Duration) {
	r.inspections.WithLabelValues(OutcomeError, trigger).Inc()
	r.runErrors.WithLabelValues(kind).Inc()
	r.duration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve listens on addr and serves /metrics until ctx is cancelled.
// The returned channel receives the listener's terminal error, if any.
func (r *Recorder) Serve(ctx context.Context, addr string) (net.Addr, <-chan error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return ln.Addr(), errCh, nil
}
