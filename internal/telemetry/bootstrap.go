// Package telemetry wires the request-level metric definitions: three
// histograms labeled by (method, route, code), a request counter and the
// version gauge, plus the background process-metrics sampler.
package telemetry

import (
	"fmt"
	"sync"

	"github.com/tollgate-io/tollgate/internal/config"
	"github.com/tollgate-io/tollgate/pkg/log"
	"github.com/tollgate-io/tollgate/pkg/metrics"
)

// RequestLabels is the label tuple shared by every request-level metric.
var RequestLabels = []string{"method", "route", "code"}

// Telemetry is the process-wide instrumentation state: the shared metric
// definitions and the handle of the background sampler. It is created once
// at bootstrap and passed by reference into every component that records.
type Telemetry struct {
	provider metrics.Provider
	logger   log.Logger

	// Request-level metrics
	RequestsTotal metrics.CounterVec
	Duration      metrics.HistogramVec
	RequestSize   metrics.HistogramVec
	ResponseSize  metrics.HistogramVec

	// Version gauge, set once
	Version metrics.GaugeVec

	sampler   metrics.Sampler
	closeOnce sync.Once
}

// Bootstrap creates or reuses the metric definitions and starts the periodic
// process-metrics sampler. It is safe to call more than once in the same
// process: definitions that already exist in the registry are reused instead
// of re-created, and the provider never runs two samplers at once.
func Bootstrap(cfg *config.Config, provider metrics.Provider, logger log.Logger) (*Telemetry, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.NewNop()
	}

	t := &Telemetry{
		provider: provider,
		logger:   logger,
	}

	prefix := ""
	if cfg.Telemetry.PrefixMetricNames {
		prefix = metrics.SanitizeMetricName(cfg.Service.Name) + "_"
	}

	defs := []struct {
		name    string
		create  func(name string) error
	}{
		{prefix + "http_requests_total", func(name string) error {
			var err error
			t.RequestsTotal, err = provider.NewCounterVec(metrics.MetricOptions{
				Name:   name,
				Help:   "Total number of HTTP requests processed",
				Labels: RequestLabels,
			})
			return err
		}},
		{prefix + "http_request_duration_seconds", func(name string) error {
			var err error
			t.Duration, err = provider.NewHistogramVec(metrics.MetricOptions{
				Name:    name,
				Help:    "HTTP request duration in seconds",
				Labels:  RequestLabels,
				Buckets: cfg.Telemetry.DurationBuckets,
			})
			return err
		}},
		{prefix + "http_request_size_bytes", func(name string) error {
			var err error
			t.RequestSize, err = provider.NewHistogramVec(metrics.MetricOptions{
				Name:    name,
				Help:    "HTTP request size in bytes",
				Labels:  RequestLabels,
				Buckets: cfg.Telemetry.RequestSizeBuckets,
			})
			return err
		}},
		{prefix + "http_response_size_bytes", func(name string) error {
			var err error
			t.ResponseSize, err = provider.NewHistogramVec(metrics.MetricOptions{
				Name:    name,
				Help:    "HTTP response size in bytes",
				Labels:  RequestLabels,
				Buckets: cfg.Telemetry.ResponseSizeBuckets,
			})
			return err
		}},
		{prefix + "app_version", func(name string) error {
			var err error
			t.Version, err = provider.NewGaugeVec(metrics.MetricOptions{
				Name:   name,
				Help:   "Version of the instrumented service",
				Labels: []string{"version", "major", "minor", "patch"},
			})
			return err
		}},
	}

	for _, def := range defs {
		if _, exists := provider.Lookup(def.name); exists {
			logger.Debug("reusing existing metric definition", log.String("metric", def.name))
		}
		if err := def.create(def.name); err != nil {
			return nil, fmt.Errorf("failed to bootstrap metric %s: %w", def.name, err)
		}
	}

	version := cfg.Service.Version
	major, minor, patch := splitVersion(version)
	t.Version.WithLabelValues(version, major, minor, patch).Set(1)

	sampler, err := provider.StartDefaultMetrics(cfg.Telemetry.DefaultMetricsInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to start default metrics collection: %w", err)
	}
	t.sampler = sampler

	logger.Info("telemetry bootstrapped",
		log.String("service", cfg.Service.Name),
		log.String("version", version),
		log.Bool("prefixed", cfg.Telemetry.PrefixMetricNames),
	)

	return t, nil
}

// Provider returns the underlying registry adapter.
func (t *Telemetry) Provider() metrics.Provider {
	return t.provider
}

// Close cancels the background sampler. The first call wins; later calls
// are no-ops.
func (t *Telemetry) Close() error {
	t.closeOnce.Do(func() {
		if t.sampler != nil {
			t.sampler.Stop()
		}
		t.logger.Info("telemetry stopped")
	})
	return nil
}
