package metrics

import (
	"net/http"
	"time"
)

// Counter represents a counter metric that only goes up.
type Counter interface {
	// Inc increments the counter by 1.
	Inc()

	// Add adds the given value to the counter. The value must be >= 0.
	Add(delta float64)
}

// Gauge represents a gauge metric that can go up and down.
type Gauge interface {
	// Set sets the gauge to the given value.
	Set(value float64)

	// Inc increments the gauge by 1.
	Inc()

	// Dec decrements the gauge by 1.
	Dec()

	// Add adds the given value to the gauge.
	Add(delta float64)
}

// Histogram represents a histogram metric for observing distributions.
type Histogram interface {
	// Observe adds a single observation to the histogram.
	Observe(value float64)
}

// CounterVec represents a vector of counters with different label values.
type CounterVec interface {
	// WithLabelValues returns the Counter for the given slice of label values.
	WithLabelValues(lvs ...string) Counter

	// With returns the Counter for the given Labels map.
	With(labels map[string]string) Counter
}

// GaugeVec represents a vector of gauges with different label values.
type GaugeVec interface {
	// WithLabelValues returns the Gauge for the given slice of label values.
	WithLabelValues(lvs ...string) Gauge

	// With returns the Gauge for the given Labels map.
	With(labels map[string]string) Gauge
}

// HistogramVec represents a vector of histograms with different label values.
type HistogramVec interface {
	// WithLabelValues returns the Histogram for the given slice of label values.
	WithLabelValues(lvs ...string) Histogram

	// With returns the Histogram for the given Labels map.
	With(labels map[string]string) Histogram
}

// Sampler is the handle for a running background metrics collection.
// Stop is safe to call more than once; only the first call cancels the run.
type Sampler interface {
	Stop()
}

// Provider is the registry adapter contract. Implementations must be safe for
// concurrent use: metric creation is idempotent per fully qualified name, and
// observe/record operations never block on I/O.
type Provider interface {
	// NewCounterVec creates or returns the counter vector registered under the
	// fully qualified name derived from opts.Name.
	NewCounterVec(opts MetricOptions) (CounterVec, error)

	// NewGaugeVec creates or returns the gauge vector registered under the
	// fully qualified name derived from opts.Name.
	NewGaugeVec(opts MetricOptions) (GaugeVec, error)

	// NewGauge creates or returns the single gauge registered under the fully
	// qualified name derived from opts.Name.
	NewGauge(opts MetricOptions) (Gauge, error)

	// NewHistogramVec creates or returns the histogram vector registered under
	// the fully qualified name derived from opts.Name.
	NewHistogramVec(opts MetricOptions) (HistogramVec, error)

	// Lookup reports whether a metric definition with the given name
	// already exists, and its type when it does.
	Lookup(name string) (MetricType, bool)

	// Gather collects every registered metric into structured families.
	Gather() ([]*MetricFamily, error)

	// Handler returns the HTTP handler serving the text exposition format.
	Handler() http.Handler

	// StartDefaultMetrics begins periodic collection of process-level metrics
	// at the given interval and returns a cancelable handle.
	StartDefaultMetrics(interval time.Duration) (Sampler, error)
}
