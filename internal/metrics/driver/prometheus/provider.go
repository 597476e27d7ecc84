package prometheus

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tollgate-io/tollgate/pkg/metrics"
)

// Provider implements the metrics.Provider interface using Prometheus.
// Metric creation is idempotent: asking for a name that already exists
// returns the registered instance instead of erroring.
type Provider struct {
	registry    *prometheus.Registry
	gatherer    prometheus.Gatherer
	namespace   string
	subsystem   string
	constLabels prometheus.Labels

	// Metrics storage, keyed by fully qualified name
	counterVecs   map[string]*promCounterVec
	gauges        map[string]*promGauge
	gaugeVecs     map[string]*promGaugeVec
	histogramVecs map[string]*promHistogramVec

	mu      sync.RWMutex
	closed  bool
	sampler *runtimeSampler
}

// Options for creating a Provider.
type Options struct {
	Registry    *prometheus.Registry
	Namespace   string
	Subsystem   string
	ConstLabels map[string]string
}

// NewProvider creates a new Prometheus-backed Provider.
func NewProvider(opts Options) (*Provider, error) {
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	constLabels := make(prometheus.Labels)
	for k, v := range opts.ConstLabels {
		constLabels[k] = v
	}

	return &Provider{
		registry:      registry,
		gatherer:      registry,
		namespace:     opts.Namespace,
		subsystem:     opts.Subsystem,
		constLabels:   constLabels,
		counterVecs:   make(map[string]*promCounterVec),
		gauges:        make(map[string]*promGauge),
		gaugeVecs:     make(map[string]*promGaugeVec),
		histogramVecs: make(map[string]*promHistogramVec),
	}, nil
}

// NewCounterVec creates or returns a counter vector metric.
func (p *Provider) NewCounterVec(opts metrics.MetricOptions) (metrics.CounterVec, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, metrics.ErrProviderClosed
	}

	if err := p.validate(opts); err != nil {
		return nil, err
	}

	fqName := metrics.BuildFQName(p.namespace, p.subsystem, opts.Name)

	// Check if already exists
	if existing, exists := p.counterVecs[fqName]; exists {
		return existing, nil
	}

	promVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   p.namespace,
		Subsystem:   p.subsystem,
		Name:        opts.Name,
		Help:        opts.Help,
		ConstLabels: metrics.MergeLabelMaps(p.constLabels, opts.ConstLabels),
	}, opts.Labels)

	if err := p.registry.Register(promVec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			// Use existing metric
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				vec := &promCounterVec{vec: existing}
				p.counterVecs[fqName] = vec
				return vec, nil
			}
		}
		return nil, metrics.NewMetricError("register", fqName, err)
	}

	vec := &promCounterVec{vec: promVec}
	p.counterVecs[fqName] = vec
	return vec, nil
}

// NewGauge creates or returns a gauge metric.
func (p *Provider) NewGauge(opts metrics.MetricOptions) (metrics.Gauge, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, metrics.ErrProviderClosed
	}

	if err := p.validate(opts); err != nil {
		return nil, err
	}

	fqName := metrics.BuildFQName(p.namespace, p.subsystem, opts.Name)

	// Check if already exists
	if existing, exists := p.gauges[fqName]; exists {
		return existing, nil
	}

	promGaugeMetric := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   p.namespace,
		Subsystem:   p.subsystem,
		Name:        opts.Name,
		Help:        opts.Help,
		ConstLabels: metrics.MergeLabelMaps(p.constLabels, opts.ConstLabels),
	})

	if err := p.registry.Register(promGaugeMetric); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			// Use existing metric
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				gauge := &promGauge{gauge: existing}
				p.gauges[fqName] = gauge
				return gauge, nil
			}
		}
		return nil, metrics.NewMetricError("register", fqName, err)
	}

	gauge := &promGauge{gauge: promGaugeMetric}
	p.gauges[fqName] = gauge
	return gauge, nil
}

// NewGaugeVec creates or returns a gauge vector metric.
func (p *Provider) NewGaugeVec(opts metrics.MetricOptions) (metrics.GaugeVec, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, metrics.ErrProviderClosed
	}

	if err := p.validate(opts); err != nil {
		return nil, err
	}

	fqName := metrics.BuildFQName(p.namespace, p.subsystem, opts.Name)

	// Check if already exists
	if existing, exists := p.gaugeVecs[fqName]; exists {
		return existing, nil
	}

	promVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   p.namespace,
		Subsystem:   p.subsystem,
		Name:        opts.Name,
		Help:        opts.Help,
		ConstLabels: metrics.MergeLabelMaps(p.constLabels, opts.ConstLabels),
	}, opts.Labels)

	if err := p.registry.Register(promVec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			// Use existing metric
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				vec := &promGaugeVec{vec: existing}
				p.gaugeVecs[fqName] = vec
				return vec, nil
			}
		}
		return nil, metrics.NewMetricError("register", fqName, err)
	}

	vec := &promGaugeVec{vec: promVec}
	p.gaugeVecs[fqName] = vec
	return vec, nil
}

// NewHistogramVec creates or returns a histogram vector metric.
func (p *Provider) NewHistogramVec(opts metrics.MetricOptions) (metrics.HistogramVec, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, metrics.ErrProviderClosed
	}

	if err := p.validate(opts); err != nil {
		return nil, err
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = metrics.DefaultBuckets
	}

	if err := metrics.ValidateHistogramBuckets(buckets); err != nil {
		return nil, err
	}

	fqName := metrics.BuildFQName(p.namespace, p.subsystem, opts.Name)

	// Check if already exists
	if existing, exists := p.histogramVecs[fqName]; exists {
		return existing, nil
	}

	promVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   p.namespace,
		Subsystem:   p.subsystem,
		Name:        opts.Name,
		Help:        opts.Help,
		ConstLabels: metrics.MergeLabelMaps(p.constLabels, opts.ConstLabels),
		Buckets:     buckets,
	}, opts.Labels)

	if err := p.registry.Register(promVec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			// Use existing metric
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				vec := &promHistogramVec{vec: existing}
				p.histogramVecs[fqName] = vec
				return vec, nil
			}
		}
		return nil, metrics.NewMetricError("register", fqName, err)
	}

	vec := &promHistogramVec{vec: promVec}
	p.histogramVecs[fqName] = vec
	return vec, nil
}

// Lookup reports whether a metric with the given name exists. The name is
// qualified with the provider's namespace and subsystem before the check.
func (p *Provider) Lookup(name string) (metrics.MetricType, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	fqName := metrics.BuildFQName(p.namespace, p.subsystem, name)
	if _, ok := p.counterVecs[fqName]; ok {
		return metrics.CounterType, true
	}
	if _, ok := p.gauges[fqName]; ok {
		return metrics.GaugeType, true
	}
	if _, ok := p.gaugeVecs[fqName]; ok {
		return metrics.GaugeType, true
	}
	if _, ok := p.histogramVecs[fqName]; ok {
		return metrics.HistogramType, true
	}
	return 0, false
}

// Gather collects all metrics from the registry into structured families.
func (p *Provider) Gather() ([]*metrics.MetricFamily, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, metrics.ErrProviderClosed
	}

	promFamilies, err := p.gatherer.Gather()
	if err != nil {
		return nil, metrics.NewMetricError("gather", "", err)
	}

	families := make([]*metrics.MetricFamily, len(promFamilies))
	for i, promFamily := range promFamilies {
		families[i] = convertMetricFamily(promFamily)
	}

	return families, nil
}

// Handler returns an HTTP handler serving the text exposition format.
// Render failures surface as a server error for that single request.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

// StartDefaultMetrics begins periodic collection of process-level metrics.
// A sampler that is already running is returned as-is, so repeated bootstrap
// never leaks a second timer.
func (p *Provider) StartDefaultMetrics(interval time.Duration) (metrics.Sampler, error) {
	if interval <= 0 {
		interval = defaultSampleInterval
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, metrics.ErrProviderClosed
	}
	if p.sampler != nil && p.sampler.running() {
		s := p.sampler
		p.mu.Unlock()
		return s, nil
	}
	p.mu.Unlock()

	s, err := newRuntimeSampler(p, interval)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.sampler = s
	p.mu.Unlock()
	return s, nil
}

// Close stops the provider. Subsequent metric creation fails with
// ErrProviderClosed; already created metrics keep working.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sampler != nil {
		p.sampler.Stop()
	}
	p.closed = true
	return nil
}

// Name returns the name of the provider.
func (p *Provider) Name() string {
	return "prometheus"
}

func (p *Provider) validate(opts metrics.MetricOptions) error {
	if err := metrics.ValidateMetricName(opts.Name); err != nil {
		return err
	}
	return metrics.ValidateLabelNames(opts.Labels)
}
