package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tollgate-io/tollgate/pkg/metrics"
)

// promCounter adapts prometheus.Counter to metrics.Counter.
type promCounter struct {
	counter prometheus.Counter
}

func (c *promCounter) Inc()              { c.counter.Inc() }
func (c *promCounter) Add(delta float64) { c.counter.Add(delta) }

// promCounterVec adapts *prometheus.CounterVec to metrics.CounterVec.
type promCounterVec struct {
	vec *prometheus.CounterVec
}

func (v *promCounterVec) WithLabelValues(lvs ...string) metrics.Counter {
	return &promCounter{counter: v.vec.WithLabelValues(lvs...)}
}

func (v *promCounterVec) With(labels map[string]string) metrics.Counter {
	return &promCounter{counter: v.vec.With(labels)}
}

// promGauge adapts prometheus.Gauge to metrics.Gauge.
type promGauge struct {
	gauge prometheus.Gauge
}

func (g *promGauge) Set(value float64) { g.gauge.Set(value) }
func (g *promGauge) Inc()              { g.gauge.Inc() }
func (g *promGauge) Dec()              { g.gauge.Dec() }
func (g *promGauge) Add(delta float64) { g.gauge.Add(delta) }

// promGaugeVec adapts *prometheus.GaugeVec to metrics.GaugeVec.
type promGaugeVec struct {
	vec *prometheus.GaugeVec
}

func (v *promGaugeVec) WithLabelValues(lvs ...string) metrics.Gauge {
	return &promGauge{gauge: v.vec.WithLabelValues(lvs...)}
}

func (v *promGaugeVec) With(labels map[string]string) metrics.Gauge {
	return &promGauge{gauge: v.vec.With(labels)}
}

// promHistogram adapts prometheus.Observer to metrics.Histogram.
type promHistogram struct {
	observer prometheus.Observer
}

func (h *promHistogram) Observe(value float64) { h.observer.Observe(value) }

// promHistogramVec adapts *prometheus.HistogramVec to metrics.HistogramVec.
type promHistogramVec struct {
	vec *prometheus.HistogramVec
}

func (v *promHistogramVec) WithLabelValues(lvs ...string) metrics.Histogram {
	return &promHistogram{observer: v.vec.WithLabelValues(lvs...)}
}

func (v *promHistogramVec) With(labels map[string]string) metrics.Histogram {
	return &promHistogram{observer: v.vec.With(labels)}
}
