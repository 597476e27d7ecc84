package metrics

import "time"

// MetricType represents the type of metric.
type MetricType int

const (
	// CounterType represents a counter metric.
	CounterType MetricType = iota
	// GaugeType represents a gauge metric.
	GaugeType
	// HistogramType represents a histogram metric.
	HistogramType
)

// String returns the string representation of MetricType.
func (mt MetricType) String() string {
	switch mt {
	case CounterType:
		return "counter"
	case GaugeType:
		return "gauge"
	case HistogramType:
		return "histogram"
	default:
		return "unknown"
	}
}

// LabelPair represents a key-value pair for metric labels.
type LabelPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Metric represents a single recorded metric with its labels and samples.
type Metric struct {
	Labels    []LabelPair `json:"labels,omitempty"`
	Value     float64     `json:"value"`
	Timestamp time.Time   `json:"timestamp,omitempty"`
	Count     uint64      `json:"count,omitempty"`   // histograms
	Sum       float64     `json:"sum,omitempty"`     // histograms
	Buckets   []Bucket    `json:"buckets,omitempty"` // histograms
}

// Label returns the value recorded for the named label, or "" when absent.
func (m Metric) Label(name string) string {
	for _, lp := range m.Labels {
		if lp.Name == name {
			return lp.Value
		}
	}
	return ""
}

// Bucket represents a histogram bucket.
type Bucket struct {
	UpperBound float64 `json:"upper_bound"`
	Count      uint64  `json:"count"`
}

// MetricFamily represents a family of metrics with the same name but
// different label values.
type MetricFamily struct {
	Name    string     `json:"name"`
	Help    string     `json:"help"`
	Type    MetricType `json:"type"`
	Metrics []Metric   `json:"metrics"`
}

// MetricOptions represents options for creating metrics.
type MetricOptions struct {
	Name        string
	Help        string
	Labels      []string
	ConstLabels map[string]string
	Buckets     []float64 // histograms only
}

// DefaultBuckets provides default histogram buckets.
var DefaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ExponentialBuckets creates exponential histogram buckets.
func ExponentialBuckets(start, factor float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start
		start *= factor
	}
	return buckets
}

// LinearBuckets creates linear histogram buckets.
func LinearBuckets(start, width float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	buckets := make([]float64, count)
	for i := range buckets {
		buckets[i] = start
		start += width
	}
	return buckets
}

// GetDefaultBuckets returns default histogram buckets for different use cases.
func GetDefaultBuckets(bucketType string) []float64 {
	switch bucketType {
	case "duration":
		return []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	case "size":
		return ExponentialBuckets(100, 10, 8) // 100B to 1GB
	default:
		return DefaultBuckets
	}
}
