package prometheus

import (
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/tollgate-io/tollgate/pkg/metrics"
)

// convertMetricFamily converts a Prometheus MetricFamily to metrics.MetricFamily.
func convertMetricFamily(promFamily *dto.MetricFamily) *metrics.MetricFamily {
	family := &metrics.MetricFamily{
		Name:    promFamily.GetName(),
		Help:    promFamily.GetHelp(),
		Type:    convertMetricType(promFamily.GetType()),
		Metrics: make([]metrics.Metric, len(promFamily.GetMetric())),
	}

	for i, promMetric := range promFamily.GetMetric() {
		family.Metrics[i] = convertMetric(promMetric, family.Type)
	}

	return family
}

// convertMetricType converts a Prometheus MetricType to metrics.MetricType.
func convertMetricType(promType dto.MetricType) metrics.MetricType {
	switch promType {
	case dto.MetricType_COUNTER:
		return metrics.CounterType
	case dto.MetricType_GAUGE:
		return metrics.GaugeType
	case dto.MetricType_HISTOGRAM:
		return metrics.HistogramType
	default:
		return metrics.CounterType
	}
}

// convertMetric converts a Prometheus Metric to metrics.Metric.
func convertMetric(promMetric *dto.Metric, metricType metrics.MetricType) metrics.Metric {
	metric := metrics.Metric{
		Labels: convertLabelPairs(promMetric.GetLabel()),
	}

	if ts := promMetric.GetTimestampMs(); ts != 0 {
		metric.Timestamp = time.Unix(0, ts*int64(time.Millisecond))
	}

	switch metricType {
	case metrics.CounterType:
		if counter := promMetric.GetCounter(); counter != nil {
			metric.Value = counter.GetValue()
		}
	case metrics.GaugeType:
		if gauge := promMetric.GetGauge(); gauge != nil {
			metric.Value = gauge.GetValue()
		}
	case metrics.HistogramType:
		if histogram := promMetric.GetHistogram(); histogram != nil {
			metric.Count = histogram.GetSampleCount()
			metric.Sum = histogram.GetSampleSum()
			metric.Buckets = convertHistogramBuckets(histogram.GetBucket())
		}
	}

	return metric
}

// convertLabelPairs converts Prometheus LabelPairs to metrics.LabelPair.
func convertLabelPairs(promLabels []*dto.LabelPair) []metrics.LabelPair {
	labels := make([]metrics.LabelPair, len(promLabels))
	for i, promLabel := range promLabels {
		labels[i] = metrics.LabelPair{
			Name:  promLabel.GetName(),
			Value: promLabel.GetValue(),
		}
	}
	return labels
}

// convertHistogramBuckets converts Prometheus histogram buckets to metrics.Bucket.
func convertHistogramBuckets(promBuckets []*dto.Bucket) []metrics.Bucket {
	buckets := make([]metrics.Bucket, len(promBuckets))
	for i, promBucket := range promBuckets {
		buckets[i] = metrics.Bucket{
			UpperBound: promBucket.GetUpperBound(),
			Count:      promBucket.GetCumulativeCount(),
		}
	}
	return buckets
}
