package metrics

import (
	"reflect"
	"testing"
)

func TestMetricTypeString(t *testing.T) {
	tests := []struct {
		typ  MetricType
		want string
	}{
		{CounterType, "counter"},
		{GaugeType, "gauge"},
		{HistogramType, "histogram"},
		{MetricType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("MetricType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestMetricLabel(t *testing.T) {
	m := Metric{Labels: []LabelPair{{Name: "method", Value: "GET"}, {Name: "code", Value: "200"}}}
	if got := m.Label("method"); got != "GET" {
		t.Errorf("Label(method) = %q, want GET", got)
	}
	if got := m.Label("missing"); got != "" {
		t.Errorf("Label(missing) = %q, want empty", got)
	}
}

func TestExponentialBuckets(t *testing.T) {
	got := ExponentialBuckets(100, 10, 3)
	want := []float64{100, 1000, 10000}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExponentialBuckets(100, 10, 3) = %v, want %v", got, want)
	}
	if ExponentialBuckets(1, 2, 0) != nil {
		t.Error("zero count must return nil")
	}
}

func TestLinearBuckets(t *testing.T) {
	got := LinearBuckets(5, 5, 4)
	want := []float64{5, 10, 15, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LinearBuckets(5, 5, 4) = %v, want %v", got, want)
	}
}
