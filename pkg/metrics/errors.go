package metrics

import (
	"errors"
	"fmt"
)

// Common errors for metrics operations.
var (
	// ErrInvalidName indicates an invalid metric name.
	ErrInvalidName = errors.New("invalid metric name")

	// ErrInvalidLabel indicates an invalid label name or value.
	ErrInvalidLabel = errors.New("invalid label name or value")

	// ErrInvalidBuckets indicates invalid histogram buckets.
	ErrInvalidBuckets = errors.New("invalid histogram buckets")

	// ErrProviderClosed indicates the provider is closed.
	ErrProviderClosed = errors.New("metrics provider is closed")
)

// MetricError represents a metric-specific error.
type MetricError struct {
	Op   string // operation that failed
	Name string // metric name
	Err  error  // underlying error
}

// Error implements the error interface.
func (e *MetricError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("metrics: %s %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("metrics: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *MetricError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *MetricError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewMetricError creates a new MetricError.
func NewMetricError(op, name string, err error) *MetricError {
	return &MetricError{Op: op, Name: name, Err: err}
}
