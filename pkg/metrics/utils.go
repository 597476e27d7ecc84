package metrics

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	metricNameRegex = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)
	labelNameRegex  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Reserved label names that should not be used.
var reservedLabelNames = map[string]bool{
	"__name__": true,
	"job":      true,
	"instance": true,
}

// ValidateMetricName validates a metric name according to Prometheus conventions.
func ValidateMetricName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: metric name cannot be empty", ErrInvalidName)
	}

	if !metricNameRegex.MatchString(name) {
		return fmt.Errorf("%w: metric name '%s' is invalid", ErrInvalidName, name)
	}

	return nil
}

// ValidateLabelName validates a label name according to Prometheus conventions.
func ValidateLabelName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: label name cannot be empty", ErrInvalidLabel)
	}

	if !labelNameRegex.MatchString(name) {
		return fmt.Errorf("%w: label name '%s' is invalid", ErrInvalidLabel, name)
	}

	if reservedLabelNames[name] {
		return fmt.Errorf("%w: label name '%s' is reserved", ErrInvalidLabel, name)
	}

	return nil
}

// ValidateLabelNames validates multiple label names.
func ValidateLabelNames(names []string) error {
	seen := make(map[string]bool)
	for _, name := range names {
		if err := ValidateLabelName(name); err != nil {
			return err
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate label name '%s'", ErrInvalidLabel, name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateHistogramBuckets validates histogram buckets.
func ValidateHistogramBuckets(buckets []float64) error {
	if len(buckets) == 0 {
		return fmt.Errorf("%w: buckets cannot be empty", ErrInvalidBuckets)
	}

	for i, bucket := range buckets {
		if i > 0 && bucket <= buckets[i-1] {
			return fmt.Errorf("%w: buckets must be sorted in increasing order", ErrInvalidBuckets)
		}
	}

	return nil
}

// BuildFQName builds a fully qualified metric name from its parts.
func BuildFQName(namespace, subsystem, name string) string {
	parts := make([]string, 0, 3)
	if namespace != "" {
		parts = append(parts, namespace)
	}
	if subsystem != "" {
		parts = append(parts, subsystem)
	}
	if name != "" {
		parts = append(parts, name)
	}

	return strings.Join(parts, "_")
}

// SanitizeMetricName replaces every character that is not valid in a metric
// name with an underscore, yielding a name safe to use as a per-service prefix.
func SanitizeMetricName(name string) string {
	result := strings.Builder{}
	for i, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == ':':
			result.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				result.WriteRune('_')
			} else {
				result.WriteRune(r)
			}
		default:
			result.WriteRune('_')
		}
	}
	return result.String()
}

// MergeLabelMaps merges multiple label maps, with later maps taking precedence.
func MergeLabelMaps(maps ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}
