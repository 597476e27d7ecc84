package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tollgate-io/tollgate/pkg/metrics"
)

// Config represents the complete configuration structure.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig identifies the instrumented service. Name and version feed
// the version gauge and the optional metric-name prefix.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ServerConfig represents HTTP server configuration for the demo binary.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// TelemetryConfig represents the instrumentation configuration. The snapshot
// is read once at bootstrap and never mutated afterwards.
type TelemetryConfig struct {
	// MetricsPath is the reserved path serving the registry snapshot.
	MetricsPath string `yaml:"metrics_path"`

	// BasePath is the mount prefix of the instrumented handler, prepended
	// to framework-resolved route patterns when set.
	BasePath string `yaml:"base_path"`

	// DefaultMetricsInterval is the period of the background process-level
	// metrics sampler.
	DefaultMetricsInterval time.Duration `yaml:"default_metrics_interval"`

	// Histogram bucket boundaries, one independent set per histogram.
	DurationBuckets     []float64 `yaml:"duration_buckets"`
	RequestSizeBuckets  []float64 `yaml:"request_size_buckets"`
	ResponseSizeBuckets []float64 `yaml:"response_size_buckets"`

	// PrefixMetricNames enables a service-name-derived prefix on every
	// metric name, for processes hosting several instrumented services on
	// one registry.
	PrefixMetricNames bool `yaml:"prefix_metric_names"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:    "tollgate",
			Version: "0.0.0",
		},
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Telemetry: TelemetryConfig{
			MetricsPath:            "/metrics",
			DefaultMetricsInterval: 10 * time.Second,
			DurationBuckets:        metrics.GetDefaultBuckets("duration"),
			RequestSizeBuckets:     metrics.GetDefaultBuckets("size"),
			ResponseSizeBuckets:    metrics.GetDefaultBuckets("size"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from an optional YAML file with environment
// variable overrides. An empty path yields the defaults.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Telemetry.MetricsPath == "" || c.Telemetry.MetricsPath[0] != '/' {
		return fmt.Errorf("telemetry.metrics_path must be an absolute path, got %q", c.Telemetry.MetricsPath)
	}
	if c.Telemetry.DefaultMetricsInterval <= 0 {
		return fmt.Errorf("telemetry.default_metrics_interval must be positive, got %s", c.Telemetry.DefaultMetricsInterval)
	}
	for name, buckets := range map[string][]float64{
		"duration_buckets":      c.Telemetry.DurationBuckets,
		"request_size_buckets":  c.Telemetry.RequestSizeBuckets,
		"response_size_buckets": c.Telemetry.ResponseSizeBuckets,
	} {
		if err := metrics.ValidateHistogramBuckets(buckets); err != nil {
			return fmt.Errorf("telemetry.%s: %w", name, err)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOLLGATE_SERVICE_NAME"); v != "" {
		cfg.Service.Name = v
	}
	if v := os.Getenv("TOLLGATE_SERVICE_VERSION"); v != "" {
		cfg.Service.Version = v
	}
	if v := os.Getenv("TOLLGATE_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("TOLLGATE_METRICS_PATH"); v != "" {
		cfg.Telemetry.MetricsPath = v
	}
	if v := os.Getenv("TOLLGATE_DEFAULT_METRICS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Telemetry.DefaultMetricsInterval = d
		}
	}
	if v := os.Getenv("TOLLGATE_PREFIX_METRIC_NAMES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Telemetry.PrefixMetricNames = b
		}
	}
	if v := os.Getenv("TOLLGATE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
