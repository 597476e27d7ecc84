package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Telemetry.MetricsPath != "/metrics" {
		t.Errorf("metrics path = %q, want /metrics", cfg.Telemetry.MetricsPath)
	}
	if cfg.Telemetry.DefaultMetricsInterval != 10*time.Second {
		t.Errorf("sampler interval = %s, want 10s", cfg.Telemetry.DefaultMetricsInterval)
	}
	if len(cfg.Telemetry.DurationBuckets) == 0 {
		t.Error("duration buckets must have defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
service:
  name: orders-api
  version: 2.1.0
server:
  address: ":9090"
telemetry:
  metrics_path: /internal/metrics
  base_path: /api
  default_metrics_interval: 30s
  prefix_metric_names: true
logging:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Service.Name != "orders-api" {
		t.Errorf("service name = %q, want orders-api", cfg.Service.Name)
	}
	if cfg.Service.Version != "2.1.0" {
		t.Errorf("service version = %q, want 2.1.0", cfg.Service.Version)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("server address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Telemetry.MetricsPath != "/internal/metrics" {
		t.Errorf("metrics path = %q, want /internal/metrics", cfg.Telemetry.MetricsPath)
	}
	if cfg.Telemetry.BasePath != "/api" {
		t.Errorf("base path = %q, want /api", cfg.Telemetry.BasePath)
	}
	if cfg.Telemetry.DefaultMetricsInterval != 30*time.Second {
		t.Errorf("sampler interval = %s, want 30s", cfg.Telemetry.DefaultMetricsInterval)
	}
	if !cfg.Telemetry.PrefixMetricNames {
		t.Error("prefix_metric_names not applied")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}

	// Unset fields keep their defaults.
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %s, want the default 10s", cfg.Server.ReadTimeout)
	}
	if len(cfg.Telemetry.DurationBuckets) == 0 {
		t.Error("duration buckets must keep their defaults")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TOLLGATE_SERVICE_NAME", "env-svc")
	t.Setenv("TOLLGATE_SERVICE_VERSION", "9.9.9")
	t.Setenv("TOLLGATE_METRICS_PATH", "/env/metrics")
	t.Setenv("TOLLGATE_DEFAULT_METRICS_INTERVAL", "5s")
	t.Setenv("TOLLGATE_PREFIX_METRIC_NAMES", "true")
	t.Setenv("TOLLGATE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Service.Name != "env-svc" {
		t.Errorf("service name = %q, want env-svc", cfg.Service.Name)
	}
	if cfg.Service.Version != "9.9.9" {
		t.Errorf("service version = %q, want 9.9.9", cfg.Service.Version)
	}
	if cfg.Telemetry.MetricsPath != "/env/metrics" {
		t.Errorf("metrics path = %q, want /env/metrics", cfg.Telemetry.MetricsPath)
	}
	if cfg.Telemetry.DefaultMetricsInterval != 5*time.Second {
		t.Errorf("sampler interval = %s, want 5s", cfg.Telemetry.DefaultMetricsInterval)
	}
	if !cfg.Telemetry.PrefixMetricNames {
		t.Error("prefix override not applied")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("telemetry: ["), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative metrics path", func(c *Config) { c.Telemetry.MetricsPath = "metrics" }},
		{"empty metrics path", func(c *Config) { c.Telemetry.MetricsPath = "" }},
		{"zero interval", func(c *Config) { c.Telemetry.DefaultMetricsInterval = 0 }},
		{"unsorted buckets", func(c *Config) { c.Telemetry.DurationBuckets = []float64{5, 1} }},
		{"empty buckets", func(c *Config) { c.Telemetry.ResponseSizeBuckets = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
