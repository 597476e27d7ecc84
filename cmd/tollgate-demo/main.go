package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tollgate-io/tollgate/internal/config"
	promdriver "github.com/tollgate-io/tollgate/internal/metrics/driver/prometheus"
	"github.com/tollgate-io/tollgate/internal/middleware"
	"github.com/tollgate-io/tollgate/internal/telemetry"
	"github.com/tollgate-io/tollgate/pkg/log"
)

var (
	configFile = flag.String("config", "", "Configuration file path")
	version    = flag.Bool("version", false, "Show version information")
)

const Version = "v0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("tollgate-demo %s\n", Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(&log.Config{
		Level:       parseLevel(cfg.Logging.Level),
		Development: cfg.Logging.Development,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", log.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger log.Logger) error {
	provider, err := promdriver.NewProvider(promdriver.Options{})
	if err != nil {
		return fmt.Errorf("failed to create metrics provider: %w", err)
	}

	tel, err := telemetry.Bootstrap(cfg, provider, logger)
	if err != nil {
		return fmt.Errorf("failed to bootstrap telemetry: %w", err)
	}
	defer tel.Close()

	instrument := middleware.NewTelemetryMiddleware(tel, cfg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/{orderId}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"order":%q}`, r.PathValue("orderId"))
	})
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"user":%q}`, r.PathValue("id"))
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      instrument.Handler()(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			log.String("address", cfg.Server.Address),
			log.String("metrics_path", cfg.Telemetry.MetricsPath),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", log.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
