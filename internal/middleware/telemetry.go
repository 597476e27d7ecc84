// Package middleware provides the request-lifecycle instrumentation hook
// and the metrics exposition endpoint.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tollgate-io/tollgate/internal/config"
	"github.com/tollgate-io/tollgate/internal/routing"
	"github.com/tollgate-io/tollgate/internal/telemetry"
	"github.com/tollgate-io/tollgate/pkg/log"
)

// TelemetryMiddleware wraps every inbound request/response cycle: requests
// to the metrics path are short-circuited to the exposition handler, all
// other requests are timed and recorded against their classified route on
// completion.
type TelemetryMiddleware struct {
	telemetry  *telemetry.Telemetry
	exposition *ExpositionHandler
	basePath   string
	extractors []routing.Extractor
	logger     log.Logger
}

// NewTelemetryMiddleware creates the instrumentation hook for the given
// telemetry state and configuration snapshot.
func NewTelemetryMiddleware(t *telemetry.Telemetry, cfg *config.Config, logger log.Logger) *TelemetryMiddleware {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.NewNop()
	}

	return &TelemetryMiddleware{
		telemetry:  t,
		exposition: NewExpositionHandler(t.Provider(), cfg.Telemetry.MetricsPath, logger),
		basePath:   cfg.Telemetry.BasePath,
		extractors: routing.DefaultExtractors(),
		logger:     logger,
	}
}

// Exposition returns the metrics endpoint handler, for hosts that want to
// mount it on a separate server instead of the short-circuit path.
func (m *TelemetryMiddleware) Exposition() *ExpositionHandler {
	return m.exposition
}

// Handler returns the HTTP middleware handler.
func (m *TelemetryMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Metrics requests serve the snapshot and observe nothing.
			if m.exposition.Matches(r.URL.Path) {
				m.exposition.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			requestSize := parseSize(r.Header.Get("Content-Length"))

			wrapper := &responseWrapper{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			// The completion path runs via defer so it fires exactly once
			// even when the downstream handler panics; the panic is then
			// re-raised untouched.
			defer func() {
				rec := recover()

				status := wrapper.statusCode
				if rec != nil && !wrapper.wroteHeader {
					status = http.StatusInternalServerError
				}

				info := routing.Extract(r, m.extractors)
				if info.BasePath == "" {
					info.BasePath = m.basePath
				}

				m.record(r.Method, status, info, requestSize, wrapper.size(), time.Since(start))

				if rec != nil {
					panic(rec)
				}
			}()

			next.ServeHTTP(wrapper, r)
		})
	}
}

// record classifies the request and observes the three histograms plus the
// request counter. Each observation is isolated: one failing never prevents
// the others, and none can fail the host request.
func (m *TelemetryMiddleware) record(method string, status int, info routing.RouteInfo, requestSize, responseSize float64, elapsed time.Duration) {
	route, ok := routing.Classify(info, status)
	if !ok {
		m.logger.Debug("skipping telemetry for unroutable request",
			log.String("method", method),
			log.Int("status", status),
		)
		return
	}

	code := strconv.Itoa(status)

	m.observe("requests_total", func() {
		m.telemetry.RequestsTotal.WithLabelValues(method, route, code).Inc()
	})
	m.observe("request_size", func() {
		m.telemetry.RequestSize.WithLabelValues(method, route, code).Observe(requestSize)
	})
	m.observe("request_duration", func() {
		m.telemetry.Duration.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
	})
	m.observe("response_size", func() {
		m.telemetry.ResponseSize.WithLabelValues(method, route, code).Observe(responseSize)
	})
}

// observe runs a single metric observation, containing any panic so that
// telemetry can never crash the host request or starve sibling observations.
func (m *TelemetryMiddleware) observe(name string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Warn("metric observation failed",
				log.String("metric", name),
				log.String("panic", toString(rec)),
			)
		}
	}()
	fn()
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "unknown panic"
}

// parseSize parses a Content-Length style header value. Missing, malformed
// or negative values count as 0.
func parseSize(header string) float64 {
	if header == "" {
		return 0
	}
	size, err := strconv.ParseInt(header, 10, 64)
	if err != nil || size < 0 {
		return 0
	}
	return float64(size)
}

// responseWrapper wraps http.ResponseWriter to capture the final status
// code and the response size.
type responseWrapper struct {
	http.ResponseWriter
	statusCode  int
	written     int64
	wroteHeader bool
}

func (rw *responseWrapper) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// size returns the declared Content-Length of the response when present and
// valid, falling back to the bytes actually written.
func (rw *responseWrapper) size() float64 {
	if header := rw.Header().Get("Content-Length"); header != "" {
		if declared := parseSize(header); declared > 0 {
			return declared
		}
	}
	return float64(rw.written)
}
