package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/tollgate-io/tollgate/pkg/log"
	"github.com/tollgate-io/tollgate/pkg/metrics"
)

// ExpositionHandler serves the aggregated registry snapshot. The configured
// metrics path answers with the text exposition format; the same path with a
// literal ".json" suffix answers with a structured array of metric families.
type ExpositionHandler struct {
	provider metrics.Provider
	textPath string
	jsonPath string
	logger   log.Logger
}

// NewExpositionHandler creates the metrics endpoint handler for the given
// metrics path.
func NewExpositionHandler(provider metrics.Provider, metricsPath string, logger log.Logger) *ExpositionHandler {
	if logger == nil {
		logger = log.NewNop()
	}
	return &ExpositionHandler{
		provider: provider,
		textPath: metricsPath,
		jsonPath: metricsPath + ".json",
		logger:   logger,
	}
}

// Matches reports whether the handler owns the given request path. Only the
// two exact paths match; everything else belongs to the host service.
func (h *ExpositionHandler) Matches(path string) bool {
	return path == h.textPath || path == h.jsonPath
}

// ServeHTTP serves the snapshot in the format the path asks for.
func (h *ExpositionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case h.textPath:
		h.provider.Handler().ServeHTTP(w, r)
	case h.jsonPath:
		h.serveJSON(w)
	default:
		http.NotFound(w, r)
	}
}

func (h *ExpositionHandler) serveJSON(w http.ResponseWriter) {
	families, err := h.provider.Gather()
	if err != nil {
		h.logger.Error("failed to gather metrics", log.Error(err))
		http.Error(w, "failed to gather metrics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(families); err != nil {
		h.logger.Error("failed to encode metrics snapshot", log.Error(err))
	}
}
