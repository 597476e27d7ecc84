package routing

import (
	"net/http"

	"github.com/go-chi/chi"
)

// chiExtractor handles the go-chi convention: the router leaves a route
// context carrying the matched pattern and the resolved URL parameters.
type chiExtractor struct{}

func (chiExtractor) Name() string { return "chi" }

func (chiExtractor) Extract(r *http.Request) (RouteInfo, bool) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return RouteInfo{}, false
	}

	pattern := rctx.RoutePattern()
	if pattern == "" {
		return RouteInfo{}, false
	}

	var params map[string]string
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[key] = rctx.URLParams.Values[i]
	}

	return RouteInfo{
		Pattern: pattern,
		RawPath: r.URL.Path,
		Params:  params,
	}, true
}
