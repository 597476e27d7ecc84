package routing

import (
	"net/http"

	"github.com/gorilla/mux"
)

// gorillaExtractor handles the gorilla/mux convention: the matched route is
// recoverable from the request and exposes its path template and variables.
type gorillaExtractor struct{}

func (gorillaExtractor) Name() string { return "gorilla" }

func (gorillaExtractor) Extract(r *http.Request) (RouteInfo, bool) {
	route := mux.CurrentRoute(r)
	if route == nil {
		return RouteInfo{}, false
	}

	pattern, err := route.GetPathTemplate()
	if err != nil || pattern == "" {
		return RouteInfo{}, false
	}

	return RouteInfo{
		Pattern: pattern,
		RawPath: r.URL.Path,
		Params:  mux.Vars(r),
	}, true
}
