package routing

import (
	"net/http"
	"strings"
)

// Extractor probes a completed request for one host-framework routing
// convention and reports the metadata it found. Implementations never
// mutate the request.
type Extractor interface {
	// Name identifies the convention, for logging.
	Name() string

	// Extract returns the routing metadata this convention exposes, and
	// whether the convention applies to the request at all.
	Extract(r *http.Request) (RouteInfo, bool)
}

// DefaultExtractors returns the supported framework conventions in probe
// order. The explicit context annotation wins, then chi, then gorilla/mux,
// then the net/http ServeMux pattern.
func DefaultExtractors() []Extractor {
	return []Extractor{
		contextExtractor{},
		chiExtractor{},
		gorillaExtractor{},
		stdlibExtractor{},
	}
}

// Extract runs the extractors in order and returns the first match. When no
// convention applies, the returned RouteInfo carries only the raw path.
func Extract(r *http.Request, extractors []Extractor) RouteInfo {
	for _, e := range extractors {
		if info, ok := e.Extract(r); ok {
			if info.RawPath == "" {
				info.RawPath = r.URL.Path
			}
			return info
		}
	}
	return RouteInfo{RawPath: r.URL.Path}
}

// contextExtractor handles the explicit per-request route annotation set
// via WithRoute. It maps to the alternate routing descriptor and therefore
// takes precedence over framework-resolved patterns.
type contextExtractor struct{}

func (contextExtractor) Name() string { return "context" }

func (contextExtractor) Extract(r *http.Request) (RouteInfo, bool) {
	pattern, ok := RouteFromContext(r.Context())
	if !ok {
		return RouteInfo{}, false
	}
	return RouteInfo{AltPattern: pattern, RawPath: r.URL.Path}, true
}

// stdlibExtractor handles the net/http ServeMux convention (Go 1.22+):
// r.Pattern holds "[METHOD ][host]/path/{param}" and parameter values are
// answered by r.PathValue.
type stdlibExtractor struct{}

func (stdlibExtractor) Name() string { return "stdlib" }

func (stdlibExtractor) Extract(r *http.Request) (RouteInfo, bool) {
	pattern := r.Pattern
	if pattern == "" {
		return RouteInfo{}, false
	}

	// Strip the optional method and host prefixes down to the path part.
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		pattern = pattern[i+1:]
	}
	if i := strings.IndexByte(pattern, '/'); i > 0 {
		pattern = pattern[i:]
	}

	return RouteInfo{
		Pattern: pattern,
		RawPath: r.URL.Path,
		Params:  stdlibParams(pattern, r),
	}, true
}

// stdlibParams resolves the {name} segments of a ServeMux pattern to their
// concrete values.
func stdlibParams(pattern string, r *http.Request) map[string]string {
	var params map[string]string
	for _, segment := range strings.Split(pattern, "/") {
		if len(segment) < 2 || segment[0] != '{' || segment[len(segment)-1] != '}' {
			continue
		}
		name := strings.TrimSuffix(segment[1:len(segment)-1], "...")
		if name == "" || name == "$" {
			continue
		}
		if value := r.PathValue(name); value != "" {
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = value
		}
	}
	return params
}
