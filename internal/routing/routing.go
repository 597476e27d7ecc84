// Package routing derives a stable, low-cardinality route label from the
// routing metadata a host framework leaves on a completed request.
package routing

import "context"

// RouteInfo carries the routing metadata of a completed request. Fields are
// read-only hints; an empty string means the hint is absent.
type RouteInfo struct {
	// BasePath is the mount prefix the instrumented handler is attached
	// under, when the host application mounts it below the root.
	BasePath string

	// Pattern is the matched route pattern resolved by the host framework,
	// e.g. "/users/:id" or "/users/{id}".
	Pattern string

	// AltPattern is a route pattern supplied by an alternate routing
	// descriptor (an explicit per-request annotation). It wins over every
	// other hint when present.
	AltPattern string

	// RawPath is the concrete request path as received on the wire.
	RawPath string

	// Params maps resolved path-parameter names to their concrete values.
	Params map[string]string
}

type routeKey struct{}

// WithRoute returns a context annotated with an explicit route pattern for
// the current request. The annotation takes precedence over any pattern the
// host framework resolved.
func WithRoute(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, routeKey{}, pattern)
}

// RouteFromContext returns the explicit route annotation, if any.
func RouteFromContext(ctx context.Context) (string, bool) {
	pattern, ok := ctx.Value(routeKey{}).(string)
	return pattern, ok && pattern != ""
}
