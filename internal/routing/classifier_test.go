package routing

import (
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		info       RouteInfo
		statusCode int
		wantLabel  string
		wantOK     bool
	}{
		{
			name: "alternate descriptor wins verbatim",
			info: RouteInfo{
				AltPattern: "/api/v2/users/:id",
				Pattern:    "/users/{id}",
				RawPath:    "/users/42",
			},
			statusCode: http.StatusOK,
			wantLabel:  "/api/v2/users/:id",
			wantOK:     true,
		},
		{
			name: "base path concatenated with pattern",
			info: RouteInfo{
				BasePath: "/api",
				Pattern:  "/users/:id",
				RawPath:  "/api/users/42",
			},
			statusCode: http.StatusOK,
			wantLabel:  "/api/users/:id",
			wantOK:     true,
		},
		{
			name: "root pattern dropped to avoid duplication",
			info: RouteInfo{
				BasePath: "/api",
				Pattern:  "/",
				RawPath:  "/api",
			},
			statusCode: http.StatusOK,
			wantLabel:  "/api",
			wantOK:     true,
		},
		{
			name: "base path alone",
			info: RouteInfo{
				BasePath: "/api",
				RawPath:  "/api",
			},
			statusCode: http.StatusOK,
			wantLabel:  "/api",
			wantOK:     true,
		},
		{
			name: "pattern preferred over raw path",
			info: RouteInfo{
				Pattern: "/users/{id}",
				RawPath: "/users/42",
			},
			statusCode: http.StatusOK,
			wantLabel:  "/users/{id}",
			wantOK:     true,
		},
		{
			name: "raw path fallback",
			info: RouteInfo{
				RawPath: "/ping",
			},
			statusCode: http.StatusOK,
			wantLabel:  "/ping",
			wantOK:     true,
		},
		{
			name: "param values replaced by placeholders",
			info: RouteInfo{
				RawPath: "/users/42",
				Params:  map[string]string{"id": "42"},
			},
			statusCode: http.StatusOK,
			wantLabel:  "/users/:id",
			wantOK:     true,
		},
		{
			name: "multiple params replaced",
			info: RouteInfo{
				RawPath: "/orgs/acme/repos/77",
				Params:  map[string]string{"org": "acme", "repo": "77"},
			},
			statusCode: http.StatusOK,
			wantLabel:  "/orgs/:org/repos/:repo",
			wantOK:     true,
		},
		{
			name: "empty param values ignored",
			info: RouteInfo{
				RawPath: "/users/42",
				Params:  map[string]string{"id": ""},
			},
			statusCode: http.StatusOK,
			wantLabel:  "/users/42",
			wantOK:     true,
		},
		{
			name: "unrouted 404 yields no label",
			info: RouteInfo{
				RawPath: "/no/such/route/982134",
			},
			statusCode: http.StatusNotFound,
			wantOK:     false,
		},
		{
			name: "unrouted 404 with base path still yields no label",
			info: RouteInfo{
				BasePath: "/api",
				RawPath:  "/api/no/such/route",
			},
			statusCode: http.StatusNotFound,
			wantOK:     false,
		},
		{
			name: "routed 404 keeps its pattern",
			info: RouteInfo{
				Pattern: "/users/{id}",
				RawPath: "/users/42",
			},
			statusCode: http.StatusNotFound,
			wantLabel:  "/users/{id}",
			wantOK:     true,
		},
		{
			name: "unrouted non-404 uses raw path verbatim",
			info: RouteInfo{
				RawPath: "/internal/probe",
			},
			statusCode: http.StatusServiceUnavailable,
			wantLabel:  "/internal/probe",
			wantOK:     true,
		},
		{
			name:       "no metadata at all yields no label",
			info:       RouteInfo{},
			statusCode: http.StatusOK,
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := Classify(tt.info, tt.statusCode)
			if ok != tt.wantOK {
				t.Fatalf("Classify() ok = %v, want %v (label %q)", ok, tt.wantOK, label)
			}
			if ok && label != tt.wantLabel {
				t.Errorf("Classify() label = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}
