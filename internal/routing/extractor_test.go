package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/gorilla/mux"
)

func TestContextExtractor(t *testing.T) {
	req := httptest.NewRequest("GET", "/users/42", nil)
	req = req.WithContext(WithRoute(req.Context(), "/custom/:id"))

	info, ok := contextExtractor{}.Extract(req)
	if !ok {
		t.Fatal("expected context extractor to apply")
	}
	if info.AltPattern != "/custom/:id" {
		t.Errorf("AltPattern = %q, want %q", info.AltPattern, "/custom/:id")
	}

	// Without the annotation the convention does not apply.
	if _, ok := (contextExtractor{}).Extract(httptest.NewRequest("GET", "/users/42", nil)); ok {
		t.Error("expected context extractor to not apply without annotation")
	}
}

func TestChiExtractor(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.RoutePatterns = []string{"/users/{id}"}
	rctx.URLParams.Add("id", "42")

	req := httptest.NewRequest("GET", "/users/42", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	info, ok := chiExtractor{}.Extract(req)
	if !ok {
		t.Fatal("expected chi extractor to apply")
	}
	if info.Pattern != "/users/{id}" {
		t.Errorf("Pattern = %q, want %q", info.Pattern, "/users/{id}")
	}
	if info.Params["id"] != "42" {
		t.Errorf("Params[id] = %q, want %q", info.Params["id"], "42")
	}

	if _, ok := (chiExtractor{}).Extract(httptest.NewRequest("GET", "/users/42", nil)); ok {
		t.Error("expected chi extractor to not apply without route context")
	}
}

func TestGorillaExtractor(t *testing.T) {
	var got RouteInfo
	var applied bool

	router := mux.NewRouter()
	router.HandleFunc("/orders/{orderId}", func(w http.ResponseWriter, r *http.Request) {
		got, applied = gorillaExtractor{}.Extract(r)
	})

	req := httptest.NewRequest("GET", "/orders/abc123", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if !applied {
		t.Fatal("expected gorilla extractor to apply")
	}
	if got.Pattern != "/orders/{orderId}" {
		t.Errorf("Pattern = %q, want %q", got.Pattern, "/orders/{orderId}")
	}
	if got.Params["orderId"] != "abc123" {
		t.Errorf("Params[orderId] = %q, want %q", got.Params["orderId"], "abc123")
	}
}

func TestStdlibExtractor(t *testing.T) {
	var got RouteInfo
	var applied bool

	m := http.NewServeMux()
	m.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, applied = stdlibExtractor{}.Extract(r)
	})

	req := httptest.NewRequest("GET", "/users/42", nil)
	m.ServeHTTP(httptest.NewRecorder(), req)

	if !applied {
		t.Fatal("expected stdlib extractor to apply")
	}
	if got.Pattern != "/users/{id}" {
		t.Errorf("Pattern = %q, want %q", got.Pattern, "/users/{id}")
	}
	if got.Params["id"] != "42" {
		t.Errorf("Params[id] = %q, want %q", got.Params["id"], "42")
	}
}

func TestExtractFallsBackToRawPath(t *testing.T) {
	req := httptest.NewRequest("GET", "/plain/path", nil)

	info := Extract(req, DefaultExtractors())
	if info.Pattern != "" || info.AltPattern != "" {
		t.Errorf("expected no pattern, got %+v", info)
	}
	if info.RawPath != "/plain/path" {
		t.Errorf("RawPath = %q, want %q", info.RawPath, "/plain/path")
	}
}

func TestExtractPrecedence(t *testing.T) {
	// The explicit annotation wins even when a framework resolved a route.
	rctx := chi.NewRouteContext()
	rctx.RoutePatterns = []string{"/users/{id}"}

	req := httptest.NewRequest("GET", "/users/42", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	req = req.WithContext(WithRoute(ctx, "/annotated/:id"))

	info := Extract(req, DefaultExtractors())
	if info.AltPattern != "/annotated/:id" {
		t.Errorf("AltPattern = %q, want %q", info.AltPattern, "/annotated/:id")
	}
}
