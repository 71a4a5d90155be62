package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	registry := NewRegistry()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/notes/{obj_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	instrumented := Instrument(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/abc", nil)
	rec := httptest.NewRecorder()
	instrumented.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "registry_http_requests_total") {
		t.Errorf("expected request counter in exposition, got:\n%s", body[:min(len(body), 500)])
	}
	// The route pattern, not the concrete path, is the label.
	if !strings.Contains(body, "/api/v1/notes/{obj_id}") {
		t.Error("expected route pattern label in exposition")
	}
	if strings.Contains(body, "/api/v1/notes/abc") {
		t.Error("concrete path must not appear as a label")
	}
}

func TestInstrument_UnmatchedRoute(t *testing.T) {
	mux := http.NewServeMux()
	instrumented := Instrument(mux)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	instrumented.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
