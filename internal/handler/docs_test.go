package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func newDocsRouter() *chi.Mux {
	h := NewDocsHandler()
	r := chi.NewRouter()
	creds := map[string]string{"admin": "secret"}
	r.With(chimiddleware.BasicAuth("docs", creds)).Get("/docs", h.OpenAPI)
	return r
}

func TestDocs_RequiresBasicAuth(t *testing.T) {
	router := newDocsRouter()

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without credentials, got %d", rec.Code)
	}
}

func TestDocs_RejectsWrongCredentials(t *testing.T) {
	router := newDocsRouter()

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	req.SetBasicAuth("admin", "wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 with bad credentials, got %d", rec.Code)
	}
}

func TestDocs_ServesOpenAPIDocument(t *testing.T) {
	router := newDocsRouter()

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var doc map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("embedded document is not valid JSON: %v", err)
	}

	if doc["openapi"] != "3.0.0" {
		t.Errorf("unexpected openapi version: %v", doc["openapi"])
	}

	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		t.Fatal("document has no paths object")
	}
	for _, p := range []string{"/api/v1/users", "/api/v1/users/add", "/api/v1/users/{id}"} {
		if _, ok := paths[p]; !ok {
			t.Errorf("document missing path %s", p)
		}
	}
}
