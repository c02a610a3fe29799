package api

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/storage"
)

func setupTestAPIServer(t *testing.T) *http.ServeMux {
	t.Helper()

	store, err := storage.OpenDocumentStore(filepath.Join(t.TempDir(), "hookvault.db"), "hookvault")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close store: %v", err)
		}
	})

	docs := []storage.Document{
		{Body: map[string]any{
			"category": "personal_info", "subcategory": "age", "hook": "Nobody tells you this at 30",
			"generated_at": "2024-02-01T10:00:00Z", "model": "internal field",
		}},
		{Body: map[string]any{
			"category": "money", "subcategory": "saving", "hook": "I saved $10k doing this",
		}},
	}
	if _, err := store.InsertDocuments(context.Background(), docs); err != nil {
		t.Fatalf("Failed to insert documents: %v", err)
	}

	mux := http.NewServeMux()
	NewServer(store).RegisterRoutes(mux)
	return mux
}

func failingMux(err error) *http.ServeMux {
	gateway := core.GatewayFunc(func(ctx context.Context) ([]core.Hook, error) {
		return nil, core.DataUnavailable(err)
	})
	mux := http.NewServeMux()
	NewServer(gateway).RegisterRoutes(mux)
	return mux
}

func TestAPIListHooks(t *testing.T) {
	mux := setupTestAPIServer(t)

	req := httptest.NewRequest("GET", "/api/test", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if contentType := w.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", contentType)
	}

	var raw []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("Expected 2 hooks, got %d", len(raw))
	}

	first := raw[0]
	if len(first) != 4 {
		t.Errorf("Expected exactly 4 fields, got %v", first)
	}
	if first["hook"] != "Nobody tells you this at 30" || first["generated_at"] != "2024-02-01T10:00:00Z" {
		t.Errorf("Unexpected first hook: %v", first)
	}
	if _, ok := first["model"]; ok {
		t.Errorf("Extra stored fields must be dropped: %v", first)
	}

	second := raw[1]
	if v, ok := second["generated_at"]; !ok || v != nil {
		t.Errorf("Expected generated_at null, got %v (present=%v)", v, ok)
	}
}

func TestAPIListHooksIgnoresQueryParameters(t *testing.T) {
	mux := setupTestAPIServer(t)

	req := httptest.NewRequest("GET", "/api/test?category=money&page=2&limit=1", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var hooks []core.Hook
	if err := json.Unmarshal(w.Body.Bytes(), &hooks); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(hooks) != 2 {
		t.Errorf("Expected all hooks regardless of query, got %d", len(hooks))
	}
}

func TestAPIListHooksEmptyCollection(t *testing.T) {
	store, err := storage.OpenDocumentStore(filepath.Join(t.TempDir(), "empty.db"), "hookvault")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	mux := http.NewServeMux()
	NewServer(store).RegisterRoutes(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/test", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestAPIListHooksStoreFailure(t *testing.T) {
	mux := failingMux(errors.New("connection refused"))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/test", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if !strings.Contains(resp.Error, "connection refused") {
		t.Errorf("Expected store message in error, got %q", resp.Error)
	}
}

func TestAPIHealth(t *testing.T) {
	mux := setupTestAPIServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var health HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode health: %v", err)
	}
	if health.Status != "ok" || health.Version == "" {
		t.Errorf("Unexpected health response: %+v", health)
	}
}

func TestAPIMethodNotAllowed(t *testing.T) {
	mux := setupTestAPIServer(t)

	for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
		for _, endpoint := range []string{"/api/test", "/health"} {
			t.Run(method+"_"+endpoint, func(t *testing.T) {
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, httptest.NewRequest(method, endpoint, nil))

				if w.Code != http.StatusMethodNotAllowed {
					t.Errorf("Expected status 405 for %s %s, got %d", method, endpoint, w.Code)
				}
			})
		}
	}
}

func TestAPIInvalidPaths(t *testing.T) {
	mux := setupTestAPIServer(t)

	for _, path := range []string{"/api/nonexistent", "/api/test/1", "/nonexistent"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

			if w.Code != http.StatusNotFound {
				t.Errorf("Expected status 404 for %s, got %d", path, w.Code)
			}
		})
	}
}

func TestCorsMiddleware(t *testing.T) {
	handler := CorsMiddleware(setupTestAPIServer(t))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/api/test", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected preflight 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Missing CORS header")
	}
}

func TestCompressMiddleware(t *testing.T) {
	handler := CompressMiddleware(setupTestAPIServer(t))

	req := httptest.NewRequest("GET", "/api/test", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.Bytes()
	if w.Header().Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(w.Body)
		if err != nil {
			t.Fatalf("Invalid gzip body: %v", err)
		}
		body, err = io.ReadAll(zr)
		if err != nil {
			t.Fatalf("Reading gzip body: %v", err)
		}
	}

	var hooks []core.Hook
	if err := json.Unmarshal(body, &hooks); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(hooks) != 2 {
		t.Errorf("Expected 2 hooks, got %d", len(hooks))
	}
}
