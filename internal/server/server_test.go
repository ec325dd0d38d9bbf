package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kartoza/rf-radar/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SamplesDir = t.TempDir()
	cfg.Version = "test"

	srv, err := New(*cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { srv.Stop() })
	return srv
}

func TestServesPage(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/some/client/route"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "Generate Radar Chart") {
			t.Errorf("%s: expected the page, got %d bytes", path, len(body))
		}
		if w.Header().Get(RequestIDHeader) == "" {
			t.Errorf("%s: expected a request id header", path)
		}
	}
}

func TestAPIMounted(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{"text": "1\t2\n3\t4", "triggered": true})
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.NewDecoder(w.Body).Decode(&response)
	if response["kind"] != "chart" {
		t.Errorf("Expected chart, got %v", response["kind"])
	}
}

func TestStopWithoutStart(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SamplesDir = t.TempDir()

	srv, err := New(*cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
