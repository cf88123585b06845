package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/df07/go-sky-compositor/pkg/config"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	cfg := config.Default()
	cfg.Width = 64
	cfg.Height = 48
	cfg.TileSize = 16
	return NewServer(0, cfg, zap.NewNop())
}

// TestHandleHealth tests the health check endpoint
func TestHandleHealth(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %q", body["status"])
	}
}

// TestHandleScenes tests the scene listing endpoint
func TestHandleScenes(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/scenes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	found := false
	for _, name := range body["scenes"] {
		if name == "discs" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'discs' in scene list, got %v", body["scenes"])
	}
}

// TestHandleComposite tests that the composite endpoint returns a valid PNG
// of the requested size
func TestHandleComposite(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/composite?scene=discs&width=80&height=60", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Failed to decode PNG response: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 60 {
		t.Errorf("Expected 80x60 image, got %v", img.Bounds())
	}

	// The top-left corner of the discs scene is empty sky: display-encoded
	// sky blue (0.341, 0.725, 1.0) at 8 bits is (87, 185, 255)
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 87 || g>>8 != 185 || b>>8 != 255 {
		t.Errorf("Expected sky color (87, 185, 255), got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

// TestHandleCompositePassThrough tests that a fully covered scene comes
// back unchanged in display encoding
func TestHandleCompositePassThrough(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/composite?scene=solid&width=32&height=32", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Failed to decode PNG response: %v", err)
	}

	// Every pixel should be the solid scene color, no sky contribution
	first := img.At(0, 0)
	last := img.At(31, 31)
	if first != last {
		t.Errorf("Expected uniform image, got %v and %v", first, last)
	}
}

// TestHandleCompositeInvalidParams tests parameter validation
func TestHandleCompositeInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"unknown scene", "/api/composite?scene=nonexistent"},
		{"width too small", "/api/composite?width=1"},
		{"width not a number", "/api/composite?width=banana"},
		{"time of day out of range", "/api/composite?timeOfDay=7.5"},
	}

	srv := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", tt.url, nil))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}

// TestHandleCompositeStream tests the SSE tile streaming endpoint
func TestHandleCompositeStream(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/api/composite/stream?width=32&height=32&tileSize=16", nil))

	body := rec.Body.String()
	if !bytes.Contains([]byte(body), []byte("event: tile")) {
		t.Errorf("Expected tile events in stream, got: %s", body)
	}
	if !bytes.Contains([]byte(body), []byte("event: complete")) {
		t.Errorf("Expected complete event in stream, got: %s", body)
	}
}
