package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sky-compositor/pkg/compositor"
	"github.com/df07/go-sky-compositor/pkg/config"
	"github.com/df07/go-sky-compositor/pkg/core"
	"github.com/df07/go-sky-compositor/pkg/scene"
	"github.com/df07/go-sky-compositor/pkg/sky"
	"github.com/df07/go-sky-compositor/pkg/texture"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
)

// Server handles web requests for the sky compositor
type Server struct {
	port   int
	cfg    config.Config
	logger *zap.Logger
}

// NewServer creates a new web server
func NewServer(port int, cfg config.Config, logger *zap.Logger) *Server {
	return &Server{port: port, cfg: cfg, logger: logger}
}

// CompositeRequest represents a composite request from the client
type CompositeRequest struct {
	Scene     string  `json:"scene"`     // Scene buffer name (e.g., "discs")
	Width     int     `json:"width"`     // Output width
	Height    int     `json:"height"`    // Output height
	TileSize  int     `json:"tileSize"`  // Tile edge length
	TimeOfDay float64 `json:"timeOfDay"` // Settings field, accepted but unused by the blend
}

// Handler builds the route table. Responses are gzip-compressed where the
// client accepts it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/composite", s.handleComposite)
	mux.HandleFunc("/api/composite/stream", s.handleCompositeStream)
	return gzhttp.GzipHandler(mux)
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("Starting sky compositor server", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the available built-in scene buffers
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string][]string{"scenes": scene.Names()})
}

// handleComposite runs one fullscreen pass and returns the result as PNG
func (s *Server) handleComposite(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseCompositeRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	pass, tex, err := s.setupPass(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, stats, err := pass.Run(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Composite error: %v", err), http.StatusInternalServerError)
		return
	}

	coverage := compositor.AnalyzeCoverage(tex)
	s.logger.Info("Composite complete",
		zap.String("scene", req.Scene),
		zap.Int("width", req.Width),
		zap.Int("height", req.Height),
		zap.Duration("duration", stats.Duration),
		zap.Int("coveredPixels", coverage.CoveredPixels),
		zap.Int("blendedPixels", coverage.BlendedPixels),
		zap.Int("skyPixels", coverage.SkyPixels),
	)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode image: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// setupPass builds the scene buffer, shader and pass for a request
func (s *Server) setupPass(req *CompositeRequest) (*compositor.Pass, *texture.Texture, error) {
	tex, err := scene.Create(req.Scene, req.Width, req.Height)
	if err != nil {
		return nil, nil, err
	}

	settings := s.cfg.Sky.Settings()
	settings.TimeOfDay = req.TimeOfDay

	shader := sky.NewShader(tex)
	shader.Settings = settings

	passConfig := compositor.Config{
		TileSize:   req.TileSize,
		NumWorkers: s.cfg.Workers,
	}
	pass := compositor.NewPass(shader, req.Width, req.Height, passConfig, core.NewZapLogger(s.logger))
	return pass, tex, nil
}

// parseCompositeRequest parses request parameters
func (s *Server) parseCompositeRequest(r *http.Request) (*CompositeRequest, error) {
	req := &CompositeRequest{}

	if name := r.URL.Query().Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "discs" // Default scene
	}

	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", s.cfg.Width, 16, 4096); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", s.cfg.Height, 16, 4096); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(r.URL.Query(), "tileSize", s.cfg.TileSize, 8, 512); err != nil {
		return nil, err
	}
	if req.TimeOfDay, err = parseFloatParam(r.URL.Query(), "timeOfDay", s.cfg.Sky.TimeOfDay, 0.0, 1.0); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
