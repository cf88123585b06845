package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/df07/go-sky-compositor/pkg/compositor"
	"go.uber.org/zap"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Current tile number (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the frame
}

// CompleteUpdate is sent once the whole frame has been composited
type CompleteUpdate struct {
	TotalPixels int   `json:"totalPixels"`
	Tiles       int   `json:"tiles"`
	Workers     int   `json:"workers"`
	ElapsedMs   int64 `json:"elapsedMs"`
}

// handleCompositeStream composites a frame and streams tiles to the client
// via SSE as they complete
func (s *Server) handleCompositeStream(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)

	req, err := s.parseCompositeRequest(r)
	if err != nil {
		sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	pass, _, err := s.setupPass(req)
	if err != nil {
		sendSSEEvent(w, "error", err.Error())
		return
	}

	startTime := time.Now()

	// Tile callbacks are dispatched from a single goroutine in completion
	// order, so writing to the response here needs no extra locking
	_, stats, err := pass.RunTiles(r.Context(), func(update compositor.TileUpdate) {
		imageData, encodeErr := imageToBase64PNG(update.Image)
		if encodeErr != nil {
			s.logger.Warn("Failed to encode tile", zap.Error(encodeErr))
			return
		}

		data, marshalErr := json.Marshal(TileUpdate{
			TileX:      update.TileX,
			TileY:      update.TileY,
			ImageData:  imageData,
			TileNumber: update.TileNumber,
			TotalTiles: update.TotalTiles,
		})
		if marshalErr != nil {
			s.logger.Warn("Failed to marshal tile update", zap.Error(marshalErr))
			return
		}

		sendSSEEvent(w, "tile", string(data))
	})
	if err != nil {
		sendSSEEvent(w, "error", fmt.Sprintf("Composite error: %v", err))
		return
	}

	data, err := json.Marshal(CompleteUpdate{
		TotalPixels: stats.TotalPixels,
		Tiles:       stats.Tiles,
		Workers:     stats.Workers,
		ElapsedMs:   time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		sendSSEEvent(w, "error", fmt.Sprintf("Failed to marshal stats: %v", err))
		return
	}
	sendSSEEvent(w, "complete", string(data))
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
