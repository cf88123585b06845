package compositor

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sky-compositor/pkg/core"
)

// Config contains configuration for a fullscreen pass
type Config struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Pass runs a fragment once per output pixel across the whole frame,
// the way a fullscreen-triangle draw invokes a fragment shader. Pixels
// are processed in tiles by a worker pool; invocations never communicate
// and have no ordering dependency, so tiles can run in any order on any
// worker.
type Pass struct {
	fragment    core.Fragment
	width       int
	height      int
	config      Config
	logger      core.Logger
	framebuffer []core.Color // Row-major linear output, written tile-by-tile
}

// NewPass creates a fullscreen pass over the given fragment
func NewPass(fragment core.Fragment, width, height int, config Config, logger core.Logger) *Pass {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &Pass{
		fragment:    fragment,
		width:       width,
		height:      height,
		config:      config,
		logger:      logger,
		framebuffer: make([]core.Color, width*height),
	}
}

// PassStats summarizes one completed pass
type PassStats struct {
	TotalPixels int
	Tiles       int
	Workers     int
	Duration    time.Duration
}

// TileUpdate describes a completed tile, for streaming consumers
type TileUpdate struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	Bounds     image.Rectangle
	Image      *image.RGBA // Display-encoded image data for just this tile
	TileNumber int         // Current tile number in this pass (1-based)
	TotalTiles int         // Total number of tiles in the frame
}

// Run executes the pass across the whole frame and returns the assembled
// display-encoded image
func (p *Pass) Run(ctx context.Context) (*image.RGBA, PassStats, error) {
	return p.RunTiles(ctx, nil)
}

// RunTiles executes the pass and additionally invokes tileCallback as each
// tile completes. Callbacks are dispatched from a single goroutine in
// completion order, so the callback needs no locking of its own.
func (p *Pass) RunTiles(ctx context.Context, tileCallback func(TileUpdate)) (*image.RGBA, PassStats, error) {
	startTime := time.Now()

	tiles := NewTileGrid(p.width, p.height, p.config.TileSize)
	pool := NewWorkerPool(p, len(tiles), p.config.NumWorkers)
	pool.Start()
	defer pool.Stop()

	p.logger.Printf("Compositing %dx%d frame: %d tiles on %d workers\n",
		p.width, p.height, len(tiles), pool.GetNumWorkers())

	// Submit all tiles as tasks. The task queue is buffered for every tile,
	// so submission never blocks.
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	// Wait for all tiles to complete, dispatching tile callbacks from this
	// single goroutine
	for i := 0; i < len(tiles); i++ {
		select {
		case <-ctx.Done():
			p.logger.Printf("Compositing cancelled after %d of %d tiles\n", i, len(tiles))
			return nil, PassStats{}, ctx.Err()
		case result, ok := <-pool.resultQueue:
			if !ok {
				return nil, PassStats{}, fmt.Errorf("worker pool closed unexpectedly")
			}
			if result.Err != nil {
				return nil, PassStats{}, result.Err
			}

			if tileCallback != nil {
				tile := tiles[result.TaskID]
				tileCallback(TileUpdate{
					TileX:      tile.Bounds.Min.X / p.config.TileSize,
					TileY:      tile.Bounds.Min.Y / p.config.TileSize,
					Bounds:     tile.Bounds,
					Image:      p.extractTileImage(tile),
					TileNumber: i + 1,
					TotalTiles: len(tiles),
				})
			}
		}
	}

	stats := PassStats{
		TotalPixels: p.width * p.height,
		Tiles:       len(tiles),
		Workers:     pool.GetNumWorkers(),
		Duration:    time.Since(startTime),
	}

	return p.Image(), stats, nil
}

// renderTile invokes the fragment for every pixel within bounds, writing
// into the shared framebuffer. Tiles never overlap, so concurrent tile
// writes are race-free.
func (p *Pass) renderTile(bounds image.Rectangle) {
	invWidth := 1.0 / float64(p.width)
	invHeight := 1.0 / float64(p.height)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			// UV at the pixel center, matching fragment-stage conventions
			uv := core.NewVec2((float64(i)+0.5)*invWidth, (float64(j)+0.5)*invHeight)
			p.framebuffer[j*p.width+i] = p.fragment.Fragment(uv)
		}
	}
}

// Framebuffer returns the raw linear-space output of the last run.
// The slice is row-major, width*height long.
func (p *Pass) Framebuffer() []core.Color {
	return p.framebuffer
}

// Image assembles the framebuffer into a display-encoded 8-bit image
func (p *Pass) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			img.SetRGBA(x, y, p.framebuffer[y*p.width+x].ToRGBA())
		}
	}
	return img
}

// extractTileImage copies one tile's pixels out of the framebuffer
func (p *Pass) extractTileImage(tile *Tile) *image.RGBA {
	bounds := tile.Bounds
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixelColor := p.framebuffer[y*p.width+x].ToRGBA()
			tileImage.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, pixelColor)
		}
	}

	return tileImage
}

// Tile represents a rectangular region of the frame to be composited
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire frame
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed frame bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}
