package texture

import (
	"github.com/df07/go-sky-compositor/pkg/core"
)

// Texture holds a 2D buffer of linear-space colors, row-major.
// For a compositing pass this is the rendered scene's color output:
// RGB in linear space, alpha carrying scene coverage.
type Texture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
}

// New creates an empty texture of the given dimensions
func New(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the texel at pixel coordinates, clamped to the texture bounds
func (t *Texture) At(x, y int) core.Color {
	if x < 0 {
		x = 0
	}
	if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

// Set writes the texel at pixel coordinates. Out-of-bounds writes are ignored.
func (t *Texture) Set(x, y int, c core.Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}
