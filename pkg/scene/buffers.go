package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-sky-compositor/pkg/core"
	"github.com/df07/go-sky-compositor/pkg/texture"
)

// Synthetic scene buffers standing in for a renderer's color output:
// linear RGB plus coverage alpha. Pixels untouched by "geometry" keep
// alpha 0 so the compositor fills them with sky.

// disc is a filled circle in normalized coordinates
type disc struct {
	cx, cy, radius float64 // In units of the buffer height
	color          core.Color
}

// NewDiscsBuffer creates a buffer with a few antialiased discs floating
// over empty sky. Disc edges carry fractional coverage, exercising the
// blend path.
func NewDiscsBuffer(width, height int) *texture.Texture {
	discs := []disc{
		{cx: 0.35, cy: 0.40, radius: 0.18, color: core.NewColor(0.60, 0.20, 0.15, 1)},
		{cx: 0.80, cy: 0.55, radius: 0.12, color: core.NewColor(0.15, 0.45, 0.20, 1)},
		{cx: 1.30, cy: 0.30, radius: 0.22, color: core.NewColor(0.70, 0.65, 0.25, 1)},
		{cx: 0.60, cy: 0.85, radius: 0.30, color: core.NewColor(0.30, 0.30, 0.35, 1)},
	}

	tex := texture.New(width, height)
	scale := float64(height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := (float64(x) + 0.5) / scale
			py := (float64(y) + 0.5) / scale

			// Nearest disc wins; coverage falls off linearly across one
			// pixel at the silhouette. A top-lit shade darkens each disc
			// toward its lower edge so the buffers read as lit geometry.
			var result core.Color
			for _, d := range discs {
				dist := math.Hypot(px-d.cx, py-d.cy) * scale
				coverage := max(0.0, min(1.0, d.radius*scale-dist+0.5))
				if coverage > result.A {
					shade := 1.0 - 0.35*max(0.0, (py-d.cy)/d.radius)
					shaded := d.color.MultiplyRGB(shade)
					result = core.NewColor(shaded.R, shaded.G, shaded.B, coverage)
				}
			}

			tex.Set(x, y, result)
		}
	}

	return tex
}

// NewBarsBuffer creates a buffer of gray vertical bars whose coverage
// sweeps from 0 on the left edge to 1 on the right, giving every
// coverage value a column to inspect
func NewBarsBuffer(width, height int) *texture.Texture {
	tex := texture.New(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			coverage := float64(x) / float64(width-1)
			tex.Set(x, y, core.NewColor(0.5, 0.5, 0.5, coverage))
		}
	}

	return tex
}

// NewSolidBuffer creates a fully covered buffer of a single color; the
// composite must pass it through untouched
func NewSolidBuffer(width, height int) *texture.Texture {
	tex := texture.New(width, height)
	c := core.NewColor(0.2, 0.3, 0.4, 1.0)

	for i := range tex.Pixels {
		tex.Pixels[i] = c
	}

	return tex
}

// NewEmptyBuffer creates a buffer with no coverage at all; the composite
// fills every pixel with sky
func NewEmptyBuffer(width, height int) *texture.Texture {
	return texture.New(width, height)
}

// builders maps scene names to buffer constructors
var builders = map[string]func(width, height int) *texture.Texture{
	"discs": NewDiscsBuffer,
	"bars":  NewBarsBuffer,
	"solid": NewSolidBuffer,
	"empty": NewEmptyBuffer,
}

// Create builds the named scene buffer at the given dimensions
func Create(name string, width, height int) (*texture.Texture, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s (available: %v)", name, Names())
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	return builder(width, height), nil
}

// Names returns the available scene names, sorted
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
