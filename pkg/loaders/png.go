package loaders

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-sky-compositor/pkg/core"
	"github.com/df07/go-sky-compositor/pkg/texture"
)

// Options controls how an image file is interpreted as a scene buffer
type Options struct {
	// DisplayEncoded converts RGB from display encoding to linear space
	// (value^2.2) on load. Set it for ordinary PNGs saved in display
	// space; leave it off for buffers already stored linear.
	DisplayEncoded bool
}

// LoadTexture loads a PNG or JPEG image as a scene buffer. RGB becomes the
// sampled color, alpha becomes the coverage signal. Colors are read
// non-premultiplied so partially covered pixels keep their own RGB.
func LoadTexture(filename string, opts Options) (*texture.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	tex := texture.New(bounds.Dx(), bounds.Dy())

	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			// NRGBA64 keeps 16-bit channels and undoes alpha premultiplication
			c := color.NRGBA64Model.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA64)
			pixel := core.NewColor(
				float64(c.R)/65535.0,
				float64(c.G)/65535.0,
				float64(c.B)/65535.0,
				float64(c.A)/65535.0,
			)
			if opts.DisplayEncoded {
				pixel = pixel.DisplayToLinear()
			}
			tex.Set(x, y, pixel)
		}
	}

	return tex, nil
}
