package core

import (
	"image/color"
	"math"
)

// DisplayGamma is the exponent of the power-law transform between
// display-encoded and linear color values.
const DisplayGamma = 2.2

// Color represents an RGBA color in linear space. RGB channels are
// radiometric values, nominally in [0,1]. Alpha carries scene coverage
// rather than transparency: 1 means the pixel is fully covered by
// geometry, values below 1 signal partial or absent coverage.
type Color struct {
	R, G, B, A float64
}

// NewColor creates a new Color
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Lerp returns the linear interpolation between c and other at parameter t,
// applied to all four channels: c*(1-t) + other*t
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R*(1-t) + other.R*t,
		G: c.G*(1-t) + other.G*t,
		B: c.B*(1-t) + other.B*t,
		A: c.A*(1-t) + other.A*t,
	}
}

// MultiplyRGB returns the color with RGB channels scaled by a scalar,
// leaving alpha untouched
func (c Color) MultiplyRGB(scalar float64) Color {
	return Color{R: c.R * scalar, G: c.G * scalar, B: c.B * scalar, A: c.A}
}

// Clamp returns a color with all channels clamped to [min, max]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
		A: max(minVal, min(maxVal, c.A)),
	}
}

// DisplayToLinear converts display-encoded RGB channels to linear space
// using the fixed power-law transform (value^2.2). Alpha is a coverage
// signal, not a color channel, and passes through unchanged.
func (c Color) DisplayToLinear() Color {
	return Color{
		R: math.Pow(c.R, DisplayGamma),
		G: math.Pow(c.G, DisplayGamma),
		B: math.Pow(c.B, DisplayGamma),
		A: c.A,
	}
}

// LinearToDisplay converts linear RGB channels back to display encoding
// (value^(1/2.2)). Alpha passes through unchanged.
func (c Color) LinearToDisplay() Color {
	invGamma := 1.0 / DisplayGamma
	return Color{
		R: math.Pow(c.R, invGamma),
		G: math.Pow(c.G, invGamma),
		B: math.Pow(c.B, invGamma),
		A: c.A,
	}
}

// Luminance returns the perceptual luminance of the RGB channels
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// ToRGBA converts a linear color to an 8-bit display-encoded color.RGBA
// with clamping, for writing into an image
func (c Color) ToRGBA() color.RGBA {
	d := c.LinearToDisplay().Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255*d.R + 0.5),
		G: uint8(255*d.G + 0.5),
		B: uint8(255*d.B + 0.5),
		A: uint8(255*d.A + 0.5),
	}
}

// Vec2 represents a 2D vector, used for UV coordinates
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}
