package core

import (
	"math"
	"testing"
)

func TestColorLerp(t *testing.T) {
	a := NewColor(0.0, 0.2, 1.0, 1.0)
	b := NewColor(1.0, 0.8, 0.0, 0.0)

	tests := []struct {
		name     string
		t        float64
		expected Color
	}{
		{"t=0 returns first color", 0.0, a},
		{"t=1 returns second color", 1.0, b},
		{"t=0.5 returns midpoint", 0.5, NewColor(0.5, 0.5, 0.5, 0.5)},
		{"t=0.25 interpolates all channels", 0.25, NewColor(0.25, 0.35, 0.75, 0.75)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Lerp(b, tt.t)
			if !colorsAlmostEqual(result, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestDisplayToLinear(t *testing.T) {
	// Reference values for the sky base color channels
	tests := []struct {
		display  float64
		expected float64
	}{
		{0.341, 0.08948},
		{0.725, 0.47838},
		{1.0, 1.0},
		{0.0, 0.0},
	}

	for _, tt := range tests {
		c := NewColor(tt.display, tt.display, tt.display, 0.5)
		result := c.DisplayToLinear()
		if math.Abs(result.R-tt.expected) > 1e-4 {
			t.Errorf("DisplayToLinear(%v): expected %v, got %v", tt.display, tt.expected, result.R)
		}
		// Alpha is coverage, not color; it must not be gamma-transformed
		if result.A != 0.5 {
			t.Errorf("Expected alpha unchanged at 0.5, got %v", result.A)
		}
	}
}

func TestLinearToDisplayRoundTrip(t *testing.T) {
	c := NewColor(0.341, 0.725, 1.0, 1.0)
	result := c.DisplayToLinear().LinearToDisplay()
	if !colorsAlmostEqual(result, c, 1e-9) {
		t.Errorf("Expected round trip to return %v, got %v", c, result)
	}
}

func TestColorMultiplyRGB(t *testing.T) {
	c := NewColor(0.2, 0.4, 0.8, 0.5)
	result := c.MultiplyRGB(0.5)
	expected := NewColor(0.1, 0.2, 0.4, 0.5)
	if !colorsAlmostEqual(result, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
	// Alpha is coverage and must not be scaled
	if result.A != c.A {
		t.Errorf("Expected alpha unchanged at %v, got %v", c.A, result.A)
	}
}

func TestColorClamp(t *testing.T) {
	c := NewColor(-0.5, 0.5, 1.5, 2.0)
	result := c.Clamp(0.0, 1.0)
	expected := NewColor(0.0, 0.5, 1.0, 1.0)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestColorToRGBA(t *testing.T) {
	// Linear 1.0 stays at full intensity regardless of gamma
	white := NewColor(1.0, 1.0, 1.0, 1.0).ToRGBA()
	if white.R != 255 || white.G != 255 || white.B != 255 || white.A != 255 {
		t.Errorf("Expected opaque white, got %v", white)
	}

	// Out-of-range values must clamp rather than wrap
	hot := NewColor(2.0, -1.0, 0.0, 1.0).ToRGBA()
	if hot.R != 255 || hot.G != 0 {
		t.Errorf("Expected clamped channels, got %v", hot)
	}
}

func TestColorLuminance(t *testing.T) {
	white := NewColor(1.0, 1.0, 1.0, 1.0)
	if math.Abs(white.Luminance()-1.0) > 1e-9 {
		t.Errorf("Expected white luminance 1.0, got %v", white.Luminance())
	}

	green := NewColor(0.0, 1.0, 0.0, 1.0)
	if math.Abs(green.Luminance()-0.587) > 1e-9 {
		t.Errorf("Expected green luminance 0.587, got %v", green.Luminance())
	}
}

func colorsAlmostEqual(a, b Color, tolerance float64) bool {
	return math.Abs(a.R-b.R) <= tolerance &&
		math.Abs(a.G-b.G) <= tolerance &&
		math.Abs(a.B-b.B) <= tolerance &&
		math.Abs(a.A-b.A) <= tolerance
}
