package scene

import (
	"testing"
)

// TestCreate tests scene lookup by name
func TestCreate(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		{"discs scene", "discs", false},
		{"bars scene", "bars", false},
		{"solid scene", "solid", false},
		{"empty scene", "empty", false},
		{"unknown scene", "nonexistent", true},
		{"empty name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := Create(tt.sceneName, 32, 24)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.sceneName)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.sceneName, err)
			}
			if tex.Width != 32 || tex.Height != 24 {
				t.Errorf("Expected 32x24 buffer, got %dx%d", tex.Width, tex.Height)
			}
		})
	}
}

// TestCreateInvalidDimensions tests dimension validation
func TestCreateInvalidDimensions(t *testing.T) {
	if _, err := Create("discs", 0, 24); err == nil {
		t.Error("Expected error for zero width, got none")
	}
	if _, err := Create("discs", 32, -1); err == nil {
		t.Error("Expected error for negative height, got none")
	}
}

// TestDiscsBufferCoverageClasses tests that the discs buffer exercises all
// three coverage classes
func TestDiscsBufferCoverageClasses(t *testing.T) {
	tex := NewDiscsBuffer(128, 96)

	var covered, blended, sky int
	for _, pixel := range tex.Pixels {
		switch {
		case pixel.A == 1.0:
			covered++
		case pixel.A == 0.0:
			sky++
		default:
			blended++
		}
	}

	if covered == 0 {
		t.Error("Expected fully covered pixels inside discs")
	}
	if blended == 0 {
		t.Error("Expected partially covered pixels on disc edges")
	}
	if sky == 0 {
		t.Error("Expected uncovered background pixels")
	}
}

// TestDiscsBufferShading tests that discs darken toward their lower edge
// while staying fully covered
func TestDiscsBufferShading(t *testing.T) {
	tex := NewDiscsBuffer(128, 96)

	// Two interior points of the first disc (center 0.35, 0.40, radius
	// 0.18 in height units), one above center and one below
	top := tex.At(33, 28)
	bottom := tex.At(33, 48)

	if top.A != 1.0 || bottom.A != 1.0 {
		t.Fatalf("Expected full coverage at both sample points, got %v and %v", top.A, bottom.A)
	}
	if bottom.R >= top.R {
		t.Errorf("Expected lower edge darker than top, got R %v vs %v", bottom.R, top.R)
	}
}

// TestBarsBufferSweep tests the coverage sweep of the bars buffer
func TestBarsBufferSweep(t *testing.T) {
	tex := NewBarsBuffer(64, 8)

	if a := tex.At(0, 4).A; a != 0.0 {
		t.Errorf("Expected zero coverage at left edge, got %v", a)
	}
	if a := tex.At(63, 4).A; a != 1.0 {
		t.Errorf("Expected full coverage at right edge, got %v", a)
	}

	prev := -1.0
	for x := 0; x < 64; x++ {
		a := tex.At(x, 4).A
		if a < prev {
			t.Fatalf("Expected monotonically increasing coverage, got %v after %v at x=%d", a, prev, x)
		}
		prev = a
	}
}

// TestSolidBufferFullCoverage tests that the solid buffer is uniformly covered
func TestSolidBufferFullCoverage(t *testing.T) {
	tex := NewSolidBuffer(16, 16)
	for i, pixel := range tex.Pixels {
		if pixel.A != 1.0 {
			t.Fatalf("Pixel %d: expected full coverage, got alpha %v", i, pixel.A)
		}
	}
}

// TestNames tests the registry listing
func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Errorf("Expected 4 scene names, got %d: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Expected sorted names, got %v", names)
		}
	}
}
