package texture

import (
	"math"

	"github.com/df07/go-sky-compositor/pkg/core"
)

// Filter selects how texels are combined when a UV coordinate falls
// between pixel centers
type Filter int

const (
	FilterNearest Filter = iota
	FilterBilinear
)

// Wrap selects how UV coordinates outside [0,1] are mapped back into range
type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
)

// Sampler configures how a texture is read. It is opaque to the fragment
// logic consuming the samples; the same sampler is shared read-only by all
// pixel invocations of a pass.
type Sampler struct {
	Filter Filter
	WrapU  Wrap
	WrapV  Wrap
}

// DefaultSampler returns a bilinear, clamping sampler, matching the
// filtering sampler a render pipeline binds by default
func DefaultSampler() Sampler {
	return Sampler{Filter: FilterBilinear, WrapU: WrapClamp, WrapV: WrapClamp}
}

// Sample reads the texture at the given UV coordinate. UV (0,0) maps to the
// top-left texel center region, (1,1) to the bottom-right.
func (s Sampler) Sample(t *Texture, uv core.Vec2) core.Color {
	u := wrapCoord(uv.X, s.WrapU)
	v := wrapCoord(uv.Y, s.WrapV)

	if s.Filter == FilterNearest {
		x := int(u * float64(t.Width))
		y := int(v * float64(t.Height))
		return t.At(x, y)
	}

	// Bilinear: sample relative to pixel centers
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := t.At(x0, y0).Lerp(t.At(x0+1, y0), tx)
	bottom := t.At(x0, y0+1).Lerp(t.At(x0+1, y0+1), tx)
	return top.Lerp(bottom, ty)
}

// wrapCoord maps a coordinate into [0,1] according to the wrap mode
func wrapCoord(c float64, mode Wrap) float64 {
	switch mode {
	case WrapRepeat:
		c = c - math.Floor(c)
	default: // WrapClamp
		c = max(0.0, min(1.0, c))
	}
	return c
}
