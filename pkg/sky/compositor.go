package sky

import (
	"github.com/df07/go-sky-compositor/pkg/core"
	"github.com/df07/go-sky-compositor/pkg/texture"
)

// BaseColor is the display-encoded color of the synthesized sky, a light blue
var BaseColor = core.NewColor(0.341, 0.725, 1.0, 1.0)

// baseLinear is BaseColor converted once into linear space; the sampled
// scene buffer is linear, so blending has to happen there
var baseLinear = BaseColor.DisplayToLinear()

// Composite fills uncovered pixels with the sky color and passes covered
// pixels through unchanged. Coverage is read from the sample's alpha:
// exactly 1.0 means the pixel is fully covered by scene geometry. Any
// smaller value blends the sky in underneath, which gives smooth edges on
// antialiased silhouettes. The comparison is intentionally exact, not an
// epsilon test; pixels infinitesimally below full coverage take the blend
// path.
//
// The settings record is accepted but not consumed by the blend.
func Composite(sample core.Color, settings Settings) core.Color {
	if sample.A == 1.0 {
		return sample
	}
	return baseLinear.Lerp(sample, sample.A)
}

// Shader composites a sampled scene buffer over the synthesized sky.
// It implements core.Fragment: the fullscreen pass invokes it once per
// output pixel. All fields are bound once per pass and read-only for its
// lifetime.
type Shader struct {
	Texture  *texture.Texture
	Sampler  texture.Sampler
	Settings Settings
}

// NewShader creates a shader over the given scene buffer with default
// sampling and settings
func NewShader(tex *texture.Texture) *Shader {
	return &Shader{
		Texture: tex,
		Sampler: texture.DefaultSampler(),
	}
}

// Fragment samples the scene buffer at the pixel's UV coordinate and
// composites the sky behind it
func (sh *Shader) Fragment(uv core.Vec2) core.Color {
	return Composite(sh.Sampler.Sample(sh.Texture, uv), sh.Settings)
}
