package compositor

import (
	"github.com/df07/go-sky-compositor/pkg/texture"
)

// CoverageStats classifies a scene buffer's pixels by their coverage alpha
type CoverageStats struct {
	TotalPixels   int
	CoveredPixels int // alpha == 1.0 exactly, pass-through
	BlendedPixels int // 0 < alpha < 1, antialiased edges
	SkyPixels     int // alpha == 0, pure sky fill
}

// AnalyzeCoverage scans a scene buffer and counts how its pixels will be
// treated by the composite: passed through, edge-blended, or replaced by
// sky. Useful for logging and sanity-checking input buffers.
func AnalyzeCoverage(tex *texture.Texture) CoverageStats {
	stats := CoverageStats{TotalPixels: len(tex.Pixels)}

	for _, pixel := range tex.Pixels {
		switch {
		case pixel.A == 1.0:
			stats.CoveredPixels++
		case pixel.A == 0.0:
			stats.SkyPixels++
		default:
			stats.BlendedPixels++
		}
	}

	return stats
}

// CoveredFraction returns the fraction of pixels fully covered by geometry
func (s CoverageStats) CoveredFraction() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.CoveredPixels) / float64(s.TotalPixels)
}
