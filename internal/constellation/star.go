package constellation

import (
	"image/color"
	"math"
)

const (
	// starBaseSize is the core radius of a star at 0% progress.
	starBaseSize = 8.0
	// starSizeRange is added on top of the base at 100% progress.
	starSizeRange = 7.0
	// glowFactor scales the core radius to the glow (and hit) radius.
	glowFactor = 3.0
)

// Star palette, one colour per progress bucket.
var (
	ColorMastered   = color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff} // green
	ColorProficient = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff} // blue
	ColorLearning   = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff} // orange
	ColorNovice     = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff} // red
	ColorUnknown    = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff} // gray
)

// Star is the visual entity for one skill.
type Star struct {
	Skill    string
	Progress float64
	X, Y     float64
	// Twinkle is the oscillation phase in radians; it only grows.
	Twinkle float64
}

// Size returns the core radius derived from progress.
func (s *Star) Size() float64 { return StarSize(s.Progress) }

// Color returns the bucket colour derived from progress.
func (s *Star) Color() color.RGBA { return StarColor(s.Progress) }

// GlowRadius is the radius of the glow halo, which doubles as the hit radius.
func (s *Star) GlowRadius() float64 { return s.Size() * glowFactor }

// Contains reports whether (x, y) lies within the star's hit radius.
func (s *Star) Contains(x, y float64) bool {
	return math.Hypot(x-s.X, y-s.Y) <= s.GlowRadius()
}

// StarSize maps a progress percentage onto a core radius in [8, 15].
func StarSize(progress float64) float64 {
	return starBaseSize + (progress/100)*starSizeRange
}

// StarColor maps a progress percentage onto the 5-bucket palette.
func StarColor(progress float64) color.RGBA {
	switch {
	case progress >= 80:
		return ColorMastered
	case progress >= 60:
		return ColorProficient
	case progress >= 40:
		return ColorLearning
	case progress >= 20:
		return ColorNovice
	default:
		return ColorUnknown
	}
}

// ClampProgress forces p into [0, 100]. NaN becomes 0.
// The second return is true when p had to be changed.
func ClampProgress(p float64) (float64, bool) {
	switch {
	case math.IsNaN(p):
		return 0, true
	case p < 0:
		return 0, true
	case p > 100:
		return 100, true
	}
	return p, false
}
