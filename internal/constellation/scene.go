package constellation

import (
	"fmt"
	"image/color"
	"math"
)

const (
	// connectDistance is the exclusive upper bound for drawing a link.
	connectDistance = 200.0
	connectBase     = 0.3
	connectMax      = 0.6
)

var (
	// FadeColor is painted over the whole surface each frame, leaving trails.
	FadeColor = color.NRGBA{R: 15, G: 12, B: 41, A: 26} // rgba(15,12,41,0.1)
	// LinkColor is the stroke colour of connections before opacity.
	LinkColor = color.RGBA{R: 167, G: 139, B: 250, A: 255}
	// LabelColor is used for skill names.
	LabelColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// PercentColor is used for the progress label.
	PercentColor = color.RGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff}
)

// Connection is a line between two nearby stars.
type Connection struct {
	X1, Y1, X2, Y2 float64
	Distance       float64
	Opacity        float64
}

// StarSprite is everything needed to paint one star.
type StarSprite struct {
	Skill      string
	X, Y       float64
	Radius     float64
	GlowRadius float64
	Color      color.RGBA
	Label      string
	Percent    string
	// LabelY and PercentY are the text baselines, below the glow.
	LabelY   float64
	PercentY float64
}

// Scene is one full redraw: fade, then connections, then stars.
type Scene struct {
	Width, Height int
	Fade          color.NRGBA
	Connections   []Connection
	Stars         []StarSprite
}

// ConnectionOpacity returns the link opacity for two stars d pixels apart.
// The second return is false when the stars are too far apart to link.
func ConnectionOpacity(d float64) (float64, bool) {
	if d >= connectDistance {
		return 0, false
	}
	return math.Min(connectBase*(1-d/connectDistance), connectMax), true
}

// Connections returns every link between stars closer than the link distance.
// Cost is quadratic in the star count.
func (f *Field) Connections() []Connection {
	var out []Connection
	for i := 0; i < len(f.stars); i++ {
		for j := i + 1; j < len(f.stars); j++ {
			a, b := f.stars[i], f.stars[j]
			d := math.Hypot(b.X-a.X, b.Y-a.Y)
			op, ok := ConnectionOpacity(d)
			if !ok {
				continue
			}
			out = append(out, Connection{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Distance: d, Opacity: op})
		}
	}
	return out
}

// Scene describes the current frame.
func (f *Field) Scene() Scene {
	sc := Scene{
		Width:       int(f.width),
		Height:      int(f.height),
		Fade:        FadeColor,
		Connections: f.Connections(),
		Stars:       make([]StarSprite, 0, len(f.stars)),
	}
	for _, s := range f.stars {
		size := s.Size()
		sc.Stars = append(sc.Stars, StarSprite{
			Skill:      s.Skill,
			X:          s.X,
			Y:          s.Y,
			Radius:     size,
			GlowRadius: s.GlowRadius(),
			Color:      s.Color(),
			Label:      s.Skill,
			Percent:    FormatPercent(s.Progress),
			LabelY:     s.Y + size*4 + 10,
			PercentY:   s.Y + size*4 + 25,
		})
	}
	return sc
}

// FormatPercent renders progress as a rounded whole percentage.
func FormatPercent(progress float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(progress)))
}
