// Package constellation lays out, animates and hit-tests the skill star field.
//
// The field has no graphics dependency. A host drives it once per frame with
// Step, feeds it progress mappings with Reconcile and pointer events in
// canvas-local coordinates, and renders whatever Scene returns.
package constellation

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

const (
	// boundsMargin insets the area stars may rest in from every canvas edge.
	boundsMargin = 50.0
	// MinCanvasSize is the smallest width or height with a non-empty resting area.
	MinCanvasSize = 2 * boundsMargin
	// Auto-placement annulus around the canvas centre.
	placeMinRadius  = 150.0
	placeRadiusSpan = 150.0

	// twinkleStep is the phase advance per frame, in radians.
	twinkleStep = 0.05
	// driftAmplitude is the per-frame positional oscillation in pixels.
	driftAmplitude = 0.2
)

// InspectFunc receives the skill and progress of a clicked star.
type InspectFunc func(skill string, progress float64)

// Option configures a Field.
type Option func(*Field)

// WithRand sets the source used for placement and initial twinkle phase.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) {
		if rng != nil {
			f.rng = rng
		}
	}
}

// WithInspect registers the click handler.
func WithInspect(fn InspectFunc) Option {
	return func(f *Field) { f.onInspect = fn }
}

// Field is the constellation: a fixed-size canvas and its stars in insertion order.
type Field struct {
	width  float64
	height float64
	stars  []*Star
	rng    *rand.Rand

	onInspect InspectFunc

	// Pointer interaction.
	selected      *Star
	dragging      bool
	dragMoved     bool
	suppressClick bool
	cursor        Cursor
}

// ReconcileResult summarises what a Reconcile call changed.
type ReconcileResult struct {
	Added   []string
	Removed []string
	Updated int
	Clamped int
}

// New creates an empty field bound to a width x height surface.
func New(width, height int, opts ...Option) *Field {
	f := &Field{
		width:  float64(width),
		height: float64(height),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- cosmetic only
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Width returns the surface width in pixels.
func (f *Field) Width() int { return int(f.width) }

// Height returns the surface height in pixels.
func (f *Field) Height() int { return int(f.height) }

// Len returns the number of stars.
func (f *Field) Len() int { return len(f.stars) }

// Stars returns a copy of every star in insertion order.
func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	for i, s := range f.stars {
		out[i] = *s
	}
	return out
}

// Progress returns the clamped progress each star holds, keyed by skill.
func (f *Field) Progress() map[string]float64 {
	out := make(map[string]float64, len(f.stars))
	for _, s := range f.stars {
		out[s.Skill] = s.Progress
	}
	return out
}

// Lookup returns a copy of the star for skill.
func (f *Field) Lookup(skill string) (Star, bool) {
	for _, s := range f.stars {
		if s.Skill == skill {
			return *s, true
		}
	}
	return Star{}, false
}

// Reconcile syncs the star set to progress. Skills missing from the field are
// created on the placement annulus, skills missing from progress are removed,
// and the rest keep their position while progress is replaced.
func (f *Field) Reconcile(progress map[string]float64) ReconcileResult {
	var res ReconcileResult

	kept := f.stars[:0]
	existing := make(map[string]bool, len(f.stars))
	for _, s := range f.stars {
		p, ok := progress[s.Skill]
		if !ok {
			res.Removed = append(res.Removed, s.Skill)
			if s == f.selected {
				f.releaseSelection()
			}
			continue
		}
		var clamped bool
		s.Progress, clamped = ClampProgress(p)
		if clamped {
			res.Clamped++
		}
		existing[s.Skill] = true
		kept = append(kept, s)
		res.Updated++
	}
	// Drop references held by the tail so removed stars can be collected.
	for i := len(kept); i < len(f.stars); i++ {
		f.stars[i] = nil
	}
	f.stars = kept

	// Map order is random; sort so seeded runs place stars identically.
	var added []string
	for skill := range progress {
		if !existing[skill] {
			added = append(added, skill)
		}
	}
	sort.Strings(added)
	for _, skill := range added {
		p, clamped := ClampProgress(progress[skill])
		if clamped {
			res.Clamped++
		}
		f.stars = append(f.stars, f.newStar(skill, p))
	}
	res.Added = added
	return res
}

// newStar creates a star on a random point of the placement annulus.
func (f *Field) newStar(skill string, progress float64) *Star {
	angle := f.rng.Float64() * 2 * math.Pi
	radius := placeMinRadius + f.rng.Float64()*placeRadiusSpan
	x := f.width/2 + math.Cos(angle)*radius
	y := f.height/2 + math.Sin(angle)*radius
	return f.newStarAt(skill, progress, x, y)
}

// newStarAt creates a star at (x, y), clamped into the inset bounds.
func (f *Field) newStarAt(skill string, progress, x, y float64) *Star {
	s := &Star{
		Skill:    skill,
		Progress: progress,
		X:        x,
		Y:        y,
		Twinkle:  f.rng.Float64() * 2 * math.Pi,
	}
	f.clampToBounds(s)
	return s
}

// Step advances the idle animation by one frame.
func (f *Field) Step() {
	for _, s := range f.stars {
		s.Twinkle += twinkleStep
		s.X += math.Sin(s.Twinkle) * driftAmplitude
		s.Y += math.Cos(s.Twinkle) * driftAmplitude
		f.clampToBounds(s)
	}
}

func (f *Field) clampToBounds(s *Star) {
	s.X = clamp(s.X, boundsMargin, f.width-boundsMargin)
	s.Y = clamp(s.Y, boundsMargin, f.height-boundsMargin)
}

// InBounds reports whether (x, y) lies inside the inset rectangle stars rest in.
func (f *Field) InBounds(x, y float64) bool {
	return x >= boundsMargin && x <= f.width-boundsMargin &&
		y >= boundsMargin && y <= f.height-boundsMargin
}

// StarAt returns a copy of the first star, in insertion order, whose hit
// radius covers (x, y). Overlapping stars resolve by creation order, not proximity.
func (f *Field) StarAt(x, y float64) (Star, bool) {
	if s := f.starAt(x, y); s != nil {
		return *s, true
	}
	return Star{}, false
}

func (f *Field) starAt(x, y float64) *Star {
	for _, s := range f.stars {
		if s.Contains(x, y) {
			return s
		}
	}
	return nil
}

// clamp mirrors max(lo, min(hi, v)); on a canvas narrower than the margins lo wins.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
