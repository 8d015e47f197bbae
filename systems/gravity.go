// Package systems contains the physics core and ECS systems for the simulation.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/config"
)

// SourceKind tags the variant of a gravity Source.
type SourceKind uint8

const (
	SourceWell SourceKind = iota
	SourceBlackHole
)

// String returns the display name for a SourceKind.
func (k SourceKind) String() string {
	if k == SourceBlackHole {
		return "black_hole"
	}
	return "well"
}

// Source is an attractive point mass. Black holes additionally destroy
// anything inside EventHorizon.
type Source struct {
	Kind SourceKind
	Pos  r2.Vec
	Mass float64
	G    float64

	// Rendered size. For black holes Radius is the core and DiskRadius the
	// accretion disk; EventHorizon < DiskRadius.
	Radius       float64
	EventHorizon float64
	DiskRadius   float64

	Look uint8 // cosmetic subtype, no physics effect
}

// NewWell creates a planet with the configured gravitational constant.
func NewWell(cfg *config.Config, pos r2.Vec, mass float64) Source {
	return Source{
		Kind:   SourceWell,
		Pos:    pos,
		Mass:   mass,
		G:      cfg.Gravity.WellG,
		Radius: WellRadius(mass),
	}
}

// WellRadius is the drawn planet radius for a mass, clamped to [15, 40].
func WellRadius(mass float64) float64 {
	return math.Max(15, math.Min(40, mass/50))
}

// NewBlackHole creates a black hole. Its mass is the configured constant,
// not drawn from the well mass range.
func NewBlackHole(cfg *config.Config, pos r2.Vec) Source {
	g := cfg.Gravity
	return Source{
		Kind:         SourceBlackHole,
		Pos:          pos,
		Mass:         g.BlackHoleMass,
		G:            g.BlackHoleG,
		Radius:       g.BlackHoleRadius,
		EventHorizon: g.EventHorizon,
		DiskRadius:   g.DiskRadius,
	}
}

// ForceAt returns the pull of src on a unit mass at p:
// G·m/(d²+eps) along the unit vector from p to the source.
// At d == 0 the direction is undefined and the force is zero.
func ForceAt(src Source, p r2.Vec, eps float64) r2.Vec {
	delta := r2.Sub(src.Pos, p)
	d2 := r2.Norm2(delta)
	if d2 == 0 {
		return r2.Vec{}
	}
	mag := src.G * src.Mass / (d2 + eps)
	return r2.Scale(mag/math.Sqrt(d2), delta)
}

// Captures reports whether p is strictly inside the event horizon.
// Wells never capture.
func (s Source) Captures(p r2.Vec) bool {
	if s.Kind != SourceBlackHole {
		return false
	}
	return r2.Norm(r2.Sub(p, s.Pos)) < s.EventHorizon
}

// Field is the set of sources acting on missiles during a round.
type Field struct {
	Wells      []Source
	BlackHoles []Source
	Epsilon    float64
}

// NewField builds an empty field with the configured softening.
func NewField(cfg *config.Config) Field {
	return Field{Epsilon: cfg.Gravity.Epsilon}
}

// Add appends a source to the matching list.
func (f *Field) Add(s Source) {
	if s.Kind == SourceBlackHole {
		f.BlackHoles = append(f.BlackHoles, s)
		return
	}
	f.Wells = append(f.Wells, s)
}

// Accumulate sums the force of every well, then every black hole, at p.
func (f *Field) Accumulate(p r2.Vec) r2.Vec {
	var total r2.Vec
	for i := range f.Wells {
		total = r2.Add(total, ForceAt(f.Wells[i], p, f.Epsilon))
	}
	for i := range f.BlackHoles {
		total = r2.Add(total, ForceAt(f.BlackHoles[i], p, f.Epsilon))
	}
	return total
}

// Captured reports whether any black hole swallows a missile at p.
func (f *Field) Captured(p r2.Vec) bool {
	for i := range f.BlackHoles {
		if f.BlackHoles[i].Captures(p) {
			return true
		}
	}
	return false
}

// Sources returns wells followed by black holes.
func (f *Field) Sources() []Source {
	out := make([]Source, 0, len(f.Wells)+len(f.BlackHoles))
	out = append(out, f.Wells...)
	return append(out, f.BlackHoles...)
}
