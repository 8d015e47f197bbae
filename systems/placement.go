package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// disc is an occupied circle on the playfield.
type disc struct {
	c r2.Vec
	r float64
}

// Placer draws random positions that keep a minimum gap to everything
// placed before. The search is bounded: after maxAttempts rejections the
// last candidate is accepted as-is.
type Placer struct {
	rng         *rand.Rand
	minSep      float64
	maxAttempts int
	placed      []disc

	// Exhausted counts placements that fell back to the last attempt.
	Exhausted int
}

// NewPlacer creates a placer with the given gap and attempt budget.
func NewPlacer(rng *rand.Rand, minSeparation float64, maxAttempts int) *Placer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Placer{rng: rng, minSep: minSeparation, maxAttempts: maxAttempts}
}

// Reserve marks a circle as occupied without drawing a position.
func (p *Placer) Reserve(c r2.Vec, radius float64) {
	p.placed = append(p.placed, disc{c: c, r: radius})
}

// Place returns a position inside region for a circle of the given radius
// and reserves it.
func (p *Placer) Place(region r2.Box, radius float64) r2.Vec {
	var candidate r2.Vec
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		candidate = RandomIn(region, p.rng)
		if p.fits(candidate, radius) {
			p.Reserve(candidate, radius)
			return candidate
		}
	}
	p.Exhausted++
	p.Reserve(candidate, radius)
	return candidate
}

func (p *Placer) fits(c r2.Vec, radius float64) bool {
	for _, d := range p.placed {
		if r2.Norm(r2.Sub(c, d.c)) < d.r+radius+p.minSep {
			return false
		}
	}
	return true
}
