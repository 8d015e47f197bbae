package game

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
	"github.com/pthm-cable/gravwar/systems"
)

// WellSpec places one gravity well.
type WellSpec struct {
	Pos  r2.Vec
	Mass float64
}

// AsteroidSpec places one asteroid. A zero Radius is drawn from the
// configured range when the round is built.
type AsteroidSpec struct {
	Pos    r2.Vec
	Radius float64
}

// Layout is the static arrangement a round starts from.
type Layout struct {
	Pads       [2]r2.Vec
	Wells      []WellSpec
	BlackHoles []r2.Vec
	Asteroids  []AsteroidSpec
}

// GenerateLayout draws a randomized layout: pads in their home bands,
// then wells, black holes and asteroids, each kept apart by the placer.
func GenerateLayout(cfg *config.Config, rng *rand.Rand) Layout {
	pl := cfg.Placement
	placer := systems.NewPlacer(rng, pl.MinSeparation, pl.MaxAttempts)

	var lay Layout
	for _, side := range []components.Side{components.SideLeft, components.SideRight} {
		lay.Pads[side] = placer.Place(systems.HomeRegion(cfg, side), cfg.Pad.HitRadius)
	}

	w, h := cfg.Playfield.Width, cfg.Playfield.Height
	wells := r2.Box{
		Min: r2.Vec{X: pl.Wells.MarginX, Y: pl.Wells.MarginY},
		Max: r2.Vec{X: w - pl.Wells.MarginX, Y: h - pl.Wells.MarginY},
	}
	for i, n := 0, randCount(rng, pl.Wells.CountMin, pl.Wells.CountMax); i < n; i++ {
		mass := pl.Wells.MassMin + rng.Float64()*(pl.Wells.MassMax-pl.Wells.MassMin)
		pos := placer.Place(wells, systems.WellRadius(mass))
		lay.Wells = append(lay.Wells, WellSpec{Pos: pos, Mass: mass})
	}

	for i, n := 0, randCount(rng, pl.BlackHoles.CountMin, pl.BlackHoles.CountMax); i < n; i++ {
		lay.BlackHoles = append(lay.BlackHoles, placer.Place(bandRegion(cfg, pl.BlackHoles), cfg.Gravity.DiskRadius))
	}

	lay.Asteroids = placeAsteroids(cfg, placer, rng)
	return lay
}

// placeAsteroids draws a fresh asteroid set around what placer already holds.
func placeAsteroids(cfg *config.Config, placer *systems.Placer, rng *rand.Rand) []AsteroidSpec {
	a := cfg.Asteroid
	band := cfg.Placement.Asteroids
	n := randCount(rng, band.CountMin, band.CountMax)
	out := make([]AsteroidSpec, 0, n)
	for i := 0; i < n; i++ {
		r := a.RadiusMin + rng.Float64()*(a.RadiusMax-a.RadiusMin)
		out = append(out, AsteroidSpec{Pos: placer.Place(bandRegion(cfg, band), r), Radius: r})
	}
	return out
}

func bandRegion(cfg *config.Config, b config.BandConfig) r2.Box {
	w, h := cfg.Playfield.Width, cfg.Playfield.Height
	return r2.Box{
		Min: r2.Vec{X: w * b.BandMin, Y: b.MarginY},
		Max: r2.Vec{X: w * b.BandMax, Y: h - b.MarginY},
	}
}

func randCount(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Field builds the gravity field the layout describes.
func (lay Layout) Field(cfg *config.Config) systems.Field {
	f := systems.NewField(cfg)
	for _, w := range lay.Wells {
		f.Add(systems.NewWell(cfg, w.Pos, w.Mass))
	}
	for _, p := range lay.BlackHoles {
		f.Add(systems.NewBlackHole(cfg, p))
	}
	return f
}
