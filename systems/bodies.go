package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwar/components"
	"github.com/pthm-cable/gravwar/config"
)

// BodyKind tags the variant of a destructible Body.
type BodyKind uint8

const (
	BodyAsteroid BodyKind = iota
	BodyPad
)

// String returns the display name for a BodyKind.
func (k BodyKind) String() string {
	if k == BodyPad {
		return "pad"
	}
	return "asteroid"
}

// PadState holds the launch-pad-only fields of a Body.
type PadState struct {
	Side   components.Side
	Angle  float64 // degrees
	Power  float64
	Health float64
}

// Body is a destructible object missiles can hit. Pad is nil for asteroids.
// Radius is the asteroid's spawn radius or the pad's hit radius.
type Body struct {
	ID        int
	Kind      BodyKind
	Pos       r2.Vec
	Radius    float64
	Destroyed bool
	Look      uint8 // cosmetic asteroid shape seed

	Pad *PadState
}

// NewAsteroid creates an asteroid with a radius drawn from the configured range.
func NewAsteroid(cfg *config.Config, id int, pos r2.Vec, rng *rand.Rand) Body {
	a := cfg.Asteroid
	return Body{
		ID:     id,
		Kind:   BodyAsteroid,
		Pos:    pos,
		Radius: a.RadiusMin + rng.Float64()*(a.RadiusMax-a.RadiusMin),
		Look:   uint8(rng.Intn(256)),
	}
}

// NewPad creates a full-health launch pad aimed at angleDeg.
func NewPad(cfg *config.Config, id int, side components.Side, pos r2.Vec, angleDeg float64) Body {
	return Body{
		ID:     id,
		Kind:   BodyPad,
		Pos:    pos,
		Radius: cfg.Pad.HitRadius,
		Pad: &PadState{
			Side:   side,
			Angle:  angleDeg,
			Power:  cfg.Pad.PowerDefault,
			Health: cfg.Pad.MaxHealth,
		},
	}
}

// HitPolicy decides which projectiles may hit a pad.
type HitPolicy struct {
	FriendlyFire bool
}

// CheckCollision reports whether a projectile at p owned by owner hits b.
// Destroyed bodies never collide. Without friendly fire a pad ignores its
// own side's projectiles; neutral projectiles always hit.
func CheckCollision(b *Body, p r2.Vec, owner components.Side, policy HitPolicy) bool {
	if b.Destroyed {
		return false
	}
	if b.Kind == BodyPad && !policy.FriendlyFire && owner != components.SideNone && owner == b.Pad.Side {
		return false
	}
	return r2.Norm(r2.Sub(p, b.Pos)) < b.Radius
}

// FragmentSpec controls a fragmentation burst.
type FragmentSpec struct {
	Min, Max int
	Jitter   float64 // per-axis uniform velocity jitter
	Neutral  bool    // fragments belong to no side
}

// AsteroidFragments returns the configured asteroid burst.
func AsteroidFragments(cfg *config.Config) FragmentSpec {
	a := cfg.Asteroid
	return FragmentSpec{Min: a.FragmentsMin, Max: a.FragmentsMax, Jitter: a.FragmentJitter, Neutral: a.NeutralFragments}
}

// PadFragments returns the configured pad burst.
func PadFragments(cfg *config.Config) FragmentSpec {
	p := cfg.Pad
	return FragmentSpec{Min: p.FragmentsMin, Max: p.FragmentsMax, Jitter: p.FragmentJitter}
}

// Spawn describes a projectile to create.
type Spawn struct {
	Pos   r2.Vec
	Vel   r2.Vec
	Owner components.Side
}

// Explode marks b destroyed and returns its fragments: between spec.Min
// and spec.Max projectiles at the body's center, each with vel plus
// independent uniform jitter per axis.
func Explode(b *Body, vel r2.Vec, owner components.Side, spec FragmentSpec, rng *rand.Rand) []Spawn {
	b.Destroyed = true

	if spec.Neutral {
		owner = components.SideNone
	}
	n := spec.Min
	if spec.Max > spec.Min {
		n += rng.Intn(spec.Max - spec.Min + 1)
	}

	out := make([]Spawn, n)
	for i := range out {
		out[i] = Spawn{
			Pos: b.Pos,
			Vel: r2.Vec{
				X: vel.X + uniform(rng, spec.Jitter),
				Y: vel.Y + uniform(rng, spec.Jitter),
			},
			Owner: owner,
		}
	}
	return out
}

// Damage subtracts amount from a pad's health and reports whether the pad
// was destroyed by it. Health never increases; destruction is terminal.
func Damage(b *Body, amount float64) bool {
	if b.Kind != BodyPad || b.Destroyed {
		return false
	}
	b.Pad.Health -= amount
	if b.Pad.Health <= 0 {
		b.Destroyed = true
		return true
	}
	return false
}

// HomeRegion returns the rectangle a side's pad may occupy.
func HomeRegion(cfg *config.Config, side components.Side) r2.Box {
	w, h, m := cfg.Playfield.Width, cfg.Playfield.Height, cfg.Pad.Margin
	if side == components.SideRight {
		return r2.Box{Min: r2.Vec{X: cfg.Derived.HomeRight, Y: m}, Max: r2.Vec{X: w - m, Y: h - m}}
	}
	return r2.Box{Min: r2.Vec{X: m, Y: m}, Max: r2.Vec{X: cfg.Derived.HomeLeft, Y: h - m}}
}

// Relocate moves a surviving pad to a random spot in home and re-aims it
// at the opponent.
func Relocate(b *Body, home r2.Box, opponent r2.Vec, rng *rand.Rand) {
	b.Pos = RandomIn(home, rng)
	b.Pad.Angle = AimAt(b.Pos, opponent)
}

// RandomIn returns a uniform point inside box.
func RandomIn(box r2.Box, rng *rand.Rand) r2.Vec {
	return r2.Vec{
		X: box.Min.X + rng.Float64()*(box.Max.X-box.Min.X),
		Y: box.Min.Y + rng.Float64()*(box.Max.Y-box.Min.Y),
	}
}

// uniform returns a value in [-r, r].
func uniform(rng *rand.Rand, r float64) float64 {
	return (rng.Float64()*2 - 1) * r
}
